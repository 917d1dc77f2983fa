package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	"github.com/open-dio/opendio/internal/storage"
	"github.com/open-dio/opendio/internal/util"
	"github.com/open-dio/opendio/pkg/eeio"
	"github.com/open-dio/opendio/pkg/leaselock"
	"github.com/open-dio/opendio/pkg/logger"
	"github.com/open-dio/opendio/pkg/store"
	pgxstore "github.com/open-dio/opendio/pkg/store/pgx"
)

const (
	rebuildLockKey  = "model_rebuild"
	rebuildLockTTL  = 10 * time.Minute
	downloadRetries = 3
)

// RebuildMessage requests one model rebuild. Either both source keys are set
// explicitly or SnapshotPrefix names a snapshot folder to resolve them from.
type RebuildMessage struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`

	TransactionsKey string `json:"transactions_key"`
	FlowsKey        string `json:"flows_key"`
	SnapshotPrefix  string `json:"snapshot_prefix"`
	SchemaKey       string `json:"schema_key"`

	ModelVersion string `json:"model_version"`
	IOYear       int    `json:"io_year"`
}

// ModelPublishedEvent is emitted on the events exchange after a build lands.
type ModelPublishedEvent struct {
	BuildID       string `json:"build_id"`
	ModelVersion  string `json:"model_version"`
	IOYear        int    `json:"io_year"`
	Sectors       int    `json:"sectors"`
	Degraded      bool   `json:"degraded"`
	ArtifactKey   string `json:"artifact_key"`
	CorrelationID string `json:"correlation_id"`
}

// ProcessRebuildMessage handles one rebuild request end to end: download the
// snapshot, run the model build, publish the table to Postgres and upload the
// JSON artifact. The whole run holds the rebuild lease; if another worker
// already holds it the message is dropped, since that worker is building from
// the same snapshot state anyway.
func ProcessRebuildMessage(
	ctx context.Context,
	client *s3.Client,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	msgBody string,
) error {
	var msg RebuildMessage
	if err := json.Unmarshal([]byte(msgBody), &msg); err != nil {
		return fmt.Errorf("failed to parse rebuild message: %w", err)
	}

	locks := leaselock.New(conn)
	err := locks.WithLease(ctx, rebuildLockKey, leaselock.Options{TTL: rebuildLockTTL}, func(ctx context.Context) error {
		return runRebuild(ctx, client, ch, conn, msg)
	})
	if errors.Is(err, leaselock.ErrBusy) {
		logger.Warn("[Rebuild] Another worker holds the rebuild lease, dropping request",
			"correlation_id", msg.CorrelationID)
		return nil
	}
	return err
}

func runRebuild(
	ctx context.Context,
	client *s3.Client,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	msg RebuildMessage,
) error {
	started := time.Now()

	txKey, flowKey, err := resolveSnapshotKeys(ctx, client, msg)
	if err != nil {
		return err
	}
	logger.Info("[Rebuild] Starting model rebuild",
		"transactions", txKey, "flows", flowKey, "correlation_id", msg.CorrelationID)

	transactions, err := util.RetryWithContext(ctx, downloadRetries, func(ctx context.Context) ([]byte, error) {
		return storage.GetSnapshot(ctx, client, txKey)
	})
	if err != nil {
		return fmt.Errorf("failed to download transactions snapshot: %w", err)
	}
	flows, err := util.RetryWithContext(ctx, downloadRetries, func(ctx context.Context) ([]byte, error) {
		return storage.GetSnapshot(ctx, client, flowKey)
	})
	if err != nil {
		return fmt.Errorf("failed to download flows snapshot: %w", err)
	}

	schema, err := resolveSchema(ctx, client, msg)
	if err != nil {
		return err
	}

	table, err := eeio.Build(ctx, eeio.BuildParams{
		Transactions: bytes.NewReader(transactions),
		Flows:        bytes.NewReader(flows),
		Schema:       schema,
		ModelVersion: msg.ModelVersion,
		IOYear:       msg.IOYear,
	})
	if err != nil {
		return err
	}

	rec := store.BuildRecord{
		BuildID:      util.NewBuildID(),
		ModelVersion: msg.ModelVersion,
		IOYear:       msg.IOYear,
		DurationMS:   time.Since(started).Milliseconds(),
	}
	tableStore := pgxstore.NewMultiplierStore(conn)
	if err := tableStore.PublishTable(ctx, rec, table); err != nil {
		return err
	}

	artifactKey, err := uploadArtifact(ctx, client, rec.BuildID, table)
	if err != nil {
		// The table is already current in Postgres; a missing artifact is
		// recoverable, not a reason to fail the whole rebuild.
		logger.Error("[Rebuild] Failed to upload artifact", "build_id", rec.BuildID, "err", err)
	}

	keep := int(util.GetEnvNumeric("MODEL_BUILDS_KEEP", 10))
	if pruned, err := tableStore.PruneBuilds(ctx, keep); err != nil {
		logger.Warn("[Rebuild] Failed to prune old builds", "err", err)
	} else if pruned > 0 {
		logger.Info("[Rebuild] Pruned old builds", "count", pruned)
	}

	event := ModelPublishedEvent{
		BuildID:       rec.BuildID,
		ModelVersion:  msg.ModelVersion,
		IOYear:        msg.IOYear,
		Sectors:       len(table.Sectors),
		Degraded:      table.Meta.Degraded,
		ArtifactKey:   artifactKey,
		CorrelationID: msg.CorrelationID,
	}
	if raw, err := json.Marshal(event); err == nil {
		if err := PublishTopic(ch, "model.published", raw); err != nil {
			logger.Warn("[Rebuild] Failed to publish model event", "err", err)
		}
	}

	logger.Info("[Rebuild] Model published",
		"build_id", rec.BuildID,
		"sectors", len(table.Sectors),
		"degraded", table.Meta.Degraded,
		"duration", time.Since(started))
	return nil
}

// resolveSchema picks the source column schema: an object key from the
// message wins, then the SCHEMA_CONFIG_PATH file, then the built-in default.
func resolveSchema(ctx context.Context, client *s3.Client, msg RebuildMessage) (eeio.SchemaConfig, error) {
	if msg.SchemaKey != "" {
		raw, err := util.RetryWithContext(ctx, downloadRetries, func(ctx context.Context) ([]byte, error) {
			return storage.GetSnapshot(ctx, client, msg.SchemaKey)
		})
		if err != nil {
			return eeio.SchemaConfig{}, fmt.Errorf("failed to download schema config: %w", err)
		}
		return eeio.ParseSchemaConfig(raw)
	}
	if path := util.GetEnv("SCHEMA_CONFIG_PATH"); path != "" {
		return eeio.LoadSchemaConfig(path)
	}
	return eeio.DefaultSchemaConfig(), nil
}

// resolveSnapshotKeys returns the transactions and flows object keys, either
// straight from the message or by scanning the snapshot prefix for the latest
// matching pair.
func resolveSnapshotKeys(ctx context.Context, client *s3.Client, msg RebuildMessage) (string, string, error) {
	if msg.TransactionsKey != "" && msg.FlowsKey != "" {
		return msg.TransactionsKey, msg.FlowsKey, nil
	}
	if msg.SnapshotPrefix == "" {
		return "", "", errors.New("rebuild message needs explicit source keys or a snapshot prefix")
	}

	keys, err := storage.ListSnapshots(ctx, client, msg.SnapshotPrefix)
	if err != nil {
		return "", "", err
	}
	txKey := latestMatching(keys, "transaction")
	flowKey := latestMatching(keys, "flow")
	if txKey == "" || flowKey == "" {
		return "", "", fmt.Errorf("snapshot prefix %s is missing transactions or flows", msg.SnapshotPrefix)
	}
	return txKey, flowKey, nil
}

// latestMatching picks the lexically greatest key containing the marker.
// Snapshot folders are date-stamped, so lexical order is chronological.
func latestMatching(keys []string, marker string) string {
	best := ""
	for _, key := range keys {
		if !strings.Contains(strings.ToLower(key), marker) {
			continue
		}
		if key > best {
			best = key
		}
	}
	return best
}

func uploadArtifact(ctx context.Context, client *s3.Client, buildID string, table *eeio.Table) (string, error) {
	raw, err := table.MarshalArtifact()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("artifacts/%s.json", buildID)
	return util.RetryWithContext(ctx, downloadRetries, func(ctx context.Context) (string, error) {
		return storage.PutArtifact(ctx, client, key, raw)
	})
}
