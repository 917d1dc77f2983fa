package pgx

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/open-dio/opendio/pkg/eeio"
	"github.com/open-dio/opendio/pkg/store"
)

const sectorInsertChunkSize = 500

// PublishTable stores a table and flips the current pointer in one
// transaction. On any error the transaction rolls back and the previously
// published build stays current.
func (s *MultiplierStore) PublishTable(ctx context.Context, rec store.BuildRecord, table *eeio.Table) error {
	meta, err := json.Marshal(table.Meta)
	if err != nil {
		return fmt.Errorf("failed to marshal build metadata: %w", err)
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin publish transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, insertBuildSQL,
		rec.BuildID,
		rec.ModelVersion,
		rec.IOYear,
		table.Meta.Strategy,
		table.Meta.Degraded,
		rec.DurationMS,
		meta,
	); err != nil {
		return fmt.Errorf("failed to insert model build: %w", err)
	}

	rows := sectorRows(table)
	if err := store.ChunkRange(len(rows), sectorInsertChunkSize, func(start, end int) error {
		query, args := buildSectorInsert(rec.BuildID, rows[start:end])
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert sector multipliers: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, demoteCurrentSQL, rec.BuildID); err != nil {
		return fmt.Errorf("failed to demote previous build: %w", err)
	}
	if _, err := tx.Exec(ctx, promoteBuildSQL, rec.BuildID); err != nil {
		return fmt.Errorf("failed to promote build: %w", err)
	}

	return tx.Commit(ctx)
}

type sectorRow struct {
	Code string
	eeio.SectorMultipliers
}

// sectorRows flattens the table into insert order. Sorted by code so inserts
// are deterministic and deadlock-free across concurrent publishers.
func sectorRows(table *eeio.Table) []sectorRow {
	rows := make([]sectorRow, 0, len(table.Sectors))
	for code, mult := range table.Sectors {
		rows = append(rows, sectorRow{Code: code, SectorMultipliers: mult})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows
}

// buildSectorInsert assembles a multi-row insert for one chunk of sectors.
func buildSectorInsert(buildID string, rows []sectorRow) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO sector_multipliers
(build_id, sector_code, name, ghg, energy, water, land, is_defense_relevant)
VALUES `)

	args := make([]any, 0, len(rows)*8)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 8
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
		args = append(args,
			buildID, row.Code, row.Name,
			row.GHG, row.Energy, row.Water, row.Land,
			row.DefenseRelevant,
		)
	}
	return sb.String(), args
}

const insertBuildSQL = `
INSERT INTO model_builds (build_id, model_version, io_year, strategy, degraded, duration_ms, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`

const demoteCurrentSQL = `
UPDATE model_builds SET is_current = false
WHERE is_current AND build_id <> $1;
`

const promoteBuildSQL = `
UPDATE model_builds SET is_current = true
WHERE build_id = $1;
`
