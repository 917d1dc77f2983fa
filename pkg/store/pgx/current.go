package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"

	"github.com/open-dio/opendio/pkg/eeio"
	"github.com/open-dio/opendio/pkg/store"
)

// CurrentTable reconstructs the currently published table from its build
// metadata and sector rows.
func (s *MultiplierStore) CurrentTable(ctx context.Context) (*eeio.Table, store.BuildRecord, error) {
	var rec store.BuildRecord
	var rawMeta []byte
	err := s.conn.QueryRow(ctx, currentBuildSQL).Scan(
		&rec.ID, &rec.BuildID, &rec.ModelVersion, &rec.IOYear,
		&rec.Strategy, &rec.Degraded, &rec.DurationMS, &rec.IsCurrent,
		&rec.CreatedAt, &rawMeta,
	)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, store.BuildRecord{}, store.ErrNoCurrentBuild
		}
		return nil, store.BuildRecord{}, fmt.Errorf("failed to load current build: %w", err)
	}

	var meta eeio.Metadata
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return nil, store.BuildRecord{}, fmt.Errorf("failed to parse build metadata: %w", err)
	}

	rows, err := s.conn.Query(ctx, sectorsForBuildSQL, rec.BuildID)
	if err != nil {
		return nil, store.BuildRecord{}, fmt.Errorf("failed to load sector multipliers: %w", err)
	}
	defer rows.Close()

	sectors := make(map[string]eeio.SectorMultipliers)
	for rows.Next() {
		var code string
		var mult eeio.SectorMultipliers
		if err := rows.Scan(&code, &mult.Name, &mult.GHG, &mult.Energy,
			&mult.Water, &mult.Land, &mult.DefenseRelevant); err != nil {
			return nil, store.BuildRecord{}, fmt.Errorf("failed to scan sector multiplier: %w", err)
		}
		sectors[code] = mult
	}
	if err := rows.Err(); err != nil {
		return nil, store.BuildRecord{}, fmt.Errorf("failed to read sector multipliers: %w", err)
	}
	if len(sectors) == 0 {
		return nil, store.BuildRecord{}, fmt.Errorf("current build %s has no sector rows", rec.BuildID)
	}

	return &eeio.Table{Sectors: sectors, Meta: meta}, rec, nil
}

// ListBuilds returns recent builds, newest first.
func (s *MultiplierStore) ListBuilds(ctx context.Context, limit int) ([]store.BuildRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.conn.Query(ctx, listBuildsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	var builds []store.BuildRecord
	for rows.Next() {
		var rec store.BuildRecord
		if err := rows.Scan(&rec.ID, &rec.BuildID, &rec.ModelVersion, &rec.IOYear,
			&rec.Strategy, &rec.Degraded, &rec.DurationMS, &rec.IsCurrent,
			&rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, rec)
	}
	return builds, rows.Err()
}

// PruneBuilds deletes old non-current builds past the newest `keep`. Sector
// rows go with them via the foreign key cascade.
func (s *MultiplierStore) PruneBuilds(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	tag, err := s.conn.Exec(ctx, pruneBuildsSQL, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune builds: %w", err)
	}
	return tag.RowsAffected(), nil
}

const currentBuildSQL = `
SELECT id, build_id, model_version, io_year, strategy, degraded, duration_ms, is_current, created_at, metadata
FROM model_builds
WHERE is_current;
`

const sectorsForBuildSQL = `
SELECT sector_code, name, ghg, energy, water, land, is_defense_relevant
FROM sector_multipliers
WHERE build_id = $1;
`

const listBuildsSQL = `
SELECT id, build_id, model_version, io_year, strategy, degraded, duration_ms, is_current, created_at
FROM model_builds
ORDER BY created_at DESC
LIMIT $1;
`

const pruneBuildsSQL = `
DELETE FROM model_builds
WHERE NOT is_current
  AND id NOT IN (
    SELECT id FROM model_builds ORDER BY created_at DESC LIMIT $1
  );
`
