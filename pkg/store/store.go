// Package store defines the persistence contract for published multiplier
// tables. One model build produces one immutable table; publishing flips the
// current pointer atomically so readers never observe a half-written build.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/open-dio/opendio/pkg/eeio"
)

// ErrNoCurrentBuild is returned when no build has been published yet.
var ErrNoCurrentBuild = errors.New("no current model build published")

// BuildRecord is the bookkeeping row for one model build.
type BuildRecord struct {
	ID           int64     `json:"id"`
	BuildID      string    `json:"build_id"`
	ModelVersion string    `json:"model_version"`
	IOYear       int       `json:"io_year"`
	Strategy     string    `json:"strategy"`
	Degraded     bool      `json:"degraded"`
	DurationMS   int64     `json:"duration_ms"`
	IsCurrent    bool      `json:"is_current"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableStore persists multiplier tables and tracks which build is current.
type TableStore interface {
	// PublishTable stores a complete table and marks its build current in a
	// single transaction. A failed build must never reach this call.
	PublishTable(ctx context.Context, rec BuildRecord, table *eeio.Table) error

	// CurrentTable loads the currently published table.
	CurrentTable(ctx context.Context) (*eeio.Table, BuildRecord, error)

	// ListBuilds returns recent builds, newest first.
	ListBuilds(ctx context.Context, limit int) ([]BuildRecord, error)

	// PruneBuilds deletes old non-current builds, keeping the newest `keep`.
	PruneBuilds(ctx context.Context, keep int) (int64, error)
}

// ChunkRange walks [0, total) in chunks, calling fn with each half-open
// [start, end) range. Used to keep bulk inserts under parameter limits.
func ChunkRange(total, chunkSize int, fn func(start, end int) error) error {
	if total <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = total
	}
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		if err := fn(start, end); err != nil {
			return err
		}
	}
	return nil
}
