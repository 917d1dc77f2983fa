package queue

import (
	"encoding/json"
	"testing"
)

func TestLatestMatching(t *testing.T) {
	keys := []string{
		"snapshots/2026-07-01/transactions.csv",
		"snapshots/2026-08-01/transactions.csv",
		"snapshots/2026-08-01/flows.csv",
		"snapshots/2026-07-01/flows.csv",
		"snapshots/2026-08-01/readme.txt",
	}

	if got := latestMatching(keys, "transaction"); got != "snapshots/2026-08-01/transactions.csv" {
		t.Fatalf("expected latest transactions key, got %q", got)
	}
	if got := latestMatching(keys, "flow"); got != "snapshots/2026-08-01/flows.csv" {
		t.Fatalf("expected latest flows key, got %q", got)
	}
	if got := latestMatching(keys, "schema"); got != "" {
		t.Fatalf("expected no match, got %q", got)
	}
}

func TestRebuildMessage_RoundTrip(t *testing.T) {
	raw := []byte(`{
		"message": "Scheduled rebuild",
		"correlation_id": "corr-1",
		"snapshot_prefix": "snapshots/",
		"model_version": "2.0",
		"io_year": 2017
	}`)

	var msg RebuildMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if msg.SnapshotPrefix != "snapshots/" || msg.ModelVersion != "2.0" || msg.IOYear != 2017 {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.TransactionsKey != "" {
		t.Fatalf("expected empty explicit key, got %q", msg.TransactionsKey)
	}
}
