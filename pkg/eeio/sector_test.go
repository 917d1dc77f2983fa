package eeio

import "testing"

func TestBuildSectorIndex_SortedAndDeterministic(t *testing.T) {
	records := []TransactionRecord{
		{ProcessID: "P1", SectorCode: "336611", SectorName: "Ship building"},
		{ProcessID: "P2", SectorCode: "111110", SectorName: "Oilseed farming"},
		{ProcessID: "P3", SectorCode: "336411", SectorName: "Aircraft manufacturing"},
		{ProcessID: "P4", SectorCode: "111110", SectorName: "Oilseed farming"},
	}

	idx := BuildSectorIndex(records)
	if idx.Len() != 3 {
		t.Fatalf("expected 3 sectors, got %d", idx.Len())
	}
	want := []string{"111110", "336411", "336611"}
	for i, code := range want {
		if idx.Code(i) != code {
			t.Fatalf("expected code %q at index %d, got %q", code, i, idx.Code(i))
		}
		j, ok := idx.Index(code)
		if !ok || j != i {
			t.Fatalf("round trip failed for %q: got %d, %v", code, j, ok)
		}
	}

	// Rebuilding from a permuted copy must yield the same layout.
	permuted := []TransactionRecord{records[2], records[0], records[3], records[1]}
	again := BuildSectorIndex(permuted)
	for i := 0; i < idx.Len(); i++ {
		if idx.Code(i) != again.Code(i) {
			t.Fatalf("index layout differs between builds at %d: %q vs %q", i, idx.Code(i), again.Code(i))
		}
	}
}

func TestBuildSectorIndex_FirstNameWins(t *testing.T) {
	records := []TransactionRecord{
		{ProcessID: "P1", SectorCode: "336411", SectorName: "Aircraft manufacturing"},
		{ProcessID: "P2", SectorCode: "336411", SectorName: "Aerospace products"},
		{ProcessID: "P3", SectorCode: "336611", SectorName: ""},
	}

	idx := BuildSectorIndex(records)
	if name := idx.Name("336411"); name != "Aircraft manufacturing" {
		t.Fatalf("expected first observed name kept, got %q", name)
	}
	if name := idx.Name("336611"); name != "" {
		t.Fatalf("expected empty name for unnamed sector, got %q", name)
	}
}

func TestProcessResolver_FirstObservationWins(t *testing.T) {
	records := []TransactionRecord{
		{ProcessID: "P1", SectorCode: "336411"},
		{ProcessID: "P1", SectorCode: "336611"},
		{ProcessID: "P2", SectorCode: "111110"},
	}

	resolver := NewProcessResolver(records)
	code, ok := resolver.Resolve("P1")
	if !ok || code != "336411" {
		t.Fatalf("expected P1 -> 336411, got %q, %v", code, ok)
	}
	if _, ok := resolver.Resolve("P9"); ok {
		t.Fatal("expected unknown process to not resolve")
	}
}
