package pgx

import (
	"strings"
	"testing"

	"github.com/open-dio/opendio/pkg/eeio"
)

func TestSectorRows_SortedByCode(t *testing.T) {
	table := &eeio.Table{Sectors: map[string]eeio.SectorMultipliers{
		"336611": {Name: "Ship building"},
		"111110": {Name: "Oilseed farming"},
		"336411": {Name: "Aircraft manufacturing"},
	}}

	rows := sectorRows(table)
	want := []string{"111110", "336411", "336611"}
	for i, code := range want {
		if rows[i].Code != code {
			t.Fatalf("expected %q at position %d, got %q", code, i, rows[i].Code)
		}
	}
}

func TestBuildSectorInsert(t *testing.T) {
	rows := []sectorRow{
		{Code: "111110", SectorMultipliers: eeio.SectorMultipliers{Name: "Oilseed farming", GHG: 1428.57}},
		{Code: "336411", SectorMultipliers: eeio.SectorMultipliers{Name: "Aircraft manufacturing", GHG: 2142.86, DefenseRelevant: true}},
	}

	query, args := buildSectorInsert("bld_1", rows)
	if len(args) != 16 {
		t.Fatalf("expected 16 args for 2 rows, got %d", len(args))
	}
	if !strings.Contains(query, "($1, $2, $3, $4, $5, $6, $7, $8)") {
		t.Fatalf("missing first placeholder group: %s", query)
	}
	if !strings.Contains(query, "($9, $10, $11, $12, $13, $14, $15, $16)") {
		t.Fatalf("missing second placeholder group: %s", query)
	}
	if args[0] != "bld_1" || args[1] != "111110" || args[8] != "bld_1" || args[9] != "336411" {
		t.Fatalf("unexpected arg layout: %v", args)
	}
	if args[15] != true {
		t.Fatalf("expected defense flag in last position, got %v", args[15])
	}
}
