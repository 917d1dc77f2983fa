package eeio

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
)

const buildTransactionsCSV = `ProcessID,FlowID,Flow,Amount
P1,111110/US,Oilseed farming - US,0
P2,336411/US,Aircraft manufacturing (336411) - US,0
P1,336411/US,Aircraft manufacturing (336411) - US,0.1
P2,111110/US,Oilseed farming - US,0.2
`

const buildFlowsCSV = `ProcessID,Flowable,Amount,Unit
P1,Carbon dioxide,1,kg
P2,Carbon dioxide,2,kg
P1,"Water, fresh",1,m3
`

func TestBuild_EndToEnd(t *testing.T) {
	table, err := Build(context.Background(), BuildParams{
		Transactions: strings.NewReader(buildTransactionsCSV),
		Flows:        strings.NewReader(buildFlowsCSV),
		Schema:       DefaultSchemaConfig(),
		ModelVersion: "2.0",
		IOYear:       2017,
	})
	if err != nil {
		t.Fatalf("expected successful build, got %v", err)
	}
	if len(table.Sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(table.Sectors))
	}
	if table.Meta.Degraded {
		t.Fatal("expected clean build")
	}
	if table.Meta.ModelVersion != "2.0" || table.Meta.IOYear != 2017 {
		t.Fatalf("unexpected metadata %+v", table.Meta)
	}

	farming := table.Sectors["111110"]
	if farming.Name != "Oilseed farming" {
		t.Fatalf("expected cleaned sector name, got %q", farming.Name)
	}
	if math.Abs(farming.GHG-1428.5714285714287) > 1e-6 {
		t.Fatalf("farming GHG = %v, want 1428.571...", farming.GHG)
	}
	aircraft := table.Sectors["336411"]
	if math.Abs(aircraft.GHG-2142.857142857143) > 1e-6 {
		t.Fatalf("aircraft GHG = %v, want 2142.857...", aircraft.GHG)
	}

	// 1 m3 of P1 water reaches farming directly and aircraft through the
	// supply chain.
	directGal := GallonsPerCubicMeter
	if math.Abs(farming.Water-directGal*1.0204081632653061*1000) > 1e-3 {
		t.Fatalf("farming water = %v", farming.Water)
	}
	if farming.Water <= aircraft.Water {
		t.Fatal("expected direct water use to dominate the supply-chain share")
	}
}

// Real snapshots carry region-tagged process ids in both tables. Both loaders
// must normalize them identically; if only one side strips the tag the
// resolver drops every flow process and the GHG/Water multipliers collapse
// to zero.
func TestBuild_RegionTaggedProcessIDs(t *testing.T) {
	transactions := `ProcessID,FlowID,Flow,Amount
P1/US,111110/US,Oilseed farming - US,0
P2/US,336411/US,Aircraft manufacturing (336411) - US,0
P1/US,336411/US,Aircraft manufacturing (336411) - US,0.1
P2/US,111110/US,Oilseed farming - US,0.2
`
	flows := `ProcessID,Flowable,Amount,Unit
P1/US,Carbon dioxide,1,kg
P2/US,Carbon dioxide,2,kg
P1/US,"Water, fresh",1,m3
P9/US,Carbon dioxide,5,kg
P2/US,"Water, fresh",1,L
`

	table, err := Build(context.Background(), BuildParams{
		Transactions: strings.NewReader(transactions),
		Flows:        strings.NewReader(flows),
		Schema:       DefaultSchemaConfig(),
	})
	if err != nil {
		t.Fatalf("expected successful build, got %v", err)
	}

	// Same multipliers as the untagged fixture: the tags must be invisible
	// to the pipeline.
	farming := table.Sectors["111110"]
	aircraft := table.Sectors["336411"]
	if math.Abs(farming.GHG-1428.5714285714287) > 1e-6 {
		t.Fatalf("farming GHG = %v, want 1428.571...", farming.GHG)
	}
	if math.Abs(aircraft.GHG-2142.857142857143) > 1e-6 {
		t.Fatalf("aircraft GHG = %v, want 2142.857...", aircraft.GHG)
	}
	if farming.Water == 0 || aircraft.Water == 0 {
		t.Fatalf("expected nonzero water multipliers, got %v / %v", farming.Water, aircraft.Water)
	}

	// P9 never appears in the transactions table; the litre row has no
	// conversion. Both losses surface in the published metadata.
	if table.Meta.SkippedFlowProcesses != 1 {
		t.Fatalf("expected 1 unattributed flow process, got %d", table.Meta.SkippedFlowProcesses)
	}
	if table.Meta.SkippedFlowUnits != 1 {
		t.Fatalf("expected 1 unconvertible water unit, got %d", table.Meta.SkippedFlowUnits)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	build := func() *Table {
		table, err := Build(context.Background(), BuildParams{
			Transactions: strings.NewReader(buildTransactionsCSV),
			Flows:        strings.NewReader(buildFlowsCSV),
			Schema:       DefaultSchemaConfig(),
		})
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		return table
	}

	first := build()
	second := build()
	if !reflect.DeepEqual(first.Sectors, second.Sectors) {
		t.Fatal("expected identical sector multipliers across rebuilds")
	}
}

func TestBuild_EmptySourceFails(t *testing.T) {
	_, err := Build(context.Background(), BuildParams{
		Transactions: strings.NewReader(buildTransactionsCSV),
		Flows:        strings.NewReader("ProcessID,Flowable,Amount,Unit\n"),
		Schema:       DefaultSchemaConfig(),
	})
	if err == nil {
		t.Fatal("expected empty flows table to fail the build")
	}
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, BuildParams{
		Transactions: strings.NewReader(buildTransactionsCSV),
		Flows:        strings.NewReader(buildFlowsCSV),
		Schema:       DefaultSchemaConfig(),
	})
	if err == nil {
		t.Fatal("expected cancelled context to abort the build")
	}
}
