package eeio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/open-dio/opendio/pkg/logger"
)

// BuildParams carries the inputs of one model build.
type BuildParams struct {
	Transactions io.Reader
	Flows        io.Reader
	Schema       SchemaConfig

	// Strategy for the Energy and Land tracks; defaults to IntensityBanded.
	Strategy EnergyLandStrategy

	ModelVersion string
	IOYear       int
}

// Build runs the full pipeline: load both tables, derive the sector index
// and process resolver, assemble A, invert to L, aggregate flows into B and
// compute the multiplier table. It is a synchronous batch computation; the
// context is checked between stages so a long build can be cancelled. On any
// error no table is returned, so a previously published table is never
// replaced by a partial one.
func Build(ctx context.Context, p BuildParams) (*Table, error) {
	started := time.Now()

	transactions, txStats, err := LoadTransactions(p.Transactions, p.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	flows, flowStats, err := LoadFlows(p.Flows, p.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to load flows: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := BuildSectorIndex(transactions)
	resolver := NewProcessResolver(transactions)
	logger.Info("[Build] Sector index built", "sectors", idx.Len())

	requirements := BuildDirectRequirements(transactions, idx, resolver)
	logger.Info("[Build] Direct requirements matrix assembled",
		"density", requirements.Density, "max_coefficient", requirements.MaxCoefficient)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	leontief, err := InvertLeontief(requirements.A)
	if err != nil {
		return nil, fmt.Errorf("failed to invert (I - A): %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aggregated := AggregateFlows(flows)
	flowMatrix := BuildFlowMatrix(aggregated, idx, resolver)
	logger.Info("[Build] Environmental flow matrix assembled",
		"processes", flowMatrix.AttributedProcesses, "skipped", flowMatrix.SkippedProcesses)

	table := CalculateMultipliers(CalculateParams{
		Index:    idx,
		B:        flowMatrix.B,
		Leontief: leontief,
		Strategy: p.Strategy,
		Meta: Metadata{
			Description:     "Environmental impact multipliers including direct and supply chain effects",
			Methodology:     "Environmentally-Extended Input-Output Analysis, M = B * (I - A)^-1",
			DataSources:     "EPA GHG Inventory, USGS Water Use, EIA MECS/CBECS, BEA I-O Tables",
			ModelVersion:    p.ModelVersion,
			IOYear:          p.IOYear,
			CalculationDate: time.Now().UTC(),

			SkippedTransactionRows: txStats.Skipped + requirements.SkippedRows,
			SkippedFlowRows:        flowStats.Skipped,
			SkippedFlowProcesses:   flowMatrix.SkippedProcesses,
			SkippedFlowUnits:       aggregated.SkippedUnits,
			SkippedDollars:         requirements.SkippedDollars,
		},
	})

	logger.Info("[Build] Multiplier table calculated",
		"sectors", len(table.Sectors),
		"degraded", table.Meta.Degraded,
		"duration", time.Since(started))
	return table, nil
}
