package eeio

import (
	"encoding/json"
	"fmt"
	"time"
)

// artifact is the serialized form of a multiplier table, the contract with
// downstream consumers of the published JSON.
type artifact struct {
	Description     string                    `json:"description"`
	Methodology     string                    `json:"methodology"`
	DataSources     string                    `json:"data_sources"`
	ModelVersion    string                    `json:"model_version"`
	IOYear          int                       `json:"io_year"`
	CalculationDate string                    `json:"calculation_date"`
	Strategy        string                    `json:"energy_land_strategy"`
	Degraded        bool                      `json:"degraded"`
	Units           map[ImpactCategory]string `json:"units"`
	Uncertainty     map[ImpactCategory]string `json:"uncertainty"`

	SkippedTransactionRows int     `json:"skipped_transaction_rows"`
	SkippedFlowRows        int     `json:"skipped_flow_rows"`
	SkippedFlowProcesses   int     `json:"skipped_flow_processes"`
	SkippedFlowUnits       int     `json:"skipped_flow_units"`
	SkippedDollars         float64 `json:"skipped_dollars"`

	Sectors map[string]SectorMultipliers `json:"sectors"`
}

const artifactDateLayout = "2006-01-02"

// MarshalArtifact serializes the table into the published JSON artifact.
func (t *Table) MarshalArtifact() ([]byte, error) {
	units := make(map[ImpactCategory]string, len(Categories))
	for _, cat := range Categories {
		units[cat] = CategoryUnit(cat) + " per $1000 spending"
	}
	out := artifact{
		Description:     t.Meta.Description,
		Methodology:     t.Meta.Methodology,
		DataSources:     t.Meta.DataSources,
		ModelVersion:    t.Meta.ModelVersion,
		IOYear:          t.Meta.IOYear,
		CalculationDate: t.Meta.CalculationDate.Format(artifactDateLayout),
		Strategy:        t.Meta.Strategy,
		Degraded:        t.Meta.Degraded,
		Units:           units,
		Uncertainty:     t.Meta.Uncertainty,

		SkippedTransactionRows: t.Meta.SkippedTransactionRows,
		SkippedFlowRows:        t.Meta.SkippedFlowRows,
		SkippedFlowProcesses:   t.Meta.SkippedFlowProcesses,
		SkippedFlowUnits:       t.Meta.SkippedFlowUnits,
		SkippedDollars:         t.Meta.SkippedDollars,

		Sectors: t.Sectors,
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseArtifact loads a table back from its serialized artifact, e.g. when a
// service boots from the last published snapshot instead of rebuilding.
func ParseArtifact(raw []byte) (*Table, error) {
	var in artifact
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("failed to parse multiplier artifact: %w", err)
	}
	if len(in.Sectors) == 0 {
		return nil, fmt.Errorf("multiplier artifact has no sectors")
	}

	meta := Metadata{
		Description:  in.Description,
		Methodology:  in.Methodology,
		DataSources:  in.DataSources,
		ModelVersion: in.ModelVersion,
		IOYear:       in.IOYear,
		Strategy:     in.Strategy,
		Degraded:     in.Degraded,
		Uncertainty:  in.Uncertainty,

		SkippedTransactionRows: in.SkippedTransactionRows,
		SkippedFlowRows:        in.SkippedFlowRows,
		SkippedFlowProcesses:   in.SkippedFlowProcesses,
		SkippedFlowUnits:       in.SkippedFlowUnits,
		SkippedDollars:         in.SkippedDollars,
	}
	if in.CalculationDate != "" {
		date, err := parseArtifactDate(in.CalculationDate)
		if err != nil {
			return nil, err
		}
		meta.CalculationDate = date
	}

	return &Table{Sectors: in.Sectors, Meta: meta}, nil
}

func parseArtifactDate(s string) (time.Time, error) {
	date, err := time.Parse(artifactDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad calculation_date in artifact: %w", err)
	}
	return date, nil
}
