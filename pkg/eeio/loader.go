package eeio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/open-dio/opendio/pkg/logger"
)

// ErrEmptyTable is returned when a source table has no data rows at all.
// A missing or empty source file is fatal for the build; it must never
// produce a partially-built table.
var ErrEmptyTable = errors.New("source table contains no data rows")

// LoadStats reports how a table load went. Skipped counts malformed rows
// that were dropped; the load itself continues.
type LoadStats struct {
	Rows    int
	Skipped int
}

// LoadTransactions parses the transactions table into TransactionRecords.
// Producing-sector identifiers are stripped of the region suffix and sector
// display names are cleaned of embedded codes and region tags. Rows with
// unparseable amounts or missing identifiers are skipped and counted.
func LoadTransactions(r io.Reader, cfg SchemaConfig) ([]TransactionRecord, LoadStats, error) {
	schema := cfg.Transactions
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read transactions header: %w", err)
	}
	cols, err := columnIndexes(header, schema.Process, schema.Sector, schema.Amount)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("transactions table: %w", err)
	}
	nameCol := -1
	if schema.Name != "" {
		if i, ok := findColumn(header, schema.Name); ok {
			nameCol = i
		}
	}

	var records []TransactionRecord
	var stats LoadStats
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Rows++
			stats.Skipped++
			continue
		}
		stats.Rows++

		process := fieldAt(row, cols[0])
		sector := fieldAt(row, cols[1])
		rawAmount := fieldAt(row, cols[2])
		if process == "" || sector == "" {
			stats.Skipped++
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
		if err != nil {
			stats.Skipped++
			continue
		}

		name := ""
		if nameCol >= 0 {
			name = cleanSectorName(fieldAt(row, nameCol))
		}

		records = append(records, TransactionRecord{
			ProcessID:  stripRegion(process, cfg.RegionSuffix),
			SectorCode: stripRegion(sector, cfg.RegionSuffix),
			SectorName: name,
			Amount:     amount,
		})
	}

	if len(records) == 0 {
		return nil, stats, ErrEmptyTable
	}
	if stats.Skipped > 0 {
		logger.Warn("[Load] Skipped malformed transaction rows", "skipped", stats.Skipped, "total", stats.Rows)
	}
	return records, stats, nil
}

// LoadFlows parses the environmental flows table into FlowRecords. Process
// identifiers get the same region-suffix stripping as the transactions side;
// both tables must present identical keys to the process resolver or the
// flows cannot be attributed to sectors. Skipped counts malformed rows only;
// flowables outside the model's substances are dropped without counting
// because they are simply outside the tracked categories.
func LoadFlows(r io.Reader, cfg SchemaConfig) ([]FlowRecord, LoadStats, error) {
	schema := cfg.Flows
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read flows header: %w", err)
	}
	cols, err := columnIndexes(header, schema.Process, schema.Substance, schema.Amount)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("flows table: %w", err)
	}
	unitCol, ok := findColumn(header, schema.Unit)
	if !ok {
		return nil, LoadStats{}, fmt.Errorf("flows table: missing column %q", schema.Unit)
	}

	var records []FlowRecord
	var stats LoadStats
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Rows++
			stats.Skipped++
			continue
		}
		stats.Rows++

		process := fieldAt(row, cols[0])
		flowable := fieldAt(row, cols[1])
		rawAmount := fieldAt(row, cols[2])
		unit := fieldAt(row, unitCol)
		if process == "" || flowable == "" {
			stats.Skipped++
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
		if err != nil {
			stats.Skipped++
			continue
		}

		substance, ok := canonicalSubstance(flowable)
		if !ok {
			continue
		}

		records = append(records, FlowRecord{
			ProcessID: stripRegion(process, cfg.RegionSuffix),
			Substance: substance,
			Amount:    amount,
			Unit:      unit,
		})
	}

	if len(records) == 0 {
		return nil, stats, ErrEmptyTable
	}
	if stats.Skipped > 0 {
		logger.Warn("[Load] Skipped malformed flow rows", "skipped", stats.Skipped, "total", stats.Rows)
	}
	return records, stats, nil
}

// stripRegion removes a trailing region tag ("336411/US" -> "336411").
func stripRegion(id, suffix string) string {
	if suffix == "" {
		return id
	}
	return strings.TrimSuffix(id, suffix)
}

// cleanSectorName strips the embedded sector code and region tag from a
// display name, e.g. "Aircraft manufacturing (336411) - US" -> "Aircraft
// manufacturing".
func cleanSectorName(name string) string {
	if i := strings.Index(name, "("); i >= 0 && strings.Contains(name[i:], ")") {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, " - US", "")
	return strings.TrimSpace(name)
}

func columnIndexes(header []string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		col, ok := findColumn(header, name)
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = col
	}
	return idx, nil
}

func findColumn(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return 0, false
}

func fieldAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
