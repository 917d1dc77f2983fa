package eeio

import (
	"sort"

	"github.com/open-dio/opendio/pkg/logger"
)

// SectorIndex is the shared coordinate system for the A, B, L and M matrices:
// a bijection between sector codes and dense matrix indices. Codes are sorted
// before assignment so the same snapshot always produces the same index
// layout. Immutable after construction.
type SectorIndex struct {
	codes []string
	index map[string]int
	names map[string]string
}

// BuildSectorIndex derives the canonical sector set from the producing side
// of all transactions. The first non-empty display name seen for a code
// wins; later conflicting names are dropped and logged.
func BuildSectorIndex(records []TransactionRecord) *SectorIndex {
	names := make(map[string]string)
	seen := make(map[string]bool)
	for _, rec := range records {
		seen[rec.SectorCode] = true
		if rec.SectorName == "" {
			continue
		}
		existing, ok := names[rec.SectorCode]
		if !ok {
			names[rec.SectorCode] = rec.SectorName
			continue
		}
		if existing != rec.SectorName {
			logger.Debug("[Index] Conflicting sector name dropped",
				"code", rec.SectorCode, "kept", existing, "dropped", rec.SectorName)
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	index := make(map[string]int, len(codes))
	for i, code := range codes {
		index[code] = i
	}

	return &SectorIndex{codes: codes, index: index, names: names}
}

// Len returns the number of sectors N.
func (s *SectorIndex) Len() int {
	return len(s.codes)
}

// Index returns the dense matrix index for a sector code.
func (s *SectorIndex) Index(code string) (int, bool) {
	i, ok := s.index[code]
	return i, ok
}

// Code returns the sector code at a dense index.
func (s *SectorIndex) Code(i int) string {
	return s.codes[i]
}

// Codes returns all sector codes in index order. The caller must not modify
// the returned slice.
func (s *SectorIndex) Codes() []string {
	return s.codes
}

// Name returns the display name retained for a sector code, or "" when the
// source never named it.
func (s *SectorIndex) Name(code string) string {
	return s.names[code]
}

// ProcessResolver maps process identifiers to the sector they produce. The
// source data conflates process and sector identifiers, so the rule here is
// the simplest defensible one: a process maps to the sector it is first
// observed producing. This is a documented approximation; a real crosswalk
// supplied by the data publisher would replace it.
//
// The same resolver instance must be used for both the A matrix and the flow
// aggregation, otherwise the two would not align on sector indices and
// B * L would be meaningless.
type ProcessResolver struct {
	toSector map[string]string
}

// NewProcessResolver builds the process-to-sector table from transaction
// records, in input order (first observation wins).
func NewProcessResolver(records []TransactionRecord) *ProcessResolver {
	toSector := make(map[string]string)
	for _, rec := range records {
		if _, ok := toSector[rec.ProcessID]; !ok {
			toSector[rec.ProcessID] = rec.SectorCode
		}
	}
	return &ProcessResolver{toSector: toSector}
}

// Resolve returns the sector a process produces for.
func (r *ProcessResolver) Resolve(processID string) (string, bool) {
	code, ok := r.toSector[processID]
	return code, ok
}
