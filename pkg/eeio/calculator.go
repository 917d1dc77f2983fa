package eeio

import (
	"errors"
	"sync/atomic"
)

// ErrNoTable is returned by Calculate before any table has been installed.
var ErrNoTable = errors.New("calculator has no multiplier table")

// Calculator is the read side of the model: it holds the current multiplier
// table and answers spending calculations against it. Construct it once at
// startup from a table; concurrent readers are safe because tables are
// immutable and a reload swaps the pointer atomically, never edits in place.
type Calculator struct {
	table atomic.Pointer[Table]
}

// NewCalculator creates a calculator serving the given table. A nil table is
// allowed; Calculate returns ErrNoTable until Swap installs one.
func NewCalculator(table *Table) *Calculator {
	c := &Calculator{}
	if table != nil {
		c.table.Store(table)
	}
	return c
}

// Table returns the currently installed table, or nil.
func (c *Calculator) Table() *Table {
	return c.table.Load()
}

// Swap atomically replaces the current table. Readers mid-calculation keep
// the table they started with.
func (c *Calculator) Swap(table *Table) {
	c.table.Store(table)
}

// Calculate applies a spending vector against the current table.
func (c *Calculator) Calculate(spending map[string]float64, categories []ImpactCategory) (Result, error) {
	table := c.table.Load()
	if table == nil {
		return Result{}, ErrNoTable
	}
	return Apply(spending, table, categories), nil
}
