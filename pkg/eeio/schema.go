package eeio

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TransactionSchema names the columns of the transactions table. Column names
// are an external contract with the upstream data publisher and drift across
// model versions, so they are configuration, not constants.
type TransactionSchema struct {
	Process string `yaml:"process" validate:"required"`
	Sector  string `yaml:"sector" validate:"required"`
	Name    string `yaml:"name"`
	Amount  string `yaml:"amount" validate:"required"`
}

// FlowSchema names the columns of the environmental flows table.
type FlowSchema struct {
	Process   string `yaml:"process" validate:"required"`
	Substance string `yaml:"substance" validate:"required"`
	Amount    string `yaml:"amount" validate:"required"`
	Unit      string `yaml:"unit" validate:"required"`
}

// SchemaConfig is the full source schema for one snapshot version.
type SchemaConfig struct {
	Transactions TransactionSchema `yaml:"transactions" validate:"required"`
	Flows        FlowSchema        `yaml:"flows" validate:"required"`

	// RegionSuffix is stripped from producing-sector identifiers to get a
	// bare sector code, e.g. "/US".
	RegionSuffix string `yaml:"region_suffix"`
}

// DefaultSchemaConfig returns the column layout of the DIO v2.0 source CSVs.
func DefaultSchemaConfig() SchemaConfig {
	return SchemaConfig{
		Transactions: TransactionSchema{
			Process: "ProcessID",
			Sector:  "FlowID",
			Name:    "Flow",
			Amount:  "Amount",
		},
		Flows: FlowSchema{
			Process:   "ProcessID",
			Substance: "Flowable",
			Amount:    "Amount",
			Unit:      "Unit",
		},
		RegionSuffix: "/US",
	}
}

// LoadSchemaConfig reads and validates a schema config from a YAML file.
func LoadSchemaConfig(path string) (SchemaConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SchemaConfig{}, fmt.Errorf("failed to read schema config: %w", err)
	}
	return ParseSchemaConfig(raw)
}

// ParseSchemaConfig parses and validates schema config YAML.
func ParseSchemaConfig(raw []byte) (SchemaConfig, error) {
	cfg := DefaultSchemaConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return SchemaConfig{}, fmt.Errorf("failed to parse schema config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return SchemaConfig{}, fmt.Errorf("invalid schema config: %w", err)
	}
	return cfg, nil
}
