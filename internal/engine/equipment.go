package engine

import (
	_ "embed"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// CSV column indices for the equipment table.
const (
	colCategory         = 0 // category
	colSource           = 1 // source (empty for grid equipment)
	colUnitsPerMW       = 2 // units_per_mw
	colUnit             = 3 // unit
	colGlobalProduction = 4 // global_annual_production
)

//go:embed data/equipment.csv
var equipmentCSV string

// logger receives warnings about malformed embedded data. Silent by default.
var logger = zerolog.Nop()

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// EquipmentCategory describes one kind of physical infrastructure.
type EquipmentCategory struct {
	// Name is the category identifier (e.g. "transformers").
	Name string `yaml:"name" json:"name"`

	// Source ties the category to one energy source. Empty means the
	// category serves all power regardless of generation source.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	// UnitsPerMW is units required per MW: firm MW for grid equipment,
	// nameplate MW for source equipment.
	UnitsPerMW float64 `yaml:"units_per_mw" json:"units_per_mw"`

	// Unit labels the counted quantity (units, modules, MWh).
	Unit string `yaml:"unit" json:"unit"`

	// GlobalAnnualProduction is world manufacturing output per year, in Unit.
	GlobalAnnualProduction float64 `yaml:"global_annual_production" json:"global_annual_production"`
}

var (
	equipmentCategories     []EquipmentCategory
	equipmentCategoriesOnce sync.Once
)

// parseEquipment fills equipmentCategories from the embedded CSV, keeping
// file order.
func parseEquipment() {
	reader := csv.NewReader(strings.NewReader(equipmentCSV))

	// Skip header row
	if _, err := reader.Read(); err != nil {
		logger.Error().Err(err).Msg("failed to read equipment CSV header")
		return
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Msg("skipping malformed equipment CSV row")
			continue
		}

		if len(record) <= colGlobalProduction {
			continue
		}

		name := strings.TrimSpace(record[colCategory])
		if name == "" {
			continue
		}

		perMW, err := strconv.ParseFloat(strings.TrimSpace(record[colUnitsPerMW]), 64)
		if err != nil || perMW < 0 {
			logger.Warn().Str("category", name).Msg("skipping equipment row with invalid units_per_mw")
			continue
		}

		production, err := strconv.ParseFloat(strings.TrimSpace(record[colGlobalProduction]), 64)
		if err != nil || production <= 0 {
			logger.Warn().Str("category", name).Msg("skipping equipment row with invalid global_annual_production")
			continue
		}

		equipmentCategories = append(equipmentCategories, EquipmentCategory{
			Name:                   name,
			Source:                 strings.TrimSpace(record[colSource]),
			UnitsPerMW:             perMW,
			Unit:                   strings.TrimSpace(record[colUnit]),
			GlobalAnnualProduction: production,
		})
	}
}

// DefaultEquipment returns a copy of the embedded equipment table.
func DefaultEquipment() []EquipmentCategory {
	equipmentCategoriesOnce.Do(parseEquipment)
	out := make([]EquipmentCategory, len(equipmentCategories))
	copy(out, equipmentCategories)
	return out
}
