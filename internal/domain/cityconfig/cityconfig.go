// Package cityconfig holds the per-city currency and bucket boundary tables
// used to compute derived venue fields. The table is loaded once at startup,
// validated, and never mutated afterwards, so it is shared across requests
// without synchronization.
package cityconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/citynights/server/internal/domain/buckets"
)

// ErrConfigNotFound marks a (country, city) pair with no configuration. For a
// persisted venue that declares a location this is a data-integrity failure:
// callers must propagate it, never default the derived fields to blanks.
var ErrConfigNotFound = errors.New("city config not found")

type CityConfig struct {
	Country           string    `yaml:"country" json:"country"`
	City              string    `yaml:"city" json:"city"`
	Currency          string    `yaml:"currency" json:"currency"`
	CokePriceBounds   []float64 `yaml:"cokePriceBounds" json:"cokePriceBounds"`
	BeerPriceBounds   []float64 `yaml:"beerPriceBounds" json:"beerPriceBounds"`
	EntranceFeeBounds []float64 `yaml:"entranceFeeBounds" json:"entranceFeeBounds"`
}

// Table is the process-wide city configuration lookup. CapacityBounds is
// shared across cities; everything else is keyed by (country, city).
type Table struct {
	CapacityBounds []float64
	configs        map[string]*CityConfig
}

type tableFile struct {
	CapacityBounds []float64    `yaml:"capacityBounds"`
	Cities         []CityConfig `yaml:"cities"`
}

// LoadFile reads and validates the city configuration from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read city config: %w", err)
	}
	table, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Load parses and validates YAML city configuration data. Boundary lists that
// are not strictly ascending are rejected here so the bucketer never sees one.
func Load(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse city config: %w", err)
	}

	if err := buckets.ValidateAscending(file.CapacityBounds); err != nil {
		return nil, fmt.Errorf("capacityBounds: %w", err)
	}

	table := &Table{
		CapacityBounds: file.CapacityBounds,
		configs:        make(map[string]*CityConfig, len(file.Cities)),
	}

	for i := range file.Cities {
		cfg := file.Cities[i]
		if strings.TrimSpace(cfg.Country) == "" || strings.TrimSpace(cfg.City) == "" {
			return nil, fmt.Errorf("cities[%d]: country and city are required", i)
		}
		if strings.TrimSpace(cfg.Currency) == "" {
			return nil, fmt.Errorf("cities[%d] (%s/%s): currency is required", i, cfg.Country, cfg.City)
		}

		boundLists := []struct {
			name   string
			bounds []float64
		}{
			{"cokePriceBounds", cfg.CokePriceBounds},
			{"beerPriceBounds", cfg.BeerPriceBounds},
			{"entranceFeeBounds", cfg.EntranceFeeBounds},
		}
		for _, list := range boundLists {
			if err := buckets.ValidateAscending(list.bounds); err != nil {
				return nil, fmt.Errorf("%s/%s: %s: %w", cfg.Country, cfg.City, list.name, err)
			}
		}

		key := configKey(cfg.Country, cfg.City)
		if _, exists := table.configs[key]; exists {
			return nil, fmt.Errorf("duplicate city config for %s/%s", cfg.Country, cfg.City)
		}
		table.configs[key] = &cfg
	}

	return table, nil
}

// Resolve looks up the configuration for a (country, city) pair. Lookup is
// case-insensitive; a miss returns ErrConfigNotFound wrapped with the key.
func (t *Table) Resolve(country, city string) (*CityConfig, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrConfigNotFound, country, city)
	}
	cfg, ok := t.configs[configKey(country, city)]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrConfigNotFound, country, city)
	}
	return cfg, nil
}

// Cities returns the number of configured cities.
func (t *Table) Cities() int {
	if t == nil {
		return 0
	}
	return len(t.configs)
}

func configKey(country, city string) string {
	return strings.ToUpper(strings.TrimSpace(country)) + "/" + strings.ToLower(strings.TrimSpace(city))
}
