// Package pricing computes LinkMe affiliate margins, their risk zones and the
// public price ceiling a selection line must respect.
//
// Every rate handled inside the package is a decimal (0.05 = 5%). Percent
// values only exist on Input fields suffixed with Percent and are converted
// once, in normalize.
package pricing

import (
	"errors"
	"fmt"
)

// DefaultBufferRate is the safety margin kept below the public price when the
// caller does not provide one.
const DefaultBufferRate = 0.05

// Config holds the business-tunable constants of the margin calculator.
type Config struct {
	DefaultBufferRate float64 `yaml:"default_buffer_rate" json:"defaultBufferRate"`
	MinMargin         float64 `yaml:"min_margin" json:"minMargin"`
	// Cumulative share of [min, max] covered by the green zone.
	GreenZoneShare float64 `yaml:"green_zone_share" json:"greenZoneShare"`
	// Cumulative share of [min, max] covered by green + orange.
	OrangeZoneShare float64 `yaml:"orange_zone_share" json:"orangeZoneShare"`
}

func DefaultConfig() Config {
	return Config{
		DefaultBufferRate: DefaultBufferRate,
		MinMargin:         0,
		GreenZoneShare:    0.60,
		OrangeZoneShare:   0.85,
	}
}

func (c Config) Validate() error {
	if !isFinite(c.DefaultBufferRate) || c.DefaultBufferRate < 0 || c.DefaultBufferRate >= 1 {
		return fmt.Errorf("default buffer rate must be in [0, 1), got %v", c.DefaultBufferRate)
	}
	if !isFinite(c.MinMargin) || c.MinMargin < 0 || c.MinMargin >= 1 {
		return fmt.Errorf("min margin must be in [0, 1), got %v", c.MinMargin)
	}
	if !isFinite(c.GreenZoneShare) || c.GreenZoneShare <= 0 || c.GreenZoneShare > 1 {
		return fmt.Errorf("green zone share must be in (0, 1], got %v", c.GreenZoneShare)
	}
	if !isFinite(c.OrangeZoneShare) || c.OrangeZoneShare <= 0 || c.OrangeZoneShare > 1 {
		return fmt.Errorf("orange zone share must be in (0, 1], got %v", c.OrangeZoneShare)
	}
	if c.GreenZoneShare >= c.OrangeZoneShare {
		return errors.New("green zone share must be lower than orange zone share")
	}
	return nil
}

// Engine is immutable once built and safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

var defaultEngine = &Engine{cfg: DefaultConfig()}

// Default returns the engine built from DefaultConfig.
func Default() *Engine {
	return defaultEngine
}

func (e *Engine) Config() Config {
	return e.cfg
}

func ComputeMarginZones(in Input) MarginResult {
	return defaultEngine.ComputeMarginZones(in)
}

func ComputePriceBreakdown(in Input, marginRate float64) (PriceBreakdown, error) {
	return defaultEngine.ComputePriceBreakdown(in, marginRate)
}

func ValidatePriceCeiling(in Input, marginRate float64) CeilingCheck {
	return defaultEngine.ValidatePriceCeiling(in, marginRate)
}
