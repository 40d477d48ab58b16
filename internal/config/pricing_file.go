package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"linkme/internal/pricing"
)

// LoadPricingConfig overlays the margin tunables found in a YAML file on top of
// pricing.DefaultConfig. An empty path returns the defaults.
//
//	default_buffer_rate: 0.05
//	min_margin: 0
//	green_zone_share: 0.6
//	orange_zone_share: 0.85
func LoadPricingConfig(path string) (pricing.Config, error) {
	cfg := pricing.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("load pricing config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return pricing.Config{}, fmt.Errorf("parse pricing config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, fmt.Errorf("pricing config %q: %w", path, err)
	}
	return cfg, nil
}
