package application

import (
	"os"

	"gopkg.in/yaml.v3"

	tariff "building-energy/internal/tariff/domain"
)

// MeterPlan is the per-meter tariff configuration.
type MeterPlan struct {
	VoltageLevel    string  `yaml:"voltage_level"`
	TUOSEnergyAdder float64 `yaml:"tuos_energy_adder"`
	IncludeCGR      *bool   `yaml:"include_cgr"`
	DemandMethod    string  `yaml:"demand_method"`
}

// PlanConfig defines the default tariff plan and per-meter overrides.
type PlanConfig struct {
	Currency string               `yaml:"currency"`
	Default  MeterPlan            `yaml:"default"`
	Meters   map[string]MeterPlan `yaml:"meters"`
}

// LoadPlanConfig loads plan configuration from yaml or falls back to the
// built-in defaults. The path comes from TARIFF_PLAN_CONFIG.
func LoadPlanConfig() (PlanConfig, error) {
	cfg := PlanConfig{
		Currency: "OMR",
		Default: MeterPlan{
			VoltageLevel: string(tariff.Voltage11kV),
			DemandMethod: string(tariff.DemandTop3PeakBands),
		},
	}

	if path := os.Getenv("TARIFF_PLAN_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Currency == "" {
		cfg.Currency = "OMR"
	}
	if cfg.Default.VoltageLevel == "" {
		cfg.Default.VoltageLevel = string(tariff.Voltage11kV)
	}
	return cfg, nil
}

// OptionsForMeter resolves calculation options for a meter, applying the
// per-meter override on top of the default plan.
func (c PlanConfig) OptionsForMeter(meterID string) tariff.CalculationOptions {
	plan := c.Default
	if override, ok := c.Meters[meterID]; ok {
		if override.VoltageLevel != "" {
			plan.VoltageLevel = override.VoltageLevel
		}
		if override.TUOSEnergyAdder != 0 {
			plan.TUOSEnergyAdder = override.TUOSEnergyAdder
		}
		if override.IncludeCGR != nil {
			plan.IncludeCGR = override.IncludeCGR
		}
		if override.DemandMethod != "" {
			plan.DemandMethod = override.DemandMethod
		}
	}

	opts := tariff.DefaultOptions(tariff.VoltageLevel(plan.VoltageLevel))
	opts.TUOSEnergyAdder = plan.TUOSEnergyAdder
	if plan.IncludeCGR != nil {
		opts.IncludeCGR = *plan.IncludeCGR
	}
	if plan.DemandMethod != "" {
		opts.DemandMethod = tariff.DemandMethod(plan.DemandMethod)
	}
	return opts
}
