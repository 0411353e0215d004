package application

import (
	"os"
	"path/filepath"
	"testing"

	tariff "building-energy/internal/tariff/domain"
)

func TestLoadPlanConfig_Defaults(t *testing.T) {
	t.Setenv("TARIFF_PLAN_CONFIG", "")
	cfg, err := LoadPlanConfig()
	if err != nil {
		t.Fatalf("load plan config: %v", err)
	}
	if cfg.Currency != "OMR" {
		t.Fatalf("currency: got %s want OMR", cfg.Currency)
	}

	opts := cfg.OptionsForMeter("any-meter")
	if opts.VoltageLevel != tariff.Voltage11kV {
		t.Fatalf("voltage: got %s want 11kV", opts.VoltageLevel)
	}
	if !opts.IncludeCGR {
		t.Fatalf("cgr should default to included")
	}
	if opts.DemandMethod != tariff.DemandTop3PeakBands {
		t.Fatalf("method: got %s", opts.DemandMethod)
	}
	if opts.TUOSEnergyAdder != 0 {
		t.Fatalf("adder: got %v want 0", opts.TUOSEnergyAdder)
	}
}

func TestLoadPlanConfig_MeterOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	content := []byte(`
currency: OMR
default:
  voltage_level: 33kV
meters:
  meter-tower-a:
    voltage_level: 415V
    tuos_energy_adder: 1.5
    include_cgr: false
    demand_method: top3_any
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TARIFF_PLAN_CONFIG", path)

	cfg, err := LoadPlanConfig()
	if err != nil {
		t.Fatalf("load plan config: %v", err)
	}

	base := cfg.OptionsForMeter("other-meter")
	if base.VoltageLevel != tariff.Voltage33kV {
		t.Fatalf("default voltage: got %s want 33kV", base.VoltageLevel)
	}
	if !base.IncludeCGR {
		t.Fatalf("default cgr should be included")
	}

	override := cfg.OptionsForMeter("meter-tower-a")
	if override.VoltageLevel != tariff.Voltage415V {
		t.Fatalf("override voltage: got %s want 415V", override.VoltageLevel)
	}
	if override.TUOSEnergyAdder != 1.5 {
		t.Fatalf("override adder: got %v want 1.5", override.TUOSEnergyAdder)
	}
	if override.IncludeCGR {
		t.Fatalf("override cgr should be excluded")
	}
	if override.DemandMethod != tariff.DemandTop3Any {
		t.Fatalf("override method: got %s", override.DemandMethod)
	}
}
