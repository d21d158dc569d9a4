// Package config loads runtime configuration: parameter bounds and defaults,
// the sweep range, and server settings. Everything numeric here is
// configuration rather than hard constants because deployments disagree on
// control ranges.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"redemption-fee-lab/internal/domain"
)

// LoadEnv loads environment variables from a .env file.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Defaults Parameters   `yaml:"defaults"`
	Bounds   Bounds       `yaml:"bounds"`
	Sweep    Range        `yaml:"sweep"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Parameters mirrors domain.ParameterSet with YAML field names.
type Parameters struct {
	DepositAmount         float64 `yaml:"deposit_amount"`
	ProviderFeePct        float64 `yaml:"provider_fee_pct"`
	ProviderFeeFixed      float64 `yaml:"provider_fee_fixed"`
	HouseEdgePct          float64 `yaml:"house_edge_pct"`
	RedemptionFeeCapPct   float64 `yaml:"redemption_fee_cap_pct"`
	CashbackPct           float64 `yaml:"cashback_pct"`
	PlaythroughMultiplier float64 `yaml:"playthrough_multiplier"`
	LuckFactor            float64 `yaml:"luck_factor"`
}

// Range mirrors domain.Range / domain.DepositRange.
type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Bounds holds the configured range per parameter.
type Bounds struct {
	DepositAmount         Range `yaml:"deposit_amount"`
	ProviderFeePct        Range `yaml:"provider_fee_pct"`
	ProviderFeeFixed      Range `yaml:"provider_fee_fixed"`
	HouseEdgePct          Range `yaml:"house_edge_pct"`
	RedemptionFeeCapPct   Range `yaml:"redemption_fee_cap_pct"`
	CashbackPct           Range `yaml:"cashback_pct"`
	PlaythroughMultiplier Range `yaml:"playthrough_multiplier"`
	LuckFactor            Range `yaml:"luck_factor"`
}

// Default returns the built-in configuration: domain defaults and a local
// listen address.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Defaults: fromParameterSet(domain.DefaultParameterSet),
		Bounds:   fromDomainBounds(domain.DefaultBounds),
		Sweep: Range{
			Min:  domain.DefaultDepositRange.Min,
			Max:  domain.DefaultDepositRange.Max,
			Step: domain.DefaultDepositRange.Step,
		},
	}
}

// Load reads the YAML file at path on top of the defaults: keys absent from
// the file keep their default values. A missing file yields the defaults
// unchanged. The merged configuration is validated before being returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the merged configuration is usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server addr must not be empty")
	}
	if err := c.ParameterBounds().Validate(); err != nil {
		return err
	}
	if c.Sweep.Step <= 0 {
		return fmt.Errorf("sweep step must be positive, got %g", c.Sweep.Step)
	}
	if c.Sweep.Max < c.Sweep.Min {
		return fmt.Errorf("sweep max %g below min %g", c.Sweep.Max, c.Sweep.Min)
	}
	if err := c.ParameterBounds().Check(c.DefaultParameters()); err != nil {
		return fmt.Errorf("defaults outside bounds: %w", err)
	}
	return nil
}

// DefaultParameters converts the configured defaults to a domain ParameterSet.
func (c Config) DefaultParameters() domain.ParameterSet {
	return domain.ParameterSet{
		DepositAmount:         c.Defaults.DepositAmount,
		ProviderFeePct:        c.Defaults.ProviderFeePct,
		ProviderFeeFixed:      c.Defaults.ProviderFeeFixed,
		HouseEdgePct:          c.Defaults.HouseEdgePct,
		RedemptionFeeCapPct:   c.Defaults.RedemptionFeeCapPct,
		CashbackPct:           c.Defaults.CashbackPct,
		PlaythroughMultiplier: c.Defaults.PlaythroughMultiplier,
		LuckFactor:            c.Defaults.LuckFactor,
	}
}

// ParameterBounds converts the configured bounds to domain Bounds.
func (c Config) ParameterBounds() domain.Bounds {
	return domain.Bounds{
		DepositAmount:         toDomainRange(c.Bounds.DepositAmount),
		ProviderFeePct:        toDomainRange(c.Bounds.ProviderFeePct),
		ProviderFeeFixed:      toDomainRange(c.Bounds.ProviderFeeFixed),
		HouseEdgePct:          toDomainRange(c.Bounds.HouseEdgePct),
		RedemptionFeeCapPct:   toDomainRange(c.Bounds.RedemptionFeeCapPct),
		CashbackPct:           toDomainRange(c.Bounds.CashbackPct),
		PlaythroughMultiplier: toDomainRange(c.Bounds.PlaythroughMultiplier),
		LuckFactor:            toDomainRange(c.Bounds.LuckFactor),
	}
}

// SweepRange converts the configured sweep range to a domain DepositRange.
func (c Config) SweepRange() domain.DepositRange {
	return domain.DepositRange{Min: c.Sweep.Min, Max: c.Sweep.Max, Step: c.Sweep.Step}
}

func toDomainRange(r Range) domain.Range {
	return domain.Range{Min: r.Min, Max: r.Max, Step: r.Step}
}

func fromDomainRange(r domain.Range) Range {
	return Range{Min: r.Min, Max: r.Max, Step: r.Step}
}

func fromParameterSet(p domain.ParameterSet) Parameters {
	return Parameters{
		DepositAmount:         p.DepositAmount,
		ProviderFeePct:        p.ProviderFeePct,
		ProviderFeeFixed:      p.ProviderFeeFixed,
		HouseEdgePct:          p.HouseEdgePct,
		RedemptionFeeCapPct:   p.RedemptionFeeCapPct,
		CashbackPct:           p.CashbackPct,
		PlaythroughMultiplier: p.PlaythroughMultiplier,
		LuckFactor:            p.LuckFactor,
	}
}

func fromDomainBounds(b domain.Bounds) Bounds {
	return Bounds{
		DepositAmount:         fromDomainRange(b.DepositAmount),
		ProviderFeePct:        fromDomainRange(b.ProviderFeePct),
		ProviderFeeFixed:      fromDomainRange(b.ProviderFeeFixed),
		HouseEdgePct:          fromDomainRange(b.HouseEdgePct),
		RedemptionFeeCapPct:   fromDomainRange(b.RedemptionFeeCapPct),
		CashbackPct:           fromDomainRange(b.CashbackPct),
		PlaythroughMultiplier: fromDomainRange(b.PlaythroughMultiplier),
		LuckFactor:            fromDomainRange(b.LuckFactor),
	}
}
