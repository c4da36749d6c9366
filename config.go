package partnership

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sepandasadi/partnership/date"
	"gopkg.in/yaml.v3"
)

// SplitMode selects how tier 4 splits the residual cash.
type SplitMode string

const (
	// SplitByOwnership splits by ownership percentage.
	SplitByOwnership SplitMode = "ownership"
	// SplitByPromote gives GPPromotePercent to the general partners and
	// splits the rest by ownership among the other partners.
	SplitByPromote SplitMode = "promote"
)

// AccrualMethod selects how the preferred return accrues.
type AccrualMethod string

const (
	// SimpleAccrual accrues on the unreturned balance in force during each interval.
	SimpleAccrual AccrualMethod = "simple"
	// CompoundAccrual adds unpaid accrual to the accrual base each time the
	// unreturned balance changes.
	CompoundAccrual AccrualMethod = "compound"
)

// WaterfallConfig holds the distribution policy of a partnership.
//
// Rates are fractions: 0.08 is 8%.
type WaterfallConfig struct {
	ReturnOfCapital  bool          `yaml:"returnOfCapital" json:"returnOfCapital"`
	PreferredReturn  bool          `yaml:"preferredReturn" json:"preferredReturn"`
	PreferredRate    float64       `yaml:"preferredRate" json:"preferredRate" validate:"gte=0,lte=1"`
	CatchUp          bool          `yaml:"catchUp" json:"catchUp"`
	GPPromotePercent float64       `yaml:"gpPromotePercent" json:"gpPromotePercent" validate:"gte=0,lte=1"`
	SplitMode        SplitMode     `yaml:"splitMode" json:"splitMode" validate:"oneof=ownership promote"`
	Frequency        date.Period   `yaml:"frequency" json:"frequency"`
	Accrual          AccrualMethod `yaml:"accrual" json:"accrual" validate:"oneof=simple compound"`
}

// DefaultConfig returns a typical real-estate waterfall: return of capital,
// 8% preferred, full catch-up to a 20% promote, residual split by ownership.
func DefaultConfig() WaterfallConfig {
	return WaterfallConfig{
		ReturnOfCapital:  true,
		PreferredReturn:  true,
		PreferredRate:    0.08,
		CatchUp:          true,
		GPPromotePercent: 0.20,
		SplitMode:        SplitByOwnership,
		Frequency:        date.Quarterly,
		Accrual:          SimpleAccrual,
	}
}

// Validate checks the config fields.
func (c WaterfallConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: waterfall config: %w", ErrInvalidInput, validationErrors(err))
	}
	return nil
}

// DecodeConfig reads a YAML waterfall config. Missing fields keep their default values.
func DecodeConfig(content []byte) (WaterfallConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: could not decode waterfall config: %w", ErrInvalidInput, err)
	}
	return cfg, cfg.Validate()
}

// LoadConfig loads the waterfall config from a YAML file. A missing file yields DefaultConfig.
func LoadConfig(path string) (WaterfallConfig, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.WithField("path", path).Debug("waterfall config not found, using defaults")
		return DefaultConfig(), nil
	}
	if err != nil {
		return WaterfallConfig{}, fmt.Errorf("could not read waterfall config %q: %w", path, err)
	}
	return DecodeConfig(content)
}

// EncodeConfig returns the YAML representation of the config.
func EncodeConfig(cfg WaterfallConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
