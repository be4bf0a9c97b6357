package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// TariffRate is the default per-unit rate applied to metered bills
// submitted without an explicit rate.
type TariffRate struct {
	UtilityType string  `mapstructure:"utilityType"`
	RatePerUnit float64 `mapstructure:"ratePerUnit"`
}

type TariffConfig struct {
	Rates []TariffRate `mapstructure:"rates"`
}

func DefaultTariffConfig() TariffConfig {
	return TariffConfig{
		Rates: []TariffRate{
			{UtilityType: "electricity", RatePerUnit: 8.50},
			{UtilityType: "water", RatePerUnit: 4.25},
			{UtilityType: "gas", RatePerUnit: 6.75},
		},
	}
}

// TariffConfigHolder serves the current tariff table and swaps it
// atomically when the config file changes on disk.
type TariffConfigHolder struct {
	current atomic.Value // holds TariffConfig
}

func NewTariffConfigHolder() (*TariffConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("tariff")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/meterbill")
	v.AddConfigPath(".")

	v.SetEnvPrefix("METERBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultTariffConfig()
		v.SetDefault("tariff.rates", defaults.Rates)
	}

	var cfg TariffConfig
	if err := v.UnmarshalKey("tariff", &cfg); err != nil {
		return nil, err
	}
	if err := validateTariffConfig(cfg); err != nil {
		return nil, err
	}

	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated TariffConfig
		if err := v.UnmarshalKey("tariff", &updated); err != nil {
			log.Printf("[tariff-config] reload failed: %v", err)
			return
		}
		if err := validateTariffConfig(updated); err != nil {
			log.Printf("[tariff-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[tariff-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticTariffHolder wraps a fixed tariff table, without file watching.
func NewStaticTariffHolder(cfg TariffConfig) *TariffConfigHolder {
	holder := &TariffConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *TariffConfigHolder) Get() TariffConfig {
	return h.current.Load().(TariffConfig)
}

// RateFor returns the default rate for a utility type label, matched by
// case-insensitive substring the same way bill identifiers are classified.
func (h *TariffConfigHolder) RateFor(utilityType string) (float64, bool) {
	label := strings.ToLower(strings.TrimSpace(utilityType))
	if label == "" {
		return 0, false
	}
	for _, rate := range h.Get().Rates {
		if strings.Contains(label, strings.ToLower(rate.UtilityType)) {
			return rate.RatePerUnit, true
		}
	}
	return 0, false
}

func validateTariffConfig(cfg TariffConfig) error {
	if len(cfg.Rates) == 0 {
		return errors.New("tariff.rates cannot be empty")
	}
	for _, rate := range cfg.Rates {
		if strings.TrimSpace(rate.UtilityType) == "" {
			return errors.New("tariff.rates entries require a utilityType")
		}
		if rate.RatePerUnit < 0 {
			return errors.New("tariff.rates entries cannot have a negative ratePerUnit")
		}
	}
	return nil
}
