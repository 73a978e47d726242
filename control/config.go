// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Workload configuration loaded from an optional YAML file, RING_* environment
// variables and bound command-line flags, in increasing precedence.

package control

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/momentics/hioload-ring/api"
)

// Ring access modes understood by the workload runner.
const (
	ModeSingle = "single"
	ModeLocked = "locked"
	ModeSPSC   = "spsc"
)

// Config describes one ringbench run.
type Config struct {
	Capacity  int           `mapstructure:"capacity"`
	Mode      string        `mapstructure:"mode"`
	Producers int           `mapstructure:"producers"`
	Consumers int           `mapstructure:"consumers"`
	Items     int           `mapstructure:"items"`
	Seed      uint64        `mapstructure:"seed"`
	Pin       bool          `mapstructure:"pin"`
	Metrics   MetricsConfig `mapstructure:"metrics"`
	Log       LogConfig     `mapstructure:"log"`
}

// MetricsConfig controls the optional /metrics listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig selects logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Loader handles configuration loading and validation.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader reading RING_-prefixed environment variables.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("RING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return &Loader{v: v}
}

// BindFlags maps command-line flags onto config keys. Only flags the user set
// explicitly override file and environment values.
func (l *Loader) BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for flagName, key := range keys {
		f := flags.Lookup(flagName)
		if f == nil {
			return fmt.Errorf("bind flag %q: %w", flagName, api.ErrNotFound)
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", flagName, err)
		}
	}
	return nil
}

// Load reads path (if non-empty), applies environment overrides and validates.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("capacity", 1024)
	v.SetDefault("mode", ModeSingle)
	v.SetDefault("producers", 1)
	v.SetDefault("consumers", 1)
	v.SetDefault("items", 1_000_000)
	v.SetDefault("seed", 1)
	v.SetDefault("pin", false)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Capacity < 1 {
		result = multierror.Append(result, api.CapacityError(c.Capacity))
	}
	switch c.Mode {
	case ModeSingle, ModeLocked:
	case ModeSPSC:
		if c.Producers != 1 || c.Consumers != 1 {
			result = multierror.Append(result,
				fmt.Errorf("mode %q requires exactly one producer and one consumer: %w", c.Mode, api.ErrInvalidArgument))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown mode %q: %w", c.Mode, api.ErrInvalidArgument))
	}
	if c.Producers < 1 {
		result = multierror.Append(result, fmt.Errorf("producers must be positive, got %d: %w", c.Producers, api.ErrInvalidArgument))
	}
	if c.Consumers < 1 {
		result = multierror.Append(result, fmt.Errorf("consumers must be positive, got %d: %w", c.Consumers, api.ErrInvalidArgument))
	}
	if c.Items < 0 {
		result = multierror.Append(result, fmt.Errorf("items must not be negative, got %d: %w", c.Items, api.ErrInvalidArgument))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown log format %q: %w", c.Log.Format, api.ErrInvalidArgument))
	}

	return result.ErrorOrNil()
}
