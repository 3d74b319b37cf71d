package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KumKeeHyun/cityagg"
)

const (
	StoreMemory = "memory"
	StoreBoltDB = "boltdb"
)

// ContainsConfig holds the arguments of the append-and-contains check.
type ContainsConfig struct {
	Append string `yaml:"append"`
	Query  string `yaml:"query"`
}

// StoreConfig selects where emissions are recorded. Type "memory" keeps them
// for the life of the process, "boltdb" writes them to Dir.
type StoreConfig struct {
	Type   string `yaml:"type"`
	Dir    string `yaml:"dir"`
	Bucket string `yaml:"bucket"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Config is the top-level configuration of a cityagg run.
type Config struct {
	Interval   time.Duration  `yaml:"interval"`
	Ceiling    int            `yaml:"ceiling"`
	Seed       []string       `yaml:"seed"`
	Rotation   []string       `yaml:"rotation"`
	Appendices []string       `yaml:"appendices"`
	Contains   ContainsConfig `yaml:"contains"`
	Store      StoreConfig    `yaml:"store"`
	Log        LogConfig      `yaml:"log"`
}

// Default returns the demo configuration: seven seed cities and five ticks.
func Default() *Config {
	return &Config{
		Interval:   cityagg.DefaultInterval,
		Ceiling:    cityagg.DefaultCeiling,
		Seed:       cityagg.DefaultSeed(),
		Rotation:   cityagg.DefaultRotation(),
		Appendices: cityagg.DefaultAppendices(),
		Contains: ContainsConfig{
			Append: cityagg.DefaultExtraCity,
			Query:  cityagg.DefaultExtraCity,
		},
		Store: StoreConfig{
			Type:   StoreMemory,
			Bucket: "emissions",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that a run with this configuration can complete every
// tick. The rotation must hold exactly one city per tick.
func (c *Config) Validate() error {
	var errs []error

	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.Ceiling < 0 {
		errs = append(errs, fmt.Errorf("ceiling must not be negative, got %d", c.Ceiling))
	}
	if len(c.Rotation) == 0 {
		errs = append(errs, errors.New("rotation must not be empty"))
	} else if c.Ceiling+1 != len(c.Rotation) {
		errs = append(errs, fmt.Errorf("ceiling %d needs %d rotation entries, got %d",
			c.Ceiling, c.Ceiling+1, len(c.Rotation)))
	}

	switch c.Store.Type {
	case StoreMemory:
	case StoreBoltDB:
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir is required for boltdb"))
		}
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("store.bucket is required for boltdb"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store type %q", c.Store.Type))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
