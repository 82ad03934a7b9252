package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Source   SourceConfig
	Carousel CarouselConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// SourceConfig selects where carousel items come from.
type SourceConfig struct {
	Kind  string // "db" or "file"
	File  string
	Watch bool
}

// CarouselConfig holds timing and layout settings shared by every carousel.
type CarouselConfig struct {
	IntervalMS     int     `mapstructure:"interval_ms"`
	TransitionMS   int     `mapstructure:"transition_ms"`
	Breakpoint     int     `mapstructure:"breakpoint"`
	WideFraction   float64 `mapstructure:"wide_fraction"`
	NarrowFraction float64 `mapstructure:"narrow_fraction"`
	SwipeThreshold int     `mapstructure:"swipe_threshold"`
	CellWidthPx    int     `mapstructure:"cell_width_px"`
	Height         int     `mapstructure:"height"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Path  string
	Level string
}

func (c CarouselConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

func (c CarouselConfig) Transition() time.Duration {
	return time.Duration(c.TransitionMS) * time.Millisecond
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "showcase")
}

func defaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "showcase", "config.toml")
}

// Path resolves the config file location: path if set, then
// SHOWCASE_CONFIG, then the default.
func Path(path string) string {
	if path == "" {
		path = os.Getenv("SHOWCASE_CONFIG")
	}
	if path == "" {
		path = defaultPath()
	}
	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(dataDir(), "showcase.db"))
	v.SetDefault("database.migrations", "internal/database/migrations")
	v.SetDefault("source.kind", "db")
	v.SetDefault("source.file", "")
	v.SetDefault("source.watch", true)
	v.SetDefault("carousel.interval_ms", 1600)
	v.SetDefault("carousel.transition_ms", 500)
	v.SetDefault("carousel.breakpoint", 100)
	v.SetDefault("carousel.wide_fraction", 0.20)
	v.SetDefault("carousel.narrow_fraction", 0.80)
	v.SetDefault("carousel.swipe_threshold", 50)
	v.SetDefault("carousel.cell_width_px", 8)
	v.SetDefault("carousel.height", 6)
	v.SetDefault("log.path", filepath.Join(dataDir(), "showcase.log"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix SHOWCASE_.
// An explicit path wins over SHOWCASE_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SHOWCASE_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "showcase"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHOWCASE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the carousel cannot run with.
func (c Config) Validate() error {
	var errs []error
	switch c.Source.Kind {
	case "db":
	case "file":
		if c.Source.File == "" {
			errs = append(errs, errors.New("source.file required when source.kind is file"))
		}
	default:
		errs = append(errs, fmt.Errorf("source.kind %q: want db or file", c.Source.Kind))
	}
	cc := c.Carousel
	if cc.IntervalMS <= 0 {
		errs = append(errs, errors.New("carousel.interval_ms must be positive"))
	}
	if cc.TransitionMS <= 0 {
		errs = append(errs, errors.New("carousel.transition_ms must be positive"))
	}
	if cc.TransitionMS >= cc.IntervalMS && cc.IntervalMS > 0 {
		errs = append(errs, errors.New("carousel.transition_ms must be shorter than interval_ms"))
	}
	for name, f := range map[string]float64{"wide_fraction": cc.WideFraction, "narrow_fraction": cc.NarrowFraction} {
		if f <= 0 || f > 1 {
			errs = append(errs, fmt.Errorf("carousel.%s must be in (0, 1]", name))
		}
	}
	if cc.Breakpoint <= 0 {
		errs = append(errs, errors.New("carousel.breakpoint must be positive"))
	}
	return errors.Join(errs...)
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("source.kind", cfg.Source.Kind)
	v.Set("source.file", cfg.Source.File)
	v.Set("source.watch", cfg.Source.Watch)
	v.Set("carousel.interval_ms", cfg.Carousel.IntervalMS)
	v.Set("carousel.transition_ms", cfg.Carousel.TransitionMS)
	v.Set("carousel.breakpoint", cfg.Carousel.Breakpoint)
	v.Set("carousel.wide_fraction", cfg.Carousel.WideFraction)
	v.Set("carousel.narrow_fraction", cfg.Carousel.NarrowFraction)
	v.Set("carousel.swipe_threshold", cfg.Carousel.SwipeThreshold)
	v.Set("carousel.cell_width_px", cfg.Carousel.CellWidthPx)
	v.Set("carousel.height", cfg.Carousel.Height)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
