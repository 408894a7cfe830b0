// Package config loads timeband settings from defaults, an optional
// .timeband.yaml, TIMEBAND_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/timeband/pkg/gesture"
	"tableflip.dev/timeband/pkg/timeband"
	"tableflip.dev/timeband/pkg/timeline"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "TIMEBAND"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Sizes holds one value per granularity.
type Sizes struct {
	Day   int `mapstructure:"day"`
	Month int `mapstructure:"month"`
	Year  int `mapstructure:"year"`
}

// Gesture tunes the wheel classifier.
type Gesture struct {
	Window      time.Duration `mapstructure:"window"`
	MinDuration time.Duration `mapstructure:"min_duration"`
	LinePixels  float64       `mapstructure:"line_pixels"`
	PagePixels  float64       `mapstructure:"page_pixels"`
	MaxQueued   int           `mapstructure:"max_queued"`
}

// Log selects the log level and destination.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config is the decoded configuration.
type Config struct {
	Granularity        string        `mapstructure:"granularity"`
	Anchor             string        `mapstructure:"anchor"`
	SingleDate         bool          `mapstructure:"single_date"`
	AllowRange         bool          `mapstructure:"allow_range"`
	DateFormat         string        `mapstructure:"date_format"`
	TransitionDuration time.Duration `mapstructure:"transition_duration"`
	ItemWidths         Sizes         `mapstructure:"item_widths"`
	BatchSizes         Sizes         `mapstructure:"batch_sizes"`
	Gesture            Gesture       `mapstructure:"gesture"`
	Log                Log           `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// New returns a viper instance carrying the defaults and env binding.
func New() *viper.Viper {
	v := viper.New()
	g := gesture.DefaultConfig()

	v.SetDefault("granularity", timeband.Day.String())
	v.SetDefault("anchor", "")
	v.SetDefault("single_date", false)
	v.SetDefault("allow_range", true)
	v.SetDefault("date_format", timeline.DefaultDateFormat)
	v.SetDefault("transition_duration", timeline.DefaultTransitionDuration)
	for _, gr := range timeband.All {
		v.SetDefault("item_widths."+gr.String(), timeline.DefaultItemWidths[gr])
		v.SetDefault("batch_sizes."+gr.String(), timeline.DefaultBatchSizes[gr])
	}
	v.SetDefault("gesture.window", g.Window)
	v.SetDefault("gesture.min_duration", g.MinDuration)
	v.SetDefault("gesture.line_pixels", g.LinePixels)
	v.SetDefault("gesture.page_pixels", g.PagePixels)
	v.SetDefault("gesture.max_queued", g.MaxQueued)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigName(".timeband") // .yaml is implicit
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (or searches the usual locations when file is empty) into
// v and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Log.File != "" {
		path, err := homedir.Expand(cfg.Log.File)
		if err != nil {
			return nil, fmt.Errorf("failed to expand log path: %w", err)
		}
		cfg.Log.File = path
	}
	return &cfg, nil
}

// Validate rejects values the timeline cannot run with.
func (c *Config) Validate() error {
	if _, err := timeband.ParseGranularity(c.Granularity); err != nil {
		return fmt.Errorf("%w: granularity: %w", ErrInvalidConfig, err)
	}
	if _, err := c.anchor(); err != nil {
		return fmt.Errorf("%w: anchor: %w", ErrInvalidConfig, err)
	}
	if c.TransitionDuration < 0 {
		return fmt.Errorf("%w: transition_duration must not be negative", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DateFormat) == "" {
		return fmt.Errorf("%w: date_format must not be empty", ErrInvalidConfig)
	}
	for _, gr := range timeband.All {
		if w := c.ItemWidths.get(gr); w <= 0 {
			return fmt.Errorf("%w: item_widths.%s must be positive, got %d", ErrInvalidConfig, gr, w)
		}
		if b := c.BatchSizes.get(gr); b <= 0 {
			return fmt.Errorf("%w: batch_sizes.%s must be positive, got %d", ErrInvalidConfig, gr, b)
		}
	}
	if c.Gesture.MaxQueued < 0 {
		return fmt.Errorf("%w: gesture.max_queued must not be negative", ErrInvalidConfig)
	}
	return nil
}

// TimelineOptions maps the config onto controller options. Clock, scheduler
// and logger are left for the host to fill in.
func (c *Config) TimelineOptions() (timeline.Options, error) {
	if err := c.Validate(); err != nil {
		return timeline.Options{}, err
	}
	g, _ := timeband.ParseGranularity(c.Granularity)
	anchor, _ := c.anchor()

	gc := gesture.DefaultConfig()
	if c.Gesture.Window > 0 {
		gc.Window = c.Gesture.Window
	}
	if c.Gesture.MinDuration > 0 {
		gc.MinDuration = c.Gesture.MinDuration
	}
	if c.Gesture.LinePixels > 0 {
		gc.LinePixels = c.Gesture.LinePixels
	}
	if c.Gesture.PagePixels > 0 {
		gc.PagePixels = c.Gesture.PagePixels
	}
	gc.MaxQueued = c.Gesture.MaxQueued

	return timeline.Options{
		InitialGranularity:  g,
		InitialAnchor:       anchor,
		SingleDateMode:      c.SingleDate,
		AllowRangeSelection: c.AllowRange,
		ItemWidths:          c.ItemWidths.toMap(),
		BatchSizes:          c.BatchSizes.toMap(),
		DateFormat:          c.DateFormat,
		TransitionDuration:  c.TransitionDuration,
		Gesture:             gc,
	}, nil
}

// anchor parses the configured anchor. Empty and "today" give the zero date,
// which the controller resolves against its clock.
func (c *Config) anchor() (timeband.Date, error) {
	s := strings.TrimSpace(c.Anchor)
	if s == "" || strings.EqualFold(s, "today") {
		return timeband.Date{}, nil
	}
	d, _, err := timeband.ParseDate(s)
	return d, err
}

func (s Sizes) get(g timeband.Granularity) int {
	switch g {
	case timeband.Day:
		return s.Day
	case timeband.Month:
		return s.Month
	case timeband.Year:
		return s.Year
	}
	return 0
}

func (s Sizes) toMap() map[timeband.Granularity]int {
	out := make(map[timeband.Granularity]int, len(timeband.All))
	for _, g := range timeband.All {
		out[g] = s.get(g)
	}
	return out
}
