// Package config loads the demandcast run configuration. Values are resolved in order of
// precedence from command-line flags, DEMANDCAST_* environment variables, an optional YAML file
// and finally the defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	forecaster "github.com/aouyang1/go-demandcast"
	"github.com/aouyang1/go-demandcast/arima"
	"github.com/aouyang1/go-demandcast/forecast/options"
	"github.com/aouyang1/go-demandcast/primary"
	"github.com/aouyang1/go-demandcast/secondary"
	"github.com/aouyang1/go-demandcast/timedataset"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix = "DEMANDCAST_"

	DateLayout = "2006-01-02"
)

var (
	ErrNilConfig       = errors.New("config is nil")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the on-disk configuration shape (YAML)
type Config struct {
	// Product selects the synthetic series when DataFile is empty
	Product  string `yaml:"product"`
	DataFile string `yaml:"data_file"`
	Years    int    `yaml:"years"`

	// EndDate bounds the last synthetic month end. Empty uses the current time.
	EndDate string `yaml:"end_date"`

	TestMonths      int           `yaml:"test_months"`
	MinSeriesLength int           `yaml:"min_series_length"`
	TrainFraction   float64       `yaml:"train_fraction"`
	FitBudget       time.Duration `yaml:"fit_budget"`

	Order         arima.Order         `yaml:"order"`
	SeasonalOrder arima.SeasonalOrder `yaml:"seasonal_order"`

	SeasonalPeriod   int  `yaml:"seasonal_period"`
	MinTrainLength   int  `yaml:"min_train_length"`
	YearlyOrders     int  `yaml:"yearly_orders"`
	DisableFullModel bool `yaml:"disable_full_model"`

	OutputDir string `yaml:"output_dir"`
	HTML      bool   `yaml:"html"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Default() *Config {
	return &Config{
		Product:         timedataset.ProductWheat,
		Years:           timedataset.DefaultYears,
		TestMonths:      forecaster.DefaultTestMonths,
		MinSeriesLength: forecaster.DefaultMinSeriesLength,
		TrainFraction:   timedataset.DefaultTrainFraction,
		FitBudget:       primary.DefaultFitBudget,
		Order:           arima.DefaultOrder(),
		SeasonalOrder:   arima.DefaultSeasonalOrder(),
		SeasonalPeriod:  secondary.DefaultPeriod,
		MinTrainLength:  secondary.DefaultMinTrainLength,
		YearlyOrders:    options.DefaultYearlyOrders,
		OutputDir:       ".",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked overlays the YAML file onto the defaults without validating the result
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config, %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unable to parse config, %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.Product == "" && c.DataFile == "" {
		return fmt.Errorf("product or data_file is required, %w", ErrInvalidConfig)
	}
	if c.DataFile == "" && c.Years <= 0 {
		return fmt.Errorf("years must be > 0, %w", ErrInvalidConfig)
	}
	if c.EndDate != "" {
		if _, err := time.Parse(DateLayout, c.EndDate); err != nil {
			return fmt.Errorf("end_date %q must be formatted as %s, %w", c.EndDate, DateLayout, ErrInvalidConfig)
		}
	}
	if c.TestMonths <= 0 {
		return fmt.Errorf("test_months must be > 0, %w", ErrInvalidConfig)
	}
	if c.MinSeriesLength <= 0 {
		return fmt.Errorf("min_series_length must be > 0, %w", ErrInvalidConfig)
	}
	if c.TrainFraction <= 0 || c.TrainFraction >= 1 {
		return fmt.Errorf("train_fraction must be in (0, 1), %w", ErrInvalidConfig)
	}
	if c.FitBudget <= 0 {
		return fmt.Errorf("fit_budget must be > 0, %w", ErrInvalidConfig)
	}
	if err := c.Order.Validate(); err != nil {
		return fmt.Errorf("%w, %w", ErrInvalidConfig, err)
	}
	if err := c.SeasonalOrder.Validate(); err != nil {
		return fmt.Errorf("%w, %w", ErrInvalidConfig, err)
	}
	if c.SeasonalPeriod <= 0 {
		return fmt.Errorf("seasonal_period must be > 0, %w", ErrInvalidConfig)
	}
	if c.MinTrainLength <= 0 {
		return fmt.Errorf("min_train_length must be > 0, %w", ErrInvalidConfig)
	}
	if c.YearlyOrders <= 0 {
		return fmt.Errorf("yearly_orders must be > 0, %w", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w, %w", ErrInvalidConfig, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format %q must be text or json, %w", c.LogFormat, ErrInvalidConfig)
	}
	return nil
}

// End returns the parsed end date or now when none is configured
func (c *Config) End(now func() time.Time) time.Time {
	if c.EndDate != "" {
		if end, err := time.Parse(DateLayout, c.EndDate); err == nil {
			return end
		}
	}
	return now()
}

// Options converts the configuration into comparison options logging through logger
func (c *Config) Options(logger *slog.Logger) *forecaster.Options {
	opt := forecaster.NewDefaultOptions()
	opt.TestMonths = c.TestMonths
	opt.MinSeriesLength = c.MinSeriesLength
	opt.DisableFullModel = c.DisableFullModel
	opt.Logger = logger

	opt.PrimaryOptions.Order = c.Order
	opt.PrimaryOptions.SeasonalOrder = c.SeasonalOrder
	opt.PrimaryOptions.TrainFraction = c.TrainFraction
	opt.PrimaryOptions.FitBudget = c.FitBudget
	opt.PrimaryOptions.Logger = logger

	opt.SecondaryOptions.Period = c.SeasonalPeriod
	opt.SecondaryOptions.MinTrainLength = c.MinTrainLength
	opt.SecondaryOptions.Logger = logger

	opt.ForecastOptions.SeasonalityOptions = options.SeasonalityOptions{
		SeasonalityConfigs: []options.SeasonalityConfig{
			options.NewYearlySeasonalityConfig(c.YearlyOrders),
		},
	}
	return opt
}

// RegisterFlags binds the configuration fields to fs using the current values, overridden by any
// DEMANDCAST_* environment variable, as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Product, "product", getEnv("PRODUCT", c.Product), "Synthetic product: wheat or milk")
	fs.StringVar(&c.DataFile, "data", getEnv("DATA_FILE", c.DataFile), "CSV file with ds,y columns, overrides product")
	fs.IntVar(&c.Years, "years", getEnvInt("YEARS", c.Years), "Years of synthetic monthly data")
	fs.StringVar(&c.EndDate, "end", getEnv("END_DATE", c.EndDate), "Last synthetic date (YYYY-MM-DD), defaults to now")
	fs.IntVar(&c.TestMonths, "test-months", getEnvInt("TEST_MONTHS", c.TestMonths), "Requested number of held out months")
	fs.IntVar(&c.MinSeriesLength, "min-length", getEnvInt("MIN_SERIES_LENGTH", c.MinSeriesLength), "Minimum series length")
	fs.Float64Var(&c.TrainFraction, "train-fraction", getEnvFloat("TRAIN_FRACTION", c.TrainFraction), "Fraction of points used to fit the primary model")
	fs.DurationVar(&c.FitBudget, "fit-budget", getEnvDuration("FIT_BUDGET", c.FitBudget), "Time budget for each primary model fit")
	fs.IntVar(&c.MinTrainLength, "min-train-length", getEnvInt("MIN_TRAIN_LENGTH", c.MinTrainLength), "Minimum training length for a seasonal profile")
	fs.IntVar(&c.YearlyOrders, "yearly-orders", getEnvInt("YEARLY_ORDERS", c.YearlyOrders), "Fourier orders of the yearly seasonality")
	fs.BoolVar(&c.DisableFullModel, "disable-full-model", getEnvBool("DISABLE_FULL_MODEL", c.DisableFullModel), "Use the seasonal profile forecast for the secondary model")
	fs.StringVar(&c.OutputDir, "out", getEnv("OUTPUT_DIR", c.OutputDir), "Directory for charts and reports")
	fs.BoolVar(&c.HTML, "html", getEnvBool("HTML", c.HTML), "Also write an interactive html comparison page")
	fs.StringVar(&c.LogLevel, "log-level", getEnv("LOG_LEVEL", c.LogLevel), "Log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", getEnv("LOG_FORMAT", c.LogFormat), "Log format: text or json")
}

// ParseLogLevel maps a level name onto its slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("got %q, %w", level, ErrInvalidLogLevel)
}

// NewLogger builds a text or json slog logger writing to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
