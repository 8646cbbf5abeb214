// Command demandcast compares a SARIMA baseline against a trend and seasonality model on a monthly
// demand series.
//
// Usage:
//
//	demandcast run [-config demandcast.yaml] [-product wheat] [-data sales.csv] [-out dir]
//	demandcast show [-product milk] [-years 10]
//
// Every flag has a DEMANDCAST_* environment variable fallback, e.g. DEMANDCAST_PRODUCT or
// DEMANDCAST_FIT_BUDGET. A YAML config file may also be given with -config or DEMANDCAST_CONFIG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	forecaster "github.com/aouyang1/go-demandcast"
	"github.com/aouyang1/go-demandcast/chart"
	"github.com/aouyang1/go-demandcast/config"
	"github.com/aouyang1/go-demandcast/secondary"
	"github.com/aouyang1/go-demandcast/stats"
	"github.com/aouyang1/go-demandcast/timedataset"
	"gonum.org/v1/gonum/floats"
)

const (
	ResultsJSONFile = "results.json"
	ResultsCSVFile  = "results.csv"
	HTMLFile        = "forecast_comparison.html"

	previewLen = 12
)

const usage = `usage: demandcast <command> [flags]

commands:
  run    compare the SARIMA baseline and the trend/seasonality model
  show   print the series along with summary statistics
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "run", "show":
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", cmd, usage)
		return 2
	}

	cfg, err := loadConfig(cmd, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := cfg.NewLogger(stderr)
	slog.SetDefault(logger)

	td, label, err := loadSeries(cfg, now)
	if err != nil {
		logger.Error("unable to load series", "error", err.Error())
		return 1
	}

	if cmd == "show" {
		if err := show(stdout, label, td); err != nil {
			logger.Error("unable to show series", "error", err.Error())
			return 1
		}
		return 0
	}

	if err := compare(ctx, stdout, cfg, logger, label, td); err != nil {
		if errors.Is(err, forecaster.ErrInsufficientData) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		logger.Error("unable to compare forecasts", "label", label, "error", err.Error())
		return 1
	}
	return 0
}

// configPath finds the -config flag ahead of flag parsing so the file can seed flag defaults
func configPath(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(config.EnvPrefix + "CONFIG")
}

func loadConfig(cmd string, args []string, stderr io.Writer) (*config.Config, error) {
	cfg := config.Default()
	path := configPath(args)
	if path != "" {
		var err error
		cfg, err = config.LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("config", path, "YAML config file")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadSeries(cfg *config.Config, now func() time.Time) (*timedataset.TimeDataset, string, error) {
	if cfg.DataFile != "" {
		td, err := timedataset.LoadCSV(cfg.DataFile)
		if err != nil {
			return nil, "", err
		}
		label := strings.TrimSuffix(filepath.Base(cfg.DataFile), filepath.Ext(cfg.DataFile))
		return td, label, nil
	}

	td, err := timedataset.LoadProduct(cfg.Product, cfg.Years, cfg.End(now))
	if err != nil {
		return nil, "", err
	}
	return td, cfg.Product, nil
}

func compare(ctx context.Context, w io.Writer, cfg *config.Config, logger *slog.Logger, label string, td *timedataset.TimeDataset) error {
	fmt.Fprintf(w, "Loaded %s: %d months\n", label, td.Len())
	if gaps, err := timedataset.TimeSlice(td.T).MonthlyGaps(); err == nil && gaps > 0 {
		logger.Warn("series has missing months", "label", label, "gaps", gaps)
	}

	c := forecaster.New(cfg.Options(logger))
	fmt.Fprintln(w, "\nFitting ARIMA (baseline) and trend/seasonality models...")

	res, err := c.Run(ctx, label, td)
	if err != nil {
		return err
	}
	if res.Capability != secondary.CapabilityFull {
		fmt.Fprintln(w, "  Trend/seasonality model unavailable, using the seasonal profile fallback")
	}
	fmt.Fprintf(w, "  primary: %s, secondary: %s, points: %d\n", res.PrimaryTier, res.SecondaryModel, res.Len())

	metrics, err := res.Score()
	if err != nil {
		return fmt.Errorf("unable to score results, %w", err)
	}
	fmt.Fprintln(w, "\nMetrics:")
	if err := metrics.WriteSummary(w); err != nil {
		return err
	}
	if fit := res.SecondaryFit; fit != nil {
		fmt.Fprintf(w, "\nTrend/seasonality fit (training window): R2=%.3f, MSE=%.2f, MAPE=%.2f%%\n  %s\n",
			fit.R2, fit.MSE, fit.MAPE*100, fit.Equation)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("unable to create output directory, %w", err)
	}

	fmt.Fprintln(w, "\nPlotting...")
	paths, err := chart.SaveAll(cfg.OutputDir, res)
	if err != nil {
		return err
	}

	reports := []struct {
		name  string
		write func(io.Writer) error
		skip  bool
	}{
		{name: ResultsJSONFile, write: res.WriteJSON},
		{name: ResultsCSVFile, write: res.WriteCSV},
		{name: HTMLFile, write: func(w io.Writer) error { return forecaster.PlotComparison(w, res) }, skip: !cfg.HTML},
	}
	for _, r := range reports {
		if r.skip {
			continue
		}
		path := filepath.Join(cfg.OutputDir, r.name)
		if err := writeFile(path, r.write); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	for _, p := range paths {
		fmt.Fprintf(w, "Saved: %s\n", p)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s, %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func show(w io.Writer, label string, td *timedataset.TimeDataset) error {
	n := td.Len()
	if n == 0 {
		return timedataset.ErrNoData
	}
	mean, err := stats.Mean(td.Y)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %d months from %s to %s\n",
		label, n,
		timedataset.TimeSlice(td.T).StartTime().Format(config.DateLayout),
		timedataset.TimeSlice(td.T).EndTime().Format(config.DateLayout),
	)

	fmt.Fprintln(w, "\nFirst months:")
	writeRows(w, td, 0, min(previewLen, n))
	fmt.Fprintln(w, "\nLast months:")
	writeRows(w, td, max(n-previewLen, 0), n)

	fmt.Fprintf(w, "\nmin=%.2f max=%.2f mean=%.2f\n", floats.Min(td.Y), floats.Max(td.Y), mean)
	return nil
}

func writeRows(w io.Writer, td *timedataset.TimeDataset, start, end int) {
	for i := start; i < end; i++ {
		fmt.Fprintf(w, "  %s  %8.2f\n", td.T[i].Format(config.DateLayout), td.Y[i])
	}
}
