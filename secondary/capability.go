package secondary

import (
	"log/slog"
	"sync"

	"github.com/aouyang1/go-demandcast/forecast/options"
)

// Capability records which secondary model is available to the process
type Capability int

const (
	CapabilityFull Capability = iota
	CapabilityUnavailable
)

func (c Capability) String() string {
	switch c {
	case CapabilityFull:
		return "full"
	case CapabilityUnavailable:
		return "unavailable"
	}
	return "unknown"
}

func (c Capability) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

var (
	capabilityOnce sync.Once
	capability     Capability
)

// ResolveCapability determines once per process whether the trend and seasonality model can be
// used. Later calls return the first resolution regardless of disable. An unavailable model is
// reported through logger, or the default logger when nil.
func ResolveCapability(disable bool, logger *slog.Logger) Capability {
	capabilityOnce.Do(func() {
		capability = resolveCapability(disable, fullModelCompiled, logger)
	})
	return capability
}

func resolveCapability(disable, compiled bool, logger *slog.Logger) Capability {
	if !disable && compiled {
		return CapabilityFull
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("trend and seasonality model unavailable, using seasonal profile forecast",
		"disabled", disable,
		"compiled", compiled,
	)
	return CapabilityUnavailable
}

// New returns the predictor matching the capability
func New(c Capability, opt *Options, forecastOpt *options.Options) Predictor {
	if c == CapabilityFull {
		return NewTrendSeasonal(opt, forecastOpt)
	}
	return NewSeasonalNaive(opt)
}
