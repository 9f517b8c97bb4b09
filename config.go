package vars

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/AnatoleLucet/vars/internal"
)

// Config configures the process-wide runtime.
type Config struct {
	// MaxApplyPasses bounds how many times one apply cycle drains the write queue
	// before it panics with a *FeedbackLoopError. 0 disables the check.
	MaxApplyPasses int `toml:"max_apply_passes" yaml:"max_apply_passes"`

	// AutoApply applies every write made outside Batch immediately.
	AutoApply bool `toml:"auto_apply" yaml:"auto_apply"`

	// LogLevel is one of debug, info, warn, error, fatal (default: info).
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Metrics enables the Prometheus collectors.
	Metrics          bool   `toml:"metrics" yaml:"metrics"`
	MetricsNamespace string `toml:"metrics_namespace" yaml:"metrics_namespace"`

	// TracerName names the OpenTelemetry tracer of the apply spans.
	TracerName string `toml:"tracer_name" yaml:"tracer_name"`
}

func DefaultConfig() Config {
	opts := internal.DefaultOptions()

	return Config{
		MaxApplyPasses:   opts.MaxApplyPasses,
		LogLevel:         "info",
		MetricsNamespace: "vars",
		TracerName:       opts.TracerName,
	}
}

// LoadConfig reads a .toml, .yaml or .yml file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("load config %s: %w %q", path, ErrUnknownConfigFormat, ext)
	}

	return cfg, nil
}

type configureOptions struct {
	logger     *log.Logger
	registerer prometheus.Registerer
}

// Option customizes Configure.
type Option func(*configureOptions)

// WithLogger sets the logger of the runtime instead of the default one.
func WithLogger(logger *log.Logger) Option {
	return func(o *configureOptions) {
		o.logger = logger
	}
}

// WithRegisterer sets the Prometheus registerer of the metrics.
// Default: prometheus.DefaultRegisterer
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *configureOptions) {
		o.registerer = registerer
	}
}

// Configure applies cfg to the process-wide runtime.
// It is meant for startup, before variables are used. Calling it again replaces
// the options and reuses metrics already registered on the same registerer.
func Configure(cfg Config, opts ...Option) error {
	options, err := cfg.options(opts...)
	if err != nil {
		return err
	}

	internal.GetRuntime().Configure(options)
	return nil
}

func (cfg Config) options(opts ...Option) (internal.Options, error) {
	var o configureOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.Default().WithPrefix("vars")
	}
	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return internal.Options{}, fmt.Errorf("configure: %w", err)
		}
		// leveled copy, the caller's logger keeps its own level
		logger = logger.With()
		logger.SetLevel(level)
	}

	options := internal.Options{
		Logger:         logger,
		MaxApplyPasses: cfg.MaxApplyPasses,
		AutoApply:      cfg.AutoApply,
		TracerName:     cfg.TracerName,
	}
	if cfg.Metrics {
		options.Metrics = internal.NewMetrics(internal.MetricsConfig{
			Namespace: cfg.MetricsNamespace,
			Registry:  o.registerer,
		})
	}

	return options, nil
}
