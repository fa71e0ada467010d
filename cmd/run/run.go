// Package run contains the command to run a stack workload.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/openfga/linkedstack/internal/build"
	"github.com/openfga/linkedstack/internal/workload"
	"github.com/openfga/linkedstack/pkg/logger"
	"github.com/openfga/linkedstack/pkg/telemetry"
)

type LogConfig struct {
	// Format is the log format to use in the log output (e.g. 'text' or 'json')
	Format string

	// Level is the log level to use in the log output (e.g. 'none', 'debug', or 'info')
	Level string
}

// OTLPTraceConfig defines configurations for the OTLP trace exporter.
type OTLPTraceConfig struct {
	Endpoint string
}

// TraceConfig defines configuration for tracing of workload runs.
type TraceConfig struct {
	Enabled     bool
	OTLP        OTLPTraceConfig `mapstructure:"otlp"`
	SampleRatio float64
	ServiceName string
}

// Config is the configuration of the run command, as read from flags,
// environment variables and config.yaml.
type Config struct {
	Variant     string
	Elements    int
	Pops        int
	Refill      int
	Workers     int
	Log         LogConfig
	Trace       TraceConfig
	MetricsDump bool
}

// DefaultConfig returns the defaults for every run flag.
func DefaultConfig() *Config {
	w := workload.DefaultConfig()

	return &Config{
		Variant:  string(w.Variant),
		Elements: w.Elements,
		Pops:     w.Pops,
		Refill:   w.Refill,
		Workers:  w.Workers,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Trace: TraceConfig{
			Enabled: false,
			OTLP: OTLPTraceConfig{
				Endpoint: "0.0.0.0:4317",
			},
			SampleRatio: 0.2,
			ServiceName: build.ProjectName,
		},
	}
}

// Workload converts the command config into a workload config.
func (c *Config) Workload() workload.Config {
	return workload.Config{
		Variant:  workload.Variant(c.Variant),
		Elements: c.Elements,
		Pops:     c.Pops,
		Refill:   c.Refill,
		Workers:  c.Workers,
	}
}

func (c *Config) Verify() error {
	if c.Trace.Enabled && (c.Trace.SampleRatio < 0 || c.Trace.SampleRatio > 1) {
		return fmt.Errorf("trace sample ratio must be between 0 and 1, got %v", c.Trace.SampleRatio)
	}

	return c.Workload().Verify()
}

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a stack workload",
		Long:  "Push, pop and release values on independent stacks, checking LIFO order and that teardown drops every node.",
		RunE:  run,
		Args:  cobra.NoArgs,
	}

	bindRunFlags(cmd)

	return cmd
}

// ReadConfig returns the run configuration based on command line flags, environment variables and config file.
func ReadConfig() (*Config, error) {
	config := DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	err := viper.ReadInConfig()
	if err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to load run config: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
	}

	return config, nil
}

func run(cmd *cobra.Command, _ []string) error {
	config, err := ReadConfig()
	if err != nil {
		return err
	}

	if err := config.Verify(); err != nil {
		return err
	}

	log, err := logger.NewLogger(config.Log.Format, config.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	if config.Trace.Enabled {
		tp := telemetry.MustNewTracerProvider(
			telemetry.WithOTLPEndpoint(config.Trace.OTLP.Endpoint),
			telemetry.WithServiceName(config.Trace.ServiceName),
			telemetry.WithSamplingRatio(config.Trace.SampleRatio),
		)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Warn("failed to flush traces", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()

	report, err := workload.Run(ctx, config.Workload(),
		workload.WithLogger(log),
		workload.WithRegisterer(registry),
	)
	if err != nil {
		return fmt.Errorf("failed to run workload: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "variant=%s workers=%d pushed=%d popped=%d empty_pops=%d released=%d duration=%s\n",
		report.Variant, len(report.Workers), report.Pushed, report.Popped, report.EmptyPops, report.Released, report.Duration)

	if config.MetricsDump {
		return dumpMetrics(out, registry)
	}

	return nil
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
