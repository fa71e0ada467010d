package run

import (
	"github.com/spf13/cobra"

	"github.com/openfga/linkedstack/cmd/util"
)

// bindRunFlags binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags.
func bindRunFlags(command *cobra.Command) {
	defaultConfig := DefaultConfig()
	flags := command.Flags()

	flags.String("variant", defaultConfig.Variant, "the stack implementation to exercise, one of 'generic' or 'int32'")
	util.MustBindPFlag("variant", flags.Lookup("variant"))
	util.MustBindEnv("variant", "LINKEDSTACK_VARIANT")

	flags.Int("elements", defaultConfig.Elements, "the number of values each worker pushes before popping")
	util.MustBindPFlag("elements", flags.Lookup("elements"))
	util.MustBindEnv("elements", "LINKEDSTACK_ELEMENTS")

	flags.Int("pops", defaultConfig.Pops, "the number of values each worker pops after the initial pushes")
	util.MustBindPFlag("pops", flags.Lookup("pops"))
	util.MustBindEnv("pops", "LINKEDSTACK_POPS")

	flags.Int("refill", defaultConfig.Refill, "the number of values each worker pushes and pops back after the initial pops")
	util.MustBindPFlag("refill", flags.Lookup("refill"))
	util.MustBindEnv("refill", "LINKEDSTACK_REFILL")

	flags.Int("workers", defaultConfig.Workers, "the number of independent stacks exercised in parallel")
	util.MustBindPFlag("workers", flags.Lookup("workers"))
	util.MustBindEnv("workers", "LINKEDSTACK_WORKERS")

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in, one of 'text' or 'json'")
	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindEnv("log.format", "LINKEDSTACK_LOG_FORMAT")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to use, one of 'none', 'debug', 'info', 'warn', 'error', 'panic', 'fatal'")
	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindEnv("log.level", "LINKEDSTACK_LOG_LEVEL")

	flags.Bool("trace-enabled", defaultConfig.Trace.Enabled, "enable tracing of workload runs")
	util.MustBindPFlag("trace.enabled", flags.Lookup("trace-enabled"))
	util.MustBindEnv("trace.enabled", "LINKEDSTACK_TRACE_ENABLED")

	flags.String("trace-otlp-endpoint", defaultConfig.Trace.OTLP.Endpoint, "the endpoint of the trace collector")
	util.MustBindPFlag("trace.otlp.endpoint", flags.Lookup("trace-otlp-endpoint"))
	util.MustBindEnv("trace.otlp.endpoint", "LINKEDSTACK_TRACE_OTLP_ENDPOINT")

	flags.Float64("trace-sample-ratio", defaultConfig.Trace.SampleRatio, "the fraction of workload runs to trace")
	util.MustBindPFlag("trace.sampleRatio", flags.Lookup("trace-sample-ratio"))
	util.MustBindEnv("trace.sampleRatio", "LINKEDSTACK_TRACE_SAMPLE_RATIO")

	flags.String("trace-service-name", defaultConfig.Trace.ServiceName, "the service name included in sampled traces")
	util.MustBindPFlag("trace.serviceName", flags.Lookup("trace-service-name"))
	util.MustBindEnv("trace.serviceName", "LINKEDSTACK_TRACE_SERVICE_NAME")

	flags.Bool("metrics-dump", defaultConfig.MetricsDump, "print the collected metrics in Prometheus text format after the run")
	util.MustBindPFlag("metricsDump", flags.Lookup("metrics-dump"))
	util.MustBindEnv("metricsDump", "LINKEDSTACK_METRICS_DUMP")
}
