package run

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/openfga/linkedstack/cmd"
	"github.com/openfga/linkedstack/cmd/util"
	"github.com/openfga/linkedstack/internal/workload"
)

func newTestRootCommand(t *testing.T, runCmd *cobra.Command, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(viper.Reset)

	rootCmd := cmd.NewRootCommand()
	rootCmd.AddCommand(runCmd)
	rootCmd.SetArgs(append([]string{"run"}, args...))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	return rootCmd, out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Verify())
	require.Equal(t, workload.DefaultConfig(), cfg.Workload())
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.MetricsDump)
	require.False(t, cfg.Trace.Enabled)
	require.Equal(t, "linkedstack", cfg.Trace.ServiceName)
}

func TestConfigVerifyTrace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trace.SampleRatio = 1.5
	require.NoError(t, cfg.Verify(), "ratio is not checked while tracing is disabled")

	cfg.Trace.Enabled = true
	require.ErrorContains(t, cfg.Verify(), "trace sample ratio")

	cfg.Trace.SampleRatio = 1
	require.NoError(t, cfg.Verify())
}

func TestRunCommandNoConfigDefaultValues(t *testing.T) {
	util.PrepareTempConfigDir(t)
	runCmd := NewRunCommand()
	runCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		require.Equal(t, "generic", viper.GetString("variant"))
		require.Equal(t, 100_000, viper.GetInt("elements"))
		require.Equal(t, 1, viper.GetInt("pops"))
		require.Equal(t, 0, viper.GetInt("refill"))
		require.Equal(t, 1, viper.GetInt("workers"))
		require.Equal(t, "text", viper.GetString("log.format"))
		require.False(t, viper.GetBool("metricsDump"))
		return nil
	}

	rootCmd, _ := newTestRootCommand(t, runCmd)
	require.NoError(t, rootCmd.Execute())
}

func TestRunCommandConfigFileValuesAreParsed(t *testing.T) {
	config := `variant: int32
elements: 500
pops: 20
workers: 4
log:
    format: json
    level: debug
trace:
    enabled: true
    otlp:
        endpoint: collector:4317
    sampleRatio: 0.5
`
	util.PrepareTempConfigFile(t, config)

	runCmd := NewRunCommand()
	runCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := ReadConfig()
		require.NoError(t, err)
		require.Equal(t, "int32", cfg.Variant)
		require.Equal(t, 500, cfg.Elements)
		require.Equal(t, 20, cfg.Pops)
		require.Equal(t, 0, cfg.Refill)
		require.Equal(t, 4, cfg.Workers)
		require.Equal(t, "json", cfg.Log.Format)
		require.Equal(t, "debug", cfg.Log.Level)
		require.True(t, cfg.Trace.Enabled)
		require.Equal(t, "collector:4317", cfg.Trace.OTLP.Endpoint)
		require.InDelta(t, 0.5, cfg.Trace.SampleRatio, 0)
		return nil
	}

	rootCmd, _ := newTestRootCommand(t, runCmd)
	require.NoError(t, rootCmd.Execute())
}

func TestRunCommandConfigIsMerged(t *testing.T) {
	config := `variant: int32
elements: 500
`
	util.PrepareTempConfigFile(t, config)

	t.Setenv("LINKEDSTACK_ELEMENTS", "42")
	t.Setenv("LINKEDSTACK_REFILL", "7")
	t.Setenv("LINKEDSTACK_METRICS_DUMP", "true")

	runCmd := NewRunCommand()
	runCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := ReadConfig()
		require.NoError(t, err)
		require.Equal(t, "int32", cfg.Variant)
		require.Equal(t, 42, cfg.Elements)
		require.Equal(t, 7, cfg.Refill)
		require.Equal(t, 3, cfg.Workers)
		require.True(t, cfg.MetricsDump)
		return nil
	}

	rootCmd, _ := newTestRootCommand(t, runCmd, "--workers", "3")
	require.NoError(t, rootCmd.Execute())
}

func TestRunCommand(t *testing.T) {
	t.Run("reports_and_dumps_metrics", func(t *testing.T) {
		util.PrepareTempConfigDir(t)

		rootCmd, out := newTestRootCommand(t, NewRunCommand(),
			"--elements", "1000",
			"--pops", "10",
			"--refill", "5",
			"--workers", "2",
			"--log-level", "none",
			"--metrics-dump",
		)
		require.NoError(t, rootCmd.Execute())

		output := out.String()
		require.Contains(t, output, "variant=generic workers=2 pushed=2010 popped=32 empty_pops=2 released=1978")
		require.Contains(t, output, "linkedstack_push_count{variant=\"generic\"} 2010")
		require.Contains(t, output, "linkedstack_released_nodes_count{variant=\"generic\"} 1978")
	})

	t.Run("long_chain_int32", func(t *testing.T) {
		util.PrepareTempConfigDir(t)

		rootCmd, out := newTestRootCommand(t, NewRunCommand(), "--variant", "int32", "--log-level", "none")
		require.NoError(t, rootCmd.Execute())
		require.Contains(t, out.String(), "released=99999")
		require.NotContains(t, out.String(), "linkedstack_push_count")
	})

	t.Run("invalid_variant", func(t *testing.T) {
		util.PrepareTempConfigDir(t)

		rootCmd, _ := newTestRootCommand(t, NewRunCommand(), "--variant", "slice")
		err := rootCmd.Execute()
		require.ErrorIs(t, err, workload.ErrInvalidConfig)
	})

	t.Run("invalid_log_level", func(t *testing.T) {
		util.PrepareTempConfigDir(t)

		rootCmd, _ := newTestRootCommand(t, NewRunCommand(), "--log-level", "loud")
		require.ErrorContains(t, rootCmd.Execute(), "unknown log level")
	})
}
