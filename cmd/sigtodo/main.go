package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-logr/zerologr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	sig "github.com/AnatoleLucet/signals"
	"github.com/AnatoleLucet/signals/metrics"
)

type options struct {
	verbose bool
	metrics bool

	// set when --metrics is on
	registry  *prometheus.Registry
	collector *metrics.Collector
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "sigtodo",
		Short: "A todo list driven by signals",
		Long: `sigtodo drives a reactive todo list from the command line.

Every change to the list goes through signals, the counters and
filtered views are memos, and the output is rendered by an effect
that only runs when something it displayed changed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setup(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.metrics {
				printMetrics(cmd, opts.registry)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log runtime diagnostics")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "Print runtime metrics on exit")

	rootCmd.AddCommand(
		scriptCmd(opts),
		demoCmd(opts),
		stressCmd(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func setup(opts *options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	level := zerolog.WarnLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	zlog := zerolog.New(output).Level(level).With().Timestamp().Logger()
	sig.SetLogger(zerologr.New(&zlog).WithName("sig"))

	if opts.metrics {
		opts.registry = prometheus.NewRegistry()
		opts.collector = metrics.New(metrics.WithRegistry(opts.registry), metrics.WithNamespace("sigtodo"))
	}

	configureRuntime(opts)
}

// configureRuntime applies the CLI settings to the calling goroutine's runtime.
func configureRuntime(opts *options) {
	if opts.collector != nil {
		sig.Configure(sig.WithHooks(opts.collector))
	}
}
