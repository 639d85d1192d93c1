package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/username/holiday-stats/internal/config"
	"github.com/username/holiday-stats/internal/holidayapi"
	"github.com/username/holiday-stats/internal/input"
	"github.com/username/holiday-stats/internal/report"
	"github.com/username/holiday-stats/internal/runner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	version = "dev"

	configPath string
	logger     = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &reportOptions{}

	rootCmd := &cobra.Command{
		Use:           "holiday-stats [country codes...]",
		Short:         "Public holiday statistics per country",
		Long:          "Fetch public holidays for up to three countries and report public, weekday, weekend and prime-date counts",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Only the log section matters here; the command validates the rest
			cfg, err := config.Load(configPath, config.WithOverride("source.type", config.SourceFile))
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger("info") // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.Level)
			} else {
				initLogger("info")
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")
	opts.bind(rootCmd)

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

type reportOptions struct {
	teeOutput string
	source    string
	dir       string
}

func (o *reportOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.teeOutput, "tee-output", "", "Mirror report output to file (empty to disable)")
	cmd.Flags().StringVar(&o.source, "source", "", "Holiday source: holidayapi or file (overrides config)")
	cmd.Flags().StringVar(&o.dir, "dir", "", "Directory with <COUNTRY>.json files for the file source")
}

func (o *reportOptions) overrides() []config.Option {
	var opts []config.Option
	if o.source != "" {
		opts = append(opts, config.WithOverride("source.type", o.source))
	}
	if o.dir != "" {
		opts = append(opts, config.WithOverride("source.dir", o.dir))
	}
	return opts
}

func reportCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report [country codes...]",
		Short: "Print holiday statistics; codes are read from stdin when not given as arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func runReport(cmd *cobra.Command, args []string, opts *reportOptions) error {
	out := cmd.OutOrStdout()
	if opts.teeOutput != "" {
		if err := os.MkdirAll(filepath.Dir(opts.teeOutput), 0o755); err != nil {
			return fmt.Errorf("failed to create tee path: %w", err)
		}
		f, err := os.OpenFile(opts.teeOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open tee-output file: %w", err)
		}
		defer f.Close()
		out = io.MultiWriter(out, f)
	}

	cfg, err := config.Load(configPath, opts.overrides()...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	source, err := initializeSource(cfg)
	if err != nil {
		return err
	}

	reporter := report.New(out)
	collector := input.NewCollector(cfg.Input.MaxCountries)

	var collected input.Result
	if len(args) > 0 {
		collected = collector.Collect(args)
	} else {
		reporter.Line(collector.Prompt())
		collected, err = collector.Read(cmd.InOrStdin())
		if err != nil {
			// Not fatal: report it and finish with nothing to do
			reporter.Line(fmt.Sprintf("Error: %v", err))
			logger.Error("Failed to read country codes", zap.Error(err))
			return nil
		}
	}

	if len(collected.Dropped) > 0 {
		reporter.Line(collector.CapWarning())
		logger.Warn("Country codes over the limit were dropped",
			zap.Int("max", collector.Max()),
			zap.Strings("dropped", collected.Dropped))
	}

	if len(collected.Codes) == 0 {
		logger.Warn("No country codes given")
		return nil
	}

	runner.New(source, reporter, logger).Run(cmd.Context(), collected.Codes)
	return nil
}

func initializeSource(cfg *config.Config) (holidayapi.Source, error) {
	switch cfg.Source.Type {
	case config.SourceHolidayAPI:
		logger.Info("Using holidayapi.com source",
			zap.String("endpoint", cfg.API.Endpoint),
			zap.Int("year", cfg.API.Year))
		return holidayapi.NewClient(
			cfg.API.Endpoint,
			cfg.API.Key,
			cfg.API.Year,
			logger,
			holidayapi.WithTimeout(cfg.API.GetTimeout()),
			holidayapi.WithRateLimit(cfg.API.RequestsPerSecond),
		), nil

	case config.SourceFile:
		logger.Info("Using file source", zap.String("dir", cfg.Source.Dir))
		return holidayapi.NewFileSource(cfg.Source.Dir, logger), nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Source.Type)
	}
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,   // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
