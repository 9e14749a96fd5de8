// Command marketlog filters an engine log and plots its market data points.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"marketlog/internal/app"
	"marketlog/internal/config"
	"marketlog/internal/logger"
)

const (
	defaultConfigPath = "configs/marketlog.yaml"
	configEnv         = "MARKETLOG_CONFIG"
)

// options holds the parsed flags.
type options struct {
	configPath string
	inputPath  string
	memoryMode bool
	transform  bool
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("marketlog: reading .env: %v", err)
	}
	rootCmd, _ := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("marketlog: %v", err)
	}
}

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "marketlog",
		Short: "Filter an engine log and plot its market data",
		Long: `marketlog copies the tagged lines of an engine log into a timestamped
filtered log, decodes every MarketDataPoint and renders the tracked
metrics as an HTML chart.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", configPathFromEnv(), "Config file (env "+configEnv+")")
	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "", "Engine log to read (overrides input.log_path)")
	cmd.Flags().BoolVar(&opts.memoryMode, "memory", false, "Plot memory layout instead of metric comparison")
	cmd.Flags().BoolVar(&opts.transform, "transform", false, "Use min-max normalization instead of order of magnitude scaling")
	return cmd, opts
}

func configPathFromEnv() string {
	if p := strings.TrimSpace(os.Getenv(configEnv)); p != "" {
		return p
	}
	return defaultConfigPath
}

// applyOverrides copies the flags the user actually set onto cfg.
func (o *options) applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if strings.TrimSpace(o.inputPath) != "" {
		cfg.Input.LogPath = o.inputPath
	}
	if cmd.Flags().Changed("memory") {
		cfg.Plot.PlotMemory = o.memoryMode
	}
	if cmd.Flags().Changed("transform") {
		cfg.Plot.Transform = o.transform
	}
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, found, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return err
	}
	opts.applyOverrides(cmd, cfg)

	closer, err := logger.SetupFile(cfg.App.LogPath, cfg.App.LogMaxSizeMB)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)
	if found {
		logger.Infof("config loaded from %s", opts.configPath)
	} else {
		logger.Infof("no config at %s, using defaults", opts.configPath)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	rep, err := a.Run(context.Background())
	if err != nil {
		return err
	}
	logger.InfoBlock(rep.Summary())
	return nil
}
