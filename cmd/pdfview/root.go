package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/pdfview/internal/app"
	"github.com/kk-code-lab/pdfview/internal/config"
	"github.com/kk-code-lab/pdfview/internal/engine/fitz"
	"github.com/kk-code-lab/pdfview/internal/logging"
	"github.com/kk-code-lab/pdfview/internal/sources"
)

var (
	cfgFile     string
	logFile     string
	logLevel    string
	width       string
	scale       float64
	concurrency int
	watchFlag   bool
	noResize    bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfview [source...]",
	Short: "Preview PDF documents in the terminal",
	Long: `pdfview renders every page of a PDF into the terminal, fitted to the
window width. Sources are file paths, glob patterns such as "papers/*.pdf",
or http(s) URLs. Without arguments the sources from the config file are used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Assigned here rather than in the literal to break the
	// rootCmd -> runPreview -> loadConfig -> rootCmd initialization cycle.
	rootCmd.RunE = runPreview

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	flags := rootCmd.Flags()
	flags.StringVar(&width, "width", "", `page box width, "auto" or a size such as "1200px"`)
	flags.Float64Var(&scale, "scale", 0, "initial zoom scale")
	flags.IntVar(&concurrency, "concurrency", 0, "max page fetches in flight (0 = all)")
	flags.BoolVarP(&watchFlag, "watch", "w", false, "reload when the file changes on disk")
	flags.BoolVar(&noResize, "no-resize", false, "do not refit pages when the terminal is resized")
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	// The preview flags live on the root command only.
	if cmd == rootCmd {
		if flags.Changed("width") {
			cfg.ContainerWidth = width
		}
		if flags.Changed("scale") {
			cfg.InitialScale = scale
		}
		if flags.Changed("concurrency") {
			cfg.PageConcurrency = concurrency
		}
		if flags.Changed("watch") {
			cfg.Watch = watchFlag
		}
		if flags.Changed("no-resize") {
			cfg.AutoBindResize = !noResize
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// sourceEntries picks the positional arguments, then the configured list,
// then the single configured source.
func sourceEntries(cfg *config.Config, args []string) []string {
	switch {
	case len(args) > 0:
		return args
	case len(cfg.Sources) > 0:
		return cfg.Sources
	default:
		return []string{cfg.Source}
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	srcs, err := sources.Expand(sourceEntries(cfg, args)...)
	if err != nil {
		return err
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no documents match %v", sourceEntries(cfg, args))
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(apppkg.Options{
		Sources: srcs,
		Config:  cfg,
		Engine:  fitz.New(),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	logger.Info("starting", "sources", len(srcs), "watch", cfg.Watch)
	app.Run()
	return app.Close()
}
