package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/pdfview/internal/engine/fitz"
	"github.com/kk-code-lab/pdfview/internal/export"
	"github.com/kk-code-lab/pdfview/internal/logging"
	"github.com/kk-code-lab/pdfview/internal/sources"
)

var (
	exportOutDir string
	exportWidth  float64
)

var exportCmd = &cobra.Command{
	Use:   "export <source>",
	Short: "Render every page of a document to PNG files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		srcs, err := sources.Expand(args[0])
		if err != nil {
			return err
		}
		if len(srcs) != 1 {
			return fmt.Errorf("export needs exactly one document, %q matched %d", args[0], len(srcs))
		}

		logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		written, err := export.Run(ctx, export.Options{
			Source:          srcs[0],
			OutDir:          exportOutDir,
			Width:           exportWidth,
			InitialScale:    cfg.InitialScale,
			PageConcurrency: cfg.PageConcurrency,
			Engine:          fitz.New(),
			Progress:        os.Stderr,
			Logger:          logger,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", len(written), exportOutDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutDir, "out", "o", ".", "output directory")
	exportCmd.Flags().Float64Var(&exportWidth, "width", export.DefaultWidth, "page width in pixels")
	rootCmd.AddCommand(exportCmd)
}
