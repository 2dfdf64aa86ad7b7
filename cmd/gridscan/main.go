// gridscan finds the tables of page images and prints their layout.
//
// Usage:
//
//	gridscan [flags] <file or directory>...
//
// Directories are scanned (not recursively) for supported images. Settings
// are read from $XDG_CONFIG_HOME/gridscan/config.toml (or .yaml) when present
// and can be overridden with flags.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsawler/gridscan"
	"github.com/tsawler/gridscan/config"
	"github.com/tsawler/gridscan/internal/log"
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/ocr"
	"github.com/tsawler/gridscan/reader"
)

const appName = "gridscan"

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "0.1.0"

// AppConfig holds the command line settings
type AppConfig struct {
	configPath   string
	implicitRows bool
	borderless   bool
	headers      bool
	workers      int
	ocr          bool
	lang         string
	debug        bool
}

// collectFiles expands directories into the supported images they contain.
// Files given explicitly are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && reader.IsSupported(e.Name()) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// loadConfig reads the configuration file and applies the flags set on the
// command line.
func loadConfig(cmd *cobra.Command, app *AppConfig) (*config.Config, error) {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("implicit-rows") {
		cfg.Extraction.ImplicitRows = app.implicitRows
	}
	if flags.Changed("borderless") {
		cfg.Extraction.BorderlessTables = app.borderless
	}
	if flags.Changed("headers") {
		cfg.Extraction.BorderlessHeaders = app.headers
	}
	if flags.Changed("workers") {
		cfg.Workers = app.workers
	}
	if flags.Changed("ocr") {
		cfg.OCR.Enabled = app.ocr
	}
	if flags.Changed("lang") {
		cfg.OCR.Language = app.lang
	}
	if app.debug {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// printTables writes one line per table found
func printTables(w io.Writer, files []string, results [][]*model.Table) {
	header := color.New(color.FgHiMagenta, color.Bold)
	dim := color.New(color.FgHiBlack)

	for i, file := range files {
		header.Fprintf(w, "%s", file)
		fmt.Fprintf(w, ": %d tables\n", len(results[i]))
		for j, t := range results[i] {
			b := t.BBox()
			fmt.Fprintf(w, "  #%d %dx%d ", j+1, t.NbRows(), t.NbColumns())
			dim.Fprintf(w, "(%d,%d)-(%d,%d)\n", b.X1, b.Y1, b.X2, b.Y2)
			for _, row := range t.Content {
				fmt.Fprintf(w, "    %q\n", row)
			}
		}
	}
}

func runApp(ctx context.Context, cmd *cobra.Command, app *AppConfig, args []string) error {
	cfg, err := loadConfig(cmd, app)
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported images found")
	}

	ext := gridscan.New().Configure(cfg)
	workers := cfg.Workers
	if cfg.OCR.Enabled {
		client, err := ocr.New()
		if err != nil {
			return err
		}
		defer client.Close() // nolint: errcheck
		if err := client.SetLanguage(cfg.OCR.Language); err != nil {
			return fmt.Errorf("setting OCR language: %w", err)
		}
		ext = ext.OCR(client)
		// A Tesseract client serves one page at a time
		workers = 1
	}

	results, err := ext.ExtractFiles(ctx, files, workers)
	if err != nil {
		return err
	}
	printTables(cmd.OutOrStdout(), files, results)
	return nil
}

func newRootCmd() *cobra.Command {
	app := &AppConfig{}

	rootCmd := &cobra.Command{
		Use:   appName + " [flags] <file or directory>...",
		Short: "Find tables in page images",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Find bordered and borderless tables in scanned pages. %s",
			color.New(color.FgBlue).Sprintf("(%s)", Version),
		),
		Version:      Version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd.Context(), cmd, app, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&app.configPath, "config", "c", config.DefaultPath(), "Configuration file (TOML or YAML)")
	flags.BoolVarP(&app.implicitRows, "implicit-rows", "i", false, "Split rows holding several lines of text")
	flags.BoolVarP(&app.borderless, "borderless", "b", false, "Also look for tables without rules")
	flags.BoolVar(&app.headers, "headers", false, "Add a header row above bordered tables")
	flags.IntVarP(&app.workers, "workers", "w", 0, "Pages processed in parallel (0: one per CPU)")
	flags.BoolVar(&app.ocr, "ocr", false, "Recognize the text of the cells (needs a build with -tags ocr)")
	flags.StringVarP(&app.lang, "lang", "l", "eng", "OCR language")
	flags.BoolVarP(&app.debug, "debug", "d", false, "Log each processing step")
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
