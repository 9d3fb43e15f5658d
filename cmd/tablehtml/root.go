package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml/internal/config"
	"github.com/bjaus/tablehtml/internal/dataset"
	"github.com/bjaus/tablehtml/internal/logging"
	"github.com/bjaus/tablehtml/internal/ui"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	ui      *ui.UI
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tablehtml",
		Short:         "Render datasets as interactive HTML tables",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./tablehtml.yaml)")
	pf.String("data-dir", "data", "directory holding the datasets")
	pf.String("output-dir", ".", "directory for generated files")
	pf.String("pattern", dataset.DefaultPattern, "glob selecting dataset files below the data directory")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("color", "auto", "color output: auto, always or never")

	root.AddCommand(
		newListCmd(a),
		newPreviewCmd(a),
		newTableCmd(a),
		newDashboardCmd(a),
		newReportCmd(a),
		newFixCharsetCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	mode, err := ui.ParseColorMode(cfg.Color)
	if err != nil {
		return usageError{err}
	}
	a.ui = ui.New(a.stderr, mode)

	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return usageError{err}
	}
	a.log = logging.New(a.stderr, format, cfg.Debug)
	a.log.Debug("config loaded", "data_dir", cfg.DataDir, "output_dir", cfg.OutputDir)

	cmd.SetContext(ui.WithUI(cmd.Context(), a.ui))
	return nil
}

// discover lists the datasets of the configured data directory.
func (a *app) discover() ([]dataset.Info, error) {
	infos, err := dataset.Discover(a.cfg.DataDir, a.cfg.Pattern)
	if err != nil {
		return nil, err
	}
	a.log.Debug("datasets discovered", "dir", a.cfg.DataDir, "count", len(infos))
	return infos, nil
}

// load finds and decodes the named dataset, narrowed to path when given.
func (a *app) load(name, path string) (*dataset.Dataset, error) {
	infos, err := a.discover()
	if err != nil {
		return nil, err
	}
	info, err := dataset.Find(infos, name)
	if err != nil {
		return nil, err
	}
	d, err := dataset.Load(info)
	if err != nil {
		return nil, err
	}
	a.log.Debug("dataset loaded", "name", info.Name, "format", info.Format)
	return d.Select(path)
}

// outputPath resolves name against the output directory. "-" means stdout
// and is returned unchanged.
func (a *app) outputPath(name string) string {
	if name == "-" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.OutputDir, name)
}

// writeOutput writes the output of render to path, or to stdout for "-".
func (a *app) writeOutput(path string, render func(io.Writer) error) error {
	if path == "-" {
		return render(a.stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	a.log.Info("file written", "path", path)
	return nil
}
