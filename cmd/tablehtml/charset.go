package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml"
)

func newFixCharsetCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "fix-charset [glob...]",
		Short: "Add a UTF-8 charset declaration to HTML files missing one",
		Long: `Add a UTF-8 charset declaration to HTML files missing one.

Globs support ** and are matched relative to the working directory. Without
arguments every .html file below the output directory is checked.`,
		RunE: func(_ *cobra.Command, args []string) error {
			return a.fixCharset(args, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report files that need fixing without changing them")
	return cmd
}

func (a *app) fixCharset(patterns []string, dryRun bool) error {
	if len(patterns) == 0 {
		patterns = []string{filepath.Join(a.cfg.OutputDir, "**", "*.html")}
	}

	var files []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return usageError{fmt.Errorf("glob %q: %w", p, err)}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		a.ui.Warning("no HTML files matched")
		return nil
	}

	fixed := 0
	for _, file := range files {
		changed, err := fixFile(file, dryRun)
		switch {
		case errors.Is(err, tablehtml.ErrNoHead):
			a.ui.Warning("%s: no <head> element, skipped", file)
		case err != nil:
			return err
		case changed:
			fixed++
			a.log.Info("charset added", "file", file, "dry_run", dryRun)
		}
	}

	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	a.ui.Success("%s %d of %d files", verb, fixed, len(files))
	return nil
}

func fixFile(path string, dryRun bool) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, changed, err := tablehtml.EnsureCharset(string(src))
	if err != nil || !changed || dryRun {
		return changed, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
