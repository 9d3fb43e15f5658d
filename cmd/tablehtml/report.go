package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml"
)

func newReportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report <definition.yaml>",
		Short: "Render a multi-table report described in YAML",
		Long: `Render a multi-table report described in YAML.

The definition lists sections, each with a title, table options and inline
data:

  title: Quarterly Review
  description: Figures for **Q1**.
  sections:
    - title: Sales
      collapsed: false
      table: {sortable: true, striped: true, order: [region]}
      data:
        - {region: North, total: 1200}
        - {region: South, total: 950}`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.report(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default <definition>.html)")
	return cmd
}

func (a *app) report(definition, output string) error {
	f, err := os.Open(definition)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	rep, err := tablehtml.LoadReport(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", definition, err)
	}
	a.log.Debug("report loaded", "file", definition, "sections", len(rep.Sections))

	if output == "" {
		output = strings.TrimSuffix(filepath.Base(definition), filepath.Ext(definition)) + ".html"
	}
	output = a.outputPath(output)
	if err := a.writeOutput(output, rep.Write); err != nil {
		return err
	}
	if output != "-" {
		a.ui.Success("report written to %s (%d sections)", output, len(rep.Sections))
	}
	return nil
}
