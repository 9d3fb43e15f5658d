package main

import (
	_ "embed"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml"
	"github.com/bjaus/tablehtml/internal/dataset"
)

//go:embed assets/dashboard.css
var dashboardCSS string

type dashboardOptions struct {
	datasets []string
	output   string
	title    string
}

func newDashboardCmd(a *app) *cobra.Command {
	var opts dashboardOptions
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render several datasets as collapsible sections of one page",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.dashboard(opts)
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&opts.datasets, "datasets", "d", nil, "datasets to include (default all)")
	f.StringVarP(&opts.output, "output", "o", "interactive_dashboard.html", "output file, or - for stdout")
	f.StringVar(&opts.title, "title", "", "page title (default from config)")
	return cmd
}

func (a *app) dashboard(opts dashboardOptions) error {
	infos, err := a.discover()
	if err != nil {
		return err
	}

	selected := infos
	if len(opts.datasets) > 0 {
		selected = selected[:0:0]
		for _, name := range opts.datasets {
			info, err := dataset.Find(infos, name)
			if err != nil {
				a.ui.Warning("dataset %q not found, skipping", name)
				continue
			}
			selected = append(selected, info)
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("%w: nothing to put on the dashboard", dataset.ErrDatasetNotFound)
	}

	title := opts.title
	if title == "" {
		title = a.cfg.Dashboard.Title
	}
	rep := &tablehtml.Report{
		Title:       title,
		Description: fmt.Sprintf("Generated from **%d** data sources on %s.", len(selected), time.Now().Format(generatedLayout)),
		CSS:         dashboardCSS,
	}
	for _, info := range selected {
		d, err := dataset.Load(info)
		if err != nil {
			return err
		}
		rep.Sections = append(rep.Sections, a.dashboardSection(d))
	}

	output := a.outputPath(opts.output)
	if err := a.writeOutput(output, rep.Write); err != nil {
		return err
	}
	if output != "-" {
		a.ui.Success("dashboard written to %s (%d sections)", output, len(rep.Sections))
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slug turns a dataset name into a CSS class fragment.
func slug(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func (a *app) dashboardSection(d *dataset.Dataset) tablehtml.ReportSection {
	data, title := d.Table()
	// Config keys are case-insensitive, so dataset names are matched the same way.
	color, ok := a.cfg.Dashboard.Colors[strings.ToLower(d.Name)]
	if !ok {
		color = a.cfg.Dashboard.Color
	}
	s := slug(d.Name)
	return tablehtml.ReportSection{
		Title:     title,
		Collapsed: !slices.ContainsFunc(a.cfg.Dashboard.Open, func(name string) bool {
			return strings.EqualFold(name, d.Name)
		}),
		Class:     s + "-section",
		Table: tablehtml.TableSpec{
			Class:      strings.TrimSpace(a.cfg.Table.Class + " " + s + "-table"),
			Sortable:   a.cfg.Table.Sortable,
			Striped:    a.cfg.Table.Striped,
			Responsive: a.cfg.Table.Responsive,
			Styles: map[string]string{
				string(tablehtml.ElementHeader): "background-color: " + color + "; color: white; padding: 12px; border: 1px solid #ddd;",
				string(tablehtml.ElementCell):   "padding: 10px; border: 1px solid #ddd;",
			},
		},
		Value: data,
	}
}
