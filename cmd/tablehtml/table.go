package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml"
)

//go:embed assets/page.css
var pageCSS string

//go:embed assets/table.html.tmpl
var tablePageSource string

var tablePage = template.Must(template.New("table").Parse(tablePageSource))

// generatedLayout formats the generation time shown in page footers.
const generatedLayout = "January 2, 2006 at 3:04 PM"

type tableOptions struct {
	output   string
	path     string
	title    string
	noSort   bool
	noStripe bool
	fragment bool
	order    []string
}

func newTableCmd(a *app) *cobra.Command {
	var opts tableOptions
	cmd := &cobra.Command{
		Use:   "table <dataset>",
		Short: "Render one dataset as an HTML page",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.table(args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout (default <dataset>_table.html)")
	f.StringVar(&opts.path, "path", "", "gjson path selecting part of a JSON dataset")
	f.StringVar(&opts.title, "title", "", "page title (default derived from the dataset)")
	f.BoolVar(&opts.noSort, "no-sort", false, "disable column sorting")
	f.BoolVar(&opts.noStripe, "no-stripe", false, "disable striped rows")
	f.BoolVar(&opts.fragment, "fragment", false, "write only the table markup")
	f.StringSliceVar(&opts.order, "order", nil, "columns to place first, in order")
	return cmd
}

func (a *app) table(name string, opts tableOptions) error {
	d, err := a.load(name, opts.path)
	if err != nil {
		return err
	}
	data, title := d.Table()
	if opts.title != "" {
		title = opts.title
	}

	base := path.Base(d.Name)
	r := tablehtml.New(append(a.cfg.Table.Options(),
		tablehtml.WithClass(strings.TrimSpace(a.cfg.Table.Class+" "+base+"-table")),
		tablehtml.WithHeadersOrder(opts.order...),
		func(c *tablehtml.Config) {
			c.Sortable = c.Sortable && !opts.noSort
			c.Striped = c.Striped && !opts.noStripe
		},
	)...)

	frag, err := r.Render(data)
	if err != nil {
		return fmt.Errorf("render %q: %w", name, err)
	}

	output := opts.output
	if output == "" {
		output = base + "_table.html"
	}
	output = a.outputPath(output)

	err = a.writeOutput(output, func(w io.Writer) error {
		if opts.fragment {
			_, err := io.WriteString(w, frag+"\n")
			return err
		}
		var body strings.Builder
		err := tablePage.Execute(&body, map[string]any{
			"Title":     title,
			"Source":    path.Base(d.Name) + "." + d.Format.String(),
			"Sortable":  r.Sortable(),
			"Table":     template.HTML(frag),
			"Generated": time.Now().Format(generatedLayout),
		})
		if err != nil {
			return err
		}
		return r.WriteDocument(w, body.String(), title+" - Data Table", pageCSS)
	})
	if err != nil {
		return err
	}
	if output != "-" {
		n, kind := d.Count()
		a.ui.Success("table written to %s (%d %s)", output, n, kind)
	}
	return nil
}
