package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml"
	"github.com/bjaus/tablehtml/internal/termtable"
)

type previewOptions struct {
	limit    int
	path     string
	border   string
	maxWidth int
}

func newPreviewCmd(a *app) *cobra.Command {
	var opts previewOptions
	cmd := &cobra.Command{
		Use:   "preview <dataset>",
		Short: "Show the first rows of a dataset in the terminal",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				opts.limit = a.cfg.Preview.Limit
			}
			if !cmd.Flags().Changed("border") {
				opts.border = a.cfg.Preview.Border
			}
			if !cmd.Flags().Changed("max-width") {
				opts.maxWidth = a.cfg.Preview.MaxWidth
			}
			return a.preview(args[0], opts)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.limit, "limit", "n", 10, "number of rows to show (0 for all)")
	f.StringVar(&opts.path, "path", "", "gjson path selecting part of a JSON dataset")
	f.StringVar(&opts.border, "border", "rounded", "table border: rounded, ascii or none")
	f.IntVar(&opts.maxWidth, "max-width", 40, "truncate cells wider than this (0 for no limit)")
	return cmd
}

func (a *app) preview(name string, opts previewOptions) error {
	if opts.limit < 0 {
		return usageError{fmt.Errorf("--limit must not be negative, got %d", opts.limit)}
	}
	border, err := termtable.ParseBorder(opts.border)
	if err != nil {
		return usageError{err}
	}

	d, err := a.load(name, opts.path)
	if err != nil {
		return err
	}
	data, title := d.Table()
	in, err := tablehtml.Detect(data)
	if err != nil {
		return fmt.Errorf("preview %q: %w", name, err)
	}

	r := tablehtml.New()
	columns, records := r.Resolve(in)
	total := len(records)
	if opts.limit > 0 && len(records) > opts.limit {
		records = records[:opts.limit]
	}

	tbl := termtable.FromRecords(columns, nil, records)
	tbl.Title = title
	tbl.Border = border
	tbl.MaxWidth = opts.maxWidth
	tbl.HeaderStyle = a.ui.Bold
	tbl.Caption = a.ui.Faint(fmt.Sprintf("%d of %d rows, %d columns", len(records), total, len(columns)))
	return tbl.Write(a.stdout)
}
