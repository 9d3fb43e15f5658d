package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablehtml/internal/dataset"
	"github.com/bjaus/tablehtml/internal/termtable"
)

func newListCmd(a *app) *cobra.Command {
	var border string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available datasets",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := termtable.ParseBorder(border)
			if err != nil {
				return usageError{err}
			}
			return a.list(b)
		},
	}
	cmd.Flags().StringVar(&border, "border", "rounded", "table border: rounded, ascii or none")
	return cmd
}

func (a *app) list(border termtable.Border) error {
	infos, err := a.discover()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		a.ui.Warning("no datasets found in %s", a.cfg.DataDir)
		return nil
	}

	tbl := termtable.Table{
		Title:       "Datasets",
		Header:      []string{"Name", "Format", "Entries", "Kind"},
		Border:      border,
		Align:       []termtable.Alignment{termtable.AlignLeft, termtable.AlignLeft, termtable.AlignRight},
		HeaderStyle: a.ui.Bold,
	}
	failed := 0
	for _, info := range infos {
		d, err := dataset.Load(info)
		if err != nil {
			failed++
			a.log.Warn("dataset unreadable", "name", info.Name, "error", err)
			tbl.Rows = append(tbl.Rows, []string{info.Name, info.Format.String(), "", "unreadable"})
			continue
		}
		n, kind := d.Count()
		tbl.Rows = append(tbl.Rows, []string{info.Name, info.Format.String(), strconv.Itoa(n), kind})
	}
	if err := tbl.Write(a.stdout); err != nil {
		return err
	}
	if failed > 0 {
		a.ui.Warning("%d of %d datasets could not be read", failed, len(infos))
	}
	return nil
}
