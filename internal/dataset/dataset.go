// Package dataset discovers, decodes and shapes the data files that the
// tablehtml command renders.
package dataset

import (
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bjaus/tablehtml"
)

// Dataset is a decoded data file. Data holds Records for objects, []any for
// arrays and a RawTable for CSV and TSV files.
type Dataset struct {
	Name   string
	Format Format
	Data   any

	source string
}

// Select narrows the dataset to the value at a gjson path. For JSON Lines
// the path is applied to the array of lines. Only JSON sources support
// selection.
func (d *Dataset) Select(p string) (*Dataset, error) {
	if p == "" {
		return d, nil
	}
	var res gjson.Result
	switch d.Format {
	case JSON:
		res = gjson.Get(d.source, p)
	case JSONL:
		res = gjson.Get(d.source, ".."+p)
	default:
		return nil, fmt.Errorf("%w: path selection needs json or jsonl, not %s", ErrUnsupportedFormat, d.Format)
	}
	if !res.Exists() {
		return nil, fmt.Errorf("%w: %q in %q", ErrPathNotFound, p, d.Name)
	}
	return &Dataset{
		Name:   d.Name,
		Format: JSON,
		Data:   jsonValue(res),
		source: res.Raw,
	}, nil
}

// Table returns the data to render and a display title. A mapping with a
// single key holding a collection is unwrapped and titled after the key. A
// mapping whose values are all mappings becomes one record per key with a
// leading "Metric" column.
func (d *Dataset) Table() (any, string) {
	data, title := d.Data, Title(path.Base(d.Name))

	if rec, ok := data.(tablehtml.Record); ok && len(rec) == 1 {
		switch rec[0].Value.(type) {
		case []any, tablehtml.Record:
			data, title = rec[0].Value, Title(rec[0].Key)
		}
	}
	if rec, ok := data.(tablehtml.Record); ok && len(rec) > 0 && allRecords(rec) {
		data = metricRows(rec)
	}
	return data, title
}

// Count returns the number of entries in the dataset and what they are.
func (d *Dataset) Count() (int, string) {
	switch v := d.Data.(type) {
	case tablehtml.Record:
		if len(v) != 1 {
			return len(v), "top-level keys"
		}
		switch inner := v[0].Value.(type) {
		case []any:
			return len(inner), "records"
		case tablehtml.Record:
			return len(inner), "metrics"
		}
		return 1, "item"
	case []any:
		return len(v), "records"
	case tablehtml.RawTable:
		return max(len(v)-1, 0), "rows"
	}
	return 1, "item"
}

func allRecords(rec tablehtml.Record) bool {
	for _, f := range rec {
		if _, ok := f.Value.(tablehtml.Record); !ok {
			return false
		}
	}
	return true
}

func metricRows(rec tablehtml.Record) []tablehtml.Record {
	rows := make([]tablehtml.Record, 0, len(rec))
	for _, f := range rec {
		row := tablehtml.Record{{Key: "Metric", Value: Title(f.Key)}}
		for _, inner := range f.Value.(tablehtml.Record) {
			row = row.Set(inner.Key, inner.Value)
		}
		rows = append(rows, row)
	}
	return rows
}

// Title turns a snake_case key into a display title.
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
