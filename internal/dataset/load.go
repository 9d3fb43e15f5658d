package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/tablehtml"
)

// Load reads and decodes the dataset described by info.
func Load(info Info) (*Dataset, error) {
	f, err := os.Open(info.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", info.Name, err)
	}
	defer f.Close()
	return Decode(info.Name, info.Format, f)
}

// Decode decodes a dataset of the given format from r.
func Decode(name string, format Format, r io.Reader) (*Dataset, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", name, err)
	}

	d := &Dataset{Name: name, Format: format}
	switch format {
	case JSON:
		if !gjson.ValidBytes(src) {
			return nil, fmt.Errorf("%w: %q is not valid JSON", ErrDecodeDataset, name)
		}
		d.source = string(src)
		d.Data = jsonValue(gjson.ParseBytes(src))
	case JSONL:
		d.Data, err = decodeLines(string(src))
		d.source = string(src)
	case CSV:
		d.Data, err = decodeDelimited(src, ',')
	case TSV:
		d.Data, err = decodeDelimited(src, '\t')
	case YAML:
		d.Data, err = decodeYAML(src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrDecodeDataset, name, err)
	}
	return d, nil
}

// jsonValue converts a gjson result into renderer data. Objects keep their
// key order as a Record and numbers keep their source text.
func jsonValue(res gjson.Result) any {
	switch {
	case res.IsObject():
		rec := tablehtml.Record{}
		res.ForEach(func(k, v gjson.Result) bool {
			rec = rec.Set(k.String(), jsonValue(v))
			return true
		})
		return rec
	case res.IsArray():
		items := []any{}
		res.ForEach(func(_, v gjson.Result) bool {
			items = append(items, jsonValue(v))
			return true
		})
		return items
	}

	switch res.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return json.Number(res.Raw)
	case gjson.String:
		return res.Str
	default:
		return nil
	}
}

func decodeLines(src string) ([]any, error) {
	items := []any{}
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("line %d is not valid JSON", i+1)
		}
		items = append(items, jsonValue(gjson.Parse(line)))
	}
	return items, nil
}

func decodeDelimited(src []byte, comma rune) (tablehtml.RawTable, error) {
	cr := csv.NewReader(bytes.NewReader(src))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	if comma == '\t' {
		cr.LazyQuotes = true
	}
	lines, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	table := make(tablehtml.RawTable, len(lines))
	for i, line := range lines {
		row := make([]any, len(line))
		for j, cell := range line {
			row[j] = cell
		}
		table[i] = row
	}
	return table, nil
}

func decodeYAML(src []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return tablehtml.NodeValue(&doc)
}
