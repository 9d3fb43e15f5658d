package tablehtml

import (
	"fmt"
	"reflect"
	"sort"
)

// nilHeader is the column name used for a nil header cell of a [RawTable].
const nilHeader = "None"

// Input is one of the shapes the renderer accepts. Build it with [Single],
// [Records], [Raw], or [Detect] for loosely typed data.
type Input interface {
	rows() []row
}

// row is one normalized body entry. Non-mapping elements of a record
// collection stay in the sequence as placeholders with ok unset: they emit
// no markup but still count toward the striping index.
type row struct {
	rec Record
	ok  bool
}

type singleInput struct{ rec Record }

func (in singleInput) rows() []row {
	return []row{{rec: in.rec, ok: true}}
}

type recordsInput struct{ entries []row }

func (in recordsInput) rows() []row { return in.entries }

type rawInput struct{ table RawTable }

func (in rawInput) rows() []row {
	if len(in.table) == 0 {
		return nil
	}
	header := make([]string, len(in.table[0]))
	for i, cell := range in.table[0] {
		if cell == nil {
			header[i] = nilHeader
			continue
		}
		header[i] = Text(cell)
	}
	out := make([]row, 0, len(in.table)-1)
	for _, data := range in.table[1:] {
		rec := make(Record, 0, len(header))
		for i, key := range header {
			var v any
			if i < len(data) {
				v = data[i]
			}
			rec = rec.Set(key, v)
		}
		out = append(out, row{rec: rec, ok: true})
	}
	return out
}

// Single returns an Input holding one record.
func Single(r Record) Input {
	return singleInput{rec: r}
}

// Records returns an Input holding a record collection.
func Records(rs ...Record) Input {
	entries := make([]row, len(rs))
	for i, r := range rs {
		entries[i] = row{rec: r, ok: true}
	}
	return recordsInput{entries: entries}
}

// Raw returns an Input holding a header row followed by data rows. Data
// rows shorter than the header leave the trailing columns empty; values
// past the header's width are dropped.
func Raw(t RawTable) Input {
	return rawInput{table: t}
}

// FromMap converts a plain Go map into a Record. Go maps carry no order,
// so keys are sorted to keep output deterministic.
func FromMap[V any](m map[string]V) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	r := make(Record, 0, len(keys))
	for _, k := range keys {
		r = append(r, Field{Key: k, Value: m[k]})
	}
	return r
}

// Detect classifies loosely typed data. Mappings with string keys become a
// single record; a sequence of two or more elements that are all sequences
// becomes a header+rows table; any other sequence becomes a record
// collection in which non-mapping elements are skipped. Anything else fails
// with [ErrInvalidInputType].
func Detect(v any) (Input, error) {
	if in, ok := v.(Input); ok {
		return in, nil
	}
	if rec, ok := asRecord(v); ok {
		return Single(rec), nil
	}
	if rs, ok := v.([]Record); ok {
		return Records(rs...), nil
	}
	if items, ok := asSequence(v); ok {
		return detectSeq(len(items), func(i int) any { return items[i] }), nil
	}
	return nil, fmt.Errorf("%w: %s, got %T", ErrInvalidInputType, acceptedShapes, v)
}

func detectSeq(n int, at func(int) any) Input {
	if n >= 2 {
		table := make(RawTable, n)
		raw := true
		for i := range n {
			cells, ok := asSequence(at(i))
			if !ok {
				raw = false
				break
			}
			table[i] = cells
		}
		if raw {
			return Raw(table)
		}
	}
	entries := make([]row, n)
	for i := range n {
		if rec, ok := asRecord(at(i)); ok {
			entries[i] = row{rec: rec, ok: true}
		}
	}
	return recordsInput{entries: entries}
}

// asRecord reports whether v is a mapping with string keys and returns it
// as a Record. Plain maps are sorted by key.
func asRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Record:
		return t, true
	case *Record:
		if t == nil {
			return nil, false
		}
		return *t, true
	case map[string]any:
		return FromMap(t), true
	case map[string]string:
		return FromMap(t), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	rec := make(Record, 0, len(keys))
	for _, k := range keys {
		rec = append(rec, Field{Key: k.String(), Value: rv.MapIndex(k).Interface()})
	}
	return rec, true
}

// asSequence reports whether v is a slice or array that is not a Record and
// returns its elements.
func asSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil, Record, *Record:
		return nil, false
	case []any:
		return t, true
	case []string:
		cells := make([]any, len(t))
		for i, s := range t {
			cells[i] = s
		}
		return cells, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	cells := make([]any, rv.Len())
	for i := range cells {
		cells[i] = rv.Index(i).Interface()
	}
	return cells, true
}
