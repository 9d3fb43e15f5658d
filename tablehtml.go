package tablehtml

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidInputType = errors.New("invalid input type")
	ErrDecodeReport     = errors.New("decode report")
	ErrNoHead           = errors.New("document has no <head> element")
)

// acceptedShapes is appended to every ErrInvalidInputType message.
const acceptedShapes = "input must be a record (mapping), a sequence of records, or a header+rows table (sequence of sequences)"

// Field is a single column name and value pair of a [Record].
type Field struct {
	Key   string
	Value any
}

// Record is an ordered mapping from column name to scalar value.
// Key order is insertion order.
type Record []Field

// R builds a Record from alternating key/value arguments:
//
//	tablehtml.R("Name", "Alice", "Age", 30)
//
// A trailing key without a value gets a nil value. Non-string keys are
// formatted with the cell text rule.
func R(kv ...any) Record {
	r := make(Record, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		r = r.Set(Text(kv[i]), v)
	}
	return r
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set returns r with key set to v. An existing key keeps its position and
// has its value replaced.
func (r Record) Set(key string, v any) Record {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = v
			return r
		}
	}
	return append(r, Field{Key: key, Value: v})
}

// Keys returns the record's keys in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// RawTable is a header row followed by positional data rows.
type RawTable [][]any

// Text converts a scalar value to its canonical text form. nil becomes the
// empty string.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	default:
		return fmt.Sprint(t)
	}
}

// Escape returns the HTML-escaped text form of v.
func Escape(v any) string {
	return html.EscapeString(Text(v))
}
