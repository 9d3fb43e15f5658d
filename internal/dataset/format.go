package dataset

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrDecodeDataset     = errors.New("decode dataset")
	ErrPathNotFound      = errors.New("path not found")
)

// Format is the encoding of a dataset file.
type Format string

const (
	JSON  Format = "json"
	JSONL Format = "jsonl"
	CSV   Format = "csv"
	TSV   Format = "tsv"
	YAML  Format = "yaml"
)

var formats = []Format{JSON, JSONL, CSV, TSV, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. "yml" and "ndjson" are accepted as
// aliases.
func ParseFormat(s string) (Format, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "yml":
		return YAML, nil
	case "ndjson":
		return JSONL, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(p string) (Format, error) {
	ext := strings.TrimPrefix(path.Ext(p), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, p)
	}
	return ParseFormat(ext)
}
