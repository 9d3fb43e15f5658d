package dataset

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every supported dataset file below a directory.
const DefaultPattern = "**/*.{json,jsonl,ndjson,csv,tsv,yaml,yml}"

// Info locates one dataset file.
type Info struct {
	// Name is the slash-separated path relative to the data directory,
	// without extension.
	Name   string
	Path   string
	Format Format
}

// Discover returns the datasets under dir whose relative path matches the
// doublestar pattern, sorted by name. Files with an unsupported extension
// are ignored.
func Discover(dir, pattern string) ([]Info, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("discover datasets in %q: %w", dir, err)
	}

	infos := make([]Info, 0, len(matches))
	for _, m := range matches {
		f, err := FormatFromPath(m)
		if err != nil {
			continue
		}
		infos = append(infos, Info{
			Name:   strings.TrimSuffix(m, path.Ext(m)),
			Path:   filepath.Join(dir, filepath.FromSlash(m)),
			Format: f,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Find returns the dataset called name.
func Find(infos []Info, name string) (Info, error) {
	for _, info := range infos {
		if info.Name == name {
			return info, nil
		}
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return Info{}, fmt.Errorf("%w: %q (available: %s)", ErrDatasetNotFound, name, strings.Join(names, ", "))
}
