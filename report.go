package tablehtml

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// reportMarkdown renders report descriptions. Raw HTML in the source is
// dropped (goldmark's default).
var reportMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Report is a document made of several tables, usually loaded from YAML
// with [LoadReport].
type Report struct {
	Title string `yaml:"title"`
	// Description is Markdown rendered above the first section.
	Description string `yaml:"description"`
	// CSS is included verbatim in the document head.
	CSS string `yaml:"css"`
	// Sortable forces the sort script into the document even when no
	// section asks for it.
	Sortable bool            `yaml:"sortable"`
	Sections []ReportSection `yaml:"sections"`
}

// ReportSection is one table of a [Report].
type ReportSection struct {
	Title     string `yaml:"title"`
	Collapsed bool   `yaml:"collapsed"`
	Class     string `yaml:"class"`
	// Collapsible defaults to true. When false the table is placed under a
	// plain heading.
	Collapsible *bool     `yaml:"collapsible"`
	Table       TableSpec `yaml:"table"`
	Data        yaml.Node `yaml:"data"`

	// Value is used instead of Data when set, for reports built in code.
	Value any `yaml:"-"`
}

// TableSpec is the YAML form of a renderer [Config].
type TableSpec struct {
	Class      string            `yaml:"class"`
	ID         string            `yaml:"id"`
	Sortable   bool              `yaml:"sortable"`
	Striped    bool              `yaml:"striped"`
	Responsive bool              `yaml:"responsive"`
	Headers    map[string]string `yaml:"headers"`
	Order      []string          `yaml:"order"`
	Attributes map[string]string `yaml:"attributes"`
	Styles     map[string]string `yaml:"styles"`
}

// Options converts t into renderer options.
func (t TableSpec) Options() []Option {
	opts := []Option{
		WithClass(t.Class),
		WithID(t.ID),
		WithSortable(t.Sortable),
		WithStriped(t.Striped),
		WithResponsive(t.Responsive),
	}
	if len(t.Headers) > 0 {
		opts = append(opts, WithHeaders(t.Headers))
	}
	if len(t.Order) > 0 {
		opts = append(opts, WithHeadersOrder(t.Order...))
	}
	if len(t.Attributes) > 0 {
		opts = append(opts, WithAttributes(t.Attributes))
	}
	for el, style := range t.Styles {
		opts = append(opts, WithStyle(Element(el), style))
	}
	return opts
}

// LoadReport decodes a YAML report definition.
func LoadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeReport, err)
	}
	return &rep, nil
}

// Render renders the report as a complete document.
func (rep *Report) Render() (string, error) {
	var sb strings.Builder
	if err := rep.Write(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write renders the report and writes the document to w. The title is used
// both as the document title and as a heading. Collapsible
// sections get the ids section-1, section-2, ... in order.
func (rep *Report) Write(w io.Writer) error {
	var body strings.Builder
	if rep.Title != "" {
		fmt.Fprintf(&body, "<h1 class=\"report-title\">%s</h1>\n", html.EscapeString(rep.Title))
	}
	if rep.Description != "" {
		body.WriteString("<div class=\"report-description\">\n")
		if err := reportMarkdown.Convert([]byte(rep.Description), &body); err != nil {
			return fmt.Errorf("render description: %w", err)
		}
		body.WriteString("</div>\n")
	}

	sortable := rep.Sortable
	for i, sec := range rep.Sections {
		r := New(sec.Table.Options()...)
		sortable = sortable || r.Sortable()

		data, err := sec.data()
		if err != nil {
			return fmt.Errorf("section %d (%s): %w", i+1, sec.Title, err)
		}
		frag, err := r.Render(data)
		if err != nil {
			return fmt.Errorf("section %d (%s): %w", i+1, sec.Title, err)
		}

		if sec.Collapsible == nil || *sec.Collapsible {
			err = r.WriteCollapsibleWithCSS(&body, frag, Section{
				Title:     sec.Title,
				Collapsed: sec.Collapsed,
				Class:     sec.Class,
				ID:        fmt.Sprintf("section-%d", i+1),
			})
			if err != nil {
				return fmt.Errorf("section %d (%s): %w", i+1, sec.Title, err)
			}
		} else {
			fmt.Fprintf(&body, "<div class=\"table-section\">\n<h2 class=\"section-title\">%s</h2>\n%s\n</div>",
				html.EscapeString(sec.Title), frag)
		}
		body.WriteString("\n")
	}

	doc := New(WithSortable(sortable))
	return doc.WriteDocument(w, body.String(), rep.Title, rep.CSS)
}

func (sec ReportSection) data() (any, error) {
	if sec.Value != nil {
		return sec.Value, nil
	}
	if sec.Data.Kind == 0 {
		return Record(nil), nil
	}
	return NodeValue(&sec.Data)
}

// NodeValue converts a YAML node into renderer data, keeping mapping key
// order: mappings become [Record], sequences []any, scalars their decoded
// Go value.
func NodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return NodeValue(n.Content[0])
	case yaml.AliasNode:
		return NodeValue(n.Alias)
	case yaml.MappingNode:
		rec := make(Record, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := NodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec = rec.Set(n.Content[i].Value, v)
		}
		return rec, nil
	case yaml.SequenceNode:
		items := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := NodeValue(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}
