package tablehtml

import (
	"maps"
	"slices"
	"sort"
)

// Element names a kind of table element that can carry an inline style.
type Element string

const (
	ElementTable  Element = "table"
	ElementHeader Element = "th"
	ElementCell   Element = "td"
)

// Attribute is a literal attribute placed on the table element. The name
// is written verbatim; the value is escaped.
type Attribute struct {
	Name  string
	Value string
}

// Config is the immutable configuration of a [Renderer].
type Config struct {
	TableClass   string
	TableID      string
	Attributes   []Attribute
	Headers      map[string]string
	HeadersOrder []string
	Sortable     bool
	Striped      bool
	Responsive   bool
	Styles       map[Element]string
}

func (c Config) clone() Config {
	c.Attributes = slices.Clone(c.Attributes)
	c.Headers = maps.Clone(c.Headers)
	c.HeadersOrder = slices.Clone(c.HeadersOrder)
	c.Styles = maps.Clone(c.Styles)
	return c
}

// Option configures a [Renderer] at construction.
type Option func(*Config)

// WithClass sets the table's CSS class.
func WithClass(class string) Option {
	return func(c *Config) { c.TableClass = class }
}

// WithID sets the table's id attribute.
func WithID(id string) Option {
	return func(c *Config) { c.TableID = id }
}

// WithAttribute appends a literal attribute to the table element.
// Attributes are written in the order they were added.
func WithAttribute(name, value string) Option {
	return func(c *Config) {
		c.Attributes = append(c.Attributes, Attribute{Name: name, Value: value})
	}
}

// WithAttributes appends every entry of attrs, sorted by name.
func WithAttributes(attrs map[string]string) Option {
	return func(c *Config) {
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.Attributes = append(c.Attributes, Attribute{Name: name, Value: attrs[name]})
		}
	}
}

// WithHeaders maps raw column names to display names.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(headers))
		}
		maps.Copy(c.Headers, headers)
	}
}

// WithHeadersOrder moves the named columns to the front, in order.
func WithHeadersOrder(names ...string) Option {
	return func(c *Config) { c.HeadersOrder = slices.Clone(names) }
}

// WithSortable enables client-side sorting.
func WithSortable(on bool) Option {
	return func(c *Config) { c.Sortable = on }
}

// WithStriped enables odd/even row classes.
func WithStriped(on bool) Option {
	return func(c *Config) { c.Striped = on }
}

// WithResponsive adds the responsive class token.
func WithResponsive(on bool) Option {
	return func(c *Config) { c.Responsive = on }
}

// WithStyle sets the inline style for one element kind.
func WithStyle(el Element, style string) Option {
	return func(c *Config) {
		if c.Styles == nil {
			c.Styles = make(map[Element]string)
		}
		c.Styles[el] = style
	}
}

// WithConfig replaces the whole configuration with a copy of cfg. Options
// after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg.clone() }
}

// Renderer turns tabular data into HTML. It only holds configuration that
// never changes after [New], so one Renderer can serve any number of calls,
// including concurrent ones.
type Renderer struct {
	cfg Config
}

// New returns a Renderer configured by opts.
func New(opts ...Option) *Renderer {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg.clone()}
}

// Config returns a copy of the renderer's configuration.
func (r *Renderer) Config() Config {
	return r.cfg.clone()
}

// Sortable reports whether the renderer emits sort behavior.
func (r *Renderer) Sortable() bool { return r.cfg.Sortable }
