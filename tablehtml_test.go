package tablehtml_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bjaus/tablehtml"
)

// --- Helpers ---

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

// failAfter fails every write after the first n succeed.
type failAfter struct{ n int }

func (w *failAfter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("write failed")
	}
	w.n--
	return len(p), nil
}

func render(t *testing.T, r *tablehtml.Renderer, v any) string {
	t.Helper()
	out, err := r.Render(v)
	require.NoError(t, err)
	return out
}

// parsed is a table fragment reduced to its header and cell texts.
type parsed struct {
	headers []string
	rows    [][]string
	classes []string
}

func parseTable(t *testing.T, fragment string) parsed {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	require.NoError(t, err)

	var p parsed
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Th:
				p.headers = append(p.headers, text(n))
			case atom.Tr:
				if n.Parent != nil && n.Parent.DataAtom == atom.Tbody {
					p.rows = append(p.rows, nil)
					p.classes = append(p.classes, attr(n, "class"))
				}
			case atom.Td:
				p.rows[len(p.rows)-1] = append(p.rows[len(p.rows)-1], text(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return p
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// ============================================================
// Records
// ============================================================

func TestR(t *testing.T) {
	t.Parallel()
	rec := tablehtml.R("Name", "Alice", "Age", 30, "Name", "Bob", "Extra")
	assert.Equal(t, tablehtml.Record{
		{Key: "Name", Value: "Bob"},
		{Key: "Age", Value: 30},
		{Key: "Extra", Value: nil},
	}, rec)
	assert.Equal(t, []string{"Name", "Age", "Extra"}, rec.Keys())

	v, ok := rec.Get("Age")
	assert.True(t, ok)
	assert.Equal(t, 30, v)
	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestFromMapSortsKeys(t *testing.T) {
	t.Parallel()
	rec := tablehtml.FromMap(map[string]int{"b": 2, "a": 1, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, rec.Keys())
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestText(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   any
		want string
	}{
		"nil":         {in: nil, want: ""},
		"string":      {in: "x", want: "x"},
		"true":        {in: true, want: "true"},
		"int":         {in: 30, want: "30"},
		"negative":    {in: int64(-7), want: "-7"},
		"uint8":       {in: uint8(255), want: "255"},
		"float":       {in: 3.14, want: "3.14"},
		"whole float": {in: 2.0, want: "2"},
		"float32":     {in: float32(0.1), want: "0.1"},
		"json number": {in: json.Number("1.50"), want: "1.50"},
		"stringer":    {in: stringer{}, want: "stringer"},
		"error":       {in: errors.New("boom"), want: "boom"},
		"duration":    {in: 2 * time.Second, want: "2s"},
		"slice":       {in: []int{1, 2}, want: "[1 2]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tablehtml.Text(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "&lt;b&gt;Tom &amp; &#34;Jerry&#39;s&#34;&lt;/b&gt;", tablehtml.Escape(`<b>Tom & "Jerry's"</b>`))
}

// ============================================================
// Detect
// ============================================================

func TestDetect(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in          any
		wantHeaders []string
		wantRows    int
	}{
		"record":             {in: tablehtml.R("a", 1), wantHeaders: []string{"a"}, wantRows: 1},
		"record pointer":     {in: &tablehtml.Record{{Key: "a", Value: 1}}, wantHeaders: []string{"a"}, wantRows: 1},
		"map any":            {in: map[string]any{"b": 1, "a": 2}, wantHeaders: []string{"a", "b"}, wantRows: 1},
		"map string":         {in: map[string]string{"a": "x"}, wantHeaders: []string{"a"}, wantRows: 1},
		"records":            {in: []tablehtml.Record{tablehtml.R("a", 1), tablehtml.R("a", 2)}, wantHeaders: []string{"a"}, wantRows: 2},
		"slice of maps":      {in: []map[string]any{{"a": 1}, {"a": 2}}, wantHeaders: []string{"a"}, wantRows: 2},
		"slice of any":       {in: []any{tablehtml.R("a", 1), map[string]any{"b": 2}}, wantHeaders: []string{"a", "b"}, wantRows: 2},
		"raw table":          {in: tablehtml.RawTable{{"h"}, {1}, {2}}, wantHeaders: []string{"h"}, wantRows: 2},
		"nested any":         {in: []any{[]any{"h1", "h2"}, []any{1, 2}}, wantHeaders: []string{"h1", "h2"}, wantRows: 1},
		"string rows":        {in: [][]string{{"h"}, {"v"}}, wantHeaders: []string{"h"}, wantRows: 1},
		"single sequence":    {in: [][]string{{"h"}}, wantHeaders: nil, wantRows: 0},
		"mixed sequences":    {in: []any{[]any{"h"}, tablehtml.R("a", 1)}, wantHeaders: []string{"a"}, wantRows: 1},
		"strings skipped":    {in: []string{"x", "y"}, wantHeaders: nil, wantRows: 0},
		"empty slice":        {in: []any{}, wantHeaders: nil, wantRows: 0},
		"existing input":     {in: tablehtml.Records(tablehtml.R("a", 1)), wantHeaders: []string{"a"}, wantRows: 1},
		"empty record":       {in: tablehtml.Record{}, wantHeaders: nil, wantRows: 0},
		"nil record pointer": {in: []any{(*tablehtml.Record)(nil), tablehtml.R("a", 1)}, wantHeaders: []string{"a"}, wantRows: 1},
		"typed map":          {in: map[string]int{"Age": 30, "Rank": 1}, wantHeaders: []string{"Age", "Rank"}, wantRows: 1},
		"slice of typed map": {in: []map[string]int{{"a": 1}, {"b": 2}}, wantHeaders: []string{"a", "b"}, wantRows: 2},
		"typed rows":         {in: [][]int{{1, 2}, {3, 4}, {5, 6}}, wantHeaders: []string{"1", "2"}, wantRows: 2},
		"typed rows in any":  {in: []any{[]int{1}, []int{2}}, wantHeaders: []string{"1"}, wantRows: 1},
		"array of rows":      {in: [2][]string{{"h"}, {"v"}}, wantHeaders: []string{"h"}, wantRows: 1},
		"scalar slice":       {in: []int{1, 2}, wantHeaders: nil, wantRows: 0},
		"nil typed map":      {in: map[string]float64(nil), wantHeaders: nil, wantRows: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			in, err := tablehtml.Detect(tt.in)
			require.NoError(t, err)
			out, err := tablehtml.New().Table(in)
			require.NoError(t, err)
			p := parseTable(t, out)
			assert.Equal(t, tt.wantHeaders, p.headers)
			assert.Len(t, p.rows, tt.wantRows)
		})
	}
}

func TestDetectRejects(t *testing.T) {
	t.Parallel()
	tests := map[string]any{
		"nil":         nil,
		"int":         42,
		"string":      "text",
		"int pointer": new(int),
		"struct":      struct{ A int }{A: 1},
		"map of int":  map[int]string{1: "a"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tablehtml.Detect(in)
			require.ErrorIs(t, err, tablehtml.ErrInvalidInputType)
			assert.Contains(t, err.Error(), "sequence of records")

			_, err = tablehtml.New().Render(in)
			require.ErrorIs(t, err, tablehtml.ErrInvalidInputType)
		})
	}
}

// ============================================================
// Table markup
// ============================================================

func TestTableExactMarkup(t *testing.T) {
	t.Parallel()
	out := render(t, tablehtml.New(), tablehtml.R("Name", "Alice", "Age", 30))
	assert.Equal(t, `<table>
  <thead>
    <tr>
      <th>Name</th>
      <th>Age</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>Alice</td>
      <td>30</td>
    </tr>
  </tbody>
</table>`, out)
}

func TestTableEmpty(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		r    *tablehtml.Renderer
		in   any
		want string
	}{
		"empty collection": {r: tablehtml.New(), in: []tablehtml.Record{}, want: "<table>\n</table>"},
		"empty record":     {r: tablehtml.New(), in: tablehtml.Record{}, want: "<table>\n</table>"},
		"header only raw":  {r: tablehtml.New(), in: tablehtml.RawTable{}, want: "<table>\n</table>"},
		"keeps attributes": {
			r:    tablehtml.New(tablehtml.WithClass("data"), tablehtml.WithStriped(true), tablehtml.WithID("t1")),
			in:   []any{},
			want: `<table class="data striped" id="t1">` + "\n</table>",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.r, tt.in))
		})
	}

	out, err := tablehtml.New().Table(nil)
	require.NoError(t, err)
	assert.Equal(t, "<table>\n</table>", out)
}

func TestTableRawHeaderOnly(t *testing.T) {
	t.Parallel()
	out := render(t, tablehtml.New(), tablehtml.RawTable{{"a", "b"}, {}})
	p := parseTable(t, out)
	assert.Equal(t, []string{"a", "b"}, p.headers)
	assert.Equal(t, [][]string{{"", ""}}, p.rows)
}

func TestTableColumnUnion(t *testing.T) {
	t.Parallel()
	records := []tablehtml.Record{
		tablehtml.R("a", 1, "b", 2),
		tablehtml.R("c", 3, "a", 4),
	}
	p := parseTable(t, render(t, tablehtml.New(), records))
	assert.Equal(t, []string{"a", "b", "c"}, p.headers)
	assert.Equal(t, [][]string{{"1", "2", ""}, {"4", "", "3"}}, p.rows)
}

func TestTableHeadersOrder(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		order []string
		want  []string
	}{
		"partial":        {order: []string{"c"}, want: []string{"c", "a", "b", "d"}},
		"full":           {order: []string{"d", "c", "b", "a"}, want: []string{"d", "c", "b", "a"}},
		"unknown names":  {order: []string{"zzz", "b"}, want: []string{"b", "a", "c", "d"}},
		"duplicates":     {order: []string{"d", "d", "a"}, want: []string{"d", "a", "b", "c"}},
		"empty order":    {order: nil, want: []string{"a", "b", "c", "d"}},
		"only unknown":   {order: []string{"x", "y"}, want: []string{"a", "b", "c", "d"}},
		"reversed pairs": {order: []string{"b", "a"}, want: []string{"b", "a", "c", "d"}},
	}
	records := []tablehtml.Record{tablehtml.R("a", 1, "b", 2), tablehtml.R("c", 3, "d", 4)}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tablehtml.Columns(records, tt.order))
			r := tablehtml.New(tablehtml.WithHeadersOrder(tt.order...))
			assert.Equal(t, tt.want, parseTable(t, render(t, r, records)).headers)
		})
	}
}

func TestTableDisplayNames(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(
		tablehtml.WithHeaders(map[string]string{"first_name": "First Name", "unused": "Unused"}),
		tablehtml.WithHeadersOrder("age"),
	)
	p := parseTable(t, render(t, r, tablehtml.R("first_name", "Ann", "age", 41)))
	assert.Equal(t, []string{"age", "First Name"}, p.headers)
	assert.Equal(t, "First Name", r.DisplayName("first_name"))
	assert.Equal(t, "age", r.DisplayName("age"))
}

func TestTableEscapesEverything(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(
		tablehtml.WithHeaders(map[string]string{"k": "<i>K</i>"}),
		tablehtml.WithClass(`x" onload="y`),
		tablehtml.WithID("<id>"),
		tablehtml.WithStyle(tablehtml.ElementCell, `color: "red"`),
	)
	out := render(t, r, []tablehtml.Record{
		tablehtml.R("k", "<script>alert(1)</script>", "<b>", "Tom & Jerry's"),
	})

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<i>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, "<th>&lt;i&gt;K&lt;/i&gt;</th>")
	assert.Contains(t, out, "<th>&lt;b&gt;</th>")
	assert.Contains(t, out, "Tom &amp; Jerry&#39;s")
	assert.Contains(t, out, `class="x&#34; onload=&#34;y"`)
	assert.Contains(t, out, `id="&lt;id&gt;"`)
	assert.Contains(t, out, `<td style="color: &#34;red&#34;">`)

	p := parseTable(t, out)
	assert.Equal(t, []string{"<i>K</i>", "<b>"}, p.headers)
	assert.Equal(t, [][]string{{"<script>alert(1)</script>", "Tom & Jerry's"}}, p.rows)
}

func TestTableStriping(t *testing.T) {
	t.Parallel()
	records := []tablehtml.Record{tablehtml.R("n", 0), tablehtml.R("n", 1), tablehtml.R("n", 2), tablehtml.R("n", 3)}

	p := parseTable(t, render(t, tablehtml.New(tablehtml.WithStriped(true)), records))
	assert.Equal(t, []string{"even", "odd", "even", "odd"}, p.classes)

	p = parseTable(t, render(t, tablehtml.New(), records))
	assert.Equal(t, []string{"", "", "", ""}, p.classes)
}

func TestTableStripingCountsSkippedElements(t *testing.T) {
	t.Parallel()
	data := []any{tablehtml.R("n", 0), "not a record", tablehtml.R("n", 2), 42, tablehtml.R("n", 4), tablehtml.R("n", 5)}
	p := parseTable(t, render(t, tablehtml.New(tablehtml.WithStriped(true)), data))
	assert.Equal(t, [][]string{{"0"}, {"2"}, {"4"}, {"5"}}, p.rows)
	assert.Equal(t, []string{"even", "even", "even", "odd"}, p.classes)
}

func TestTableClassList(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		opts []tablehtml.Option
		want string
	}{
		"none":        {opts: nil, want: "<table>"},
		"class only":  {opts: []tablehtml.Option{tablehtml.WithClass("data")}, want: `<table class="data">`},
		"flags only":  {opts: []tablehtml.Option{tablehtml.WithResponsive(true), tablehtml.WithSortable(true)}, want: `<table class="sortable responsive">`},
		"all in order": {
			opts: []tablehtml.Option{
				tablehtml.WithResponsive(true), tablehtml.WithStriped(true),
				tablehtml.WithSortable(true), tablehtml.WithClass("data"),
			},
			want: `<table class="data sortable striped responsive">`,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out := render(t, tablehtml.New(tt.opts...), tablehtml.R("a", 1))
			first := strings.SplitN(out, "\n", 2)[0]
			assert.Equal(t, tt.want, first)
		})
	}
}

func TestTableAttributesAndStyles(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(
		tablehtml.WithClass("data"),
		tablehtml.WithID("people"),
		tablehtml.WithAttribute("data-source", "hr"),
		tablehtml.WithAttributes(map[string]string{"role": "grid", "aria-label": `A "list"`}),
		tablehtml.WithStyle(tablehtml.ElementTable, "width: 100%"),
		tablehtml.WithStyle(tablehtml.ElementHeader, "color: white"),
		tablehtml.WithStyle(tablehtml.ElementCell, "padding: 4px"),
	)
	out := render(t, r, tablehtml.R("a", 1))
	lines := strings.Split(out, "\n")
	assert.Equal(t, `<table class="data" id="people" data-source="hr" aria-label="A &#34;list&#34;" role="grid" style="width: 100%">`, lines[0])
	assert.Contains(t, out, `<th style="color: white">a</th>`)
	assert.Contains(t, out, `<td style="padding: 4px">1</td>`)
}

func TestTableEmptyStyleStillEmitted(t *testing.T) {
	t.Parallel()
	out := render(t, tablehtml.New(tablehtml.WithStyle(tablehtml.ElementCell, "")), tablehtml.R("a", 1))
	assert.Contains(t, out, `<td style="">1</td>`)
	assert.Contains(t, out, `<th>a</th>`)
}

func TestTableRawShapes(t *testing.T) {
	t.Parallel()
	table := tablehtml.RawTable{
		{"Name", nil, 3, "Name"},
		{"Alice", "x", "y", "dup", "extra"},
		{"Bob"},
	}
	p := parseTable(t, render(t, tablehtml.New(), table))
	assert.Equal(t, []string{"Name", "None", "3"}, p.headers)
	assert.Equal(t, [][]string{{"dup", "x", "y"}, {"", "", ""}}, p.rows)
	assert.NotContains(t, render(t, tablehtml.New(), table), "extra")
}

func TestTableNilHeaderIsDistinctFromEmpty(t *testing.T) {
	t.Parallel()
	out := render(t, tablehtml.New(), tablehtml.RawTable{{"N", nil, ""}, {"x", 1, 2}})
	assert.Contains(t, out, "<th>None</th>")
	p := parseTable(t, out)
	assert.Equal(t, []string{"N", "None", ""}, p.headers)
	assert.Equal(t, [][]string{{"x", "1", "2"}}, p.rows)
}

func TestTypedValuesRender(t *testing.T) {
	t.Parallel()
	p := parseTable(t, render(t, tablehtml.New(), map[string]int{"Age": 30}))
	assert.Equal(t, []string{"Age"}, p.headers)
	assert.Equal(t, [][]string{{"30"}}, p.rows)

	p = parseTable(t, render(t, tablehtml.New(), []any{[]int{1}, []int{2}}))
	assert.Equal(t, []string{"1"}, p.headers)
	assert.Equal(t, [][]string{{"2"}}, p.rows)

	assert.Equal(t, "<table>\n</table>", render(t, tablehtml.New(), []int{1, 2}))
}

func TestTableScalarRendering(t *testing.T) {
	t.Parallel()
	rec := tablehtml.R("bool", false, "nil", nil, "float", 1.5, "json", json.Number("007"))
	p := parseTable(t, render(t, tablehtml.New(), rec))
	assert.Equal(t, [][]string{{"false", "", "1.5", "007"}}, p.rows)
}

func TestWriteTableErrors(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(tablehtml.WithStriped(true))
	in := tablehtml.Records(tablehtml.R("a", 1, "b", 2), tablehtml.R("a", 3, "b", 4))

	counter := &failAfter{n: 1 << 30}
	require.NoError(t, r.WriteTable(counter, in))
	writes := 1<<30 - counter.n

	for n := range writes {
		err := r.WriteTable(&failAfter{n: n}, in)
		require.Error(t, err, "failing after %d writes", n)
	}
	require.Error(t, r.WriteTable(errWriter{}, tablehtml.Records()))
}

func TestRendererIsReusable(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(tablehtml.WithStriped(true), tablehtml.WithSortable(true))
	data := []tablehtml.Record{tablehtml.R("a", 1), tablehtml.R("a", 2)}
	want := render(t, r, data)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = r.Render(data)
		}()
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Equal(t, want, render(t, r, data))
}

func TestConfigIsImmutable(t *testing.T) {
	t.Parallel()
	headers := map[string]string{"a": "A"}
	order := []string{"b", "a"}
	r := tablehtml.New(tablehtml.WithHeaders(headers), tablehtml.WithHeadersOrder(order...))

	headers["a"] = "changed"
	order[0] = "a"
	cfg := r.Config()
	cfg.Headers["a"] = "also changed"
	cfg.HeadersOrder[0] = "zzz"

	p := parseTable(t, render(t, r, tablehtml.R("a", 1, "b", 2)))
	assert.Equal(t, []string{"b", "A"}, p.headers)
}

func TestWithConfig(t *testing.T) {
	t.Parallel()
	base := tablehtml.New(tablehtml.WithClass("data"), tablehtml.WithStriped(true))
	derived := tablehtml.New(tablehtml.WithConfig(base.Config()), tablehtml.WithSortable(true))

	got := derived.Config()
	assert.Equal(t, "data", got.TableClass)
	assert.True(t, got.Striped)
	assert.True(t, got.Sortable)
	assert.False(t, base.Sortable())
}

func TestResolve(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(tablehtml.WithHeadersOrder("b"))
	in, err := tablehtml.Detect([]any{tablehtml.R("a", 1, "b", 2), "skip", tablehtml.R("c", 3)})
	require.NoError(t, err)

	cols, records := r.Resolve(in)
	assert.Equal(t, []string{"b", "a", "c"}, cols)
	assert.Len(t, records, 2)

	cols, records = r.Resolve(nil)
	assert.Nil(t, cols)
	assert.Nil(t, records)
}

// ============================================================
// Sorting assets
// ============================================================

func TestSortAssets(t *testing.T) {
	t.Parallel()
	css, js := tablehtml.New().SortAssets()
	assert.Empty(t, css)
	assert.Empty(t, js)

	css, js = tablehtml.New(tablehtml.WithSortable(true)).SortAssets()
	assert.Equal(t, tablehtml.SortStyle(), css)
	assert.Equal(t, tablehtml.SortScript(), js)
	assert.True(t, strings.HasPrefix(css, "<style>"))
	assert.True(t, strings.HasSuffix(js, "</script>"))
	assert.Contains(t, css, "v"+tablehtml.SortScriptVersion)
	assert.Contains(t, js, "v"+tablehtml.SortScriptVersion)
	assert.Contains(t, js, "table.sortable")
	assert.Contains(t, js, "data-sortable")
	assert.Contains(t, js, "DOMContentLoaded")
}

func TestSortableTableCarriesNoHeaderMarkers(t *testing.T) {
	t.Parallel()
	out := render(t, tablehtml.New(tablehtml.WithSortable(true)), tablehtml.R("a", 1))
	assert.Contains(t, out, `class="sortable"`)
	assert.NotContains(t, out, "data-sortable")
	assert.NotContains(t, out, "<script>")
}

// ============================================================
// Collapsible
// ============================================================

func TestCollapsible(t *testing.T) {
	t.Parallel()
	r := tablehtml.New()
	markup := "<table>\n</table>"

	open := r.Collapsible(markup, tablehtml.Section{})
	assert.Equal(t, `<details class="collapsible-table" open>
  <summary class="collapsible-header">
    <span class="collapsible-title">Table</span>
    <span class="collapsible-icon">▼</span>
  </summary>
  <div class="collapsible-content">
    <table>
</table>
  </div>
</details>`, open)

	closed := r.Collapsible(markup, tablehtml.Section{Title: "Q1 <Sales>", Collapsed: true, Class: "sales", ID: "s1"})
	assert.True(t, strings.HasPrefix(closed, `<details class="sales" id="s1">`))
	assert.Contains(t, closed, `<span class="collapsible-title">Q1 &lt;Sales&gt;</span>`)
	assert.Contains(t, closed, markup)
}

func TestCollapsibleWithCSS(t *testing.T) {
	t.Parallel()
	r := tablehtml.New()
	out := r.CollapsibleWithCSS("<p>x</p>", tablehtml.Section{Title: "T", Class: "sales-section"})

	assert.True(t, strings.HasPrefix(out, "<style>\n.sales-section {"))
	assert.Contains(t, out, ".sales-section summary:hover")
	assert.Contains(t, out, ".sales-section[open] summary")
	assert.NotContains(t, out, "collapsible-table {")
	assert.True(t, strings.HasSuffix(out, r.Collapsible("<p>x</p>", tablehtml.Section{Title: "T", Class: "sales-section"})))
}

// ============================================================
// Document
// ============================================================

func TestDocument(t *testing.T) {
	t.Parallel()
	r := tablehtml.New()
	doc := r.Document("<table>\n</table>", "", "")
	assert.Equal(t, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n<title>HTML Table</title>\n</head>\n<body>\n<table>\n</table>\n</body>\n</html>\n", doc)
}

func TestDocumentSortableWithCSS(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(tablehtml.WithSortable(true))
	doc := r.Document("<p>body</p>", "Q1 & Q2", "body { margin: 0; }")

	assert.Contains(t, doc, "<title>Q1 &amp; Q2</title>")
	assert.Contains(t, doc, "<style>\nbody { margin: 0; }\n</style>\n")
	assert.Less(t, strings.Index(doc, tablehtml.SortStyle()), strings.Index(doc, "</head>"))
	assert.Greater(t, strings.Index(doc, tablehtml.SortScript()), strings.Index(doc, "<p>body</p>"))
	assert.True(t, tablehtml.HasCharset(doc))
}

func TestWriteDocumentErrors(t *testing.T) {
	t.Parallel()
	r := tablehtml.New(tablehtml.WithSortable(true))
	for n := range 5 {
		require.Error(t, r.WriteDocument(&failAfter{n: n}, "x", "t", "css"))
	}
}

// ============================================================
// Charset
// ============================================================

func TestHasCharset(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		doc  string
		want bool
	}{
		"meta charset":   {doc: `<html><head><meta charset="utf-8"></head></html>`, want: true},
		"http-equiv":     {doc: `<head><META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=ISO-8859-1"></head>`, want: true},
		"content type":   {doc: `<head><meta http-equiv="content-type" content="text/html"></head>`, want: false},
		"none":           {doc: `<html><head><title>x</title></head></html>`, want: false},
		"only in body":   {doc: `<html><head></head><body><meta charset="utf-8"></body></html>`, want: false},
		"mention in text": {doc: `<html><head><title>charset=utf-8</title></head></html>`, want: false},
		"empty":          {doc: "", want: false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tablehtml.HasCharset(tt.doc))
		})
	}
}

func TestEnsureCharset(t *testing.T) {
	t.Parallel()
	doc := "<!DOCTYPE html>\n<html>\n<head lang=\"en\">\n<title>x</title>\n</head>\n</html>"
	out, changed, err := tablehtml.EnsureCharset(doc)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "<!DOCTYPE html>\n<html>\n<head lang=\"en\">\n<meta charset=\"UTF-8\">\n<title>x</title>\n</head>\n</html>", out)

	again, changed, err := tablehtml.EnsureCharset(out)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, out, again)

	_, _, err = tablehtml.EnsureCharset("<p>no head</p>")
	require.ErrorIs(t, err, tablehtml.ErrNoHead)
}

// ============================================================
// Streams
// ============================================================

func TestCollect(t *testing.T) {
	t.Parallel()
	seq := func(yield func(tablehtml.Record) bool) {
		for i := range 3 {
			if !yield(tablehtml.R("n", i)) {
				return
			}
		}
	}
	r := tablehtml.New()
	out, err := r.Table(tablehtml.Collect(seq))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0"}, {"1"}, {"2"}}, parseTable(t, out).rows)

	var buf bytes.Buffer
	require.NoError(t, r.WriteIter(&buf, seq))
	assert.Equal(t, out, buf.String())
}

func TestCollectChan(t *testing.T) {
	t.Parallel()
	ch := make(chan tablehtml.Record)
	go func() {
		defer close(ch)
		ch <- tablehtml.R("a", 1)
		ch <- tablehtml.R("b", 2)
	}()
	out, err := tablehtml.New().Table(tablehtml.CollectChan(ch))
	require.NoError(t, err)
	p := parseTable(t, out)
	assert.Equal(t, []string{"a", "b"}, p.headers)
	assert.Equal(t, [][]string{{"1", ""}, {"", "2"}}, p.rows)
}

// ============================================================
// Fuzz
// ============================================================

func FuzzRender(f *testing.F) {
	for _, seed := range []string{"", "plain", "<script>alert(1)</script>", `" onmouseover="x`, "&amp;", "日本語"} {
		f.Add(seed, seed)
	}
	r := tablehtml.New(tablehtml.WithStriped(true), tablehtml.WithSortable(true))
	f.Fuzz(func(t *testing.T, key, value string) {
		out, err := r.Render(tablehtml.R(key, value))
		require.NoError(t, err)
		baseline, err := r.Render(tablehtml.R("k", "v"))
		require.NoError(t, err)
		assert.Equal(t, strings.Count(baseline, "<"), strings.Count(out, "<"))
		assert.Equal(t, strings.Count(baseline, ">"), strings.Count(out, ">"))
	})
}

// recordsFromBytes builds records whose keys come from a small alphabet, so
// key sets overlap between some records and are disjoint between others.
func recordsFromBytes(data []byte) []tablehtml.Record {
	keys := []string{"a", "b", "<c>", "d&e", "", "f"}
	var records []tablehtml.Record
	rec := tablehtml.Record{}
	for _, b := range data {
		if b%5 == 0 {
			records = append(records, rec)
			rec = tablehtml.Record{}
			continue
		}
		rec = rec.Set(keys[int(b)%len(keys)], int(b))
	}
	return append(records, rec)
}

func assertRecordTable(t *testing.T, records []tablehtml.Record) {
	t.Helper()
	out, err := tablehtml.New(tablehtml.WithStriped(true)).Render(records)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "<table"))
	assert.Equal(t, 1, strings.Count(out, "</table>"))

	cols := tablehtml.Columns(records, nil)
	p := parseTable(t, out)
	assert.Len(t, p.headers, len(cols))
	if len(cols) == 0 {
		assert.Empty(t, p.rows)
		return
	}
	require.Len(t, p.rows, len(records))
	for i, row := range p.rows {
		assert.Len(t, row, len(cols), "row %d", i)
	}
}

func TestRenderRandomRecordSequences(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		data := make([]byte, rng.IntN(64))
		for i := range data {
			data[i] = byte(rng.UintN(256))
		}
		assertRecordTable(t, recordsFromBytes(data))
	}
}

func FuzzRenderRecords(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1, 2, 3, 5, 7, 8, 10, 11})
	f.Add([]byte("overlapping and disjoint keys"))
	f.Fuzz(func(t *testing.T, data []byte) {
		assertRecordTable(t, recordsFromBytes(data))
	})
}

func TestWriteCollapsibleWithCSS(t *testing.T) {
	t.Parallel()
	r := tablehtml.New()
	s := tablehtml.Section{Title: "T", Class: "sales-section", ID: "s1"}

	var buf bytes.Buffer
	require.NoError(t, r.WriteCollapsibleWithCSS(&buf, "<p>x</p>", s))
	assert.Equal(t, r.CollapsibleWithCSS("<p>x</p>", s), buf.String())

	require.Error(t, r.WriteCollapsibleWithCSS(errWriter{}, "<p>x</p>", s))
	require.Error(t, r.WriteCollapsibleWithCSS(&failAfter{n: 1}, "<p>x</p>", s))
}
