// Package tablehtml renders tabular data as HTML tables.
//
// A [Renderer] is built once with [New] and functional options, then used
// for any number of calls. Its configuration never changes after
// construction, so a single Renderer is safe for concurrent use.
//
//	r := tablehtml.New(tablehtml.WithClass("data"), tablehtml.WithStriped(true))
//	frag, err := r.Render([]tablehtml.Record{
//		tablehtml.R("Name", "Alice", "Age", 30),
//		tablehtml.R("Name", "Bob", "Age", 25),
//	})
//
// # Input Shapes
//
// Three shapes are accepted, each with a constructor:
//
//   - [Single]: one [Record], rendered as a one-row table
//   - [Records]: a record collection; columns are the union of all keys
//   - [Raw]: a header row followed by positional rows ([RawTable])
//
// [Detect] classifies loosely typed values such as decoded JSON or YAML.
// Plain Go maps carry no key order, so [FromMap] sorts their keys; use
// [Record] directly when order matters.
//
// # Columns
//
// Columns appear in first-seen order across the records. [WithHeadersOrder]
// moves named columns to the front and [WithHeaders] maps column names to
// display names. [Columns] exposes the same ordering for other renderers.
//
// # Markup
//
// Every header and cell is HTML-escaped, as are the class, id, style and
// attribute values. Values are converted with [Text]: nil becomes empty,
// booleans become true or false.
//
// Options control the table element:
//
//   - [WithClass], [WithID], [WithAttribute], [WithAttributes]
//   - [WithSortable]: adds the sortable class; see [Renderer.SortAssets]
//   - [WithStriped]: even/odd row classes, counted over all input elements
//   - [WithResponsive]: adds the responsive class
//   - [WithStyle]: inline style for the table, header or data cells
//
// # Sorting
//
// Sorting is client-side. [Renderer.SortAssets] returns the stylesheet and
// script that make every table with the sortable class clickable; tables
// themselves carry no script. The script detects numeric, date and text
// columns and toggles direction on repeated clicks. [SortScriptVersion]
// changes whenever the script does.
//
// # Containers and Documents
//
// [Renderer.Collapsible] wraps markup in a <details> element and
// [Renderer.CollapsibleWithCSS] adds a stylesheet scoped to its class.
// [Renderer.Document] produces a complete UTF-8 page and includes the sort
// assets when the renderer is sortable.
//
// A [Report] combines several tables, each with its own options, into one
// document. Reports are usually loaded from YAML with [LoadReport].
//
// # Charset
//
// [HasCharset] and [EnsureCharset] detect and add a charset declaration in
// existing HTML files.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidInputType]: input is not one of the accepted shapes
//   - [ErrDecodeReport]: invalid report definition
//   - [ErrNoHead]: document has no <head> to insert a charset into
package tablehtml
