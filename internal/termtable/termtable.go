// Package termtable draws record tables for the terminal, measuring cells
// by display width so wide characters line up.
package termtable

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bjaus/tablehtml"
)

// ErrUnknownBorder is returned by [ParseBorder] for an unrecognized name.
var ErrUnknownBorder = errors.New("unknown border style")

// Border selects the characters used to draw the table frame.
type Border int

const (
	Rounded Border = iota
	ASCII
	None
)

// ParseBorder parses "rounded", "ascii" or "none".
func ParseBorder(s string) (Border, error) {
	switch strings.ToLower(s) {
	case "", "rounded":
		return Rounded, nil
	case "ascii":
		return ASCII, nil
	case "none":
		return None, nil
	}
	return Rounded, fmt.Errorf("%w: %q", ErrUnknownBorder, s)
}

// Alignment is the horizontal placement of text within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[Border]borderChars{
	Rounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	ASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
}

// Table is a terminal rendering of a record table.
type Table struct {
	Title   string
	Header  []string
	Rows    [][]string
	Caption string
	Border  Border
	// Align holds per-column alignment. Missing entries align left.
	Align []Alignment
	// MaxWidth caps every column; longer cells are truncated with "...".
	// Zero means no cap.
	MaxWidth int
	// HeaderStyle decorates each padded header cell, e.g. with color.
	HeaderStyle func(string) string
}

// FromRecords builds a table showing the given columns of records. Headers
// are the display names for the columns and default to the column keys.
func FromRecords(columns, headers []string, records []tablehtml.Record) Table {
	if len(headers) == 0 {
		headers = columns
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			if v, ok := rec.Get(col); ok {
				row[j] = tablehtml.Text(v)
			}
		}
		rows[i] = row
	}
	return Table{
		Header: headers,
		Rows:   rows,
		Align:  NumericAlign(len(columns), rows),
	}
}

// NumericAlign right-aligns every column whose non-empty cells all read as
// numbers, ignoring currency symbols, thousands separators and percent signs.
func NumericAlign(numCols int, rows [][]string) []Alignment {
	aligns := make([]Alignment, numCols)
	for col := range numCols {
		seen := false
		numeric := true
		for _, row := range rows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			seen = true
			if !isNumeric(row[col]) {
				numeric = false
				break
			}
		}
		if seen && numeric {
			aligns[col] = AlignRight
		}
	}
	return aligns
}

var numberNoise = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", "¥", "", "%", "")

func isNumeric(s string) bool {
	s = strings.TrimSpace(numberNoise.Replace(s))
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Write draws the table to w. An empty table without header writes nothing.
func (t Table) Write(w io.Writer) error {
	if len(t.Header) == 0 && len(t.Rows) == 0 {
		return nil
	}

	numCols := colCount(t.Header, t.Rows)
	widths := computeWidths(numCols, t.Header, t.Rows)
	if t.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.MaxWidth)
		}
	}
	aligns := extendAligns(t.Align, numCols)

	var err error
	if t.Border == None {
		err = t.renderPlain(w, widths, aligns)
	} else {
		err = t.renderBordered(w, widths, aligns)
	}
	if err != nil {
		return err
	}

	if t.Caption != "" {
		if _, err := fmt.Fprintln(w, t.Caption); err != nil {
			return err
		}
	}
	return nil
}

func colCount(header []string, rows [][]string) int {
	n := len(header)
	for _, row := range rows {
		n = max(n, len(row))
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		widths[i] = max(widths[i], runewidth.StringWidth(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// --- Plain table (None) ---

func (t Table) renderPlain(w io.Writer, widths []int, aligns []Alignment) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}
	if len(t.Header) > 0 {
		if err := writePlainRow(w, t.Header, widths, aligns, t.HeaderStyle); err != nil {
			return err
		}
		if err := writePlainSep(w, widths); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := writePlainRow(w, row, widths, aligns, nil); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment, style func(string) string) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = styleCell(formatCell(cellAt(cells, i), width, aligns[i]), style)
	}
	line := strings.TrimRight(strings.Join(parts, "  "), " ")
	_, err := fmt.Fprintln(w, line)
	return err
}

// --- Bordered table ---

func (t Table) renderBordered(w io.Writer, widths []int, aligns []Alignment) error {
	bc := borderSets[t.Border]

	if t.Title != "" {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := innerWidth(widths) - 2
		title := formatCell(t.Title, inner, AlignCenter)
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, title, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if len(t.Header) > 0 {
		if err := drawBorderedRow(w, t.Header, widths, aligns, bc.vertical, t.HeaderStyle); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical, nil); err != nil {
			return err
		}
	}

	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// innerWidth is the width between the outer vertical borders: each cell
// plus one space of padding per side, and one separator between cells.
func innerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string, style func(string) string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		sb.WriteString(" ")
		sb.WriteString(styleCell(formatCell(cellAt(cells, i), width, aligns[i]), style))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func styleCell(s string, style func(string) string) string {
	if style == nil {
		return s
	}
	return style(s)
}

func formatCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
