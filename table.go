package tablehtml

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Table renders in as a table fragment.
func (r *Renderer) Table(in Input) (string, error) {
	var sb strings.Builder
	if err := r.WriteTable(&sb, in); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render detects the shape of v (see [Detect]) and renders it as a table
// fragment. It fails only with [ErrInvalidInputType].
func (r *Renderer) Render(v any) (string, error) {
	in, err := Detect(v)
	if err != nil {
		return "", err
	}
	return r.Table(in)
}

// WriteTable renders in as a table fragment and writes it to w. The
// fragment has no trailing newline.
func (r *Renderer) WriteTable(w io.Writer, in Input) error {
	var rows []row
	if in != nil {
		rows = in.rows()
	}
	attrs := r.tableAttrs()
	cols := r.columns(rows)
	if len(cols) == 0 {
		_, err := fmt.Fprintf(w, "<table%s>\n</table>", attrs)
		return err
	}

	thStyle := r.styleAttr(ElementHeader)
	tdStyle := r.styleAttr(ElementCell)

	if _, err := fmt.Fprintf(w, "<table%s>\n", attrs); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "  <thead>\n    <tr>\n"); err != nil {
		return err
	}
	for _, col := range cols {
		if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", thStyle, html.EscapeString(r.DisplayName(col))); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "    </tr>\n  </thead>\n  <tbody>\n"); err != nil {
		return err
	}

	for i, rw := range rows {
		if !rw.ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "    <tr%s>\n", r.rowClass(i)); err != nil {
			return err
		}
		for _, col := range cols {
			v, _ := rw.rec.Get(col)
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", tdStyle, Escape(v)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "    </tr>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "  </tbody>\n</table>")
	return err
}

// classList returns the table's class tokens in fixed order.
func (r *Renderer) classList() []string {
	var classes []string
	if r.cfg.TableClass != "" {
		classes = append(classes, r.cfg.TableClass)
	}
	if r.cfg.Sortable {
		classes = append(classes, "sortable")
	}
	if r.cfg.Striped {
		classes = append(classes, "striped")
	}
	if r.cfg.Responsive {
		classes = append(classes, "responsive")
	}
	return classes
}

func (r *Renderer) tableAttrs() string {
	var sb strings.Builder
	if classes := r.classList(); len(classes) > 0 {
		fmt.Fprintf(&sb, ` class="%s"`, html.EscapeString(strings.Join(classes, " ")))
	}
	if r.cfg.TableID != "" {
		fmt.Fprintf(&sb, ` id="%s"`, html.EscapeString(r.cfg.TableID))
	}
	for _, a := range r.cfg.Attributes {
		fmt.Fprintf(&sb, ` %s="%s"`, a.Name, html.EscapeString(a.Value))
	}
	sb.WriteString(r.styleAttr(ElementTable))
	return sb.String()
}

func (r *Renderer) styleAttr(el Element) string {
	style, ok := r.cfg.Styles[el]
	if !ok {
		return ""
	}
	return fmt.Sprintf(` style="%s"`, html.EscapeString(style))
}

func (r *Renderer) rowClass(index int) string {
	if !r.cfg.Striped {
		return ""
	}
	if index%2 == 1 {
		return ` class="odd"`
	}
	return ` class="even"`
}
