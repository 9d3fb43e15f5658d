package tablehtml

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/template"
)

const (
	defaultSectionTitle = "Table"
	defaultSectionClass = "collapsible-table"
)

// Section describes a collapsible container.
type Section struct {
	// Title is shown in the summary line. Default "Table".
	Title string
	// Collapsed renders the container closed. Containers are open by default.
	Collapsed bool
	// Class is the container's CSS class. Default "collapsible-table".
	Class string
	// ID is an optional id attribute for the container.
	ID string
}

func (s Section) withDefaults() Section {
	if s.Title == "" {
		s.Title = defaultSectionTitle
	}
	if s.Class == "" {
		s.Class = defaultSectionClass
	}
	return s
}

// Collapsible wraps markup in a <details> container. The markup is
// included unchanged.
func (r *Renderer) Collapsible(markup string, s Section) string {
	s = s.withDefaults()

	var attrs strings.Builder
	fmt.Fprintf(&attrs, ` class="%s"`, html.EscapeString(s.Class))
	if s.ID != "" {
		fmt.Fprintf(&attrs, ` id="%s"`, html.EscapeString(s.ID))
	}
	if !s.Collapsed {
		attrs.WriteString(" open")
	}

	return fmt.Sprintf(`<details%s>
  <summary class="collapsible-header">
    <span class="collapsible-title">%s</span>
    <span class="collapsible-icon">▼</span>
  </summary>
  <div class="collapsible-content">
    %s
  </div>
</details>`, attrs.String(), html.EscapeString(s.Title), markup)
}

// CollapsibleWithCSS is [Renderer.Collapsible] preceded by a stylesheet
// scoped to the container class. Every call carries its own stylesheet.
func (r *Renderer) CollapsibleWithCSS(markup string, s Section) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = r.WriteCollapsibleWithCSS(&sb, markup, s)
	return sb.String()
}

// WriteCollapsibleWithCSS writes the output of [Renderer.CollapsibleWithCSS]
// to w.
func (r *Renderer) WriteCollapsibleWithCSS(w io.Writer, markup string, s Section) error {
	s = s.withDefaults()
	if err := collapsibleCSS.Execute(w, s); err != nil {
		return fmt.Errorf("collapsible style: %w", err)
	}
	_, err := io.WriteString(w, "\n"+r.Collapsible(markup, s))
	return err
}

var collapsibleCSS = template.Must(template.New("collapsible").Parse(`<style>
.{{.Class}} {
    border: 1px solid #ddd;
    border-radius: 8px;
    margin: 10px 0;
    background-color: #fff;
    box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}

.{{.Class}} summary {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    color: white;
    padding: 15px 20px;
    cursor: pointer;
    user-select: none;
    display: flex;
    justify-content: space-between;
    align-items: center;
    border-radius: 7px 7px 0 0;
    font-weight: 600;
    transition: background-color 0.3s ease;
}

.{{.Class}} summary:hover {
    background: linear-gradient(135deg, #5a67d8 0%, #6b46c1 100%);
}

.{{.Class}} summary:focus {
    outline: 2px solid #4c51bf;
    outline-offset: 2px;
}

.{{.Class}}[open] summary {
    border-radius: 7px 7px 0 0;
}

.{{.Class}}:not([open]) summary {
    border-radius: 7px;
}

.{{.Class}} .collapsible-title {
    font-size: 16px;
    font-weight: 600;
}

.{{.Class}} .collapsible-icon {
    font-size: 12px;
    transition: transform 0.3s ease;
}

.{{.Class}}[open] .collapsible-icon {
    transform: rotate(180deg);
}

.{{.Class}} .collapsible-content {
    padding: 0;
    animation: slideDown 0.3s ease-out;
}

@keyframes slideDown {
    from {
        opacity: 0;
        max-height: 0;
    }
    to {
        opacity: 1;
        max-height: 1000px;
    }
}

.{{.Class}} table {
    margin: 0;
    border-radius: 0;
    border: none;
}
</style>`))
