package tablehtml

import (
	"fmt"
	"html"
	"io"
	"strings"
)

const defaultDocumentTitle = "HTML Table"

// Document wraps fragment in a complete HTML5 document. The document always
// declares UTF-8. css, when non-empty, is included verbatim in a <style>
// block; a sortable renderer also adds its sort stylesheet and script.
func (r *Renderer) Document(fragment, title, css string) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = r.WriteDocument(&sb, fragment, title, css)
	return sb.String()
}

// WriteDocument writes the document built by [Renderer.Document] to w.
func (r *Renderer) WriteDocument(w io.Writer, fragment, title, css string) error {
	if title == "" {
		title = defaultDocumentTitle
	}
	sortStyle, sortScript := r.SortAssets()

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n<title>%s</title>\n", html.EscapeString(title)); err != nil {
		return err
	}
	if css != "" {
		if _, err := fmt.Fprintf(w, "<style>\n%s\n</style>\n", css); err != nil {
			return err
		}
	}
	if sortStyle != "" {
		if _, err := fmt.Fprintln(w, sortStyle); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "</head>\n<body>\n%s\n", fragment); err != nil {
		return err
	}
	if sortScript != "" {
		if _, err := fmt.Fprintln(w, sortScript); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
