package tablehtml

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const charsetMeta = `<meta charset="UTF-8">`

// HasCharset reports whether doc declares a character encoding, either with
// <meta charset> or with an http-equiv Content-Type meta tag.
func HasCharset(doc string) bool {
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.Body {
				return false
			}
			if tok.DataAtom == atom.Meta && metaDeclaresCharset(tok.Attr) {
				return true
			}
		}
	}
}

func metaDeclaresCharset(attrs []html.Attribute) bool {
	var httpEquiv, content string
	for _, a := range attrs {
		switch strings.ToLower(a.Key) {
		case "charset":
			return true
		case "http-equiv":
			httpEquiv = a.Val
		case "content":
			content = a.Val
		}
	}
	return strings.EqualFold(httpEquiv, "content-type") &&
		strings.Contains(strings.ToLower(content), "charset=")
}

// EnsureCharset returns doc with a UTF-8 charset declaration inserted right
// after its <head> start tag. The bool reports whether doc changed. A
// document without a charset declaration and without <head> yields
// [ErrNoHead].
func EnsureCharset(doc string) (string, bool, error) {
	if HasCharset(doc) {
		return doc, false, nil
	}
	z := html.NewTokenizer(strings.NewReader(doc))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return doc, false, ErrNoHead
		}
		raw := len(z.Raw())
		offset += raw
		if tt == html.StartTagToken {
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Head {
				return doc[:offset] + "\n" + charsetMeta + doc[offset:], true, nil
			}
		}
	}
}
