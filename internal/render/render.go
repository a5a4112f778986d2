// Package render turns poems into HTML fragments for the gallery templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// md keeps single newlines as <br> so the three haiku lines stay on their
// own rows. Raw HTML in generated text is dropped.
var md = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// PoemHTML converts a generated poem body to safe HTML.
func PoemHTML(body string) template.HTML {
	body = strings.TrimSpace(strings.ReplaceAll(body, "\r\n", "\n"))
	if body == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return fallbackHTML(body)
	}
	return template.HTML(buf.String())
}

func fallbackHTML(body string) template.HTML {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = template.HTMLEscapeString(l)
	}
	return template.HTML("<p>" + strings.Join(lines, "<br>\n") + "</p>")
}

// Capitalize upper-cases the first letter and lower-cases the rest,
// so "deep OCEAN" becomes "Deep ocean".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}

// CSS marks a palette value as a trusted style value. Palette entries are
// fixed gradients, never user input.
func CSS(v interface{}) template.CSS {
	return template.CSS(fmt.Sprint(v))
}

// FuncMap returns the template helpers used by the page templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"poemHTML":   PoemHTML,
		"capitalize": Capitalize,
		"css":        CSS,
		"inc": func(i int) int {
			return i + 1
		},
	}
}
