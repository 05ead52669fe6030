package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/senghongH/devdocs/pkg/builder"
	"github.com/senghongH/devdocs/pkg/vdom"
)

// DefaultHighlightStyle is the chroma style used for code panels
var DefaultHighlightStyle = "github"

// CodeBlock renders a source snippet as a highlighted monospace block.
// The snippet is displayed verbatim, never executed. When highlighting
// fails the block falls back to an escaped <pre><code>.
func CodeBlock(code, lang string) *vdom.VNode {
	highlighted, err := Highlight(code, lang, DefaultHighlightStyle)
	if err != nil {
		return builder.Pre().
			Class("code-block").
			Children(
				builder.Code().Text(code).Build(),
			).Build()
	}

	return builder.Div().
		Class("code-block").
		UnsafeHTML(highlighted).
		Build()
}

// Highlight runs code through chroma and returns highlighted HTML.
// The output escapes the code text itself; only chroma's own span markup
// is added around it.
func Highlight(code, lang, style string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	st := styles.Get(style)
	if st == nil {
		st = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	if err := formatter.Format(&buf, st, iterator); err != nil {
		return "", err
	}

	return buf.String(), nil
}
