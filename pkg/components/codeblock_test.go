package components

import (
	"strings"
	"testing"

	"github.com/senghongH/devdocs/pkg/renderer/html"
)

func TestHighlightProducesMarkup(t *testing.T) {
	out, err := Highlight(".a { color: red }", "css", DefaultHighlightStyle)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<span") {
		t.Errorf("no token spans in output: %q", out)
	}
	if !strings.Contains(out, "color") {
		t.Errorf("source text missing: %q", out)
	}
}

func TestHighlightUnknownLanguageFallsBack(t *testing.T) {
	out, err := Highlight("some text", "not-a-language", DefaultHighlightStyle)
	if err != nil {
		t.Fatalf("fallback lexer should not fail: %v", err)
	}
	if !strings.Contains(out, "some text") {
		t.Errorf("source lost: %q", out)
	}
}

func TestHighlightEscapesCode(t *testing.T) {
	out, err := Highlight(`const a = "<img src=x>"`, "javascript", DefaultHighlightStyle)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<img") {
		t.Errorf("code content not escaped: %q", out)
	}
}

func TestCodeBlockRenders(t *testing.T) {
	node := CodeBlock("let x = [...new Set(xs)]", "javascript")

	out, err := html.RenderToString(node)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `class="code-block"`) {
		t.Errorf("wrapper class missing: %q", out)
	}
	if !strings.Contains(out, "Set") {
		t.Errorf("code text missing: %q", out)
	}
}
