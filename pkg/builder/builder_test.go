package builder

import (
	"testing"

	"github.com/senghongH/devdocs/pkg/vdom"
)

func TestBuildSimpleElement(t *testing.T) {
	node := Div().Class("card").ID("main").Build()

	if node.Tag != "div" || node.Kind != vdom.KindElement {
		t.Fatalf("got %+v", node)
	}
	if node.Props["class"] != "card" || node.Props["id"] != "main" {
		t.Errorf("props = %v", node.Props)
	}
}

func TestBuildTextChildren(t *testing.T) {
	node := P().Text("hello").Build()

	if len(node.Kids) != 1 {
		t.Fatalf("kids = %d, want 1", len(node.Kids))
	}
	if !node.Kids[0].IsText() || node.Kids[0].Text != "hello" {
		t.Errorf("child = %+v", node.Kids[0])
	}
}

func TestBuildNestedChildren(t *testing.T) {
	node := Ul().Children(
		Li().Text("a").Build(),
		Li().Text("b").Build(),
	).Build()

	if len(node.Kids) != 2 {
		t.Fatalf("kids = %d, want 2", len(node.Kids))
	}
	if node.Kids[1].Tag != "li" {
		t.Errorf("second child = %+v", node.Kids[1])
	}
}

func TestBuildOnClickSetsEventFlag(t *testing.T) {
	node := Button().OnClick(func() {}).Build()

	if !node.HasFlag(vdom.FlagHasEvents) {
		t.Error("event flag not set")
	}
	if _, ok := node.Props["onclick"].(func()); !ok {
		t.Error("handler not stored")
	}
}

func TestBuildWithoutPropsHasNilMap(t *testing.T) {
	node := Span().Text("x").Build()

	if node.Props != nil {
		t.Errorf("empty props should be nil, got %v", node.Props)
	}
	if node.HasFlag(vdom.FlagHasEvents) {
		t.Error("event flag set without handlers")
	}
}

func TestBuildKey(t *testing.T) {
	node := Article().Key("tip-3").Build()

	if node.GetKey() != "tip-3" {
		t.Errorf("GetKey = %q, want tip-3", node.GetKey())
	}
	if !node.HasFlag(vdom.FlagHasKey) {
		t.Error("key flag not set")
	}
}

func TestBuildUnsafeHTML(t *testing.T) {
	node := Div().UnsafeHTML("<b>raw</b>").Build()

	if len(node.Kids) != 1 || !node.Kids[0].IsRaw() {
		t.Fatalf("kids = %+v", node.Kids)
	}
	if node.Kids[0].Text != "<b>raw</b>" {
		t.Errorf("raw text = %q", node.Kids[0].Text)
	}
}

func TestBuildDataAndAria(t *testing.T) {
	node := Div().Data("idx", "3").Aria("expanded", "false").Role("button").Build()

	if node.Props["data-idx"] != "3" {
		t.Errorf("data attr = %v", node.Props["data-idx"])
	}
	if node.Props["aria-expanded"] != "false" {
		t.Errorf("aria attr = %v", node.Props["aria-expanded"])
	}
	if node.Props["role"] != "button" {
		t.Errorf("role = %v", node.Props["role"])
	}
}
