package components

import (
	"strings"
	"testing"

	"github.com/senghongH/devdocs/pkg/renderer/html"
	"github.com/senghongH/devdocs/pkg/vdom"
)

func sampleTips() []Tip {
	return []Tip{
		{
			Title:       "Center with flexbox",
			Description: "Center a child both ways with three declarations.",
			Code:        ".parent { display: flex; }",
			ResultHTML:  `<div class="demo">centered</div>`,
			ResultType:  "layout",
		},
		{
			Title:       "Truncate with ellipsis",
			Description: "Cut long text off with an ellipsis.",
			Code:        ".text { text-overflow: ellipsis; }",
		},
		{
			Title:       "Minimal tip",
			Description: "Just a description, nothing else.",
		},
	}
}

func newTestList(t *testing.T) *TipList {
	t.Helper()
	return NewTipList("css-tips", sampleTips(), "css", nil)
}

// findByClass walks the tree looking for the first element whose class
// attribute equals want.
func findByClass(node *vdom.VNode, want string) *vdom.VNode {
	if node == nil {
		return nil
	}
	if node.Kind == vdom.KindElement && node.Props != nil {
		if class, ok := node.Props["class"].(string); ok && class == want {
			return node
		}
	}
	for i := range node.Kids {
		if found := findByClass(&node.Kids[i], want); found != nil {
			return found
		}
	}
	return nil
}

func countByClass(node *vdom.VNode, want string) int {
	if node == nil {
		return 0
	}
	count := 0
	if node.Kind == vdom.KindElement && node.Props != nil {
		if class, ok := node.Props["class"].(string); ok && class == want {
			count++
		}
	}
	for i := range node.Kids {
		count += countByClass(&node.Kids[i], want)
	}
	return count
}

func TestTipListStartsCollapsed(t *testing.T) {
	list := newTestList(t)

	for i := 0; i < list.Len(); i++ {
		if list.IsExpanded(i) {
			t.Errorf("tip %d expanded before any interaction", i)
		}
	}

	tree := list.Render()
	if got := countByClass(tree, "tip-card"); got != 3 {
		t.Errorf("collapsed cards = %d, want 3", got)
	}
	if got := countByClass(tree, "tip-body"); got != 0 {
		t.Errorf("rendered %d bodies while collapsed, want 0", got)
	}
}

func TestTipListToggle(t *testing.T) {
	list := newTestList(t)

	list.Toggle(1)
	if !list.IsExpanded(1) {
		t.Fatal("tip 1 not expanded after toggle")
	}
	if list.IsExpanded(0) || list.IsExpanded(2) {
		t.Error("toggling tip 1 affected other tips")
	}

	list.Toggle(1)
	if list.IsExpanded(1) {
		t.Error("tip 1 still expanded after second toggle")
	}
}

func TestTipListIndependentCards(t *testing.T) {
	list := newTestList(t)

	// Open A, open C, close A: only C remains open
	list.Toggle(0)
	list.Toggle(2)
	list.Toggle(0)

	if list.IsExpanded(0) {
		t.Error("tip 0 should be closed")
	}
	if list.IsExpanded(1) {
		t.Error("tip 1 was never touched")
	}
	if !list.IsExpanded(2) {
		t.Error("tip 2 should still be open")
	}
}

func TestTipListToggleOutOfRange(t *testing.T) {
	list := newTestList(t)

	for _, i := range []int{-1, 3, 100} {
		list.Toggle(i)
	}

	for i := 0; i < list.Len(); i++ {
		if list.IsExpanded(i) {
			t.Errorf("out-of-range toggle expanded tip %d", i)
		}
	}
}

func TestTipListExpandedCardPanels(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		wantPreview bool
		wantCode    bool
	}{
		{"full tip", 0, true, true},
		{"code only", 1, false, true},
		{"description only", 2, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := newTestList(t)
			list.Toggle(tt.index)
			tree := list.Render()

			if got := countByClass(tree, "tip-body"); got != 1 {
				t.Fatalf("bodies = %d, want 1", got)
			}
			if got := findByClass(tree, "tip-preview") != nil; got != tt.wantPreview {
				t.Errorf("preview panel present = %v, want %v", got, tt.wantPreview)
			}
			if got := findByClass(tree, "tip-code") != nil; got != tt.wantCode {
				t.Errorf("code panel present = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestTipListRenderedMarkup(t *testing.T) {
	list := newTestList(t)
	list.Toggle(0)

	out, err := html.RenderToString(list.Render())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, `id="css-tips"`) {
		t.Error("missing list id")
	}
	if !strings.Contains(out, "tip-card open") {
		t.Error("expanded card missing open class")
	}
	if !strings.Contains(out, `aria-expanded="true"`) {
		t.Error("expanded header missing aria-expanded")
	}
	if !strings.Contains(out, `<div class="demo">centered</div>`) {
		t.Error("preview markup not passed through verbatim")
	}
	if !strings.Contains(out, "tip-arrow rotated") {
		t.Error("expanded card arrow not rotated")
	}
}

func TestTipListHeadersCarryEvents(t *testing.T) {
	list := newTestList(t)
	tree := list.Render()

	header := findByClass(tree, "tip-header")
	if header == nil {
		t.Fatal("no header found")
	}
	if !header.HasFlag(vdom.FlagHasEvents) {
		t.Error("header missing event flag")
	}
	if _, ok := header.Props["onclick"].(func()); !ok {
		t.Error("header has no click handler")
	}
}

func TestTipListEmpty(t *testing.T) {
	list := NewTipList("empty", nil, "css", nil)

	if list.Len() != 0 {
		t.Fatalf("Len = %d, want 0", list.Len())
	}
	list.Toggle(0)

	out, err := html.RenderToString(list.Render())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `class="tip-list"`) {
		t.Error("empty list should still render its container")
	}
	if strings.Contains(out, "tip-card") {
		t.Error("empty list rendered cards")
	}
}

func TestTipListKeysStableAcrossToggle(t *testing.T) {
	list := newTestList(t)

	before := list.Render()
	list.Toggle(1)
	after := list.Render()

	for i := 0; i < list.Len(); i++ {
		bk := before.Kids[i].GetKey()
		ak := after.Kids[i].GetKey()
		if bk == "" || bk != ak {
			t.Errorf("card %d key changed %q -> %q", i, bk, ak)
		}
	}
}
