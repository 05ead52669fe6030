package vdom

import (
	"testing"
)

func textEl(tag, text string) *VNode {
	return NewElement(tag, nil, NewText(text))
}

func opsOf(patches []Patch) []PatchOp {
	ops := make([]PatchOp, len(patches))
	for i, p := range patches {
		ops[i] = p.Op
	}
	return ops
}

func TestDiffIdenticalTrees(t *testing.T) {
	a := NewElement("div", Props{"class": "box"}, textEl("p", "hello"))
	b := NewElement("div", Props{"class": "box"}, textEl("p", "hello"))

	if patches := Diff(a, b); len(patches) != 0 {
		t.Errorf("identical trees produced %d patches: %v", len(patches), patches)
	}
}

func TestDiffTextChange(t *testing.T) {
	a := textEl("p", "before")
	b := textEl("p", "after")

	patches := Diff(a, b)
	if len(patches) != 1 {
		t.Fatalf("patches = %v, want one ReplaceText", patches)
	}
	if patches[0].Op != OpReplaceText || patches[0].Value != "after" {
		t.Errorf("got %v", patches[0])
	}
}

func TestDiffRawChange(t *testing.T) {
	a := NewElement("div", nil, NewRaw("<b>old</b>"))
	b := NewElement("div", nil, NewRaw("<b>new</b>"))

	patches := Diff(a, b)
	if len(patches) != 1 {
		t.Fatalf("patches = %v, want one ReplaceRaw", patches)
	}
	if patches[0].Op != OpReplaceRaw || patches[0].Value != "<b>new</b>" {
		t.Errorf("got %v", patches[0])
	}
}

func TestDiffAttributes(t *testing.T) {
	tests := []struct {
		name    string
		prev    Props
		next    Props
		wantOps []PatchOp
	}{
		{
			name:    "changed value",
			prev:    Props{"class": "tip-card"},
			next:    Props{"class": "tip-card open"},
			wantOps: []PatchOp{OpSetAttribute},
		},
		{
			name:    "added attribute",
			prev:    Props{"class": "a"},
			next:    Props{"class": "a", "title": "hint"},
			wantOps: []PatchOp{OpSetAttribute},
		},
		{
			name:    "removed attribute",
			prev:    Props{"class": "a", "title": "hint"},
			next:    Props{"class": "a"},
			wantOps: []PatchOp{OpRemoveAttribute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewElement("div", tt.prev)
			b := NewElement("div", tt.next)

			patches := Diff(a, b)
			if len(patches) != len(tt.wantOps) {
				t.Fatalf("patches = %v, want ops %v", patches, tt.wantOps)
			}
			for i, op := range opsOf(patches) {
				if op != tt.wantOps[i] {
					t.Errorf("op[%d] = %v, want %v", i, op, tt.wantOps[i])
				}
			}
		})
	}
}

func TestDiffChildAppended(t *testing.T) {
	a := NewElement("div", nil, textEl("p", "one"))
	b := NewElement("div", nil, textEl("p", "one"), textEl("p", "two"))

	patches := Diff(a, b)
	if len(patches) != 1 || patches[0].Op != OpInsertNode {
		t.Fatalf("patches = %v, want one InsertNode", patches)
	}
	if patches[0].Node == nil || patches[0].Node.Tag != "p" {
		t.Error("insert patch missing the subtree")
	}
}

func TestDiffChildRemoved(t *testing.T) {
	a := NewElement("div", nil, textEl("p", "one"), textEl("p", "two"))
	b := NewElement("div", nil, textEl("p", "one"))

	patches := Diff(a, b)
	if len(patches) != 1 || patches[0].Op != OpRemoveNode {
		t.Fatalf("patches = %v, want one RemoveNode", patches)
	}
}

func TestDiffTagChangeReplacesNode(t *testing.T) {
	a := NewElement("div", nil, textEl("span", "x"))
	b := NewElement("div", nil, textEl("p", "x"))

	patches := Diff(a, b)
	ops := opsOf(patches)
	if len(ops) != 2 || ops[0] != OpRemoveNode || ops[1] != OpInsertNode {
		t.Errorf("ops = %v, want [RemoveNode InsertNode]", ops)
	}
}

func TestDiffKeyedBodyInsert(t *testing.T) {
	// The accordion case: same keyed cards, one gains a child
	closed := NewElement("article", Props{"key": "tip-0", "class": "tip-card"},
		NewElement("div", Props{"class": "tip-header", "onclick": func() {}}),
	)
	open := NewElement("article", Props{"key": "tip-0", "class": "tip-card open"},
		NewElement("div", Props{"class": "tip-header", "onclick": func() {}}),
		NewElement("div", Props{"class": "tip-body"}),
	)

	a := NewElement("div", nil, closed)
	b := NewElement("div", nil, open)

	patches := Diff(a, b)

	var sawClassChange, sawInsert bool
	for _, p := range patches {
		switch p.Op {
		case OpSetAttribute:
			if p.Key == "class" && p.Value == "tip-card open" {
				sawClassChange = true
			}
		case OpInsertNode:
			sawInsert = true
		case OpRemoveNode:
			t.Errorf("unexpected removal: %v", p)
		}
	}
	if !sawClassChange {
		t.Error("card class was not updated")
	}
	if !sawInsert {
		t.Error("body was not inserted")
	}
}

func TestDiffKeyedReorderEmitsMove(t *testing.T) {
	itemA := NewElement("li", Props{"key": "a"}, NewText("a"))
	itemB := NewElement("li", Props{"key": "b"}, NewText("b"))

	prev := NewElement("ul", nil, itemA, itemB)
	next := NewElement("ul", nil, itemB, itemA)

	patches := Diff(prev, next)

	sawMove := false
	for _, p := range patches {
		if p.Op == OpMoveNode {
			sawMove = true
		}
		if p.Op == OpRemoveNode || p.Op == OpInsertNode {
			t.Errorf("keyed reorder should reuse nodes, got %v", p)
		}
	}
	if !sawMove {
		t.Error("no MoveNode emitted for reorder")
	}
}

func TestDiffEventBitsChange(t *testing.T) {
	a := NewElement("div", Props{"class": "x"})
	b := NewElement("div", Props{"class": "x", "onclick": func() {}})

	patches := Diff(a, b)
	if len(patches) != 1 || patches[0].Op != OpUpdateEvents {
		t.Fatalf("patches = %v, want one UpdateEvents", patches)
	}
	if patches[0].EventBits&1 == 0 {
		t.Errorf("click bit not set: %x", patches[0].EventBits)
	}
}

func TestDiffNilRoots(t *testing.T) {
	if patches := Diff(nil, nil); len(patches) != 0 {
		t.Errorf("nil/nil produced patches: %v", patches)
	}

	node := textEl("p", "x")
	patches := Diff(nil, node)
	if len(patches) != 1 || patches[0].Op != OpInsertNode {
		t.Errorf("nil->node = %v, want one InsertNode", patches)
	}

	patches = Diff(node, nil)
	if len(patches) != 1 || patches[0].Op != OpRemoveNode {
		t.Errorf("node->nil = %v, want one RemoveNode", patches)
	}
}
