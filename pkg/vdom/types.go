package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node, escaped on render
	KindText
	// KindRaw represents trusted markup rendered verbatim.
	// Only build-time-authored content may be placed in a raw node;
	// it bypasses escaping entirely.
	KindRaw
	// KindFragment represents multiple children without a parent element
	KindFragment
)

// VNodeFlags are bitwise flags for VNode optimizations
type VNodeFlags uint8

const (
	// FlagStatic indicates this node and its children will never change
	FlagStatic VNodeFlags = 1 << iota
	// FlagHasKey indicates this node has a key for list reconciliation
	FlagHasKey
	// FlagHasEvents indicates this node has event listeners
	FlagHasEvents
)

// Props represents the properties/attributes of a VNode.
// Event handlers are stored under "on"-prefixed keys as func() values.
type Props map[string]any

// VNode is an immutable virtual DOM node. Once created it must never be
// modified; re-rendering always builds a fresh tree.
type VNode struct {
	// Kind determines the type of this node
	Kind VKind

	// Tag is the element tag name ("div", "pre", ...).
	// Only used when Kind == KindElement
	Tag string

	// Props contains attributes, class/style strings and event handlers
	Props Props

	// Kids contains child nodes. Nil for text and raw nodes.
	Kids []VNode

	// Key is used for list reconciliation. Empty string means no key.
	Key string

	// Flags contains optimization hints
	Flags VNodeFlags

	// Text content for KindText, raw markup for KindRaw
	Text string
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	flags := VNodeFlags(0)

	if props != nil {
		for k := range props {
			if isEventProp(k) {
				flags |= FlagHasEvents
				break
			}
		}
		if _, hasKey := props["key"]; hasKey {
			flags |= FlagHasKey
		}
	}

	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}

	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  kids,
		Flags: flags,
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewRaw creates a trusted-markup VNode. The caller asserts the markup is
// build-time-authored and safe to inject without sanitization.
func NewRaw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}

	return &VNode{
		Kind: KindFragment,
		Kids: kids,
	}
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// IsRaw returns true if this is a trusted-markup node
func (v VNode) IsRaw() bool {
	return v.Kind == KindRaw
}

// IsFragment returns true if this is a fragment node
func (v VNode) IsFragment() bool {
	return v.Kind == KindFragment
}

// HasFlag returns true if the specified flag is set
func (v VNode) HasFlag(flag VNodeFlags) bool {
	return v.Flags&flag != 0
}

// GetKey returns the key of this node, handling the Props map safely
func (v VNode) GetKey() string {
	if v.Props != nil {
		if key, ok := v.Props["key"].(string); ok {
			return key
		}
	}
	return v.Key
}
