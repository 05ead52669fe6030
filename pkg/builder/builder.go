// Package builder provides a fluent API for constructing virtual DOM trees.
package builder

import (
	"github.com/senghongH/devdocs/pkg/vdom"
)

// ElementBuilder builds a single element node through chained calls,
// finalized with Build().
type ElementBuilder struct {
	tag      string
	props    vdom.Props
	children []*vdom.VNode
}

// Element creates a builder for an arbitrary tag
func Element(tag string) *ElementBuilder {
	return &ElementBuilder{
		tag:   tag,
		props: make(vdom.Props),
	}
}

// Build finalizes the builder into an immutable VNode
func (b *ElementBuilder) Build() *vdom.VNode {
	props := b.props
	if len(props) == 0 {
		props = nil
	}
	return vdom.NewElement(b.tag, props, b.children...)
}

// Class sets the class attribute
func (b *ElementBuilder) Class(class string) *ElementBuilder {
	b.props["class"] = class
	return b
}

// ID sets the id attribute
func (b *ElementBuilder) ID(id string) *ElementBuilder {
	b.props["id"] = id
	return b
}

// Title sets the title attribute
func (b *ElementBuilder) Title(title string) *ElementBuilder {
	b.props["title"] = title
	return b
}

// Style sets the style attribute
func (b *ElementBuilder) Style(style string) *ElementBuilder {
	b.props["style"] = style
	return b
}

// Key sets the reconciliation key
func (b *ElementBuilder) Key(key string) *ElementBuilder {
	b.props["key"] = key
	return b
}

// Text appends a text child
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.children = append(b.children, vdom.NewText(text))
	return b
}

// UnsafeHTML appends a trusted-markup child. The content must be
// build-time-authored; it is injected without sanitization.
func (b *ElementBuilder) UnsafeHTML(html string) *ElementBuilder {
	b.children = append(b.children, vdom.NewRaw(html))
	return b
}

// Children appends child nodes
func (b *ElementBuilder) Children(children ...*vdom.VNode) *ElementBuilder {
	b.children = append(b.children, children...)
	return b
}

// OnClick sets the onclick handler
func (b *ElementBuilder) OnClick(handler func()) *ElementBuilder {
	if handler != nil {
		b.props["onclick"] = handler
	}
	return b
}

// === Element constructors ===

// Div creates a div builder
func Div() *ElementBuilder { return Element("div") }

// Span creates a span builder
func Span() *ElementBuilder { return Element("span") }

// P creates a p builder
func P() *ElementBuilder { return Element("p") }

// H1 creates an h1 builder
func H1() *ElementBuilder { return Element("h1") }

// H2 creates an h2 builder
func H2() *ElementBuilder { return Element("h2") }

// H3 creates an h3 builder
func H3() *ElementBuilder { return Element("h3") }

// H4 creates an h4 builder
func H4() *ElementBuilder { return Element("h4") }

// A creates an anchor builder
func A() *ElementBuilder { return Element("a") }

// Img creates an img builder
func Img() *ElementBuilder { return Element("img") }

// Ul creates a ul builder
func Ul() *ElementBuilder { return Element("ul") }

// Li creates an li builder
func Li() *ElementBuilder { return Element("li") }

// Nav creates a nav builder
func Nav() *ElementBuilder { return Element("nav") }

// Main creates a main builder
func Main() *ElementBuilder { return Element("main") }

// Header creates a header builder
func Header() *ElementBuilder { return Element("header") }

// Footer creates a footer builder
func Footer() *ElementBuilder { return Element("footer") }

// Article creates an article builder
func Article() *ElementBuilder { return Element("article") }

// Section creates a section builder
func Section() *ElementBuilder { return Element("section") }

// Button creates a button builder
func Button() *ElementBuilder { return Element("button") }

// Pre creates a pre builder
func Pre() *ElementBuilder { return Element("pre") }

// Code creates a code builder
func Code() *ElementBuilder { return Element("code") }

// Aside creates an aside builder
func Aside() *ElementBuilder { return Element("aside") }
