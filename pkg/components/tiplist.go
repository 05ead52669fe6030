// Package components holds the reusable UI components of the documentation
// site. The tip list is the interactive piece: an accordion of advice cards
// whose open/closed state lives in a reactive signal.
package components

import (
	"fmt"

	"github.com/senghongH/devdocs/pkg/builder"
	"github.com/senghongH/devdocs/pkg/reactive"
	"github.com/senghongH/devdocs/pkg/vdom"
)

// Tip is a static record describing one piece of advice. Tip data is
// authored at build time and never changes at runtime.
type Tip struct {
	// Title is the short display string shown in the card header
	Title string

	// Description explains the tip in prose
	Description string

	// Code is an optional source snippet shown in the code panel
	Code string

	// ResultHTML is optional pre-rendered markup for the preview panel.
	// It is trusted content: authored alongside the tip, never user input.
	ResultHTML string

	// ResultType is an optional category tag. It is carried as data only;
	// rendering does not consume it.
	ResultType string
}

// TipList renders a fixed ordered sequence of tips as independently
// collapsible cards. Each card is either collapsed (initial) or expanded;
// clicking its header toggles between the two.
type TipList struct {
	id       string
	tips     []Tip
	lang     string
	expanded *reactive.State[map[int]bool]
}

// NewTipList creates a tip list with every card collapsed. lang selects the
// highlight language for the code panels.
func NewTipList(id string, tips []Tip, lang string, sched reactive.Scheduler) *TipList {
	return &TipList{
		id:       id,
		tips:     tips,
		lang:     lang,
		expanded: reactive.NewState(map[int]bool{}, sched),
	}
}

// Len returns the number of tips
func (l *TipList) Len() int {
	return len(l.tips)
}

// IsExpanded reports whether the card at index i is currently open
func (l *TipList) IsExpanded(i int) bool {
	return l.expanded.Get()[i]
}

// Toggle flips the open state of the card at index i. Indices outside
// [0, Len) are ignored. Other cards are unaffected.
func (l *TipList) Toggle(i int) {
	if i < 0 || i >= len(l.tips) {
		return
	}

	l.expanded.Update(func(open map[int]bool) map[int]bool {
		// Copy-on-write so previously rendered trees keep their snapshot
		next := make(map[int]bool, len(open))
		for k, v := range open {
			next[k] = v
		}
		if next[i] {
			delete(next, i)
		} else {
			next[i] = true
		}
		return next
	})
}

// Render produces the card list as a pure function of the current state
func (l *TipList) Render() *vdom.VNode {
	open := l.expanded.Get()

	cards := make([]*vdom.VNode, 0, len(l.tips))
	for i := range l.tips {
		cards = append(cards, l.renderCard(i, open[i]))
	}

	return builder.Div().
		ID(l.id).
		Class("tip-list").
		Children(cards...).
		Build()
}

// renderCard renders one tip card. The header is always present; the body
// only exists while the card is expanded.
func (l *TipList) renderCard(i int, isOpen bool) *vdom.VNode {
	tip := l.tips[i]

	cardClass := "tip-card"
	arrowClass := "tip-arrow"
	if isOpen {
		cardClass += " open"
		arrowClass += " rotated"
	}

	index := i // capture per card, not the loop variable
	header := builder.Div().
		Class("tip-header").
		Role("button").
		Aria("expanded", fmt.Sprintf("%t", isOpen)).
		OnClick(func() { l.Toggle(index) }).
		Children(
			builder.Span().Class("tip-icon").Text("💡").Build(),
			builder.H3().Class("tip-title").Text(tip.Title).Build(),
			builder.Span().Class(arrowClass).Text("▸").Build(),
		).Build()

	children := []*vdom.VNode{header}
	if isOpen {
		children = append(children, l.renderBody(tip))
	}

	return builder.Article().
		Key(fmt.Sprintf("tip-%d", i)).
		Class(cardClass).
		Children(children...).
		Build()
}

// renderBody renders the expanded card content: description, optional
// preview panel, optional code panel.
func (l *TipList) renderBody(tip Tip) *vdom.VNode {
	children := []*vdom.VNode{
		builder.P().Class("tip-description").Text(tip.Description).Build(),
	}

	if tip.ResultHTML != "" {
		children = append(children,
			builder.Div().
				Class("tip-preview").
				Children(
					builder.H4().Class("tip-panel-label").Text("Result").Build(),
					builder.Div().Class("tip-preview-content").UnsafeHTML(tip.ResultHTML).Build(),
				).Build(),
		)
	}

	if tip.Code != "" {
		children = append(children,
			builder.Div().
				Class("tip-code").
				Children(
					builder.H4().Class("tip-panel-label").Text("Code").Build(),
					CodeBlock(tip.Code, l.lang),
				).Build(),
		)
	}

	return builder.Div().
		Class("tip-body").
		Children(children...).
		Build()
}
