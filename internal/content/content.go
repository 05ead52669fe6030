// Package content holds the compiled-in data of the documentation site:
// the tip collections rendered by the interactive card lists. The data is
// authored here at build time; nothing is loaded at runtime.
package content

import (
	"github.com/senghongH/devdocs/pkg/components"
)

// TipSet groups one list of tips with the metadata the site needs to
// render and mount it.
type TipSet struct {
	// ID is the DOM id of the list container and the component ID the
	// live client sends in its HELLO frame
	ID string

	// Title is the page heading
	Title string

	// Slug is the output page path, without extension
	Slug string

	// Lang selects syntax highlighting for the code panels
	Lang string

	// Tips is the fixed ordered tip sequence
	Tips []components.Tip
}

// TipSets returns all tip collections in display order
func TipSets() []TipSet {
	return []TipSet{CSSTips, JSTips}
}

// FindTipSet looks a tip set up by its component ID
func FindTipSet(id string) (TipSet, bool) {
	for _, set := range TipSets() {
		if set.ID == id {
			return set, true
		}
	}
	return TipSet{}, false
}
