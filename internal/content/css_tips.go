package content

import (
	"github.com/senghongH/devdocs/pkg/components"
)

// CSSTips is the CSS tip collection. ResultType tags the kind of preview
// each tip ships; the renderer carries it as data without consuming it.
var CSSTips = TipSet{
	ID:    "css-tips",
	Title: "CSS Tips",
	Slug:  "css/tips",
	Lang:  "css",
	Tips:  cssTips,
}

var cssTips = []components.Tip{
	{
		Title:       "Center anything with flexbox",
		Description: "A flex container with centered alignment on both axes is the shortest reliable way to center a box of unknown size.",
		Code: `.parent {
  display: flex;
  align-items: center;
  justify-content: center;
}`,
		ResultHTML: `<div style="display:flex;align-items:center;justify-content:center;height:80px;background:#eef2f7;"><span style="padding:4px 12px;background:#3b82f6;color:#fff;border-radius:4px;">centered</span></div>`,
		ResultType: "layout",
	},
	{
		Title:       "Truncate overflowing text with an ellipsis",
		Description: "Three properties together clip a single line of text and append an ellipsis. The element needs a constrained width for the overflow to trigger.",
		Code: `.truncate {
  white-space: nowrap;
  overflow: hidden;
  text-overflow: ellipsis;
}`,
		ResultHTML: `<div style="white-space:nowrap;overflow:hidden;text-overflow:ellipsis;width:160px;border:1px solid #d1d5db;padding:4px;">This sentence is far too long to fit</div>`,
		ResultType: "text",
	},
	{
		Title:       "Smooth scrolling for anchor links",
		Description: "scroll-behavior on the root element animates jumps to in-page anchors without any script.",
		Code: `html {
  scroll-behavior: smooth;
}`,
		ResultType: "behavior",
	},
	{
		Title:       "Aspect-ratio boxes without padding hacks",
		Description: "The aspect-ratio property sizes a box from one dimension, replacing the old percentage-padding trick for responsive video embeds and cards.",
		Code: `.thumb {
  aspect-ratio: 16 / 9;
  width: 100%;
}`,
		ResultHTML: `<div style="aspect-ratio:16/9;width:120px;background:linear-gradient(135deg,#6366f1,#ec4899);border-radius:4px;"></div>`,
		ResultType: "layout",
	},
	{
		Title:       "Style the selection highlight",
		Description: "The ::selection pseudo-element restyles the browser's text selection. Only a handful of properties apply; color and background-color are the useful ones.",
		Code: `::selection {
  background-color: #fde68a;
  color: #111827;
}`,
		ResultType: "decoration",
	},
	{
		Title:       "Gaps between flex items without margins",
		Description: "The gap property works in flex containers as well as grid, spacing items without margin bookkeeping on first and last children.",
		Code: `.row {
  display: flex;
  gap: 0.75rem;
}`,
		ResultHTML: `<div style="display:flex;gap:0.75rem;"><span style="background:#d1fae5;padding:4px 10px;">a</span><span style="background:#d1fae5;padding:4px 10px;">b</span><span style="background:#d1fae5;padding:4px 10px;">c</span></div>`,
		ResultType: "layout",
	},
}
