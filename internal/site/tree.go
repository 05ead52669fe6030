package site

import (
	"html"
	"sort"
	"strings"
)

// NavPage is one sidebar entry
type NavPage struct {
	Title string
	// Path is the page's output path relative to the site root, e.g.
	// "nodejs/streams.html"
	Path string
}

// NavSection groups the pages of one top-level content directory
type NavSection struct {
	Name  string
	Pages []NavPage
}

// sectionLabels maps content directories to display names
var sectionLabels = map[string]string{
	"csharp": "C#",
	"css":    "CSS",
	"nestjs": "NestJS",
	"nodejs": "Node.js",
}

// BuildNav groups pages into sections by their first path segment and
// sorts both levels for a stable sidebar.
func BuildNav(pages []NavPage) []NavSection {
	bySection := make(map[string][]NavPage)
	for _, page := range pages {
		section := "Guide"
		if idx := strings.Index(page.Path, "/"); idx > 0 {
			section = sectionLabel(page.Path[:idx])
		}
		bySection[section] = append(bySection[section], page)
	}

	names := make([]string, 0, len(bySection))
	for name := range bySection {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]NavSection, 0, len(names))
	for _, name := range names {
		pages := bySection[name]
		sort.Slice(pages, func(i, j int) bool {
			return pages[i].Path < pages[j].Path
		})
		sections = append(sections, NavSection{Name: name, Pages: pages})
	}
	return sections
}

func sectionLabel(dir string) string {
	if label, ok := sectionLabels[dir]; ok {
		return label
	}
	if dir == "" {
		return "Guide"
	}
	return strings.ToUpper(dir[:1]) + dir[1:]
}

// RenderNav renders the sidebar as HTML, marking the active page
func RenderNav(sections []NavSection, activePath, basePath string) string {
	var b strings.Builder

	b.WriteString(`<nav class="sidebar">`)
	for _, section := range sections {
		b.WriteString(`<div class="nav-section">`)
		b.WriteString(`<h4 class="nav-section-title">`)
		b.WriteString(html.EscapeString(section.Name))
		b.WriteString(`</h4><ul>`)

		for _, page := range section.Pages {
			class := "nav-link"
			if page.Path == activePath {
				class += " active"
			}
			b.WriteString(`<li><a class="` + class + `" href="` +
				html.EscapeString(basePath+page.Path) + `">` +
				html.EscapeString(page.Title) + `</a></li>`)
		}

		b.WriteString(`</ul></div>`)
	}
	b.WriteString(`</nav>`)

	return b.String()
}
