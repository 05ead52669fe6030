// Package site builds the static documentation site. Markdown conversion
// is delegated to goldmark; this package only walks the content tree,
// assembles page layouts and embeds the server-rendered tip components.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/senghongH/devdocs/internal/cache"
	"github.com/senghongH/devdocs/internal/config"
	"github.com/senghongH/devdocs/internal/content"
	"github.com/senghongH/devdocs/pkg/components"
	"github.com/senghongH/devdocs/pkg/renderer/html"
)

// Generator converts the content tree into a static HTML site
type Generator struct {
	cfg   *config.Config
	cache *cache.Cache
	md    goldmark.Markdown

	// Dev adds the hot-reload script to every page
	Dev bool
}

// New creates a generator. The cache may be nil, in which case every page
// is rendered from scratch.
func New(cfg *config.Config, c *cache.Cache) *Generator {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.HighlightStyle),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Authored markdown may embed raw HTML; it is trusted content
			ghtml.WithUnsafe(),
		),
	)

	return &Generator{
		cfg:   cfg,
		cache: c,
		md:    md,
	}
}

// pageData is the payload of the layout template
type pageData struct {
	Title         string
	SiteTitle     string
	SiteSubtitle  string
	Nav           template.HTML
	Content       template.HTML
	BasePath      string
	LiveComponent string
	Dev           bool
}

// Generate builds the full site. Returns the number of pages written.
func (g *Generator) Generate() (int, error) {
	mdPaths, err := g.collectMarkdown()
	if err != nil {
		return 0, err
	}

	// Sidebar covers both the markdown pages and the tip pages
	pages := make([]NavPage, 0, len(mdPaths)+2)
	titleBySource := make(map[string]string, len(mdPaths))
	for _, relPath := range mdPaths {
		raw, err := os.ReadFile(filepath.Join(g.cfg.ContentDir, filepath.FromSlash(relPath)))
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", relPath, err)
		}
		title := extractTitle(string(raw), relPath)
		titleBySource[relPath] = title
		pages = append(pages, NavPage{Title: title, Path: outputPath(relPath)})
	}
	for _, set := range content.TipSets() {
		pages = append(pages, NavPage{Title: set.Title, Path: set.Slug + ".html"})
	}
	nav := BuildNav(pages)

	if err := g.writeAssets(); err != nil {
		return 0, err
	}

	written := 0
	for _, relPath := range mdPaths {
		if err := g.renderMarkdownPage(nav, relPath, titleBySource[relPath]); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", relPath, err)
		}
		written++
	}

	for _, set := range content.TipSets() {
		if err := g.renderTipPage(nav, set); err != nil {
			return 0, fmt.Errorf("rendering tip page %s: %w", set.ID, err)
		}
		written++
	}

	return written, nil
}

// collectMarkdown walks the content dir for markdown sources
func (g *Generator) collectMarkdown() ([]string, error) {
	var mdPaths []string
	err := filepath.Walk(g.cfg.ContentDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			rel, err := filepath.Rel(g.cfg.ContentDir, path)
			if err != nil {
				return err
			}
			mdPaths = append(mdPaths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}

	sort.Strings(mdPaths)
	return mdPaths, nil
}

// renderMarkdownPage converts one markdown source and writes its page.
// The converted body fragment is cached by source hash; the surrounding
// layout is assembled on every build since the sidebar can change.
func (g *Generator) renderMarkdownPage(nav []NavSection, relPath, title string) error {
	srcPath := filepath.Join(g.cfg.ContentDir, filepath.FromSlash(relPath))
	source, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	var body []byte
	hash := cache.HashContent(source)

	if g.cache != nil {
		if cached, ok := g.cache.Get(relPath, hash); ok {
			body = cached
		}
	}

	if body == nil {
		var buf bytes.Buffer
		if err := g.md.Convert(source, &buf); err != nil {
			return fmt.Errorf("converting markdown: %w", err)
		}
		body = buf.Bytes()

		if g.cache != nil {
			if err := g.cache.Put(relPath, hash, body); err != nil {
				return fmt.Errorf("caching page: %w", err)
			}
		}
	}

	outPath := outputPath(relPath)
	return g.writePage(outPath, pageData{
		Title:        title,
		SiteTitle:    g.cfg.Title,
		SiteSubtitle: g.cfg.Description,
		Nav:          template.HTML(RenderNav(nav, outPath, basePathFor(outPath))),
		Content:      template.HTML(body),
		BasePath:     basePathFor(outPath),
		Dev:          g.Dev,
	})
}

// renderTipPage server-renders a tip list (all cards collapsed) and embeds
// it with the live client bootstrap.
func (g *Generator) renderTipPage(nav []NavSection, set content.TipSet) error {
	list := components.NewTipList(set.ID, set.Tips, set.Lang, nil)

	markup, err := html.RenderToString(list.Render())
	if err != nil {
		return fmt.Errorf("rendering tip list: %w", err)
	}

	var body strings.Builder
	body.WriteString("<h1>" + template.HTMLEscapeString(set.Title) + "</h1>\n")
	body.WriteString(`<div data-live-component="` + set.ID + `">` + "\n")
	body.WriteString(markup)
	body.WriteString("\n</div>\n")

	outPath := set.Slug + ".html"
	return g.writePage(outPath, pageData{
		Title:         set.Title,
		SiteTitle:     g.cfg.Title,
		SiteSubtitle:  g.cfg.Description,
		Nav:           template.HTML(RenderNav(nav, outPath, basePathFor(outPath))),
		Content:       template.HTML(body.String()),
		BasePath:      basePathFor(outPath),
		LiveComponent: set.ID,
		Dev:           g.Dev,
	})
}

// writePage runs the layout template and writes the result
func (g *Generator) writePage(outPath string, data pageData) error {
	fullPath := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(outPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := layoutTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing layout: %w", err)
	}

	return os.WriteFile(fullPath, buf.Bytes(), 0o644)
}

// writeAssets writes the stylesheet and client scripts
func (g *Generator) writeAssets() error {
	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return err
	}

	assets := map[string]string{
		"style.css": siteCSS,
		"live.js":   liveJS,
	}
	if g.Dev {
		assets["reload.js"] = reloadJS
	}

	for name, content := range assets {
		if err := os.WriteFile(filepath.Join(g.cfg.OutputDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// outputPath maps a markdown source path to its page path
func outputPath(relPath string) string {
	return strings.TrimSuffix(relPath, ".md") + ".html"
}

// basePathFor returns the relative prefix from a page back to the site root
func basePathFor(outPath string) string {
	depth := strings.Count(outPath, "/")
	if depth == 0 {
		return ""
	}
	return strings.Repeat("../", depth)
}

// extractTitle pulls the first H1 heading, falling back to the file name
func extractTitle(markdown, relPath string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}

	base := filepath.Base(relPath)
	return strings.TrimSuffix(base, ".md")
}

var layoutTemplate = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · {{.SiteTitle}}</title>
<link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
<header class="site-header">
  <h1 class="site-title"><a href="{{.BasePath}}index.html">{{.SiteTitle}}</a></h1>
  {{if .SiteSubtitle}}<span class="site-subtitle">{{.SiteSubtitle}}</span>{{end}}
</header>
<div class="layout">
{{.Nav}}
<main class="page">
{{.Content}}
</main>
</div>
{{if .LiveComponent}}<script src="{{.BasePath}}live.js"></script>{{end}}
{{if .Dev}}<script src="{{.BasePath}}reload.js"></script>{{end}}
</body>
</html>
`))
