package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/senghongH/devdocs/internal/config"
)

func newNewCommand() *cobra.Command {
	var section string
	var title string

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Scaffold a new tutorial page",
		Long: `Creates a markdown tutorial file under the content tree.
Without flags an interactive wizard asks for the section and title.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				title = args[0]
			}
			return runNew(section, title)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Content section (csharp, css, nestjs, nodejs)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Page title")

	return cmd
}

func runNew(section, title string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	// Drop into the wizard when either value is missing
	if section == "" || title == "" {
		model, err := runNewWizard(section, title)
		if err != nil {
			return err
		}
		if model.cancelled {
			fmt.Println(styleDim.Render("cancelled"))
			return nil
		}
		section = model.section()
		title = model.titleInput.Value()
	}

	if title == "" {
		return fmt.Errorf("a page title is required")
	}
	if !isKnownSection(section) {
		return fmt.Errorf("unknown section %q (expected one of %s)",
			section, strings.Join(knownSections, ", "))
	}

	path, err := scaffoldPage(cfg, section, title)
	if err != nil {
		return err
	}

	fmt.Printf("%s created %s\n", styleSuccess.Render("✓"), path)
	fmt.Println(styleDim.Render("  run `devdocs dev` to preview it"))
	return nil
}

var knownSections = []string{"csharp", "css", "nestjs", "nodejs"}

func isKnownSection(section string) bool {
	for _, s := range knownSections {
		if s == section {
			return true
		}
	}
	return false
}

// scaffoldPage writes the markdown skeleton and returns its path
func scaffoldPage(cfg *config.Config, section, title string) (string, error) {
	dir := filepath.Join(cfg.ContentDir, section)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating section directory: %w", err)
	}

	path := filepath.Join(dir, slugify(title)+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	body := fmt.Sprintf("# %s\n\nWrite the tutorial here.\n\n## Example\n\n```%s\n// code\n```\n",
		title, sectionLang(section))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func sectionLang(section string) string {
	switch section {
	case "csharp":
		return "csharp"
	case "css":
		return "css"
	default:
		return "javascript"
	}
}

// slugify turns a title into a filesystem-friendly name
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// runNewWizard runs the interactive scaffold flow
func runNewWizard(section, title string) (*newModel, error) {
	m := initialNewModel(section, title)
	program := tea.NewProgram(m)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	result, ok := final.(newModel)
	if !ok {
		return nil, fmt.Errorf("unexpected wizard state")
	}
	return &result, nil
}
