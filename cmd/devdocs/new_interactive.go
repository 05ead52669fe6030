package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// newStep tracks the wizard's current prompt
type newStep int

const (
	stepSection newStep = iota
	stepTitle
	stepDone
)

var sectionLabels = []string{"C#", "CSS", "NestJS", "Node.js"}

var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				MarginBottom(1)

	wizardCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// newModel is the bubbletea model for the page scaffold wizard
type newModel struct {
	step       newStep
	selected   int
	titleInput textinput.Model
	cancelled  bool
}

func initialNewModel(section, title string) newModel {
	ti := textinput.New()
	ti.Placeholder = "Array Methods"
	ti.CharLimit = 80
	ti.Width = 40
	if title != "" {
		ti.SetValue(title)
	}

	m := newModel{titleInput: ti}

	// Skip the section prompt when the flag already answered it
	if section != "" {
		for i, s := range knownSections {
			if s == section {
				m.selected = i
				m.step = stepTitle
				m.titleInput.Focus()
				break
			}
		}
	}
	return m
}

func (m newModel) section() string {
	return knownSections[m.selected]
}

func (m newModel) Init() tea.Cmd {
	if m.step == stepTitle {
		return textinput.Blink
	}
	return nil
}

func (m newModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}

		switch m.step {
		case stepSection:
			switch msg.String() {
			case "up", "k":
				if m.selected > 0 {
					m.selected--
				}
			case "down", "j":
				if m.selected < len(knownSections)-1 {
					m.selected++
				}
			case "enter":
				m.step = stepTitle
				m.titleInput.Focus()
				return m, textinput.Blink
			}
			return m, nil

		case stepTitle:
			if msg.String() == "enter" {
				if strings.TrimSpace(m.titleInput.Value()) == "" {
					return m, nil
				}
				m.step = stepDone
				return m, tea.Quit
			}
		}
	}

	if m.step == stepTitle {
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m newModel) View() string {
	if m.cancelled || m.step == stepDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(wizardTitleStyle.Render("New tutorial page"))
	b.WriteString("\n")

	switch m.step {
	case stepSection:
		b.WriteString("Which section does it belong to?\n\n")
		for i, label := range sectionLabels {
			cursor := "  "
			line := fmt.Sprintf("%s (%s)", label, knownSections[i])
			if i == m.selected {
				cursor = wizardCursorStyle.Render("> ")
				line = wizardCursorStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n" + wizardDimStyle.Render("↑/↓ select · enter confirm · esc cancel"))

	case stepTitle:
		b.WriteString("Page title:\n\n")
		b.WriteString(m.titleInput.View())
		b.WriteString("\n\n" + wizardDimStyle.Render("enter confirm · esc cancel"))
	}

	return b.String() + "\n"
}
