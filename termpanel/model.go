package termpanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmc/macperm"
)

type statusMsg []macperm.Status

type frontMsg struct{}

type model struct {
	title    string
	subtitle string
	link     string
	statuses []macperm.Status
	actions  macperm.Actions
	cursor   int
	front    bool
}

func newModel(cfg macperm.PanelConfig) model {
	m := model{
		title:    cfg.Title,
		subtitle: cfg.Subtitle,
		link:     cfg.TutorialLink,
		statuses: cfg.Statuses,
		actions:  cfg.Actions,
		front:    true,
	}
	m.cursor = m.firstMissing()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.statuses = msg
		if m.cursor >= len(m.statuses) {
			m.cursor = max(0, len(m.statuses)-1)
		}

	case frontMsg:
		m.front = true

	case tea.KeyMsg:
		m.front = false
		switch key := msg.String(); key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.statuses)-1 {
				m.cursor++
			}
		case "enter", "a":
			m.authorize(m.cursor)
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			idx := int(key[0] - '1')
			if idx < len(m.statuses) {
				m.cursor = idx
				m.authorize(idx)
			}
		case "t":
			if m.link != "" {
				m.actions.OpenTutorial()
			}
		case "s":
			m.actions.Skip()
		case "q", "ctrl+c":
			m.actions.Quit()
		}
	}
	return m, nil
}

// authorize asks for the permission in row i. Granted rows have no
// authorize button.
func (m model) authorize(i int) {
	if i < 0 || i >= len(m.statuses) || m.statuses[i].Granted {
		return
	}
	m.actions.Authorize(m.statuses[i].Request.Kind)
}

func (m model) firstMissing() int {
	for i, s := range m.statuses {
		if !s.Granted {
			return i
		}
	}
	return 0
}

func (m model) View() string {
	var b strings.Builder

	header := headerStyle
	if m.front {
		header = frontHeaderStyle
	}
	b.WriteString(header.Render(m.title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.subtitle))
	b.WriteString("\n")

	for i, s := range m.statuses {
		style := rowStyle
		if i == m.cursor {
			style = selectedRowStyle
		}
		line := fmt.Sprintf(" %d. %s", i+1, s.Request.Kind.Title())
		b.WriteString(" " + statusIcon(s.Granted) + style.Render(line))
		if !s.Granted {
			b.WriteString("  " + hintStyle.Render(fmt.Sprintf("[%d] authorize", i+1)))
		}
		b.WriteString("\n")
		if s.Request.Description != "" {
			b.WriteString("      " + descriptionStyle.Render("*"+s.Request.Description))
			b.WriteString("\n")
		}
	}

	var footer []string
	if m.link != "" {
		footer = append(footer, "[t] View permission setting tutorial")
	}
	footer = append(footer, "[q] Quit App", "[s] Skip")
	b.WriteString(footerStyle.Render(" " + strings.Join(footer, "   ")))
	b.WriteString("\n")

	return b.String()
}
