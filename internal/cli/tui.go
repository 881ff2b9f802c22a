package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/settings"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// SettingsModel - Interactive settings editor
// =============================================================================

// SettingsModel is the bubbletea model for browsing and editing settings.
// Changes are applied to the settings immediately; the caller saves them
// when Changed is set.
type SettingsModel struct {
	Settings *settings.Settings
	Keys     []settings.Key
	Cursor   int
	Height   int
	Offset   int
	Changed  bool

	editing bool
	input   string
	err     string
}

// NewSettingsModel creates a settings editor over st.
func NewSettingsModel(st *settings.Settings) SettingsModel {
	return SettingsModel{
		Settings: st,
		Keys:     st.Schema().Keys(),
		Height:   15,
	}
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg), nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Keys)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			m.toggle()
		case "enter":
			k := m.Keys[m.Cursor]
			if k.Kind == settings.KindBool {
				m.toggle()
				break
			}
			v, _ := m.Settings.Value(k.Name)
			m.editing = true
			m.input = formatValue(v)
			if m.input == `""` {
				m.input = ""
			}
			m.err = ""
		case "r":
			m.apply(func(k settings.Key) error { return m.Settings.Reset(k.Name) })
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SettingsModel) updateEditing(msg tea.KeyMsg) SettingsModel {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.editing = false
		m.err = ""
	case tea.KeyEnter:
		k := m.Keys[m.Cursor]
		v, err := parseValue(k, m.input)
		if err == nil {
			err = m.Settings.SetValue(k.Name, v)
		}
		if err != nil {
			m.err = errors.UserMessage(err)
			return m
		}
		m.editing = false
		m.err = ""
		m.Changed = true
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m
}

func (m *SettingsModel) toggle() {
	m.apply(func(k settings.Key) error {
		if k.Kind != settings.KindBool {
			return nil
		}
		v, err := m.Settings.Bool(k.Name)
		if err != nil {
			return err
		}
		return m.Settings.SetValue(k.Name, !v)
	})
}

func (m *SettingsModel) apply(fn func(settings.Key) error) {
	before, _ := m.Settings.Value(m.Keys[m.Cursor].Name)
	if err := fn(m.Keys[m.Cursor]); err != nil {
		m.err = errors.UserMessage(err)
		return
	}
	after, _ := m.Settings.Value(m.Keys[m.Cursor].Name)
	m.err = ""
	if formatValue(before) != formatValue(after) {
		m.Changed = true
	}
}

func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ edit  space toggle  r reset  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Keys))
	for i := m.Offset; i < end; i++ {
		k := m.Keys[i]
		v, _ := m.Settings.Value(k.Name)
		value := formatValue(v)
		if m.editing && i == m.Cursor {
			value = m.input + "▏"
		}

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-28s %s", cursor, k.Name, value)
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case value != formatValue(k.Default):
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.Keys) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %s", m.Keys[m.Cursor].TypeName(), m.Keys[m.Cursor].Summary)))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(listErrorStyle.Render("  " + iconError + " " + m.err))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Keys))))

	return b.String()
}
