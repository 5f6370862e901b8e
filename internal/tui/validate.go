package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/fiscalcode"
)

// validateModel checks candidate codes and shows the decoded details.
type validateModel struct {
	input   textinput.Model
	checked bool
	valid   bool
	details fiscalcode.Details
}

func newValidateModel() validateModel {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 30
	ti.Prompt = ""
	ti.Placeholder = "RSSMRA50E04A131O"
	ti.Focus()

	return validateModel{input: ti}
}

func (m validateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m validateModel) Update(msg tea.Msg) (validateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyBack) {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.check(), nil
		}

		// any edit invalidates the previous verdict
		m.checked = false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m validateModel) check() validateModel {
	code := m.input.Value()
	m.checked = true
	m.valid = fiscalcode.IsValid(code)
	if m.valid {
		if d, err := fiscalcode.Decode(code); err == nil {
			m.details = d
		}
	}
	return m
}

func (m validateModel) View() string {
	label := zstyle.MutedText.Render(fmt.Sprintf("  %-8s", "code"))
	s := fmt.Sprintf("\n  > %s %s\n\n", label, m.input.View())

	if !m.checked {
		s += "\n\n\n"
		return s
	}

	if !m.valid {
		s += "  " + zstyle.StatusErr.Render("invalid") + "\n\n\n"
		return s
	}

	s += "  " + zstyle.StatusOK.Render("valid") + "\n"
	s += "  " + zstyle.MutedText.Render(fmt.Sprintf("%-8s", "birth")) + " " + m.details.BirthDate.Format("2006-01-02") + "\n"
	s += "  " + zstyle.MutedText.Render(fmt.Sprintf("%-8s", "gender")) + " " + m.details.Gender.String() +
		"   " + zstyle.MutedText.Render("place") + " " + m.details.PlaceCode + "\n"

	return s
}
