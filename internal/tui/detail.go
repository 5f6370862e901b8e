package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/record"
)

// detailModel shows a single saved record.
type detailModel struct {
	record record.Record
	fields []codeField
	cursor int
	flash  string
}

func newDetailModel(r record.Record) detailModel {
	m := detailModel{record: r}
	m.fields = detailFields(r)
	return m
}

func detailFields(r record.Record) []codeField {
	return []codeField{
		{"code", r.Code},
		{"name", r.FirstName + " " + r.LastName},
		{"birth", r.BirthDate.Format("2006-01-02")},
		{"gender", r.Gender.String()},
		{"place", r.PlaceCode},
		{"saved", r.CreatedAt.Format("2006-01-02 15:04")},
	}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		// copy selected field
		val := m.fields[m.cursor].value
		if err := clipboard.WriteAll(val); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied!"), clearFlashAfter()
	}

	switch msg.String() {
	case "c":
		if err := clipboard.WriteAll(m.allFields()); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied!"), clearFlashAfter()

	case "d":
		id := m.record.ID
		return m, func() tea.Msg { return deleteRecordMsg{id: id} }
	}

	return m, nil
}

// allFields renders the record as label: value lines for the clipboard.
func (m detailModel) allFields() string {
	var b strings.Builder
	for _, f := range m.fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func (m detailModel) setFlash(msg string) detailModel {
	m.flash = msg
	return m
}

func (m detailModel) View() string {
	codeStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n  " + codeStyle.Render(m.record.Code) + "\n\n"

	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", f.label))
		if i == m.cursor {
			s += zstyle.ActiveBorder.Render(fmt.Sprintf("  > %s %s", label, f.value)) + "\n"
		} else {
			s += fmt.Sprintf("    %s %s\n", label, f.value)
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
