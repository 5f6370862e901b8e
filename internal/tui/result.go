package tui

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/fiscalcode"
	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/record"
)

// codeField is a labeled field for display and copying.
type codeField struct {
	label string
	value string
}

// resultModel displays a freshly computed code with actions.
type resultModel struct {
	person fiscalcode.Person
	code   string
	fields []codeField
	cursor int
	flash  string
}

// saveRecordMsg requests saving the computed code.
type saveRecordMsg struct {
	record record.Record
}

// recordSavedMsg confirms the record was saved.
type recordSavedMsg struct{}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newResultModel(p fiscalcode.Person, code string) resultModel {
	m := resultModel{person: p, code: code}
	m.fields = resultFields(p, code)
	return m
}

func resultFields(p fiscalcode.Person, code string) []codeField {
	return []codeField{
		{"code", code},
		{"name", p.FirstName + " " + p.LastName},
		{"birth", p.BirthDate.Format("2006-01-02")},
		{"gender", p.Gender.String()},
		{"place", strings.ToUpper(p.PlaceCode)},
	}
}

func (m resultModel) Init() tea.Cmd {
	return nil
}

func (m resultModel) Update(msg tea.Msg) (resultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case recordSavedMsg:
		return m.setFlash("saved"), clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m resultModel) handleKey(msg tea.KeyMsg) (resultModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
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
	case "s":
		r := m.buildRecord()
		return m, func() tea.Msg { return saveRecordMsg{record: r} }

	case "c":
		if err := clipboard.WriteAll(m.code); err != nil {
			return m.setFlash("copy: " + err.Error()), clearFlashAfter()
		}
		return m.setFlash("copied!"), clearFlashAfter()

	case "n":
		return m, func() tea.Msg { return navigateMsg{view: viewEncode} }
	}

	return m, nil
}

func (m resultModel) buildRecord() record.Record {
	return record.Record{
		ID:        resultHexID(),
		FirstName: m.person.FirstName,
		LastName:  m.person.LastName,
		BirthDate: m.person.BirthDate,
		Gender:    m.person.Gender,
		PlaceCode: strings.ToUpper(m.person.PlaceCode),
		Code:      m.code,
		CreatedAt: time.Now().UTC(),
	}
}

func (m resultModel) setFlash(msg string) resultModel {
	m.flash = msg
	return m
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m resultModel) View() string {
	codeStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n  " + codeStyle.Render(m.code) + "\n\n"

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

func resultHexID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return hex.EncodeToString(b)
}
