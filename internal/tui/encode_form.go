package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/fiscalcode"
)

const (
	fieldFirst = iota
	fieldLast
	fieldBirth
	fieldGender
	fieldPlace
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"first name",
	"last name",
	"birth date",
	"gender",
	"place code",
}

var fieldHints = [fieldCount]string{
	"",
	"",
	"YYYY-MM-DD",
	"M or F",
	"e.g. A131",
}

// encodeModel is the identity form for computing a code.
type encodeModel struct {
	inputs [fieldCount]textinput.Model
	focus  int
	flash  string
}

// codeComputedMsg carries a freshly computed code to the root model.
type codeComputedMsg struct {
	person fiscalcode.Person
	code   string
}

func newEncodeModel() encodeModel {
	var inputs [fieldCount]textinput.Model
	for i := range fieldCount {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = 30
		ti.Prompt = ""
		ti.Placeholder = fieldHints[i]
		inputs[i] = ti
	}

	m := encodeModel{inputs: inputs}
	m.inputs[m.focus].Focus()
	return m
}

func (m encodeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m encodeModel) Update(msg tea.Msg) (encodeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m encodeModel) handleKey(msg tea.KeyMsg) (encodeModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.submit()
	}

	return m.updateInput(msg)
}

func (m encodeModel) updateInput(msg tea.Msg) (encodeModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m encodeModel) submit() (encodeModel, tea.Cmd) {
	p, err := m.person()
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	code, err := fiscalcode.Encode(p)
	if err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	return m, func() tea.Msg { return codeComputedMsg{person: p, code: code} }
}

// person builds the identity from the form fields.
func (m encodeModel) person() (fiscalcode.Person, error) {
	birth := strings.TrimSpace(m.inputs[fieldBirth].Value())
	date, err := time.Parse("2006-01-02", birth)
	if err != nil {
		return fiscalcode.Person{}, fmt.Errorf("birth date %q: want YYYY-MM-DD", birth)
	}

	gender, err := fiscalcode.ParseGender(m.inputs[fieldGender].Value())
	if err != nil {
		return fiscalcode.Person{}, err
	}

	return fiscalcode.Person{
		FirstName: strings.TrimSpace(m.inputs[fieldFirst].Value()),
		LastName:  strings.TrimSpace(m.inputs[fieldLast].Value()),
		BirthDate: date,
		Gender:    gender,
		PlaceCode: strings.TrimSpace(m.inputs[fieldPlace].Value()),
	}, nil
}

func (m encodeModel) View() string {
	s := "\n"

	for i := range fieldCount {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-12s", fieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
