package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/record"
)

// listModel browses saved records.
type listModel struct {
	records []record.Record
	cursor  int
	flash   string
}

// viewRecordMsg asks the root model to open a record's detail view.
type viewRecordMsg struct {
	record record.Record
}

// deleteRecordMsg asks the root model to delete a record.
type deleteRecordMsg struct {
	id string
}

func newListModel(recs []record.Record) listModel {
	return listModel{records: recs}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
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
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if len(m.records) == 0 {
			return m, nil
		}
		r := m.records[m.cursor]
		return m, func() tea.Msg { return viewRecordMsg{record: r} }
	}

	if msg.String() == "d" {
		if len(m.records) == 0 {
			return m, nil
		}
		id := m.records[m.cursor].ID
		return m, func() tea.Msg { return deleteRecordMsg{id: id} }
	}

	return m, nil
}

func (m listModel) View() string {
	s := "\n"

	if len(m.records) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved codes yet") + "\n\n"
	}

	for i, r := range m.records {
		name := fmt.Sprintf("%-24s", r.FirstName+" "+r.LastName)
		line := fmt.Sprintf("%s %s", name, r.Code)
		if i == m.cursor {
			s += zstyle.Highlight.Render("  > "+line) + "\n"
		} else {
			s += "    " + line + "\n"
		}
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
