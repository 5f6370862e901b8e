// Package tui implements the root Bubble Tea model.
package tui

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/core/pkg/zstyle"

	"github.com/MalwareWerewolf/CodiceFiscaleUtils/internal/record"
)

type viewID int

const (
	viewPassword viewID = iota
	viewMenu
	viewEncode
	viewResult
	viewValidate
	viewList
	viewDetail
)

// accent is the tool's highlight color.
var accent = lipgloss.Color("42")

// Model is the root TUI model.
type Model struct {
	version  string
	dataDir  string
	store    *zstore.Store
	records  *zstore.Collection[record.Record]
	firstRun bool

	active   viewID
	password passwordModel
	menu     menuModel
	encode   encodeModel
	result   resultModel
	validate validateModel
	list     listModel
	detail   detailModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, dataDir string, firstRun bool) Model {
	return Model{
		version:  version,
		dataDir:  dataDir,
		firstRun: firstRun,
		active:   viewPassword,
		password: newPasswordModel(firstRun),
		menu:     newMenuModel(version),
	}
}

func (m Model) Init() tea.Cmd {
	return m.password.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordSubmitMsg:
		return m.openStore(msg.password)

	case navigateMsg:
		return m.navigate(msg.view)

	case codeComputedMsg:
		m.result = newResultModel(msg.person, msg.code)
		m.active = viewResult
		return m, nil

	case saveRecordMsg:
		return m.handleSave(msg.record)

	case deleteRecordMsg:
		return m.handleDelete(msg.id)

	case viewRecordMsg:
		m.detail = newDetailModel(msg.record)
		m.active = viewDetail
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	// password and menu carry their own framing
	switch m.active {
	case viewPassword:
		return m.password.View()
	case viewMenu:
		return m.menu.View()
	}

	// all other views: header + separator + content + footer
	var content string
	switch m.active {
	case viewEncode:
		content = m.encode.View()
	case viewResult:
		content = m.result.View()
	case viewValidate:
		content = m.validate.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	}

	header := zstyle.RenderHeader("codicefiscale", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewEncode:
		return "Compute Code"
	case viewResult:
		return "Fiscal Code"
	case viewValidate:
		return "Validate Code"
	case viewList:
		return "Saved Codes"
	case viewDetail:
		return "Code Details"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewEncode:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "enter", Desc: "compute"},
			{Key: "esc", Desc: "back"},
		}
	case viewResult:
		return []zstyle.HelpPair{
			{Key: "s", Desc: "save"},
			{Key: "c", Desc: "copy code"},
			{Key: "n", Desc: "new"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewValidate:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "check"},
			{Key: "esc", Desc: "back"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy all"},
			{Key: "d", Desc: "delete"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewPassword:
		m.password, cmd = m.password.Update(msg)
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewEncode:
		m.encode, cmd = m.encode.Update(msg)
	case viewResult:
		m.result, cmd = m.result.Update(msg)
	case viewValidate:
		m.validate, cmd = m.validate.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}

	return m, cmd
}

func (m Model) openStore(password string) (tea.Model, tea.Cmd) {
	if err := os.MkdirAll(m.dataDir, 0o700); err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{
			err: fmt.Errorf("create data dir: %w", err),
		})
		return m, nil
	}

	fsys := zfilesystem.NewOSFileSystem(m.dataDir)
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	col, err := zstore.NewCollection[record.Record](s, "records")
	if err != nil {
		s.Close()
		m.password, _ = m.password.Update(passwordErrMsg{err: err})
		return m, nil
	}

	m.store = s
	m.records = col
	m.active = viewMenu
	return m, nil
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		if m.records != nil {
			if recs, err := m.records.List(); err == nil {
				mm.recordCount = len(recs)
			}
		}
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewEncode:
		m.encode = newEncodeModel()
		m.active = viewEncode
		return m, tea.Batch(m.encode.Init(), tea.ClearScreen)

	case viewValidate:
		m.validate = newValidateModel()
		m.active = viewValidate
		return m, tea.Batch(m.validate.Init(), tea.ClearScreen)

	case viewList:
		m, cmd := m.loadList()
		return m, tea.Batch(cmd, tea.ClearScreen)

	case viewResult:
		m.active = viewResult
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) loadList() (tea.Model, tea.Cmd) {
	if m.records == nil {
		m.list = newListModel(nil)
		m.active = viewList
		return m, nil
	}

	recs, err := m.records.List()
	if err != nil {
		// show empty list with error flash
		m.list = newListModel(nil)
		m.list.flash = "load: " + err.Error()
		m.active = viewList
		return m, clearFlashAfter()
	}

	// zstore.List does not guarantee order; newest first
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	m.list = newListModel(recs)
	m.active = viewList
	return m, nil
}

func (m Model) handleSave(r record.Record) (tea.Model, tea.Cmd) {
	if m.records == nil {
		return m, nil
	}

	if err := m.records.Put(r.ID, r); err != nil {
		m.result.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.result, _ = m.result.Update(recordSavedMsg{})
	return m, clearFlashAfter()
}

func (m Model) handleDelete(id string) (tea.Model, tea.Cmd) {
	if m.records == nil {
		return m, nil
	}

	if err := m.records.Delete(id); err != nil {
		if m.active == viewDetail {
			m.detail.flash = "delete: " + err.Error()
			return m, clearFlashAfter()
		}
		m.list.flash = "delete: " + err.Error()
		return m, clearFlashAfter()
	}

	// back to the list after any delete
	return m.loadList()
}

// Close cleans up resources. Call after the program exits.
func (m Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}
