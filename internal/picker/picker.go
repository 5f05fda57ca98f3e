package picker

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"t12fmt/internal/t12"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits without confirming.
var ErrCancelled = errors.New("selection cancelled")

// UI States
type state int

const (
	stateSelectKind state = iota
	stateSelectFile
	stateConfirm
	stateDone
)

// Selection is what the user chose to format.
type Selection struct {
	Kind t12.ReportKind
	Path string
}

type model struct {
	kinds []t12.ReportKind
	files []string

	state      state
	kindCursor int

	// File list navigation
	fileCursor  int
	page        int
	rowsPerPage int

	width int

	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	progressStyle lipgloss.Style
}

func initialModel(files []string, rowsPerPage int) model {
	if rowsPerPage < 1 {
		rowsPerPage = 1
	}
	return model{
		kinds:       t12.ReportKinds(),
		files:       files,
		state:       stateSelectKind,
		rowsPerPage: rowsPerPage,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		progressStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.state {
		case stateSelectKind:
			return m.updateSelectKind(msg)
		case stateSelectFile:
			return m.updateSelectFile(msg)
		case stateConfirm:
			return m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m model) updateSelectKind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.kindCursor > 0 {
			m.kindCursor--
		}
	case "down", "j":
		if m.kindCursor < len(m.kinds)-1 {
			m.kindCursor++
		}
	case "enter":
		m.state = stateSelectFile
	}
	return m, nil
}

func (m model) updateSelectFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.state = stateSelectKind
	case "up", "k":
		if m.fileCursor > 0 {
			m.fileCursor--
		} else if m.page > 0 {
			m.page--
			m.fileCursor = m.rowsPerPage - 1
		}
	case "down", "j":
		if m.fileCursor < m.maxFileCursor() {
			m.fileCursor++
		} else if m.hasNextPage() {
			m.page++
			m.fileCursor = 0
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
			m.fileCursor = 0
		}
	case "right", "l":
		if m.hasNextPage() {
			m.page++
			m.fileCursor = 0
		}
	case "enter":
		if m.currentFile() != "" {
			m.state = stateConfirm
		}
	}
	return m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "n":
		return m, tea.Quit
	case "y", "enter":
		m.state = stateDone
		return m, tea.Quit
	case "esc":
		m.state = stateSelectFile
	}
	return m, nil
}

func (m model) currentFile() string {
	idx := m.page*m.rowsPerPage + m.fileCursor
	if idx < 0 || idx >= len(m.files) {
		return ""
	}
	return m.files[idx]
}

func (m model) hasNextPage() bool {
	return (m.page+1)*m.rowsPerPage < len(m.files)
}

func (m model) maxFileCursor() int {
	itemsOnPage := len(m.files) - m.page*m.rowsPerPage
	if itemsOnPage > m.rowsPerPage {
		return m.rowsPerPage - 1
	}
	return itemsOnPage - 1
}

// selection reports the confirmed choice, if any.
func (m model) selection() (*Selection, bool) {
	if m.state != stateDone {
		return nil, false
	}
	return &Selection{Kind: m.kinds[m.kindCursor], Path: m.currentFile()}, true
}

func (m model) View() string {
	switch m.state {
	case stateSelectKind:
		return m.viewSelectKind()
	case stateSelectFile:
		return m.viewSelectFile()
	case stateConfirm:
		return m.viewConfirm()
	}
	return ""
}

func (m model) viewSelectKind() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("Select Report Type"))
	b.WriteString("\n\n")

	for i, kind := range m.kinds {
		label := fmt.Sprintf("%s (%s)", kind, kind.Profile().Suffix)
		if i == m.kindCursor {
			b.WriteString(m.selectedStyle.Render("> " + label))
		} else {
			b.WriteString(m.normalStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("↑↓: navigate | Enter: select | q: quit"))
	return b.String()
}

func (m model) viewSelectFile() string {
	var b strings.Builder

	title := fmt.Sprintf("Choose a T12 %s workbook:", m.kinds[m.kindCursor])
	b.WriteString(m.titleStyle.Render(title))
	b.WriteString("\n\n")

	totalPages := int(math.Ceil(float64(len(m.files)) / float64(m.rowsPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	b.WriteString(m.helpStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, totalPages)))
	b.WriteString("\n\n")

	if len(m.files) == 0 {
		b.WriteString(m.normalStyle.Render("No workbooks found"))
		b.WriteString("\n")
	}

	start := m.page * m.rowsPerPage
	end := min(start+m.rowsPerPage, len(m.files))
	for i := start; i < end; i++ {
		name := filepath.Base(m.files[i])
		if i-start == m.fileCursor {
			b.WriteString(m.selectedStyle.Render("> " + name))
		} else {
			b.WriteString(m.normalStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("↑↓: navigate | ←→: prev/next page | Enter: select | Esc: back | q: quit"))
	return b.String()
}

func (m model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("Format this workbook?"))
	b.WriteString("\n\n")

	kind := m.kinds[m.kindCursor]
	b.WriteString(m.progressStyle.Render(fmt.Sprintf("Report: %s", kind.Profile().Suffix)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("File: %s\n\n", m.currentFile()))

	b.WriteString(m.helpStyle.Render("y/n to confirm, Esc to go back"))
	return b.String()
}

// Run starts the picker and returns the confirmed selection.
func Run(files []string, rowsPerPage int) (*Selection, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no workbooks to choose from")
	}

	p := tea.NewProgram(initialModel(files, rowsPerPage), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running TUI: %w", err)
	}

	sel, ok := finalModel.(model).selection()
	if !ok {
		return nil, ErrCancelled
	}
	return sel, nil
}
