// Package tui provides a terminal user interface for midi2ly
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/corymarsh/midi2ly/pkg/midiread"
	"github.com/corymarsh/midi2ly/pkg/transcribe"
)

var (
	scoreGreen = lipgloss.Color("#7FD77F")
	inkBlack   = lipgloss.Color("#1A1A1A")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(scoreGreen).
			Background(inkBlack).
			Padding(0, 2).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(scoreGreen).
			Padding(1, 2)
)

// State is the current TUI state.
type State int

const (
	StateList State = iota
	StateFilePicker
	StateTranscribing
	StateResult
)

// fileItem adapts a path to bubbles/list's list.Item interface.
type fileItem string

func (f fileItem) FilterValue() string { return string(f) }
func (f fileItem) Title() string       { return filepath.Base(string(f)) }
func (f fileItem) Description() string { return string(f) }

// transcribeDoneMsg signals transcription completion.
type transcribeDoneMsg struct {
	lilypond    string
	diagnostics []string
	err         error
}

// Model is the bubbletea TUI model.
type Model struct {
	state        State
	list         list.Model
	filePicker   filepicker.Model
	viewport     viewport.Model
	spinner      spinner.Model
	selectedFile string
	result       transcribeDoneMsg
	width        int
	height       int
}

// New builds a TUI model. When paths is non-empty, the user picks among
// them with a bubbles/list; otherwise a bubbles/filepicker browses the
// working directory for ".mid"/".midi" files.
func New(paths []string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(scoreGreen)

	vp := viewport.New(80, 20)

	m := Model{spinner: s, viewport: vp}

	if len(paths) > 0 {
		items := make([]list.Item, len(paths))
		for i, p := range paths {
			items[i] = fileItem(p)
		}
		l := list.New(items, list.NewDefaultDelegate(), 0, 0)
		l.Title = "Select a MIDI file to transcribe"
		m.list = l
		m.state = StateList
		return m
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".mid", ".midi"}
	fp.CurrentDirectory, _ = os.Getwd()
	m.filePicker = fp
	m.state = StateFilePicker
	return m
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	if m.state == StateFilePicker {
		return tea.Batch(m.spinner.Tick, m.filePicker.Init())
	}
	return m.spinner.Tick
}

// Update handles TUI state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && (keyMsg.String() == "q" || keyMsg.String() == "ctrl+c") {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)
		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateTranscribing
			return m, tea.Batch(m.spinner.Tick, m.performTranscription())
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateList:
			return m.updateList(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case transcribeDoneMsg:
		m.state = StateResult
		m.result = msg
		m.viewport.SetContent(msg.lilypond)
		return m, nil
	}

	if m.state == StateResult {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.list.SelectedItem().(fileItem); ok {
			m.selectedFile = string(item)
			m.state = StateTranscribing
			return m, tea.Batch(m.spinner.Tick, m.performTranscription())
		}
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) performTranscription() tea.Cmd {
	return func() tea.Msg {
		file, err := midiread.Read(m.selectedFile)
		if err != nil {
			return transcribeDoneMsg{err: err}
		}
		result := transcribe.Orchestrate(file, transcribe.DefaultOptions())
		var diags []string
		for _, d := range result.Diagnostics.Items() {
			diags = append(diags, d.Error())
		}
		return transcribeDoneMsg{lilypond: result.LilyPond, diagnostics: diags}
	}
}

// View renders the TUI.
func (m Model) View() string {
	switch m.state {
	case StateList:
		return m.list.View()
	case StateFilePicker:
		var s strings.Builder
		s.WriteString(titleStyle.Render(" SELECT MIDI FILE "))
		s.WriteString("\n\n")
		s.WriteString(m.filePicker.View())
		return s.String()
	case StateTranscribing:
		var s strings.Builder
		s.WriteString(titleStyle.Render(" TRANSCRIBING "))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("%s Transcribing %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
		return boxStyle.Render(s.String())
	case StateResult:
		return m.viewResult()
	}
	return ""
}

func (m Model) viewResult() string {
	var s strings.Builder
	if m.result.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("transcription failed: %s", m.result.err.Error())))
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("q: quit"))
		return s.String()
	}

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", filepath.Base(m.selectedFile))))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	for _, d := range m.result.diagnostics {
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render(d))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("↑/↓: scroll • q: quit"))
	return s.String()
}

// Run starts the TUI application: with no paths it browses the working
// directory for a file to transcribe; otherwise the user picks among the
// given paths.
func Run(paths []string) error {
	p := tea.NewProgram(New(paths), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
