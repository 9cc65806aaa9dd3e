package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner is an indeterminate activity indicator shown while the manual
// format/lint commands walk large file sets.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// Progress creates spinners appropriate for the current terminal state.
type Progress struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress backed by the given theme and headless
// manager. Output goes to os.Stderr so it never mixes with violation lists.
func NewProgress(theme *Theme, hm *HeadlessManager) *Progress {
	return &Progress{theme: theme, headless: hm, writer: os.Stderr}
}

// newProgressWithWriter creates a Progress with a custom writer (for testing).
func newProgressWithWriter(theme *Theme, hm *HeadlessManager, w io.Writer) *Progress {
	return &Progress{theme: theme, headless: hm, writer: w}
}

// Spinner creates a spinner. In headless mode it prints plain log lines.
func (p *Progress) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newHeadlessSpinner(title, p.writer)
	}
	return newInteractiveSpinner(p.theme, title)
}

// --- headlessSpinner ---

// headlessSpinner prints one line per title update.
type headlessSpinner struct {
	writer io.Writer
}

func newHeadlessSpinner(title string, w io.Writer) *headlessSpinner {
	s := &headlessSpinner{writer: w}
	fmt.Fprintln(w, title)
	return s
}

func (s *headlessSpinner) SetTitle(title string) {
	fmt.Fprintln(s.writer, title)
}

func (s *headlessSpinner) Stop() {}

// --- interactiveSpinner ---

// spinnerTitleMsg is sent to update the spinner title.
type spinnerTitleMsg string

// spinnerStopMsg is sent to stop the spinner.
type spinnerStopMsg struct{}

// spinnerModel is the bubbletea Model for the animated spinner.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner implements Spinner with an animated bubbles spinner.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(theme *Theme, title string) *interactiveSpinner {
	m := newSpinnerModel(theme, title)
	p := tea.NewProgram(m)

	s := &interactiveSpinner{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return s
}

// SetTitle updates the spinner title.
func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

// Stop halts the spinner.
func (s *interactiveSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		s.program.Wait()
	})
}
