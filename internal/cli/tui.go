package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/photowall/pkg/backend"
	"github.com/matzehuels/photowall/pkg/config"
	"github.com/matzehuels/photowall/pkg/progress"
)

var (
	tuiLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	tuiPausedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	tuiHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Messages
// =============================================================================

type startMsg struct{ runID string }

type imageMsg struct {
	row, col int
	path     string
}

type rowMsg struct{ row, width int }

type wallMsg struct{ width, height int }

type finishedMsg struct{ path string }

type doneMsg struct{ err error }

type tickMsg struct{}

// =============================================================================
// WallModel - Interactive progress view
// =============================================================================

// WallModel is the bubbletea model showing the progress of a run.
// Keys: p or space toggles the pause, q stops after the current photo.
type WallModel struct {
	control *progress.Control
	mode    string
	target  string

	runID    string
	row, col int
	file     string
	rowWidth int
	walls    int
	size     string
	result   string
	finished bool

	paused   bool
	stopping bool
	done     bool
	err      error
	frame    int
}

// NewWallModel creates the progress model for cfg.
func NewWallModel(cfg config.Config, control *progress.Control) WallModel {
	mode := "sequential"
	if cfg.PutRandom {
		mode = "random"
	}
	return WallModel{control: control, mode: mode, target: cfg.Target}
}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m WallModel) Init() tea.Cmd {
	return tick()
}

func (m WallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "p", " ":
			if !m.stopping {
				m.paused = m.control.Toggle()
			}
		case "q", "ctrl+c", "esc":
			m.control.Stop()
			m.paused = false
			m.stopping = true
		}
	case startMsg:
		m.runID = msg.runID
	case imageMsg:
		m.row, m.col, m.file = msg.row, msg.col, msg.path
	case rowMsg:
		m.rowWidth = msg.width
	case wallMsg:
		m.walls++
		m.size = fmt.Sprintf("%dx%d", msg.width, msg.height)
	case finishedMsg:
		m.finished = true
		m.result = msg.path
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m WallModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Photowall"))
	b.WriteString(StyleDim.Render(" · " + m.mode))
	if m.runID != "" {
		b.WriteString(StyleDim.Render(" · " + m.runID[:min(8, len(m.runID))]))
	}
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(tuiLabelStyle.Render(label) + " " + StyleValue.Render(value) + "\n")
	}
	if m.file != "" {
		line("Photo", filepath.Base(m.file))
	}
	if m.mode == "random" {
		line("Placed", fmt.Sprintf("%d", m.placed()))
	} else {
		line("Position", fmt.Sprintf("row %d · photo %d", m.row+1, m.col+1))
		line("Row", fmt.Sprintf("%d px", m.rowWidth))
	}
	if m.size != "" {
		line("Wall", m.size)
	}
	line("Target", m.target)
	b.WriteString("\n")

	switch {
	case m.done && m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	case m.done && m.finished && m.result == "":
		b.WriteString(styleIconWarning.Render(iconWarning) + " Nothing was written\n")
	case m.done:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " Done\n")
	case m.stopping:
		b.WriteString(StyleWarning.Render("Stopping after the current photo...") + "\n")
	case m.paused:
		b.WriteString(tuiPausedStyle.Render("Paused") + "\n")
	default:
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		b.WriteString(styleIconSpinner.Render(frames[m.frame%len(frames)]) + " Working\n")
	}

	if !m.done {
		b.WriteString("\n" + tuiHelpStyle.Render("p/space pause  q stop") + "\n")
	}
	return b.String()
}

// placed is the number of placements of a random wall. A resumed canvas is
// published once before the first placement and not counted.
func (m WallModel) placed() int {
	if m.file == "" {
		return 0
	}
	return m.row + 1
}

// =============================================================================
// tuiSink - forwards progress to the program
// =============================================================================

type tuiSink struct {
	send func(tea.Msg)
}

func (s tuiSink) OnStart(_ context.Context, runID string) { s.send(startMsg{runID: runID}) }
func (s tuiSink) OnImage(_ context.Context, row, col int, path string) {
	s.send(imageMsg{row: row, col: col, path: path})
}
func (s tuiSink) OnRow(_ context.Context, row int, strip *backend.Image) {
	s.send(rowMsg{row: row, width: strip.Width()})
}
func (s tuiSink) OnWall(_ context.Context, wall *backend.Image) {
	s.send(wallMsg{width: wall.Width(), height: wall.Height()})
}
func (s tuiSink) OnFinished(_ context.Context, path string) { s.send(finishedMsg{path: path}) }

var _ progress.Reporter = tuiSink{}

// runTUI runs build in the background while the progress view owns the
// terminal. It returns the error of build, or the program's error if the
// view could not run.
func runTUI(cfg config.Config, control *progress.Control, build func(progress.Reporter) error) error {
	p := tea.NewProgram(NewWallModel(cfg, control))

	errc := make(chan error, 1)
	go func() {
		err := build(tuiSink{send: p.Send})
		errc <- err
		p.Send(doneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		control.Stop()
		<-errc
		return err
	}
	buildErr := <-errc
	if m, ok := final.(WallModel); ok && m.result != "" {
		printFile(m.result)
	}
	return buildErr
}
