// Package ui is the terminal front end: a Bubble Tea program that renders
// navigator snapshots and turns keys, mouse clicks and scan completions into
// navigator transitions. The program loop is the only goroutine that touches
// the navigator.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tw93/dircount/internal/count"
	"github.com/tw93/dircount/internal/logging"
	"github.com/tw93/dircount/internal/nav"
)

// Options configures the front end.
type Options struct {
	SpinnerInterval time.Duration
	Mouse           bool
	Logger          *zap.Logger
}

type completionMsg count.Completion

type completionsClosedMsg struct{}

// Model is the Bubble Tea model.
type Model struct {
	nav         *nav.Navigator
	completions <-chan count.Completion
	logger      *zap.Logger
	keys        keyMap
	mouse       bool

	snap    nav.Snapshot
	offset  int
	width   int
	height  int
	status  string
	spinner spinner.Model
	ticking bool
}

// New wires a navigator and the dispatcher's completion stream into a model.
func New(n *nav.Navigator, completions <-chan count.Completion, opts Options) Model {
	interval := opts.SpinnerInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.L()
	}

	m := Model{
		nav:         n,
		completions: completions,
		logger:      logger,
		keys:        defaultKeyMap(),
		mouse:       opts.Mouse,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Spinner{Frames: spinnerFrames, FPS: interval}),
			spinner.WithStyle(spinnerStyle),
		),
	}
	m.snap = n.Snapshot()
	return m
}

// Snapshot returns the state currently on screen.
func (m Model) Snapshot() nav.Snapshot { return m.snap }

func waitForCompletion(ch <-chan count.Completion) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return completionsClosedMsg{}
		}
		return completionMsg(c)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForCompletion(m.completions)}
	if m.busy() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) busy() bool {
	return m.snap.Counting > 0 || !m.snap.DirStatus.Terminal()
}

// sync re-reads the navigator and restarts the spinner when work appears.
func (m *Model) sync() tea.Cmd {
	m.snap = m.nav.Snapshot()
	m.clampOffset()
	if m.busy() && !m.ticking {
		m.ticking = true
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		if !m.mouse {
			return m, nil
		}
		return m.updateMouse(msg)
	case completionMsg:
		if m.nav.ScanCompleted(msg.Path) {
			cmd := m.sync()
			return m, tea.Batch(cmd, waitForCompletion(m.completions))
		}
		m.logger.Debug("completion dropped", zap.String("path", msg.Path), zap.Uint64("seq", msg.Seq))
		return m, waitForCompletion(m.completions)
	case completionsClosedMsg:
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			m.ticking = false
			return m, nil
		}
		m.ticking = true
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.nav.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveSelection(1)
	case key.Matches(msg, m.keys.Enter):
		if sel, ok := m.snap.SelectedChild(); ok && m.nav.Enter() {
			m.offset = 0
			m.status = ""
			m.logger.Debug("enter", zap.String("path", sel.Path))
		}
	case key.Matches(msg, m.keys.Back):
		if m.nav.Back() {
			m.status = ""
		}
	case key.Matches(msg, m.keys.Home):
		if m.nav.Home() {
			m.status = ""
		}
	case key.Matches(msg, m.keys.Refresh):
		m.nav.Refresh()
		m.status = "Refreshing..."
		m.logger.Debug("refresh", zap.String("path", m.snap.Dir))
	case key.Matches(msg, m.keys.Sort):
		m.status = "Sorted by " + m.nav.ToggleSort().String()
	default:
		return m, nil
	}
	cmd := m.sync()
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.nav.MoveSelection(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.nav.MoveSelection(1)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if !m.click(msg.X, msg.Y) {
			return m, nil
		}
	default:
		return m, nil
	}
	cmd := m.sync()
	return m, cmd
}

// click maps a press to a breadcrumb or a child row. A row click selects
// the row and enters it.
func (m *Model) click(x, y int) bool {
	if y == 0 {
		for _, c := range layoutCrumbs(m.snap) {
			if x >= c.x0 && x < c.x1 && c.depth < m.snap.Depth() {
				m.status = ""
				return m.nav.BackTo(c.depth)
			}
		}
		return false
	}

	row := y - headerLines
	if row < 0 || row >= m.rows() {
		return false
	}
	idx := m.offset + row
	if !m.nav.Select(idx) {
		return false
	}
	if m.nav.Enter() {
		m.offset = 0
		m.status = ""
	}
	return true
}

// rows is the number of child rows that fit on screen.
func (m Model) rows() int {
	if m.height <= 0 {
		return entryViewport
	}
	if r := m.height - headerLines - footerLines; r > 0 {
		return r
	}
	return 1
}

// clampOffset keeps the selected row inside the viewport.
func (m *Model) clampOffset() {
	n := len(m.snap.Children)
	if n == 0 || m.snap.Selected < 0 {
		m.offset = 0
		return
	}
	rows := m.rows()
	maxOffset := n - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.snap.Selected < m.offset {
		m.offset = m.snap.Selected
	}
	if m.snap.Selected >= m.offset+rows {
		m.offset = m.snap.Selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
