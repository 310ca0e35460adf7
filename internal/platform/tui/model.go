package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/session"
)

var (
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	newBestStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tooSmallStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Options tune a game model.
type Options struct {
	Logger *log.Logger

	// Seed for food placement. 0 picks a time-based seed.
	Seed int64

	// FromMenu enables the back-to-menu binding on the game over screen.
	FromMenu bool

	// ScreenshotDir receives ctrl+s captures. Empty means ~/.snake/screenshots.
	ScreenshotDir string

	SessionOptions []session.Option
}

// Model is the Bubble Tea model for one snake game. The game is driven by
// a loop.Loop; the model only renders what the session publishes and
// forwards input.
type Model struct {
	cfg      config.SnakeConfig
	session  *session.Session
	loop     *loop.Loop
	listener *teaListener
	logger   *log.Logger
	shotDir  string

	keys   KeyMap
	help   help.Model
	screen *core.Screen

	frame  snake.Frame
	best   int
	result *session.Result
	err    error

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewModel creates a game model. The loop starts in Init.
func NewModel(cfg config.SnakeConfig, store session.HighScoreStore, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Use time-based seed if not specified
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	listener := newTeaListener()

	sessOpts := []session.Option{
		session.WithLogger(logger),
		session.WithKeyPrefix(cfg.HighScore.KeyPrefix),
	}
	sessOpts = append(sessOpts, opts.SessionOptions...)
	sess := session.New(cfg.Runtime(seed), store, listener, sessOpts...)

	lp := loop.New(sess,
		loop.WithLogger(logger),
		loop.WithErrorHandler(listener.fail),
	)

	keys := DefaultKeyMap()
	keys.Menu.SetEnabled(opts.FromMenu)

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(config.UserDir(), "screenshots")
	}

	w, h := snake.ScreenSize(cfg.Runtime(seed).Grid())

	return Model{
		cfg:      cfg,
		session:  sess,
		loop:     lp,
		listener: listener,
		logger:   logger,
		shotDir:  shotDir,
		keys:     keys,
		help:     help.New(),
		screen:   core.NewScreen(w, h),
		frame:    sess.Frame(),
	}
}

// Init publishes the first frame and starts the game loop.
func (m Model) Init() tea.Cmd {
	if err := m.session.Begin(); err != nil {
		m.logger.Warn("could not load today's best", "error", err)
	}

	if err := m.loop.Start(m.cfg.TickPeriod.Std()); err != nil {
		// The errMsg branch resumes reading the channel.
		return func() tea.Msg { return errMsg{err: err} }
	}
	return waitForMsg(m.listener.ch)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.frame = msg.frame
		if !m.frame.Over {
			m.result = nil
		}
		return m, waitForMsg(m.listener.ch)

	case scoreMsg:
		m.best = msg.best
		return m, waitForMsg(m.listener.ch)

	case overMsg:
		res := msg.result
		m.result = &res
		m.best = res.Best
		return m, waitForMsg(m.listener.ch)

	case errMsg:
		m.err = msg.err
		m.logger.Error("game stopped", "error", msg.err)
		return m, waitForMsg(m.listener.ch)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}

	case core.ActionRestart:
		if !m.stopped() {
			return m, nil
		}
		m.result = nil
		m.err = nil
		if err := m.session.Restart(); err != nil {
			m.logger.Warn("could not load today's best", "error", err)
		}
		if err := m.loop.Start(m.cfg.TickPeriod.Std()); err != nil {
			m.err = err
		}
		// Close may have run from another goroutine meanwhile.
		if m.listener.isClosed() {
			m.loop.Stop()
		}

	case core.ActionMenu:
		if !m.stopped() {
			return m, nil
		}
		m.Close()
		m.backToMenu = true

	default:
		if h, ok := HeadingFor(action); ok {
			m.session.SetHeading(h)
		}
	}

	return m, nil
}

// stopped reports whether a finished game can be restarted or left: it is
// over, or the loop halted on an error. A closed model never restarts.
func (m Model) stopped() bool {
	if m.listener.isClosed() {
		return false
	}
	return m.session.Over() || m.err != nil
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.renderFrame()

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", m.shotDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("snake_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// renderFrame draws the latest frame into the screen buffer.
func (m Model) renderFrame() {
	w, h := snake.ScreenSize(m.frame.Grid)
	m.screen.Resize(w, h)
	m.frame.Render(m.screen, m.best)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	w, h := snake.ScreenSize(m.frame.Grid)
	if m.width > 0 && (m.width < w || m.height < h+1) {
		return tooSmallStyle.Render(fmt.Sprintf(
			"Terminal too small: need %dx%d, have %dx%d", w, h+1, m.width, m.height))
	}

	m.renderFrame()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error() + " (press r to restart)"))
		b.WriteString("\n")
	case m.result != nil && m.result.NewBest:
		b.WriteString(newBestStyle.Render(fmt.Sprintf("New best for today: %d!", m.result.Score)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Close stops the game loop and ends the message stream. It is safe to
// call more than once.
func (m Model) Close() {
	m.listener.close()
	m.loop.Stop()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game in the alternate screen and blocks until the
// player quits.
func Run(cfg config.SnakeConfig, store session.HighScoreStore, opts Options) error {
	model := NewModel(cfg, store, opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
