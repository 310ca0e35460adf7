package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// appScreen is the screen the app model is showing.
type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// AppModel manages the full flow: menu -> game or scoreboard -> menu.
// It is the top-level model for SSH sessions and `play --menu`.
type AppModel struct {
	cfg    config.SnakeConfig
	store  session.HighScoreStore
	opts   Options
	logger *log.Logger

	screen     appScreen
	menu       MenuModel
	game       *Model
	scoreboard ScoreboardModel
	width      int
	height     int
	quitting   bool

	// active is shared by all copies of the model so the game loop can be
	// stopped from outside the Bubble Tea program.
	active *activeGame
}

// activeGame tracks the loop of the game currently on screen.
type activeGame struct {
	mu   sync.Mutex
	game *Model
}

func (a *activeGame) set(g *Model) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.game = g
}

func (a *activeGame) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game != nil {
		a.game.Close()
		a.game = nil
	}
}

// NewAppModel creates the app model starting at the menu.
func NewAppModel(cfg config.SnakeConfig, store session.HighScoreStore, opts Options, width, height int) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.FromMenu = true

	m := AppModel{
		cfg:    cfg,
		store:  store,
		opts:   opts,
		logger: logger,
		width:  width,
		height: height,
		active: &activeGame{},
	}
	m.menu = m.newMenu()
	return m
}

func (m AppModel) newMenu() MenuModel {
	best, err := m.store.Get(session.DayKey(m.cfg.HighScore.KeyPrefix, time.Now()))
	if err != nil {
		m.logger.Warn("could not load today's best", "error", err)
	}
	_, hasScores := m.store.(ScoreSource)
	return NewMenuModel(m.width, m.height, best, hasScores)
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	if selected.Scores {
		source, _ := m.store.(ScoreSource)
		m.scoreboard = NewScoreboardModel(source, m.cfg.HighScore.KeyPrefix, m.width, m.height)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	}

	cfg := m.cfg
	config.ApplySpeedPreset(&cfg, selected.Speed)
	m.logger.Debug("starting game", "speed", selected.Speed, "period", cfg.TickPeriod.Std())

	game := NewModel(cfg, m.store, m.opts)
	game.width, game.height = m.width, m.height
	game.help.Width = m.width
	m.game = &game
	m.active.set(&game)
	m.screen = screenGame
	return m, m.game.Init()
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	game := next.(Model)
	m.game = &game

	switch {
	case game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case game.BackToMenu():
		m.active.set(nil)
		m.game = nil
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.menu = m.newMenu()
		m.screen = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// Close stops a running game, if any. It is safe to call from any goroutine.
func (m AppModel) Close() {
	m.active.close()
}

// RunApp runs the menu-driven app in the alternate screen.
func RunApp(cfg config.SnakeConfig, store session.HighScoreStore, opts Options) error {
	model := NewAppModel(cfg, store, opts, 80, 24)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	defer model.Close()

	_, err := p.Run()
	return err
}
