// Package session binds one snake game to its collaborators: renderers,
// score displays and the day-scoped high-score store. A Session is the
// Handler driven by loop.Loop and the single entry point for player input.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// GameID identifies the game in the score history.
const GameID = "snake"

// DefaultKeyPrefix prefixes the day in high-score keys.
const DefaultKeyPrefix = "snake_high_score_"

// HighScoreStore reads and writes the best score for a key.
// Get returns 0 for unknown keys.
type HighScoreStore interface {
	Get(key string) (int, error)
	Set(key string, value int) error
}

// ScoreRecorder is implemented by stores that keep a history of finished runs.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// Listener receives everything the session wants shown to the player.
type Listener interface {
	// Frame is called after every tick that changed the game.
	Frame(f snake.Frame)

	// ScoreChanged is called when the score or the displayed best changes.
	ScoreChanged(score, best int)

	// GameOver is called once per finished game.
	GameOver(r Result)
}

// NopListener ignores all notifications.
type NopListener struct{}

func (NopListener) Frame(snake.Frame)     {}
func (NopListener) ScoreChanged(int, int) {}
func (NopListener) GameOver(Result)       {}

// Result summarizes a finished game.
type Result struct {
	Key     string
	Score   int
	Best    int
	Outcome snake.Outcome
	NewBest bool // Score beat the best stored when the game started
}

// DayKey builds the high-score key for the day containing t.
func DayKey(prefix string, t time.Time) string {
	return prefix + t.Format("2006-01-02")
}

// Session serializes ticks and input for one game. All methods are safe
// for concurrent use.
type Session struct {
	store    HighScoreStore
	listener Listener
	logger   *log.Logger
	now      func() time.Time
	prefix   string
	gameOpts []snake.Option

	mu        sync.Mutex
	game      *snake.Game
	key       string
	best      int // Best known for key
	startBest int // Best when the current game started
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithClock overrides the time source used for day keys.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Session) {
		s.prefix = prefix
	}
}

// WithGameOptions passes options to the underlying game.
func WithGameOptions(opts ...snake.Option) Option {
	return func(s *Session) {
		s.gameOpts = append(s.gameOpts, opts...)
	}
}

// New creates a session with a freshly initialized game. Call Begin before
// driving it so the listener sees the first frame and today's best.
func New(cfg core.RuntimeConfig, store HighScoreStore, l Listener, opts ...Option) *Session {
	if l == nil {
		l = NopListener{}
	}
	s := &Session{
		store:    store,
		listener: l,
		logger:   log.New(io.Discard),
		now:      time.Now,
		prefix:   DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.game = snake.New(cfg, s.gameOpts...)
	s.key = DayKey(s.prefix, s.now())
	return s
}

// Begin loads today's best and publishes the initial frame and score.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginLocked()
}

// Restart resets the game and begins a new round.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.logger.Debug("game restarted")
	return s.beginLocked()
}

func (s *Session) beginLocked() error {
	s.key = DayKey(s.prefix, s.now())

	stored, err := s.store.Get(s.key)
	if err != nil {
		err = fmt.Errorf("session: cannot read high score %s: %w", s.key, err)
	}
	s.best = stored
	s.startBest = stored

	s.listener.Frame(s.game.Frame())
	s.listener.ScoreChanged(s.game.Score(), s.best)
	return err
}

// SetHeading forwards a direction request to the game.
func (s *Session) SetHeading(h snake.Heading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.SetHeading(h)
}

// Tick advances the game one step and updates the high score when the
// new score beats the stored one.
func (s *Session) Tick() (snake.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.game.Tick()
	if out == snake.OutcomeHalted {
		return out, nil
	}

	s.listener.Frame(s.game.Frame())
	if out != snake.OutcomeAte {
		return out, nil
	}

	score := s.game.Score()
	_, err := s.raiseBestLocked(score)
	s.listener.ScoreChanged(score, s.best)
	return out, err
}

// Finish writes the high score one last time, records the run and
// notifies the listener. The listener is notified even if the store fails.
func (s *Session) Finish(out snake.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := s.game.Score()
	_, err := s.raiseBestLocked(score)

	if rec, ok := s.store.(ScoreRecorder); ok && score > 0 {
		if _, recErr := rec.SaveScore(GameID, score); recErr != nil {
			err = errors.Join(err, fmt.Errorf("session: cannot record run: %w", recErr))
		}
	}

	res := Result{
		Key:     s.key,
		Score:   score,
		Best:    s.best,
		Outcome: out,
		NewBest: score > s.startBest,
	}
	s.logger.Info("game over", "score", score, "best", s.best, "outcome", out, "new_best", res.NewBest)
	s.logger.Debug("final state", "state", s.game.DebugState())
	s.listener.GameOver(res)
	return err
}

// raiseBestLocked compares score with the stored best and writes it when
// higher. When the read fails the last known best is used instead and the
// write is still attempted. It reports whether a write happened.
func (s *Session) raiseBestLocked(score int) (bool, error) {
	stored, readErr := s.store.Get(s.key)
	if readErr != nil {
		readErr = fmt.Errorf("session: cannot read high score %s: %w", s.key, readErr)
		stored = s.best
	}
	if score <= stored {
		s.best = stored
		return false, readErr
	}
	if err := s.store.Set(s.key, score); err != nil {
		return false, errors.Join(readErr, fmt.Errorf("session: cannot write high score %s: %w", s.key, err))
	}
	s.best = score
	s.logger.Debug("new high score", "key", s.key, "score", score)
	return true, readErr
}

// Frame returns the current render frame.
func (s *Session) Frame() snake.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Frame()
}

// Best returns the best score known for the current key.
func (s *Session) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// Key returns the high-score key of the current game.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Over reports whether the current game has ended.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Over()
}
