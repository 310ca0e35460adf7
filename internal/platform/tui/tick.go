// Package tui provides the Bubble Tea front end for the snake game.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
)

// msgBuffer bounds the queue between the game loop and Bubble Tea.
const msgBuffer = 16

// frameMsg carries the state after a tick.
type frameMsg struct {
	frame snake.Frame
}

// scoreMsg carries a score or best-score change.
type scoreMsg struct {
	score int
	best  int
}

// overMsg reports a finished game.
type overMsg struct {
	result session.Result
}

// errMsg reports a failure that stopped the game loop.
type errMsg struct {
	err error
}

// teaListener forwards session notifications into a channel read by the
// Bubble Tea program. It never blocks the game loop: when the UI falls
// behind, the oldest queued messages are dropped.
type teaListener struct {
	ch chan tea.Msg

	mu     sync.Mutex
	closed bool
}

var _ session.Listener = (*teaListener)(nil)

func newTeaListener() *teaListener {
	return &teaListener{ch: make(chan tea.Msg, msgBuffer)}
}

func (l *teaListener) Frame(f snake.Frame) {
	l.send(frameMsg{frame: f})
}

func (l *teaListener) ScoreChanged(score, best int) {
	l.send(scoreMsg{score: score, best: best})
}

func (l *teaListener) GameOver(r session.Result) {
	l.send(overMsg{result: r})
}

func (l *teaListener) fail(err error) {
	l.send(errMsg{err: err})
}

// close ends the stream. Later sends are dropped.
func (l *teaListener) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.ch)
	}
}

func (l *teaListener) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *teaListener) send(msg tea.Msg) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	for {
		select {
		case l.ch <- msg:
			return
		default:
		}
		// Full: drop the oldest message and retry.
		select {
		case <-l.ch:
		default:
		}
	}
}

// waitForMsg returns a command that delivers the next queued message.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
