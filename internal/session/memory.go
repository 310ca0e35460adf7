package session

import "sync"

// MemoryStore is an in-memory HighScoreStore and ScoreRecorder. It backs
// play without a database and tests.
type MemoryStore struct {
	mu     sync.Mutex
	scores map[string]int
	runs   []int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scores: make(map[string]int)}
}

// Get returns the stored value for key, or 0.
func (m *MemoryStore) Get(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[key], nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[key] = value
	return nil
}

// SaveScore appends a finished run.
func (m *MemoryStore) SaveScore(_ string, score int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, score)
	return int64(len(m.runs)), nil
}

// Runs returns the recorded runs in order.
func (m *MemoryStore) Runs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.runs...)
}
