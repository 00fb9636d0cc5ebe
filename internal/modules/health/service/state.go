package service

import (
	"sync"
	"time"
)

// State is what the health endpoints read: whether the runner finished
// its initial selection and when it last ticked and rolled over. The
// runner goroutine writes, the HTTP handlers read.
type State struct {
	mu           sync.RWMutex
	ready        bool
	startedAt    time.Time
	lastTick     time.Time
	lastRollover time.Time
	heldCount    int
}

func NewState() *State {
	return &State{startedAt: time.Now()}
}

func (s *State) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

func (s *State) MarkTick(t time.Time, held int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTick = t
	s.heldCount = held
}

func (s *State) MarkRollover(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRollover = t
}

func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *State) LastTick() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTick
}

func (s *State) LastRollover() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRollover
}

func (s *State) HeldCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.heldCount
}

func (s *State) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startedAt)
}
