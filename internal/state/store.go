package state

import (
	"sync"
)

// Store is a mutex-guarded holder of State. Every change goes through
// Dispatch; subscribers are notified after each dispatch, outside the lock,
// each with its own copy of the new state.
type Store struct {
	mu         sync.RWMutex
	state      State
	errorLimit int

	subMu  sync.Mutex
	subs   map[int]func(State, Action)
	nextID int
}

// NewStore creates a Store holding New(). errorLimit bounds each slice's
// error log; zero or less keeps every entry.
func NewStore(errorLimit int) *Store {
	return &Store{
		state:      New(),
		errorLimit: errorLimit,
		subs:       make(map[int]func(State, Action)),
	}
}

// Dispatch applies a to the state and notifies subscribers.
func (s *Store) Dispatch(a Action) {
	if re, ok := a.(RecordError); ok && re.Limit == 0 {
		re.Limit = s.errorLimit
		a = re
	}

	s.mu.Lock()
	s.state = Reduce(s.state, a)
	snapshot := s.state.clone()
	s.mu.Unlock()

	s.subMu.Lock()
	fns := make([]func(State, Action), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot.clone(), a)
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to run after every dispatch. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State, Action)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}
