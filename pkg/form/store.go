package form

import "sync"

type listener struct {
	id int
	fn func(State)
}

// store owns the single state of a form instance. Every mutation swaps in a
// freshly built map under the write lock so readers never see a partial
// update, and each merge starts from the latest maps so concurrent writes to
// different keys are not lost.
type store struct {
	mu        sync.RWMutex
	values    Values
	errors    Errors
	listeners []listener
	nextID    int
}

func newStore(values Values) *store {
	return &store{
		values: values.Clone(),
		errors: make(Errors),
	}
}

func (s *store) snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Values: s.values.Clone(), Errors: s.errors.Clone()}
}

func (s *store) value(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

func (s *store) mergeValues(partial Values) State {
	s.mu.Lock()
	next := s.values.Clone()
	for name, value := range partial {
		next[name] = value
	}
	s.values = next
	state := State{Values: next.Clone(), Errors: s.errors.Clone()}
	s.mu.Unlock()
	return state
}

// mergeErrors applies partial on top of the current errors. Empty messages
// clear the key.
func (s *store) mergeErrors(partial Errors) State {
	s.mu.Lock()
	next := s.errors.Clone()
	for name, message := range partial {
		if message == "" {
			delete(next, name)
			continue
		}
		next[name] = message
	}
	s.errors = next
	state := State{Values: s.values.Clone(), Errors: next.Clone()}
	s.mu.Unlock()
	return state
}

// adopt merges partial values and replaces the error map in one step.
func (s *store) adopt(partial Values, errs Errors) State {
	s.mu.Lock()
	if len(partial) > 0 {
		next := s.values.Clone()
		for name, value := range partial {
			next[name] = value
		}
		s.values = next
	}
	s.errors = errs.Clone()
	state := State{Values: s.values.Clone(), Errors: s.errors.Clone()}
	s.mu.Unlock()
	return state
}

func (s *store) replace(values Values, errs Errors) State {
	s.mu.Lock()
	if values != nil {
		s.values = values.Clone()
	}
	if errs != nil {
		s.errors = errs.Clone()
	}
	state := State{Values: s.values.Clone(), Errors: s.errors.Clone()}
	s.mu.Unlock()
	return state
}

func (s *store) subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// notify runs listeners outside the lock so they may read the form freely.
func (s *store) notify(state State) {
	s.mu.RLock()
	listeners := append([]listener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.fn(State{Values: state.Values.Clone(), Errors: state.Errors.Clone()})
	}
}
