package core

import "sync"

// StateBase supplies the State plumbing every stateful widget needs: the
// element backreference, SetState, and dispose-time cleanup. Embed it and
// override the lifecycle hooks that matter.
type StateBase struct {
	element *StatefulElement

	mu       sync.Mutex
	cleanups []cleanupEntry
	nextID   int
	disposed bool
}

type cleanupEntry struct {
	id int
	fn func()
}

// SetElement is called by the framework when the state mounts.
func (s *StateBase) SetElement(element *StatefulElement) { s.element = element }

// Element returns the mounted element, or nil before mount.
func (s *StateBase) Element() *StatefulElement { return s.element }

// SetState applies fn and schedules a rebuild. After disposal it does
// nothing. Must be called from the UI thread.
func (s *StateBase) SetState(fn func()) {
	if s.disposed {
		return
	}
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

// OnDispose registers cleanup to run when the state is disposed, and
// returns a function that unregisters it. Registering on a disposed state
// runs the cleanup immediately.
func (s *StateBase) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		cleanup()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.cleanups = append(s.cleanups, cleanupEntry{id: id, fn: cleanup})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.cleanups {
			if s.cleanups[i].id == id {
				s.cleanups[i].fn = nil
				return
			}
		}
	}
}

// RunDisposers marks the state disposed and runs registered cleanups
// newest first. Dispose calls this; overrides that replace the embedded
// Dispose must call it themselves.
func (s *StateBase) RunDisposers() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		if cleanups[i].fn != nil {
			cleanups[i].fn()
		}
	}
}

// Dispose releases the state's resources.
func (s *StateBase) Dispose() {
	s.RunDisposers()
}

// InitState runs once before the first Build.
func (s *StateBase) InitState() {}

// Build returns the widget subtree. The embedding state overrides this.
func (s *StateBase) Build(ctx BuildContext) Widget {
	return nil
}

// DidUpdateWidget runs when the element receives a new widget of the
// same type.
func (s *StateBase) DidUpdateWidget(oldWidget StatefulWidget) {}

// IsDisposed reports whether Dispose has run.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
