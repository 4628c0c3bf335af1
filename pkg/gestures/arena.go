package gestures

import "sync"

// ArenaMember competes for ownership of a pointer sequence.
type ArenaMember interface {
	// AcceptGesture tells the member it won the arena for the pointer.
	AcceptGesture(pointer int64)
	// RejectGesture tells the member it lost the arena for the pointer.
	RejectGesture(pointer int64)
}

// GestureArena resolves which recognizer owns a pointer sequence.
//
// Each pointer gets its own arena. Recognizers join during pointer down
// (via Add). After hit testing dispatches the down event, the arena is
// closed: if only one member joined, it wins immediately. Otherwise the
// arena stays open until a member self-resolves (claims or withdraws) or
// the pointer goes up, at which point Sweep awards the first remaining
// member.
type GestureArena struct {
	mu     sync.Mutex
	arenas map[int64]*arenaState
}

type arenaState struct {
	members []ArenaMember
	closed  bool
	winner  ArenaMember
}

// DefaultArena is the arena shared by all recognizers in the process.
var DefaultArena = NewGestureArena()

// NewGestureArena creates an empty arena.
func NewGestureArena() *GestureArena {
	return &GestureArena{arenas: make(map[int64]*arenaState)}
}

// Add registers a member in the arena for the given pointer.
func (g *GestureArena) Add(pointer int64, member ArenaMember) {
	g.mu.Lock()
	state, ok := g.arenas[pointer]
	if !ok {
		state = &arenaState{}
		g.arenas[pointer] = state
	}
	state.members = append(state.members, member)
	g.mu.Unlock()
}

// Close closes the arena for the pointer. A lone member wins immediately;
// multiple members keep competing until one resolves or the arena is swept.
func (g *GestureArena) Close(pointer int64) {
	g.mu.Lock()
	state, ok := g.arenas[pointer]
	if !ok {
		g.mu.Unlock()
		return
	}
	state.closed = true
	var winner ArenaMember
	if state.winner == nil && len(state.members) == 1 {
		winner = state.members[0]
		state.winner = winner
	}
	g.mu.Unlock()

	if winner != nil {
		winner.AcceptGesture(pointer)
	}
}

// Resolve lets a member claim or withdraw from the arena.
//
// A claim (accept=true) awards the arena to the member and rejects the
// rest. A withdrawal removes the member; if exactly one member remains in
// a closed arena, it wins by default.
func (g *GestureArena) Resolve(pointer int64, member ArenaMember, accept bool) {
	g.mu.Lock()
	state, ok := g.arenas[pointer]
	if !ok || state.winner != nil {
		g.mu.Unlock()
		return
	}

	if accept {
		state.winner = member
		losers := make([]ArenaMember, 0, len(state.members))
		for _, m := range state.members {
			if m != member {
				losers = append(losers, m)
			}
		}
		g.mu.Unlock()

		member.AcceptGesture(pointer)
		for _, m := range losers {
			m.RejectGesture(pointer)
		}
		return
	}

	remaining := state.members[:0]
	for _, m := range state.members {
		if m != member {
			remaining = append(remaining, m)
		}
	}
	state.members = remaining

	var winner ArenaMember
	if state.closed && len(state.members) == 1 {
		winner = state.members[0]
		state.winner = winner
	}
	g.mu.Unlock()

	member.RejectGesture(pointer)
	if winner != nil {
		winner.AcceptGesture(pointer)
	}
}

// Sweep forces resolution when the pointer sequence ends. The first
// member still standing wins; everyone else is rejected. The arena is
// removed afterwards.
func (g *GestureArena) Sweep(pointer int64) {
	g.mu.Lock()
	state, ok := g.arenas[pointer]
	if !ok {
		g.mu.Unlock()
		return
	}
	delete(g.arenas, pointer)

	var winner ArenaMember
	var losers []ArenaMember
	if state.winner == nil && len(state.members) > 0 {
		winner = state.members[0]
		losers = state.members[1:]
	}
	g.mu.Unlock()

	if winner != nil {
		winner.AcceptGesture(pointer)
	}
	for _, m := range losers {
		m.RejectGesture(pointer)
	}
}

// Remove drops a member from the pointer's arena without notifying it.
// Used when a recognizer is disposed mid-sequence.
func (g *GestureArena) Remove(pointer int64, member ArenaMember) {
	g.mu.Lock()
	defer g.mu.Unlock()
	state, ok := g.arenas[pointer]
	if !ok {
		return
	}
	remaining := state.members[:0]
	for _, m := range state.members {
		if m != member {
			remaining = append(remaining, m)
		}
	}
	state.members = remaining
}
