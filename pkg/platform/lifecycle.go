package platform

import (
	"sync"

	"github.com/go-drift/carousel/pkg/errors"
)

const (
	lifecycleChannel       = "carousel/lifecycle"
	lifecycleEventsChannel = "carousel/lifecycle/events"
)

// Lifecycle tracks the host application's foreground/background state. The
// carousel uses it to freeze settle animations while the app is paused.
var Lifecycle = &LifecycleService{
	channel: NewMethodChannel(lifecycleChannel),
	events:  NewEventChannel(lifecycleEventsChannel),
	state:   LifecycleStateResumed,
}

// LifecycleService caches the latest lifecycle state and fans changes out
// to registered handlers.
type LifecycleService struct {
	channel  *MethodChannel
	events   *EventChannel
	state    LifecycleState
	handlers []LifecycleHandler
	mu       sync.RWMutex
}

// LifecycleState is the host app's coarse activity state.
type LifecycleState string

const (
	// LifecycleStateResumed: visible and receiving input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive: visible but not receiving input, as during
	// the app switcher or a system dialog.
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStatePaused: running but not visible.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached: hosted with no view attached.
	LifecycleStateDetached LifecycleState = "detached"
)

// LifecycleHandler observes state transitions.
type LifecycleHandler func(state LifecycleState)

func init() {
	initLifecycleListeners()
	registerBuiltinInit(initLifecycleListeners)

	Lifecycle.channel.SetHandler(func(method string, args any) (any, error) {
		if method != "didChangeState" {
			return nil, ErrMethodNotFound
		}
		if state, ok := lifecycleStateOf(args); ok {
			Lifecycle.updateState(state)
		}
		return nil, nil
	})
}

// lifecycleStateOf pulls the state string out of a payload.
func lifecycleStateOf(data any) (LifecycleState, bool) {
	m, ok := data.(map[string]any)
	if !ok {
		return "", false
	}
	state, ok := m["state"].(string)
	if !ok {
		return "", false
	}
	return LifecycleState(state), true
}

func initLifecycleListeners() {
	Lifecycle.events.Listen(EventHandler{
		OnEvent: func(data any) {
			state, ok := lifecycleStateOf(data)
			if !ok {
				errors.Report(&errors.Error{
					Op:      "lifecycle.parseEvent",
					Kind:    errors.KindParsing,
					Channel: lifecycleEventsChannel,
					Err: &errors.ParseError{
						Channel:  lifecycleEventsChannel,
						DataType: "LifecycleState",
						Got:      data,
					},
				})
				return
			}
			Lifecycle.updateState(state)
		},
		OnError: func(err error) {
			errors.Report(&errors.Error{
				Op:      "lifecycle.streamError",
				Kind:    errors.KindPlatform,
				Channel: lifecycleEventsChannel,
				Err:     err,
			})
		},
	})
}

// State returns the last reported lifecycle state.
func (l *LifecycleService) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// AddHandler registers handler for state changes and returns its removal
// function.
func (l *LifecycleService) AddHandler(handler LifecycleHandler) func() {
	l.mu.Lock()
	l.handlers = append(l.handlers, handler)
	index := len(l.handlers) - 1
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		if index < len(l.handlers) {
			l.handlers = append(l.handlers[:index], l.handlers[index+1:]...)
		}
		l.mu.Unlock()
	}
}

// IsResumed reports whether the app is foregrounded and interactive.
func (l *LifecycleService) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

// IsPaused reports whether the app is backgrounded.
func (l *LifecycleService) IsPaused() bool {
	return l.State() == LifecycleStatePaused
}

func (l *LifecycleService) updateState(newState LifecycleState) {
	l.mu.Lock()
	if l.state == newState {
		l.mu.Unlock()
		return
	}
	l.state = newState
	handlers := append([]LifecycleHandler(nil), l.handlers...)
	l.mu.Unlock()

	for _, h := range handlers {
		h(newState)
	}
}
