package platform

import (
	"errors"
	"sync"
	"sync/atomic"
)

// MethodHandler services method calls arriving from native code.
type MethodHandler func(method string, args any) (any, error)

// MethodChannel is a named request/response pipe between Go and the native
// side. Each direction carries a method name plus JSON-codable arguments.
type MethodChannel struct {
	name    string
	codec   MessageCodec
	handler MethodHandler
}

// NewMethodChannel registers and returns a method channel. Channel names
// are global; creating two channels with one name leaves only the second
// reachable from native.
func NewMethodChannel(name string) *MethodChannel {
	ch := &MethodChannel{name: name, codec: DefaultCodec}
	registry.registerMethod(name, ch)
	return ch
}

// Name returns the channel name.
func (c *MethodChannel) Name() string { return c.name }

// SetHandler installs the handler for calls arriving from native code.
func (c *MethodChannel) SetHandler(handler MethodHandler) {
	c.handler = handler
}

// Invoke calls a method on the native side and blocks for its response.
func (c *MethodChannel) Invoke(method string, args any) (any, error) {
	return invokeNative(c.name, method, args)
}

func (c *MethodChannel) handleCall(method string, args any) (any, error) {
	if c.handler == nil {
		return nil, ErrMethodNotFound
	}
	return c.handler(method, args)
}

// EventHandler receives the three signals an event stream can produce.
type EventHandler struct {
	OnEvent func(data any)
	OnError func(err error)
	OnDone  func()
}

// Subscription is one listener's registration on an EventChannel.
type Subscription struct {
	channel  *EventChannel
	handler  *EventHandler
	canceled atomic.Bool
}

// Cancel detaches the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.canceled.CompareAndSwap(false, true) {
		s.channel.removeSubscription(s)
	}
}

// IsCanceled reports whether Cancel has run.
func (s *Subscription) IsCanceled() bool {
	return s.canceled.Load()
}

// EventChannel is a named native-to-Go event stream with any number of Go
// listeners. The native stream is started when the first listener arrives
// and stopped when the last one cancels.
type EventChannel struct {
	name          string
	codec         MessageCodec
	subscriptions []*Subscription
	started       bool
	mu            sync.Mutex
}

// NewEventChannel registers and returns an event channel.
func NewEventChannel(name string) *EventChannel {
	ch := &EventChannel{name: name, codec: DefaultCodec}
	registry.registerEvent(name, ch)
	return ch
}

// Name returns the channel name.
func (c *EventChannel) Name() string { return c.name }

// Listen adds a subscriber. A failure to start the native stream is routed
// to handler.OnError; the subscription itself is still returned, since the
// stream may start later when a bridge attaches.
func (c *EventChannel) Listen(handler EventHandler) *Subscription {
	sub := &Subscription{channel: c, handler: &handler}

	c.mu.Lock()
	c.subscriptions = append(c.subscriptions, sub)
	first := !c.started
	if first {
		c.started = true
	}
	c.mu.Unlock()

	if first {
		if err := startEventStream(c.name); err != nil {
			c.mu.Lock()
			c.started = false
			c.mu.Unlock()
			if handler.OnError != nil {
				handler.OnError(err)
			}
		}
	}

	return sub
}

func (c *EventChannel) removeSubscription(sub *Subscription) {
	c.mu.Lock()
	for i, s := range c.subscriptions {
		if s == sub {
			c.subscriptions = append(c.subscriptions[:i], c.subscriptions[i+1:]...)
			break
		}
	}
	last := len(c.subscriptions) == 0
	if last {
		c.started = false
	}
	c.mu.Unlock()

	if last {
		// ErrClosed here just means the native side tore down first.
		if err := stopEventStream(c.name); err != nil && !errors.Is(err, ErrClosed) {
			_ = err
		}
	}
}

// snapshotSubs copies the subscriber list so dispatch runs without the lock.
func (c *EventChannel) snapshotSubs() []*Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Subscription(nil), c.subscriptions...)
}

func (c *EventChannel) dispatchEvent(data any) {
	for _, sub := range c.snapshotSubs() {
		if !sub.IsCanceled() && sub.handler.OnEvent != nil {
			sub.handler.OnEvent(data)
		}
	}
}

func (c *EventChannel) dispatchError(err error) {
	for _, sub := range c.snapshotSubs() {
		if !sub.IsCanceled() && sub.handler.OnError != nil {
			sub.handler.OnError(err)
		}
	}
}

func (c *EventChannel) dispatchDone() {
	c.mu.Lock()
	subs := c.subscriptions
	c.subscriptions = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.canceled.Store(true)
		if sub.handler.OnDone != nil {
			sub.handler.OnDone()
		}
	}
}
