package platform

import "sync"

// noopBridge swallows every call.
type noopBridge struct{}

func (noopBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	return DefaultCodec.Encode(nil)
}
func (noopBridge) StartEventStream(string) error { return nil }
func (noopBridge) StopEventStream(string) error  { return nil }

// SetupTestBridge wires a no-op bridge and a synchronous dispatcher for
// tests that only need the channels to exist. Pass t.Cleanup (or an
// equivalent) so ResetForTest runs on teardown:
//
//	platform.SetupTestBridge(t.Cleanup)
func SetupTestBridge(cleanup func(func())) {
	SetNativeBridge(noopBridge{}, BridgeProtocolVersion)
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(ResetForTest)
}

// BridgeCall records a single method invocation that crossed the bridge.
type BridgeCall struct {
	Channel string
	Method  string
	Args    map[string]any
}

// LoopbackBridge is a NativeBridge that records outgoing calls and lets
// tests script responses and emit inbound events. It stands in for a real
// native host in tests and headless runs.
type LoopbackBridge struct {
	mu       sync.Mutex
	calls    []BridgeCall
	handlers map[string]func(method string, args map[string]any) (any, error)
	streams  map[string]bool
}

// NewLoopbackBridge creates an empty loopback bridge.
func NewLoopbackBridge() *LoopbackBridge {
	return &LoopbackBridge{
		handlers: make(map[string]func(method string, args map[string]any) (any, error)),
		streams:  make(map[string]bool),
	}
}

// Handle registers a scripted handler for a channel. Calls on channels
// without a handler succeed with a nil result.
func (b *LoopbackBridge) Handle(channel string, fn func(method string, args map[string]any) (any, error)) {
	b.mu.Lock()
	b.handlers[channel] = fn
	b.mu.Unlock()
}

// Calls returns a snapshot of all recorded invocations.
func (b *LoopbackBridge) Calls() []BridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BridgeCall, len(b.calls))
	copy(out, b.calls)
	return out
}

// CallsTo returns recorded invocations of a specific channel and method.
func (b *LoopbackBridge) CallsTo(channel, method string) []BridgeCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []BridgeCall
	for _, c := range b.calls {
		if c.Channel == channel && c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// StreamStarted reports whether native was asked to start a channel's events.
func (b *LoopbackBridge) StreamStarted(channel string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.streams[channel]
}

// EmitEvent delivers an inbound event as if sent by the native side.
func (b *LoopbackBridge) EmitEvent(channel string, data any) error {
	encoded, err := DefaultCodec.Encode(data)
	if err != nil {
		return err
	}
	return HandleEvent(channel, encoded)
}

// InvokeGoMethod delivers an inbound method call as if sent by native.
func (b *LoopbackBridge) InvokeGoMethod(channel, method string, args any) (any, error) {
	encoded, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}
	result, err := HandleMethodCall(channel, method, encoded)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Decode(result)
}

// InvokeMethod implements NativeBridge.
func (b *LoopbackBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	decoded, err := DefaultCodec.Decode(args)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.calls = append(b.calls, BridgeCall{Channel: channel, Method: method, Args: parseMap(decoded)})
	handler := b.handlers[channel]
	b.mu.Unlock()

	if handler == nil {
		return DefaultCodec.Encode(nil)
	}
	result, err := handler(method, parseMap(decoded))
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(result)
}

// StartEventStream implements NativeBridge.
func (b *LoopbackBridge) StartEventStream(channel string) error {
	b.mu.Lock()
	b.streams[channel] = true
	b.mu.Unlock()
	return nil
}

// StopEventStream implements NativeBridge.
func (b *LoopbackBridge) StopEventStream(channel string) error {
	b.mu.Lock()
	b.streams[channel] = false
	b.mu.Unlock()
	return nil
}
