package platform

import (
	"fmt"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/go-drift/carousel/pkg/errors"
)

// channelRegistry indexes every live channel by name, for routing inbound
// bridge traffic.
type channelRegistry struct {
	methodChannels map[string]*MethodChannel
	eventChannels  map[string]*EventChannel
	mu             sync.RWMutex
}

var registry = &channelRegistry{
	methodChannels: make(map[string]*MethodChannel),
	eventChannels:  make(map[string]*EventChannel),
}

func (r *channelRegistry) registerMethod(name string, ch *MethodChannel) {
	r.mu.Lock()
	r.methodChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) registerEvent(name string, ch *EventChannel) {
	r.mu.Lock()
	r.eventChannels[name] = ch
	r.mu.Unlock()
}

func (r *channelRegistry) getMethodChannel(name string) *MethodChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.methodChannels[name]
}

func (r *channelRegistry) getEventChannel(name string) *EventChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.eventChannels[name]
}

func (r *channelRegistry) allEventChannels() []*EventChannel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	channels := make([]*EventChannel, 0, len(r.eventChannels))
	for _, ch := range r.eventChannels {
		channels = append(channels, ch)
	}
	return channels
}

// nativeBridge is installed by the embedding host, or by a loopback bridge
// in tests.
var nativeBridge NativeBridge

// builtinInits replays the package's init-time listeners (lifecycle,
// display metrics) after ResetForTest clears all subscriptions.
var builtinInits []func()

func registerBuiltinInit(fn func()) {
	builtinInits = append(builtinInits, fn)
}

// NativeBridge is what the host platform provides: method invocation into
// native code and start/stop control over native event streams.
type NativeBridge interface {
	InvokeMethod(channel, method string, args []byte) ([]byte, error)
	StartEventStream(channel string) error
	StopEventStream(channel string) error
}

// BridgeProtocolVersion is the channel protocol this package speaks. A
// bridge reporting a different major version is rejected at registration.
const BridgeProtocolVersion = "v1.2.0"

// ErrProtocolMismatch reports a native bridge built against an
// incompatible channel protocol.
var ErrProtocolMismatch = fmt.Errorf("bridge protocol version mismatch")

// SetNativeBridge installs the bridge. protocol is the version the native
// side was built against; it must be valid semver sharing
// BridgeProtocolVersion's major component.
//
// Event channels that gained listeners before a bridge existed (the
// package's own init-time listeners among them) have their native streams
// started here. A stream that fails to start reports through the
// channel's error handlers.
func SetNativeBridge(bridge NativeBridge, protocol string) error {
	if !semver.IsValid(protocol) {
		return fmt.Errorf("%w: %q is not a valid version", ErrProtocolMismatch, protocol)
	}
	if semver.Major(protocol) != semver.Major(BridgeProtocolVersion) {
		return fmt.Errorf("%w: native %s, expected %s", ErrProtocolMismatch, protocol, BridgeProtocolVersion)
	}
	nativeBridge = bridge

	for _, ch := range registry.allEventChannels() {
		ch.mu.Lock()
		pending := len(ch.subscriptions) > 0 && !ch.started
		if pending {
			ch.started = true
		}
		ch.mu.Unlock()

		if pending {
			if err := startEventStream(ch.name); err != nil {
				ch.mu.Lock()
				ch.started = false
				ch.mu.Unlock()
				ch.dispatchError(err)
			}
		}
	}
	return nil
}

// invokeNative encodes args, crosses the bridge, and decodes the result.
func invokeNative(channel, method string, args any) (any, error) {
	if nativeBridge == nil {
		return nil, ErrPlatformUnavailable
	}
	argsData, err := DefaultCodec.Encode(args)
	if err != nil {
		return nil, err
	}
	resultData, err := nativeBridge.InvokeMethod(channel, method, argsData)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Decode(resultData)
}

// reportBridgeError reports err against op/channel and returns it.
func reportBridgeError(op, channel string, err error) error {
	errors.Report(&errors.Error{
		Op:      op,
		Kind:    errors.KindPlatform,
		Channel: channel,
		Err:     err,
	})
	return err
}

func startEventStream(channel string) error {
	if nativeBridge == nil {
		return reportBridgeError("platform.startEventStream", channel, ErrPlatformUnavailable)
	}
	if err := nativeBridge.StartEventStream(channel); err != nil {
		return reportBridgeError("platform.startEventStream", channel, err)
	}
	return nil
}

func stopEventStream(channel string) error {
	if nativeBridge == nil {
		return reportBridgeError("platform.stopEventStream", channel, ErrPlatformUnavailable)
	}
	if err := nativeBridge.StopEventStream(channel); err != nil {
		return reportBridgeError("platform.stopEventStream", channel, err)
	}
	return nil
}

// HandleMethodCall routes a native-to-Go method call to its channel.
func HandleMethodCall(channel, method string, argsData []byte) ([]byte, error) {
	ch := registry.getMethodChannel(channel)
	if ch == nil {
		return nil, ErrChannelNotFound
	}
	args, err := DefaultCodec.Decode(argsData)
	if err != nil {
		return nil, err
	}
	result, err := ch.handleCall(method, args)
	if err != nil {
		return nil, err
	}
	return DefaultCodec.Encode(result)
}

// ErrChannelNotRegistered reports an event for a channel no Go code created.
var ErrChannelNotRegistered = fmt.Errorf("event channel not registered")

// lookupEventChannel resolves channel or reports and returns the miss.
func lookupEventChannel(op, channel string) (*EventChannel, error) {
	ch := registry.getEventChannel(channel)
	if ch == nil {
		err := fmt.Errorf("%w: %s", ErrChannelNotRegistered, channel)
		return nil, reportBridgeError(op, channel, err)
	}
	return ch, nil
}

// HandleEvent routes a native event to its channel's subscribers.
func HandleEvent(channel string, eventData []byte) error {
	ch, err := lookupEventChannel("platform.HandleEvent", channel)
	if err != nil {
		return err
	}
	data, err := DefaultCodec.Decode(eventData)
	if err != nil {
		ch.dispatchError(err)
		return err
	}
	ch.dispatchEvent(data)
	return nil
}

// HandleEventError routes a native stream error to subscribers.
func HandleEventError(channel string, code, message string) error {
	ch, err := lookupEventChannel("platform.HandleEventError", channel)
	if err != nil {
		return err
	}
	ch.dispatchError(NewChannelError(code, message))
	return nil
}

// HandleEventDone tells subscribers the native stream ended.
func HandleEventDone(channel string) error {
	ch, err := lookupEventChannel("platform.HandleEventDone", channel)
	if err != nil {
		return err
	}
	ch.dispatchDone()
	return nil
}

// ResetForTest returns the package to its freshly initialized shape: no
// bridge, default lifecycle and display state, no subscriptions, empty
// platform view registry, with the built-in listeners re-registered.
// Test-only.
func ResetForTest() {
	nativeBridge = nil

	Lifecycle.mu.Lock()
	Lifecycle.state = LifecycleStateResumed
	Lifecycle.handlers = Lifecycle.handlers[:0]
	Lifecycle.mu.Unlock()

	Display.mu.Lock()
	Display.metrics = DisplayMetrics{}
	Display.handlers = Display.handlers[:0]
	Display.mu.Unlock()

	for _, ch := range registry.allEventChannels() {
		ch.mu.Lock()
		ch.subscriptions = ch.subscriptions[:0]
		ch.started = false
		ch.mu.Unlock()
	}

	dispatchMu.Lock()
	dispatchFunc = nil
	dispatchMu.Unlock()

	if platformViewRegistry != nil {
		platformViewRegistry.mu.Lock()
		platformViewRegistry.views = make(map[int64]PlatformView)
		platformViewRegistry.mu.Unlock()
		platformViewRegistry.nextID.Store(0)
		platformViewRegistry.batchMu.Lock()
		platformViewRegistry.geometryCache = make(map[int64]viewGeometryCache)
		platformViewRegistry.viewsSeenThisFrame = make(map[int64]struct{})
		platformViewRegistry.batchUpdates = nil
		platformViewRegistry.batchMode = false
		platformViewRegistry.batchMu.Unlock()
	}

	for _, fn := range builtinInits {
		fn()
	}
}
