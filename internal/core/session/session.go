// Package session owns the lifecycle of one broker subscription: it
// wires inbound messages through the phone extractor, into the message
// log, and out to the call trigger.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/ringline/internal/core/config"
	"github.com/hay-kot/ringline/internal/core/msglog"
	"github.com/hay-kot/ringline/internal/core/phone"
	"github.com/hay-kot/ringline/internal/dial"
	"github.com/hay-kot/ringline/internal/transport"
)

// Status represents the connection state of the session.
type Status string

const (
	StatusIdle         Status = "idle"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// Sentinel errors for session operations.
var (
	ErrAlreadyConnected = errors.New("session already has a live connection")
	ErrClosed           = errors.New("session is closed")
)

// EventKind identifies a session event.
type EventKind string

const (
	EventConnected       EventKind = "connected"
	EventConnectFailed   EventKind = "connect_failed"
	EventSubscribed      EventKind = "subscribed"
	EventSubscribeFailed EventKind = "subscribe_failed"
	EventMessage         EventKind = "message"
	EventDetected        EventKind = "detected"
	EventDialFailed      EventKind = "dial_failed"
	EventConnectionLost  EventKind = "connection_lost"
	EventDisconnected    EventKind = "disconnected"
)

// Event is an observable session state change, consumed by the TUI.
type Event struct {
	Kind   EventKind
	Topic  string
	Phone  string
	Record msglog.Record
	Err    error
}

// Factory creates a transport client for one connection attempt.
type Factory func(opts transport.Options, events transport.Events) transport.Client

// Options configures session behavior. Zero values get defaults.
type Options struct {
	// ClientID generates a client identifier per connection attempt.
	ClientID func() string
	// Now supplies receipt timestamps.
	Now func() time.Time
	// EventBuffer is the capacity of the event channel.
	EventBuffer int
	Logger      zerolog.Logger
}

const defaultEventBuffer = 64

// Session is the connection session. At most one transport handle is
// live at a time; reconnecting requires a full Disconnect first.
type Session struct {
	mu     sync.Mutex
	status Status
	broker config.Broker
	client transport.Client
	closed bool

	factory  Factory
	dialer   dial.Dialer
	log      *msglog.Log
	events   chan Event
	clientID func() string
	now      func() time.Time
	logger   zerolog.Logger
}

// New creates a session. The factory is invoked once per connect attempt.
func New(factory Factory, dialer dial.Dialer, log *msglog.Log, opts Options) *Session {
	if opts.ClientID == nil {
		opts.ClientID = func() string { return "ringline" }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}

	return &Session{
		status:   StatusIdle,
		factory:  factory,
		dialer:   dialer,
		log:      log,
		events:   make(chan Event, opts.EventBuffer),
		clientID: opts.ClientID,
		now:      opts.Now,
		logger:   opts.Logger,
	}
}

// Status returns the current connection status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Broker returns the configuration of the current or last attempt.
func (s *Session) Broker() config.Broker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broker
}

// Events returns the channel of observable session events.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Log returns the session's message log.
func (s *Session) Log() *msglog.Log {
	return s.log
}

// Connect starts a connection attempt with the given broker config and
// returns immediately; the outcome arrives as an event. The config is
// immutable for the lifetime of the attempt.
func (s *Session) Connect(broker config.Broker) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.client != nil {
		s.mu.Unlock()
		return ErrAlreadyConnected
	}

	s.broker = broker
	s.status = StatusConnecting
	client := s.factory(transport.Options{
		Host:     broker.Host,
		Port:     broker.Port,
		ClientID: s.clientID(),
		Username: broker.Username,
		Password: broker.Password,
	}, s)
	s.client = client
	s.mu.Unlock()

	s.logger.Info().
		Str("addr", broker.Address()).
		Str("topic", broker.Topic).
		Msg("connecting")

	client.Connect()
	return nil
}

// Disconnect closes the transport and releases the handle. A second call
// with no live handle is a no-op and emits nothing.
func (s *Session) Disconnect() {
	s.mu.Lock()
	client := s.client
	if client == nil {
		s.mu.Unlock()
		return
	}
	s.client = nil
	s.status = StatusDisconnected
	s.mu.Unlock()

	s.logger.Info().Msg("disconnecting")
	client.Disconnect()
	s.emit(Event{Kind: EventDisconnected})
}

// Close tears the session down, releasing any live transport handle.
// After Close the session cannot be reused.
func (s *Session) Close() {
	s.Disconnect()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// OnConnect implements transport.Events. The broker acknowledged the
// connection; subscribe to the configured topic.
func (s *Session) OnConnect() {
	s.mu.Lock()
	if s.client == nil {
		s.mu.Unlock()
		return
	}
	s.status = StatusConnected
	client := s.client
	topic := s.broker.Topic
	s.mu.Unlock()

	s.emit(Event{Kind: EventConnected})
	client.Subscribe(topic)
}

// OnConnectError implements transport.Events.
func (s *Session) OnConnectError(err error) {
	s.mu.Lock()
	if s.client == nil {
		s.mu.Unlock()
		return
	}
	s.client = nil
	s.status = StatusDisconnected
	s.mu.Unlock()

	s.logger.Error().Err(err).Msg("connect failed")
	s.emit(Event{Kind: EventConnectFailed, Err: err})
}

// OnSubscribed implements transport.Events. A failed subscription is
// reported but does not revert connection status: the transport remains
// connected even though nothing will be delivered.
func (s *Session) OnSubscribed(topic string, err error) {
	s.mu.Lock()
	live := s.client != nil
	s.mu.Unlock()
	if !live {
		return
	}

	if err != nil {
		s.logger.Error().Err(err).Str("topic", topic).Msg("subscribe failed")
		s.emit(Event{Kind: EventSubscribeFailed, Topic: topic, Err: err})
		return
	}

	s.logger.Info().Str("topic", topic).Msg("subscribed")
	s.emit(Event{Kind: EventSubscribed, Topic: topic})
}

// OnMessage implements transport.Events. Every message is timestamped,
// scanned for a phone number, and appended to the log; on a hit the call
// trigger fires. Dial failures surface as events, never as panics or
// state corruption.
func (s *Session) OnMessage(msg transport.Message) {
	s.mu.Lock()
	if s.client == nil {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	rec := msglog.Record{
		Topic:      msg.Topic,
		Payload:    string(msg.Payload),
		ReceivedAt: s.now(),
	}

	if number, ok := phone.Extract(rec.Payload); ok {
		rec.Phone = number
		s.logger.Info().Str("number", number).Str("topic", msg.Topic).Msg("phone number detected")
		s.emit(Event{Kind: EventDetected, Topic: msg.Topic, Phone: number})

		if err := s.dialer.Dial(context.Background(), number); err != nil {
			s.logger.Error().Err(err).Str("number", number).Msg("call trigger failed")
			s.emit(Event{Kind: EventDialFailed, Phone: number, Err: err})
		}
	}

	s.log.Append(rec)
	s.emit(Event{Kind: EventMessage, Record: rec})
}

// OnConnectionLost implements transport.Events. The handle stays live:
// the transport's own retry policy governs recovery, and OnConnect fires
// again if it succeeds.
func (s *Session) OnConnectionLost(err error) {
	s.mu.Lock()
	if s.client == nil {
		s.mu.Unlock()
		return
	}
	s.status = StatusDisconnected
	s.mu.Unlock()

	s.logger.Warn().Err(err).Msg("connection lost")
	s.emit(Event{Kind: EventConnectionLost, Err: err})
}

// emit delivers an event without blocking transport callbacks. A stalled
// consumer drops events rather than wedging the pipeline.
func (s *Session) emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.events <- e:
	default:
		s.logger.Warn().Str("kind", string(e.Kind)).Msg("event buffer full, dropping")
	}
}
