// Package event provides the typed notification bus the core uses to tell
// consumers (CLI output, MCP server, a future GUI shell) that state changed.
//
// Design: Events are fire-and-forget notifications, not approval requests.
// Subscribers cannot block or veto operations - they observe after the fact.
// Emit is synchronous and runs handlers in subscription order, which keeps
// the single-writer execution model simple and deterministic.
package event

// Type identifies the kind of event.
type Type string

const (
	// TypeDataLoaded fires after the document is (re)loaded wholesale:
	// initialisation, platform override, import, reset, session load.
	TypeDataLoaded Type = "data:loaded"
	// TypeDataUpdated fires after an in-place mutation of the document.
	TypeDataUpdated Type = "data:updated"
	// TypeSessionsChanged fires after the sessions collection is rewritten.
	TypeSessionsChanged Type = "sessions:changed"
	// TypeActiveNameChanged fires when the active save name changes.
	TypeActiveNameChanged Type = "saves:active-changed"
	// TypeUserMessage carries transient user-facing feedback.
	TypeUserMessage Type = "user:message"
)

// Event is the base interface for all events.
type Event interface {
	EventType() Type
}

// DataLoaded is fired when the whole document is replaced. Doc is the live
// document; treat it as read-only inside handlers.
type DataLoaded struct {
	Doc any
}

func (DataLoaded) EventType() Type { return TypeDataLoaded }

// DataUpdated is fired after a successful in-place update.
type DataUpdated struct {
	Doc any
}

func (DataUpdated) EventType() Type { return TypeDataUpdated }

// SessionsChanged is fired after the sessions collection changes.
type SessionsChanged struct{}

func (SessionsChanged) EventType() Type { return TypeSessionsChanged }

// ActiveNameChanged is fired when the named-save facade's active name is set.
// Name is empty when the document is unsaved.
type ActiveNameChanged struct {
	Name string
}

func (ActiveNameChanged) EventType() Type { return TypeActiveNameChanged }

// Level classifies a user message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// UserMessage is transient user-facing feedback, toast-style. Consumers
// decide how to present it.
type UserMessage struct {
	Level Level
	Text  string
}

func (UserMessage) EventType() Type { return TypeUserMessage }

// Handler receives events. Handlers must not mutate event payloads.
type Handler func(Event)

// Bus dispatches events to subscribers by event type.
//
// Not safe for concurrent subscription; subscribe during setup, emit at
// runtime. Emit may be called from the platform-override goroutine, so the
// handler list is only read after setup completes.
type Bus struct {
	handlers map[Type][]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// On subscribes a handler to one event type.
func (b *Bus) On(t Type, h Handler) {
	b.handlers[t] = append(b.handlers[t], h)
}

// Emit dispatches e to all handlers subscribed to its type.
func (b *Bus) Emit(e Event) {
	for _, h := range b.handlers[e.EventType()] {
		h(e)
	}
}

// Success emits a success user message.
func (b *Bus) Success(text string) { b.Emit(UserMessage{Level: LevelSuccess, Text: text}) }

// Error emits an error user message.
func (b *Bus) Error(text string) { b.Emit(UserMessage{Level: LevelError, Text: text}) }

// Warning emits a warning user message.
func (b *Bus) Warning(text string) { b.Emit(UserMessage{Level: LevelWarning, Text: text}) }

// Info emits an info user message.
func (b *Bus) Info(text string) { b.Emit(UserMessage{Level: LevelInfo, Text: text}) }
