package tokenizer

import "fmt"

// EventName identifies one of the tokenizer's fixed core events.
type EventName string

// The fixed set of core events. No other event names are valid arguments
// to Tokenizer.On or Tokenizer's internal dispatch.
const (
	EventStart                EventName = "start"
	EventEnd                  EventName = "end"
	EventNext                 EventName = "next"
	EventNewToken             EventName = "newToken"
	EventContextStart         EventName = "contextStart"
	EventContextEnd           EventName = "contextEnd"
	EventInsertToken          EventName = "insertToken"
	EventRemoveToken          EventName = "removeToken"
	EventRemoveRange          EventName = "removeRange"
	EventReplaceToken         EventName = "replaceToken"
	EventReplaceRange         EventName = "replaceRange"
	EventComposeRUD           EventName = "composeRUD"
	EventUpdateContextsRanges EventName = "updateContextsRanges"
)

// coreEvents lists every event a freshly built EventBus understands.
var coreEvents = []EventName{
	EventStart, EventEnd, EventNext, EventNewToken,
	EventContextStart, EventContextEnd,
	EventInsertToken, EventRemoveToken, EventRemoveRange,
	EventReplaceToken, EventReplaceRange, EventComposeRUD,
	EventUpdateContextsRanges,
}

// mutatingEvents is the subset auto-wired to a Tokenizer's range
// recomputation step as part of its bootstrapping contract.
var mutatingEvents = []EventName{
	EventInsertToken, EventRemoveToken, EventRemoveRange,
	EventReplaceToken, EventReplaceRange, EventComposeRUD,
}

// Handler is a subscriber callback. It receives an explicit receiver
// value rather than an implicit "this", plus an event-specific payload
// value.
type Handler[R any] func(receiver R, payload any) error

// Subscription is a generation-tagged handle returned by Subscribe. It
// remains valid for Unsubscribe even if other subscribers are removed in
// the meantime, since this bus identifies subscribers by a monotonically
// increasing id instead of by position.
type Subscription struct {
	event EventName
	id    uint64
}

type subscriber[R any] struct {
	id uint64
	fn Handler[R]
}

// EventBus is a small, named, multi-subscriber signal bus. Dispatch is
// synchronous and invokes subscribers in subscription order. It is
// intentionally generic over its receiver type so it can be reused outside
// of Tokenizer.
type EventBus[R any] struct {
	names   map[EventName]bool
	subs    map[EventName][]subscriber[R]
	nextID  uint64
	silence bool // silent-mode override: see SetSilent
}

// NewEventBus creates a bus that understands exactly the given event
// names; dispatching or subscribing to any other name is a no-op / error.
func NewEventBus[R any](names ...EventName) *EventBus[R] {
	b := &EventBus[R]{
		names: make(map[EventName]bool, len(names)),
		subs:  make(map[EventName][]subscriber[R], len(names)),
	}
	for _, n := range names {
		b.names[n] = true
	}
	return b
}

// Knows reports whether name is one of the bus's registered events.
func (b *EventBus[R]) Knows(name EventName) bool {
	return b.names[name]
}

// On subscribes fn to name and returns a stable handle for later
// Unsubscribe. It fails if name is unknown or fn is nil.
func (b *EventBus[R]) On(name EventName, fn Handler[R]) (Subscription, error) {
	if !b.names[name] {
		return Subscription{}, fmt.Errorf("eventbus: unknown event %q", name)
	}
	if fn == nil {
		return Subscription{}, fmt.Errorf("eventbus: handler for %q must not be nil", name)
	}
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriber[R]{id: id, fn: fn})
	return Subscription{event: name, id: id}, nil
}

// Off removes the subscriber identified by sub, if still present.
func (b *EventBus[R]) Off(sub Subscription) {
	list := b.subs[sub.event]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// SetSilent toggles the bus's silent-mode override: while true, Dispatch
// is a no-op for every event regardless of the silent flag passed by the
// caller that triggered it. Tokenizer uses this to batch ComposeRUD calls.
func (b *EventBus[R]) SetSilent(silent bool) {
	b.silence = silent
}

// Dispatch invokes every subscriber of name, in subscription order,
// passing receiver and payload. Dispatching an unknown event is a no-op.
// The first handler error stops dispatch and is returned.
func (b *EventBus[R]) Dispatch(receiver R, name EventName, payload any) error {
	if b.silence || !b.names[name] {
		return nil
	}
	for _, s := range b.subs[name] {
		if err := s.fn(receiver, payload); err != nil {
			return err
		}
	}
	return nil
}

// --- Event payloads ---------------------------------------------------

// NextPayload accompanies EventNext.
type NextPayload struct {
	Params ContextParams
}

// NewTokenPayload accompanies EventNewToken.
type NewTokenPayload struct {
	Token  *Token
	Params ContextParams
}

// ContextStartPayload accompanies EventContextStart.
type ContextStartPayload struct {
	Name  string
	Index int
}

// ContextEndPayload accompanies EventContextEnd.
type ContextEndPayload struct {
	Name  string
	Range ContextRange
}

// EndPayload accompanies EventEnd.
type EndPayload struct {
	Tokens []*Token
}

// InsertTokenPayload accompanies EventInsertToken.
type InsertTokenPayload struct {
	Index  int
	Tokens []*Token
}

// RemoveTokenPayload accompanies EventRemoveToken.
type RemoveTokenPayload struct {
	Index int
}

// RemoveRangePayload accompanies EventRemoveRange.
type RemoveRangePayload struct {
	Start  int
	Offset *int
}

// ReplaceTokenPayload accompanies EventReplaceToken.
type ReplaceTokenPayload struct {
	Index int
	Token *Token
}

// ReplaceRangePayload accompanies EventReplaceRange.
type ReplaceRangePayload struct {
	Start  int
	Offset *int
	Tokens []*Token
}

// ComposeRUDPayload accompanies EventComposeRUD.
type ComposeRUDPayload struct {
	Results []RUDResult
}

// UpdateContextsRangesPayload accompanies EventUpdateContextsRanges.
type UpdateContextsRangesPayload struct {
	Contexts map[string]*ContextChecker
}
