// Package alarm defines the safety alarm kinds and a rate-limited notifier.
// Alarms are advisory: they are dispatched to a sink and logged, they never
// veto the state change that triggered them.
package alarm

import (
	"log/slog"
	"time"
)

type Kind string

const (
	MoveWithOpenDoor Kind = "move_with_open_door"
	OpenWhileMoving  Kind = "open_while_moving"
	OpenOffFloor     Kind = "open_off_floor"
	GoingBeyond      Kind = "going_beyond"
)

type Event struct {
	Kind    Kind
	Message string
	Time    time.Time
}

// Sink receives dispatched alarm events. A failing sink must not disturb
// the control cycle; panics are contained by the notifier.
type Sink func(Event)

// Notifier dispatches alarms, suppressing repeats of the same kind within
// the cooldown window so a sustained violation cannot flood the sink.
type Notifier struct {
	sink      Sink
	cooldown  time.Duration
	now       func() time.Time
	lastFired map[Kind]time.Time
}

func New(sink Sink, cooldown time.Duration) *Notifier {
	return NewWithClock(sink, cooldown, time.Now)
}

// NewWithClock injects the time source, for deterministic tests.
func NewWithClock(sink Sink, cooldown time.Duration, now func() time.Time) *Notifier {
	return &Notifier{
		sink:      sink,
		cooldown:  cooldown,
		now:       now,
		lastFired: make(map[Kind]time.Time),
	}
}

// Raise dispatches an alarm unless the same kind already fired within the
// cooldown window. Reports whether the event was dispatched.
func (n *Notifier) Raise(kind Kind, message string) bool {
	ts := n.now()
	if last, ok := n.lastFired[kind]; ok && ts.Sub(last) < n.cooldown {
		return false
	}
	n.lastFired[kind] = ts
	slog.Warn("Alarm raised", "kind", kind, "message", message)
	if n.sink != nil {
		n.dispatch(Event{Kind: kind, Message: message, Time: ts})
	}
	return true
}

func (n *Notifier) dispatch(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Alarm sink failed", "kind", ev.Kind, "panic", r)
		}
	}()
	n.sink(ev)
}
