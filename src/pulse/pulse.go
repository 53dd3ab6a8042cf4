// Package pulse schedules one-shot delayed actions for the control loop,
// used for the short acknowledge pulse on the call-button outputs.
package pulse

import "time"

// Scheduler queues an action to run after a delay. The concrete timing
// mechanism is a collaborator concern; the core only depends on After.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// LoopScheduler delivers due actions on a channel so they execute on the
// control loop goroutine instead of the timer goroutine.
type LoopScheduler struct {
	actions chan func()
}

func NewLoopScheduler(buffer int) *LoopScheduler {
	return &LoopScheduler{actions: make(chan func(), buffer)}
}

func (s *LoopScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.actions <- fn
	})
}

// Actions is drained by the control loop's select.
func (s *LoopScheduler) Actions() <-chan func() {
	return s.actions
}
