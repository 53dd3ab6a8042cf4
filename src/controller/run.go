package controller

import (
	"fmt"
	"log/slog"
	"time"

	"liftctl/src/config"
	"liftctl/src/gpio"
	"liftctl/src/pulse"
)

// CommandKind enumerates the operator-interface requests.
type CommandKind int

const (
	CmdMoveUp CommandKind = iota
	CmdMoveDown
	CmdStopMove
	CmdOpenDoor
	CmdCloseDoor
	CmdStopDoor
	CmdSlow
	CmdCabinButton
	CmdFloorButton
)

// Command is one operator request delivered to the control loop. Enabled
// carries the requested state for CmdSlow; Index carries the button for the
// button commands.
type Command struct {
	Kind    CommandKind
	Enabled bool
	Index   int
}

// Run drives the control cycle at the tick cadence. Operator commands,
// hardware samples and due pulse actions are folded in on the same goroutine,
// so arbitration always happens before the next tick reads the effective
// flags and no locking is needed around the models. The tick driver suspends
// while no command is effective and resumes on the next input. Snapshots are
// offered to updates without blocking; a slow consumer drops frames, never
// stalls the cycle. An unexpected tick failure stops the loop and is
// returned: the cabin must not keep moving after an internal fault.
func Run(c *Controller, commands <-chan Command, samples <-chan gpio.Sample, sched *pulse.LoopScheduler, updates chan<- Snapshot) error {
	ticker := time.NewTicker(config.TickInterval)
	defer ticker.Stop()
	running := true

	resume := func() {
		if !running && c.Active() {
			ticker.Reset(config.TickInterval)
			running = true
			slog.Debug("Control cycle resumed")
		}
	}

	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				return nil
			}
			c.apply(cmd)
			resume()

		case sample := <-samples:
			c.ApplySample(sample)
			resume()

		case fn := <-sched.Actions():
			fn()

		case <-ticker.C:
			snap, err := safeTick(c)
			if err != nil {
				slog.Error("Control cycle failed, stopping", "err", err)
				return err
			}
			if updates != nil {
				select {
				case updates <- snap:
				default:
				}
			}
			if !c.Active() {
				ticker.Stop()
				running = false
				slog.Debug("Control cycle suspended, no effective command")
			}
		}
	}
}

func (c *Controller) apply(cmd Command) {
	switch cmd.Kind {
	case CmdMoveUp:
		c.MoveUp()
	case CmdMoveDown:
		c.MoveDown()
	case CmdStopMove:
		c.StopMove()
	case CmdOpenDoor:
		c.OpenDoor()
	case CmdCloseDoor:
		c.CloseDoor()
	case CmdStopDoor:
		c.StopDoor()
	case CmdSlow:
		c.ToggleSlow(cmd.Enabled)
	case CmdCabinButton:
		c.PressCabinButton(cmd.Index)
	case CmdFloorButton:
		c.PressFloorButton(cmd.Index)
	default:
		slog.Warn("Unknown command", "kind", cmd.Kind)
	}
}

// safeTick contains a panicking tick so the loop stops cleanly instead of
// crashing with live hardware outputs.
func safeTick(c *Controller) (snap Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panic: %v", r)
		}
	}()
	return c.Tick(), nil
}
