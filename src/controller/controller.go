// Package controller owns the cabin and door models and the command flags,
// evaluates the safety interlocks and runs the per-tick control cycle.
// Presentation and hardware collaborators never mutate model state directly;
// everything goes through the controller's command methods.
package controller

import (
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"liftctl/src/alarm"
	"liftctl/src/arbiter"
	"liftctl/src/cabin"
	"liftctl/src/config"
	"liftctl/src/door"
	"liftctl/src/gpio"
	"liftctl/src/pulse"
)

type Controller struct {
	cabin  *cabin.Cabin
	door   *door.Door
	flags  *arbiter.Arbiter
	alarms *alarm.Notifier
	dev    gpio.Device
	sched  pulse.Scheduler
	lamps  gpio.Lamps

	writeFaultLogged bool
}

func New(cab *cabin.Cabin, dr *door.Door, dev gpio.Device, sched pulse.Scheduler, alarms *alarm.Notifier) *Controller {
	cab.SetSlow(false)
	return &Controller{
		cabin:  cab,
		door:   dr,
		flags:  arbiter.New(),
		alarms: alarms,
		dev:    dev,
		sched:  sched,
	}
}

// Operator commands. Interlock checks run at issue time and raise advisory
// alarms; the commanded state change proceeds regardless.

func (c *Controller) MoveUp() {
	c.checkDoorClosed()
	c.flags.GUIMoveUp()
}

func (c *Controller) MoveDown() {
	c.checkDoorClosed()
	c.flags.GUIMoveDown()
}

func (c *Controller) StopMove() {
	c.flags.GUIStopMove()
}

func (c *Controller) OpenDoor() {
	c.checkOpenAllowed()
	c.flags.GUIOpenDoor()
}

func (c *Controller) CloseDoor() {
	c.flags.GUICloseDoor()
}

func (c *Controller) StopDoor() {
	c.flags.GUIStopDoor()
}

// ToggleSlow applies the operator's speed request. While the hardware slow
// line forces slow mode the request is ignored and ToggleSlow reports false,
// so a presentation collaborator can snap its control back to the forced
// state.
func (c *Controller) ToggleSlow(enabled bool) bool {
	if !c.flags.GUISetSlow(enabled) {
		slog.Debug("Slow mode toggle ignored, forced by hardware")
		return false
	}
	c.cabin.SetSlow(enabled)
	return true
}

func (c *Controller) checkDoorClosed() {
	if closedOK, _ := c.door.EdgeSensors(); !closedOK {
		c.alarms.Raise(alarm.MoveWithOpenDoor, "moving with the door open")
	}
}

func (c *Controller) checkOpenAllowed() {
	f := c.flags.Effective()
	if f.MovingUp || f.MovingDown {
		c.alarms.Raise(alarm.OpenWhileMoving, "opening the door while the cabin is moving")
	}
	if !c.cabin.IsOnFloorCenter() {
		c.alarms.Raise(alarm.OpenOffFloor, "opening the door away from a floor")
	}
}

// ApplySample folds one polled hardware snapshot into the command flags and
// keeps the latest button-lamp read-back for presentation. Must run on the
// control loop goroutine, before the next tick reads the effective flags.
func (c *Controller) ApplySample(sample gpio.Sample) {
	c.ApplyInputs(sample.Inputs)
	c.lamps = sample.Lamps
}

// ApplyInputs records the hardware command lines. A door-open request trips
// the same interlock checks as the operator command.
func (c *Controller) ApplyInputs(in gpio.Inputs) {
	slowChanged := c.flags.ApplyHardware(in.Up, in.Down, in.OpenDoor, in.CloseDoor, in.SlowMode)
	if in.OpenDoor && !in.CloseDoor {
		c.checkOpenAllowed()
	}
	if slowChanged {
		if c.flags.SlowForced() {
			c.cabin.SetSlow(true)
			slog.Debug("Slow mode forced by hardware")
		} else {
			c.cabin.SetSlow(c.flags.GUISlow())
			slog.Debug("Hardware slow forcing released", "guiSlow", c.flags.GUISlow())
		}
	}
}

// PressCabinButton pulses the cabin call acknowledge output: assert now,
// deassert after the pulse duration.
func (c *Controller) PressCabinButton(idx int) {
	c.pulseButton(idx, c.dev.WriteCabinButton)
}

// PressFloorButton pulses the landing call acknowledge output.
func (c *Controller) PressFloorButton(idx int) {
	c.pulseButton(idx, c.dev.WriteFloorButton)
}

func (c *Controller) pulseButton(idx int, write func(int, bool) error) {
	if err := write(idx, true); err != nil {
		c.logWriteFault(err)
		return
	}
	c.sched.After(config.PulseDuration, func() {
		if err := write(idx, false); err != nil {
			c.logWriteFault(err)
		}
	})
}

// Active reports whether any motion or door command is in effect.
func (c *Controller) Active() bool {
	return c.flags.AnyActive()
}

// Tick runs one control cycle in order: vertical motion, travel limit check,
// door motion, sensor derivation, hardware sensor writes. An output fault is
// dropped and logged once; it never rolls back the state mutated earlier in
// the cycle.
func (c *Controller) Tick() Snapshot {
	f := c.flags.Effective()

	if f.MovingUp {
		c.cabin.MoveUp()
	}
	if f.MovingDown {
		c.cabin.MoveDown()
	}

	// Position stays clamped by the cabin model; the alarm is advisory.
	if f.MovingUp && c.cabin.Position() <= c.cabin.TopLimit() {
		c.alarms.Raise(alarm.GoingBeyond, "cabin at the upper travel limit")
	}
	if f.MovingDown && c.cabin.Position() >= c.cabin.BottomLimit() {
		c.alarms.Raise(alarm.GoingBeyond, "cabin at the lower travel limit")
	}

	if f.Opening && c.door.Offset() < 1 {
		c.door.OpenStep()
	}
	if f.Closing && c.door.Offset() > 0 {
		c.door.CloseStep()
	}

	floorSensors := c.cabin.ActiveFloorSensors()
	closedOK, openOK := c.door.EdgeSensors()

	if err := c.dev.WriteFloorSensors(floorSensors); err != nil {
		c.logWriteFault(err)
	}
	if err := c.dev.WriteDoorSensors(closedOK, openOK); err != nil {
		c.logWriteFault(err)
	}

	return c.snapshot(f, floorSensors, closedOK, openOK)
}

func (c *Controller) logWriteFault(err error) {
	if !c.writeFaultLogged {
		slog.Error("Hardware write failed, output dropped", "err", err)
		c.writeFaultLogged = true
	}
}

// Snapshot is a detached copy of the observable state for presentation
// collaborators.
type Snapshot struct {
	Position     float64
	DoorOffset   float64
	FloorSensors [][3]bool
	DoorClosed   bool
	DoorOpen     bool
	Lamps        gpio.Lamps
	Flags        arbiter.Flags
}

// State builds a snapshot of the current state without running a cycle.
func (c *Controller) State() Snapshot {
	closedOK, openOK := c.door.EdgeSensors()
	return c.snapshot(c.flags.Effective(), c.cabin.ActiveFloorSensors(), closedOK, openOK)
}

func (c *Controller) snapshot(f arbiter.Flags, floorSensors [][3]bool, closedOK, openOK bool) Snapshot {
	snap := Snapshot{
		Position:     c.cabin.Position(),
		DoorOffset:   c.door.Offset(),
		FloorSensors: floorSensors,
		DoorClosed:   closedOK,
		DoorOpen:     openOK,
		Lamps:        c.lamps,
		Flags:        f,
	}
	// Detach the slices so a collaborator holding the snapshot never aliases
	// controller-owned state.
	var out Snapshot
	if err := deepcopy.Copy(&out, &snap); err != nil {
		slog.Error("Snapshot copy failed", "err", err)
		return snap
	}
	return out
}
