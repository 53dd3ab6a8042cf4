// Package arbiter merges command intents from the two uncoordinated input
// sources, the operator interface and the discrete hardware lines, into one
// set of effective flags. All merge policy lives here; nothing else in the
// repository combines source flags.
package arbiter

// Line is one controllable axis with a command bit per source.
type Line struct {
	GUI bool
	HW  bool
}

// Resolve folds the two sources into the effective command for the axis.
func (l Line) Resolve() bool {
	return l.GUI || l.HW
}

// Flags is the resolved command set the control cycle consumes.
type Flags struct {
	MovingUp   bool
	MovingDown bool
	Opening    bool
	Closing    bool
	Slow       bool
}

type Arbiter struct {
	up      Line
	down    Line
	opening Line
	closing Line
	guiSlow bool
	hwSlow  bool
}

func New() *Arbiter {
	return &Arbiter{}
}

// GUI command intents. Opposite directions from the same source displace
// each other, matching a hold-to-move operator control.

func (a *Arbiter) GUIMoveUp() {
	a.up.GUI = true
	a.down.GUI = false
}

func (a *Arbiter) GUIMoveDown() {
	a.down.GUI = true
	a.up.GUI = false
}

func (a *Arbiter) GUIStopMove() {
	a.up.GUI = false
	a.down.GUI = false
}

func (a *Arbiter) GUIOpenDoor() {
	a.opening.GUI = true
	a.closing.GUI = false
}

func (a *Arbiter) GUICloseDoor() {
	a.closing.GUI = true
	a.opening.GUI = false
}

func (a *Arbiter) GUIStopDoor() {
	a.opening.GUI = false
	a.closing.GUI = false
}

// GUISetSlow records the operator's speed request. While the hardware slow
// line is asserted the request is ignored and GUISetSlow reports false; the
// stored request is restored once the hardware line clears.
func (a *Arbiter) GUISetSlow(enabled bool) bool {
	if a.hwSlow {
		return false
	}
	a.guiSlow = enabled
	return true
}

// ApplyHardware folds one polled snapshot of the hardware command lines into
// the hardware-side flags. An asserted up+down or open+close pair is
// ambiguous and resolves to no hardware command on that axis. Reports whether
// the hardware slow forcing changed state with this snapshot.
func (a *Arbiter) ApplyHardware(up, down, openDoor, closeDoor, slow bool) (slowChanged bool) {
	if up && down {
		up, down = false, false
	}
	a.up.HW = up
	a.down.HW = down

	if openDoor && closeDoor {
		openDoor, closeDoor = false, false
	}
	a.opening.HW = openDoor
	a.closing.HW = closeDoor

	if slow != a.hwSlow {
		a.hwSlow = slow
		slowChanged = true
	}
	return slowChanged
}

// SlowForced reports whether the hardware slow line currently dominates.
func (a *Arbiter) SlowForced() bool {
	return a.hwSlow
}

// GUISlow is the operator's last recorded speed request.
func (a *Arbiter) GUISlow() bool {
	return a.guiSlow
}

// Effective resolves every axis. Speed is slow when forced by hardware or
// requested by the operator.
func (a *Arbiter) Effective() Flags {
	return Flags{
		MovingUp:   a.up.Resolve(),
		MovingDown: a.down.Resolve(),
		Opening:    a.opening.Resolve(),
		Closing:    a.closing.Resolve(),
		Slow:       a.hwSlow || a.guiSlow,
	}
}

// AnyActive reports whether any motion or door command is in effect. The
// control loop suspends its tick driver when nothing is active.
func (a *Arbiter) AnyActive() bool {
	f := a.Effective()
	return f.MovingUp || f.MovingDown || f.Opening || f.Closing
}
