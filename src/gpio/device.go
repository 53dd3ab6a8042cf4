// Package gpio abstracts the discrete I/O lines of the lift rig behind the
// Device interface. When hardware is disabled a no-op device stands in:
// reads return all lines low and writes are discarded.
package gpio

import (
	"liftctl/src/config"
)

// Inputs is one polled snapshot of the discrete command lines.
type Inputs struct {
	Up        bool
	Down      bool
	OpenDoor  bool
	CloseDoor bool
	SlowMode  bool
}

// Lamps is the read-back state of the cabin and landing call-button lamps.
type Lamps struct {
	Cabin []bool
	Floor []bool
}

// Sample bundles everything one poll pass reads from the device.
type Sample struct {
	Inputs Inputs
	Lamps  Lamps
}

type Device interface {
	ReadInputs() (Inputs, error)
	ReadButtonLamps() (Lamps, error)
	WriteFloorSensors(states [][3]bool) error
	WriteDoorSensors(closedOK, openOK bool) error
	WriteCabinButton(idx int, on bool) error
	WriteFloorButton(idx int, on bool) error
	Close() error
}

// Open selects the backend from the pin map's enable flag.
func Open(pins config.PinMap) (Device, error) {
	if !pins.Enable {
		return NewNoop(pins), nil
	}
	return Dial(pins)
}

// Noop discards writes and reads all lines low.
type Noop struct {
	cabinLamps []bool
	floorLamps []bool
}

func NewNoop(pins config.PinMap) *Noop {
	return &Noop{
		cabinLamps: make([]bool, len(pins.LampInputs.CabinButtons)),
		floorLamps: make([]bool, len(pins.LampInputs.FloorButtons)),
	}
}

func (n *Noop) ReadInputs() (Inputs, error) {
	return Inputs{}, nil
}

func (n *Noop) ReadButtonLamps() (Lamps, error) {
	return Lamps{Cabin: n.cabinLamps, Floor: n.floorLamps}, nil
}

func (n *Noop) WriteFloorSensors(states [][3]bool) error { return nil }

func (n *Noop) WriteDoorSensors(closedOK, openOK bool) error { return nil }

func (n *Noop) WriteCabinButton(idx int, on bool) error { return nil }

func (n *Noop) WriteFloorButton(idx int, on bool) error { return nil }

func (n *Noop) Close() error { return nil }
