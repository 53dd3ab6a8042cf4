package gpio

import (
	"fmt"
	"net"
	"sync"

	"liftctl/src/config"
)

// Frame commands of the line server protocol. Every exchange is a 4-byte
// frame {command, line, value, 0}; getLine replies with the same layout.
const (
	cmdSetLine byte = 1
	cmdGetLine byte = 2
)

// LineDevice drives addressable I/O lines over a TCP line server. All
// failures surface as errors; callers degrade reads to all-low and drop
// writes, the device never panics the control loop.
type LineDevice struct {
	mtx  sync.Mutex
	conn net.Conn
	pins config.PinMap
}

func Dial(pins config.PinMap) (*LineDevice, error) {
	conn, err := net.Dial("tcp", pins.Addr)
	if err != nil {
		return nil, fmt.Errorf("gpio: dial %s: %w", pins.Addr, err)
	}
	return &LineDevice{conn: conn, pins: pins}, nil
}

func (d *LineDevice) setLine(line int, on bool) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if _, err := d.conn.Write([]byte{cmdSetLine, byte(line), toByte(on), 0}); err != nil {
		return fmt.Errorf("gpio: set line %d: %w", line, err)
	}
	return nil
}

func (d *LineDevice) getLine(line int) (bool, error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if _, err := d.conn.Write([]byte{cmdGetLine, byte(line), 0, 0}); err != nil {
		return false, fmt.Errorf("gpio: get line %d: %w", line, err)
	}
	var out [4]byte
	if _, err := d.conn.Read(out[:]); err != nil {
		return false, fmt.Errorf("gpio: get line %d: %w", line, err)
	}
	return toBool(out[2]), nil
}

func (d *LineDevice) ReadInputs() (Inputs, error) {
	var result Inputs
	var err error
	read := func(line int) bool {
		if err != nil {
			return false
		}
		var v bool
		v, err = d.getLine(line)
		return v
	}
	in := d.pins.Inputs
	result.Up = read(in.Up)
	result.Down = read(in.Down)
	result.OpenDoor = read(in.OpenDoor)
	result.CloseDoor = read(in.CloseDoor)
	result.SlowMode = read(in.SlowMode)
	if err != nil {
		return Inputs{}, err
	}
	return result, nil
}

func (d *LineDevice) ReadButtonLamps() (Lamps, error) {
	lamps := Lamps{
		Cabin: make([]bool, len(d.pins.LampInputs.CabinButtons)),
		Floor: make([]bool, len(d.pins.LampInputs.FloorButtons)),
	}
	for i, line := range d.pins.LampInputs.CabinButtons {
		v, err := d.getLine(line)
		if err != nil {
			return Lamps{}, err
		}
		lamps.Cabin[i] = v
	}
	for i, line := range d.pins.LampInputs.FloorButtons {
		v, err := d.getLine(line)
		if err != nil {
			return Lamps{}, err
		}
		lamps.Floor[i] = v
	}
	return lamps, nil
}

func (d *LineDevice) WriteFloorSensors(states [][3]bool) error {
	for floor, row := range d.pins.Outputs.FloorSensors {
		for i, line := range row {
			on := false
			if floor < len(states) && i < 3 {
				on = states[floor][i]
			}
			if err := d.setLine(line, on); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *LineDevice) WriteDoorSensors(closedOK, openOK bool) error {
	lines := d.pins.Outputs.DoorSensors
	if len(lines) < 2 {
		return fmt.Errorf("gpio: pin map defines %d door sensor lines, need 2", len(lines))
	}
	if err := d.setLine(lines[0], closedOK); err != nil {
		return err
	}
	return d.setLine(lines[1], openOK)
}

func (d *LineDevice) WriteCabinButton(idx int, on bool) error {
	lines := d.pins.Outputs.CabinButtons
	if idx < 0 || idx >= len(lines) {
		return fmt.Errorf("gpio: cabin button %d out of range", idx)
	}
	return d.setLine(lines[idx], on)
}

func (d *LineDevice) WriteFloorButton(idx int, on bool) error {
	lines := d.pins.Outputs.FloorButtons
	if idx < 0 || idx >= len(lines) {
		return fmt.Errorf("gpio: floor button %d out of range", idx)
	}
	return d.setLine(lines[idx], on)
}

func (d *LineDevice) Close() error {
	return d.conn.Close()
}

func toByte(a bool) byte {
	if a {
		return 1
	}
	return 0
}

func toBool(a byte) bool {
	return a != 0
}
