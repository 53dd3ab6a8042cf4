// Package cabin models the vertical motion of the lift cabin and derives
// the discrete floor sensor states from its continuous position.
//
// The coordinate axis runs top-down: MoveUp decreases position. Floor 0 is
// the bottom floor and therefore has the largest sensor coordinates.
package cabin

import (
	"fmt"
	"math"

	"liftctl/src/config"
)

type Cabin struct {
	position     float64
	normalSpeed  float64
	slowSpeed    float64
	currentSpeed float64
	numFloors    int
	fieldHeight  float64
	liftHeight   float64
	sensors      [][3]float64 // per floor: top, center, bottom
}

// New validates the geometry and builds the cabin with its sensor layout.
// Invalid geometry is a construction error; the cabin never operates on it.
func New(geo config.Geometry) (*Cabin, error) {
	if geo.NumFloors < 1 {
		return nil, fmt.Errorf("cabin: num_floors must be >= 1, got %d", geo.NumFloors)
	}
	if geo.LiftHeight <= 0 || geo.FieldHeight <= geo.LiftHeight {
		return nil, fmt.Errorf("cabin: field height %.2f must exceed lift height %.2f", geo.FieldHeight, geo.LiftHeight)
	}
	if geo.NormalSpeed <= 0 || geo.SlowSpeed <= 0 {
		return nil, fmt.Errorf("cabin: speeds must be positive, got normal=%.2f slow=%.2f", geo.NormalSpeed, geo.SlowSpeed)
	}
	border := borderSpacing(geo)
	if border < 0 {
		return nil, fmt.Errorf("cabin: floors do not fit in the field, border spacing %.2f", border)
	}

	c := &Cabin{
		position:     geo.FieldHeight / 2,
		normalSpeed:  geo.NormalSpeed,
		slowSpeed:    geo.SlowSpeed,
		currentSpeed: geo.NormalSpeed,
		numFloors:    geo.NumFloors,
		fieldHeight:  geo.FieldHeight,
		liftHeight:   geo.LiftHeight,
		sensors:      make([][3]float64, geo.NumFloors),
	}
	// Floors stack bottom-up with symmetric border margins.
	for floor := 0; floor < geo.NumFloors; floor++ {
		top := geo.FieldHeight - border - float64(floor+1)*geo.FloorHeight - float64(floor)*geo.FloorSpacing
		c.sensors[floor] = [3]float64{top, top + geo.FloorHeight/2, top + geo.FloorHeight}
	}
	return c, nil
}

func borderSpacing(geo config.Geometry) float64 {
	return (geo.FieldHeight - float64(geo.NumFloors)*geo.FloorHeight - float64(geo.NumFloors-1)*geo.FloorSpacing) / 2
}

// MoveUp advances the cabin one step upward and clamps it inside the shaft.
func (c *Cabin) MoveUp() {
	c.position -= c.currentSpeed
	c.position = math.Max(c.position, c.liftHeight/2)
}

// MoveDown advances the cabin one step downward and clamps it inside the shaft.
func (c *Cabin) MoveDown() {
	c.position += c.currentSpeed
	c.position = math.Min(c.position, c.fieldHeight-c.liftHeight/2)
}

// SetSlow selects the slow or normal speed constant for subsequent steps.
func (c *Cabin) SetSlow(enabled bool) {
	if enabled {
		c.currentSpeed = c.slowSpeed
	} else {
		c.currentSpeed = c.normalSpeed
	}
}

func (c *Cabin) Position() float64 {
	return c.position
}

func (c *Cabin) CurrentSpeed() float64 {
	return c.currentSpeed
}

func (c *Cabin) NumFloors() int {
	return c.numFloors
}

// ActiveFloorSensors reports which floor sensors the cabin center currently
// trips. The tolerance is 2*currentSpeed so a sensor cannot be stepped over
// between two ticks at either speed.
func (c *Cabin) ActiveFloorSensors() [][3]bool {
	tol := 2 * c.currentSpeed
	active := make([][3]bool, c.numFloors)
	for floor, row := range c.sensors {
		for i, y := range row {
			active[floor][i] = math.Abs(c.position-y) <= tol
		}
	}
	return active
}

// IsOnFloorCenter reports whether any floor's center sensor is active.
func (c *Cabin) IsOnFloorCenter() bool {
	for _, row := range c.ActiveFloorSensors() {
		if row[1] {
			return true
		}
	}
	return false
}

// TopLimit is the top sensor of the topmost floor, the upper travel bound.
func (c *Cabin) TopLimit() float64 {
	return c.sensors[c.numFloors-1][0]
}

// BottomLimit is the bottom sensor of the bottommost floor, the lower travel bound.
func (c *Cabin) BottomLimit() float64 {
	return c.sensors[0][2]
}
