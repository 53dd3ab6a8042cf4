// Package door models the single sliding door leaf as a normalized offset
// in [0,1] and derives the closed/open edge sensor states from it.
package door

import (
	"fmt"
	"math"
)

type Door struct {
	offset       float64 // 0 = fully closed, 1 = fully open
	stepNorm     float64
	openingWidth float64
}

// New builds a door. stepNorm is the fraction of full travel per tick and
// must lie in (0,1]; openingWidth is the leaf width in field units.
func New(openingWidth, stepNorm float64) (*Door, error) {
	if stepNorm <= 0 || stepNorm > 1 {
		return nil, fmt.Errorf("door: step fraction must be in (0,1], got %.3f", stepNorm)
	}
	if openingWidth <= 0 {
		return nil, fmt.Errorf("door: opening width must be positive, got %.2f", openingWidth)
	}
	return &Door{stepNorm: stepNorm, openingWidth: openingWidth}, nil
}

// OpenStep advances the leaf toward fully open. No-op once fully open.
func (d *Door) OpenStep() {
	d.offset = math.Min(d.offset+d.stepNorm, 1)
}

// CloseStep advances the leaf toward fully closed. No-op once fully closed.
func (d *Door) CloseStep() {
	d.offset = math.Max(d.offset-d.stepNorm, 0)
}

func (d *Door) Offset() float64 {
	return d.offset
}

func (d *Door) StepNorm() float64 {
	return d.stepNorm
}

// LeafLeft projects the normalized offset into the spatial coordinate of the
// leaf's left edge, given the cabin's left edge. Pure, no state change.
func (d *Door) LeafLeft(cabinLeft float64) float64 {
	return cabinLeft + d.offset*d.openingWidth
}

// EdgeSensors reports the discrete closed/open detectors. The tolerance is
// 2*stepNorm, matching the floor sensor rule, so an edge cannot be stepped
// over between two ticks.
func (d *Door) EdgeSensors() (closedOK, openOK bool) {
	tol := 2 * d.stepNorm
	closedOK = math.Abs(d.offset) <= tol
	openOK = math.Abs(d.offset-1) <= tol
	return closedOK, openOK
}
