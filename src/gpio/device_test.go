package gpio

import (
	"testing"

	"liftctl/src/config"
)

func TestOpenDisabledReturnsNoop(t *testing.T) {
	var pins config.PinMap
	pins.Enable = false
	pins.LampInputs.CabinButtons = []int{10, 11, 14}
	pins.LampInputs.FloorButtons = []int{15, 0}

	dev, err := Open(pins)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := dev.(*Noop); !ok {
		t.Fatalf("Open with enable=false returned %T, want *Noop", dev)
	}

	in, err := dev.ReadInputs()
	if err != nil || in != (Inputs{}) {
		t.Fatalf("noop inputs = %+v (err %v), want all lines low", in, err)
	}
	lamps, err := dev.ReadButtonLamps()
	if err != nil {
		t.Fatal(err)
	}
	if len(lamps.Cabin) != 3 || len(lamps.Floor) != 2 {
		t.Fatalf("noop lamp sizes = (%d, %d), want (3, 2)", len(lamps.Cabin), len(lamps.Floor))
	}
	for i, on := range lamps.Cabin {
		if on {
			t.Errorf("noop cabin lamp %d reads high", i)
		}
	}
	if err := dev.WriteDoorSensors(true, false); err != nil {
		t.Errorf("noop write returned %v", err)
	}
}

func TestLineDeviceButtonBounds(t *testing.T) {
	var pins config.PinMap
	pins.Outputs.CabinButtons = []int{2, 3}
	pins.Outputs.FloorButtons = []int{7}
	d := &LineDevice{pins: pins}

	// Out-of-range indexes must fail before any line access.
	if err := d.WriteCabinButton(2, true); err == nil {
		t.Error("expected error for cabin button index past the pin map")
	}
	if err := d.WriteFloorButton(-1, true); err == nil {
		t.Error("expected error for negative floor button index")
	}
	if err := d.WriteDoorSensors(true, false); err == nil {
		t.Error("expected error with no door sensor lines mapped")
	}
}

func TestByteConversions(t *testing.T) {
	if toByte(true) != 1 || toByte(false) != 0 {
		t.Error("toByte mapping wrong")
	}
	if !toBool(1) || toBool(0) || !toBool(7) {
		t.Error("toBool mapping wrong")
	}
}
