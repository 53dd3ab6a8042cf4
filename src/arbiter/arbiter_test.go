package arbiter

import "testing"

func TestEffectiveOrCombinesSources(t *testing.T) {
	a := New()
	a.GUIMoveUp()
	a.ApplyHardware(false, true, false, false, false)
	f := a.Effective()
	// Opposite directions from different sources are intentionally permissive:
	// both effective flags assert.
	if !f.MovingUp || !f.MovingDown {
		t.Fatalf("effective = %+v, want both directions asserted", f)
	}
}

func TestHardwareDirectionConflictStops(t *testing.T) {
	a := New()
	a.ApplyHardware(true, true, false, false, false)
	f := a.Effective()
	if f.MovingUp || f.MovingDown {
		t.Fatalf("effective = %+v, want no motion on hardware up+down", f)
	}
	// GUI intent is independent of the hardware conflict.
	a.GUIMoveUp()
	a.ApplyHardware(true, true, false, false, false)
	if f := a.Effective(); !f.MovingUp || f.MovingDown {
		t.Fatalf("effective = %+v, want GUI up to survive hardware conflict", f)
	}
}

func TestHardwareDoorConflictStops(t *testing.T) {
	a := New()
	a.ApplyHardware(false, false, true, true, false)
	f := a.Effective()
	if f.Opening || f.Closing {
		t.Fatalf("effective = %+v, want no door motion on hardware open+close", f)
	}
}

func TestGUIOppositesDisplaceEachOther(t *testing.T) {
	a := New()
	a.GUIMoveUp()
	a.GUIMoveDown()
	if f := a.Effective(); f.MovingUp || !f.MovingDown {
		t.Fatalf("effective = %+v, want only down after up then down", f)
	}
	a.GUIOpenDoor()
	a.GUICloseDoor()
	if f := a.Effective(); f.Opening || !f.Closing {
		t.Fatalf("effective = %+v, want only closing after open then close", f)
	}
	a.GUIStopMove()
	a.GUIStopDoor()
	if a.AnyActive() {
		t.Fatal("AnyActive = true after stopping all GUI commands")
	}
}

func TestSlowForcingLatch(t *testing.T) {
	a := New()
	if !a.GUISetSlow(true) {
		t.Fatal("GUI slow request rejected without hardware forcing")
	}
	if !a.Effective().Slow {
		t.Fatal("effective speed not slow after GUI request")
	}

	if changed := a.ApplyHardware(false, false, false, false, true); !changed {
		t.Fatal("slow forcing assert not reported as a change")
	}
	if a.GUISetSlow(false) {
		t.Fatal("GUI toggle accepted while hardware forces slow")
	}
	if !a.Effective().Slow {
		t.Fatal("effective speed not slow while forced")
	}

	// Releasing the forcing restores the last recorded GUI request (still slow).
	if changed := a.ApplyHardware(false, false, false, false, false); !changed {
		t.Fatal("slow forcing release not reported as a change")
	}
	if !a.Effective().Slow {
		t.Fatal("effective speed lost the GUI request after release")
	}

	if !a.GUISetSlow(false) {
		t.Fatal("GUI toggle rejected after release")
	}
	if a.Effective().Slow {
		t.Fatal("effective speed still slow after GUI cleared it")
	}
}

func TestSlowForcingWithGUINormal(t *testing.T) {
	a := New()
	a.ApplyHardware(false, false, false, false, true)
	if !a.Effective().Slow {
		t.Fatal("effective speed not slow while forced")
	}
	a.ApplyHardware(false, false, false, false, false)
	if a.Effective().Slow {
		t.Fatal("effective speed slow after release with no GUI request")
	}
}

func TestAnyActive(t *testing.T) {
	a := New()
	if a.AnyActive() {
		t.Fatal("fresh arbiter reports activity")
	}
	a.ApplyHardware(false, false, true, false, false)
	if !a.AnyActive() {
		t.Fatal("hardware opening not reported as activity")
	}
	a.ApplyHardware(false, false, false, false, false)
	if a.AnyActive() {
		t.Fatal("activity lingers after hardware lines dropped")
	}
}
