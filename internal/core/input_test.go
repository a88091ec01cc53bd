package core

import "testing"

func TestInputFrameCursors(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionUp)

	c := f.Cursors()
	if !c.Left || !c.Up || c.Right || c.Down {
		t.Errorf("Cursors() = %+v, expected left and up only", c)
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionConfirm)
	f.Release(3, 4)

	f.Clear()
	if f.Has(ActionConfirm) {
		t.Error("Clear should drop actions")
	}
	if f.Pointer.Released {
		t.Error("Clear should drop the pointer release")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("Zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame should allocate and record the action")
	}
}
