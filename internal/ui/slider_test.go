package ui

import (
	"image"
	"testing"
)

func TestSliderClamp(t *testing.T) {
	s := NewSlider(1, 5, 9)
	if s.Value != 5 {
		t.Fatalf("value=%d, want 5", s.Value)
	}
	s.Set(-3)
	if s.Value != 1 {
		t.Fatalf("value=%d, want 1", s.Value)
	}
	if s.MinLabel != "1" || s.MaxLabel != "5" {
		t.Fatalf("labels %q %q", s.MinLabel, s.MaxLabel)
	}
}

func TestSliderDrag(t *testing.T) {
	installInput(t)
	s := NewSlider(1, 5, 3)
	s.SetRect(image.Rect(100, 0, 201, 20))
	var changes []int
	released := 0
	s.OnChange = func(v int) { changes = append(changes, v) }
	s.OnRelease = func(int) { released++ }

	s.Handle(100, 10, true)
	if s.Value != 1 {
		t.Fatalf("value=%d at left edge", s.Value)
	}
	// dragging continues outside the track
	s.Handle(400, 50, true)
	if s.Value != 5 {
		t.Fatalf("value=%d past right edge", s.Value)
	}
	s.Handle(400, 50, true)
	s.Handle(400, 50, false)
	if len(changes) != 2 || changes[0] != 1 || changes[1] != 5 {
		t.Fatalf("changes=%v", changes)
	}
	if released != 1 {
		t.Fatalf("released=%d", released)
	}
}

func TestSliderWheel(t *testing.T) {
	in := installInput(t)
	s := NewSlider(1, 5, 3)
	s.SetRect(image.Rect(0, 0, 100, 20))
	in.wy = 1
	s.Handle(50, 10, false)
	if s.Value != 4 {
		t.Fatalf("value=%d after wheel up", s.Value)
	}
	in.wy = -1
	s.Handle(500, 500, false)
	if s.Value != 4 {
		t.Fatalf("wheel outside moved slider to %d", s.Value)
	}
}
