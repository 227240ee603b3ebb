package interaction

import (
	"errors"
	"testing"
)

func newTestBench() *Bench {
	return &Bench{
		AnchorX:     100,
		AnchorY:     100,
		SeatOffsetX: 14,
		SeatOffsetY: -6,
		StandOffX:   40,
		StandOffY:   18,
		SitRange:    80,
	}
}

func TestBench_SeatsAssignedByArrivalOrder(t *testing.T) {
	b := newTestBench()

	x1, y1, err := b.Sit("p1", 90, 100)
	if err != nil {
		t.Fatalf("First sit failed: %v", err)
	}
	if x1 != 86 || y1 != 94 {
		t.Errorf("First sitter should take the left seat (86,94), got (%v,%v)", x1, y1)
	}

	x2, y2, err := b.Sit("p2", 110, 100)
	if err != nil {
		t.Fatalf("Second sit failed: %v", err)
	}
	if x2 != 114 || y2 != 94 {
		t.Errorf("Second sitter should take the mirrored seat (114,94), got (%v,%v)", x2, y2)
	}

	if b.SeatedCount() != 2 {
		t.Errorf("Expected 2 seated, got %d", b.SeatedCount())
	}
}

func TestBench_FirstFreedSeatIsReassigned(t *testing.T) {
	b := newTestBench()
	b.Sit("p1", 100, 100)
	b.Sit("p2", 100, 100)

	if _, _, err := b.Stand("p1"); err != nil {
		t.Fatalf("Stand failed: %v", err)
	}

	x, _, err := b.Sit("p3", 100, 100)
	if err != nil {
		t.Fatalf("Sit after a seat freed should succeed: %v", err)
	}
	if x != 86 {
		t.Errorf("New sitter should take the freed left seat, got x=%v", x)
	}
}

func TestBench_Guards(t *testing.T) {
	b := newTestBench()

	if _, _, err := b.Sit("far", 300, 300); !errors.Is(err, ErrBenchTooFar) {
		t.Errorf("Expected ErrBenchTooFar, got %v", err)
	}

	b.Sit("p1", 100, 100)
	if _, _, err := b.Sit("p1", 100, 100); !errors.Is(err, ErrAlreadySeated) {
		t.Errorf("Expected ErrAlreadySeated, got %v", err)
	}

	b.Sit("p2", 100, 100)
	if _, _, err := b.Sit("p3", 100, 100); !errors.Is(err, ErrBenchFull) {
		t.Errorf("Expected ErrBenchFull, got %v", err)
	}

	if _, _, err := b.Stand("p3"); !errors.Is(err, ErrNotSeated) {
		t.Errorf("Expected ErrNotSeated, got %v", err)
	}
}

func TestBench_StandTeleportsToSeatSide(t *testing.T) {
	b := newTestBench()
	b.Sit("p1", 100, 100) // left seat
	b.Sit("p2", 100, 100) // right seat

	x1, y1, _ := b.Stand("p1")
	if x1 != 60 || y1 != 118 {
		t.Errorf("Left sitter should stand at (60,118), got (%v,%v)", x1, y1)
	}

	x2, y2, _ := b.Stand("p2")
	if x2 != 140 || y2 != 118 {
		t.Errorf("Right sitter should stand at (140,118), got (%v,%v)", x2, y2)
	}

	if b.SeatedCount() != 0 {
		t.Errorf("Expected empty bench, got %d seated", b.SeatedCount())
	}
}

func TestBench_ReleaseFreesWithoutTeleport(t *testing.T) {
	b := newTestBench()
	b.Sit("p1", 100, 100)

	b.Release("p1")
	if b.SeatOf("p1") != -1 {
		t.Error("Release should free the seat")
	}

	// Releasing an unknown player is harmless.
	b.Release("ghost")
}
