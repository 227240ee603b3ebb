// interaction/bench.go
package interaction

import (
	"errors"
	"math"
)

var (
	ErrAlreadySeated = errors.New("player is already seated")
	ErrNotSeated     = errors.New("player is not seated")
	ErrBenchFull     = errors.New("bench is full")
	ErrBenchTooFar   = errors.New("too far away from the bench")
)

// Bench holds the two fixed seats. Seats are assigned by arrival order:
// the first sitter takes seat 0, the second the mirrored seat 1.
type Bench struct {
	AnchorX, AnchorY float64
	SeatOffsetX      float64 // seat 0 sits at -SeatOffsetX, seat 1 at +SeatOffsetX
	SeatOffsetY      float64
	StandOffX        float64 // stand-off distance on the seat's side
	StandOffY        float64
	SitRange         float64

	seats [2]string // player IDs, "" = free
}

// SeatOf returns the seat index a player occupies, or -1.
func (b *Bench) SeatOf(playerID string) int {
	for i, id := range b.seats {
		if id != "" && id == playerID {
			return i
		}
	}
	return -1
}

// SeatedCount returns the number of occupied seats.
func (b *Bench) SeatedCount() int {
	n := 0
	for _, id := range b.seats {
		if id != "" {
			n++
		}
	}
	return n
}

// seatPosition is the teleport target for a seat index.
func (b *Bench) seatPosition(seat int) (float64, float64) {
	x := b.AnchorX - b.SeatOffsetX
	if seat == 1 {
		x = b.AnchorX + b.SeatOffsetX
	}
	return x, b.AnchorY + b.SeatOffsetY
}

// standPosition is the teleport target when leaving a seat, on the side
// the seat offset indicated.
func (b *Bench) standPosition(seat int) (float64, float64) {
	x := b.AnchorX - b.StandOffX
	if seat == 1 {
		x = b.AnchorX + b.StandOffX
	}
	return x, b.AnchorY + b.StandOffY
}

// Sit transitions Standing→Seated. Returns the seat position to teleport to.
func (b *Bench) Sit(playerID string, px, py float64) (x, y float64, err error) {
	if b.SeatOf(playerID) >= 0 {
		return 0, 0, ErrAlreadySeated
	}
	if b.SeatedCount() >= len(b.seats) {
		return 0, 0, ErrBenchFull
	}
	if math.Hypot(px-b.AnchorX, py-b.AnchorY) > b.SitRange {
		return 0, 0, ErrBenchTooFar
	}

	for i := range b.seats {
		if b.seats[i] == "" {
			b.seats[i] = playerID
			x, y = b.seatPosition(i)
			return x, y, nil
		}
	}
	return 0, 0, ErrBenchFull
}

// Stand transitions Seated→Standing unconditionally for a seated player.
// Returns the stand-off position to teleport to.
func (b *Bench) Stand(playerID string) (x, y float64, err error) {
	seat := b.SeatOf(playerID)
	if seat < 0 {
		return 0, 0, ErrNotSeated
	}
	b.seats[seat] = ""
	x, y = b.standPosition(seat)
	return x, y, nil
}

// Release frees a seat without a teleport, e.g. when the sitter disconnects.
func (b *Bench) Release(playerID string) {
	if seat := b.SeatOf(playerID); seat >= 0 {
		b.seats[seat] = ""
	}
}
