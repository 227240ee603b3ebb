// world/collision.go
package world

import (
	"math"

	"github.com/wfunc/roomserver/models"
)

// footprintOffsets samples the player footprint: the center plus eight
// points in a cross/diagonal pattern scaled by the player radius, so a
// round-ish body cannot corner-cut through a single-tile wall.
var footprintOffsets = [9][2]float64{
	{0, 0},
	{PlayerRadius, 0},
	{-PlayerRadius, 0},
	{0, PlayerRadius},
	{0, -PlayerRadius},
	{PlayerRadius * math.Sqrt2 / 2, PlayerRadius * math.Sqrt2 / 2},
	{PlayerRadius * math.Sqrt2 / 2, -PlayerRadius * math.Sqrt2 / 2},
	{-PlayerRadius * math.Sqrt2 / 2, PlayerRadius * math.Sqrt2 / 2},
	{-PlayerRadius * math.Sqrt2 / 2, -PlayerRadius * math.Sqrt2 / 2},
}

// Blocked is the collision oracle: whether a single world coordinate is
// obstructed by a tile collider, a static rectangle, or an object-derived
// rectangle. Any match short-circuits.
func (w *World) Blocked(x, y float64) bool {
	tile := models.Tile{Col: int(math.Floor(x / TileSize)), Row: int(math.Floor(y / TileSize))}
	if _, ok := w.colliders[tile]; ok {
		return true
	}
	for _, r := range w.staticRects {
		if r.Contains(x, y) {
			return true
		}
	}
	for _, id := range w.objectOrder {
		if w.objects[id].Bounds().Contains(x, y) {
			return true
		}
	}
	return false
}

// footprintBlocked tests all nine sample points around a candidate center.
func (w *World) footprintBlocked(x, y float64) bool {
	for _, off := range footprintOffsets {
		if w.Blocked(x+off[0], y+off[1]) {
			return true
		}
	}
	return false
}

// moveWithCollisions resolves a player's intended motion by axis
// separation: X first, then Y with the committed X. A blocked axis zeroes
// that axis's velocity for the tick while the other axis keeps sliding.
func (w *World) moveWithCollisions(p *Player, delta float64) {
	if p.VX != 0 {
		nx := p.X + p.VX*delta
		if w.footprintBlocked(nx, p.Y) {
			p.VX = 0
		} else {
			p.X = nx
		}
	}
	if p.VY != 0 {
		ny := p.Y + p.VY*delta
		if w.footprintBlocked(p.X, ny) {
			p.VY = 0
		} else {
			p.Y = ny
		}
	}
	// Independent second layer of bounds enforcement.
	p.clampToWorld()
}
