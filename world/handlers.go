// world/handlers.go
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/wfunc/roomserver/interaction"
	"github.com/wfunc/roomserver/models"
	"github.com/wfunc/roomserver/protocol"
)

var (
	ErrBadCoordinates = errors.New("invalid coordinates")

	// The two interaction machines exclude each other: a seated player holds
	// a fixed seat offset and must not be moved by a hug, and a hugging
	// player must not teleport away from the partner mid-embrace.
	ErrSeatedCannotHug  = errors.New("cannot hug while seated")
	ErrHuggingCannotSit = errors.New("cannot sit while hugging")
)

// HandleInput buffers the latest intent for a player. Nothing moves until
// the next tick; rapid key changes between ticks are not replayed.
func (w *World) HandleInput(playerID string, msg *protocol.Input) error {
	p, ok := w.players[playerID]
	if !ok || !p.Connected {
		return ErrUnknownPlayer
	}
	p.BufferInput(msg)
	return nil
}

// ResetPosition teleports a player back to spawn. A seated player
// implicitly gives up the seat.
func (w *World) ResetPosition(playerID string) error {
	p, ok := w.players[playerID]
	if !ok || !p.Connected {
		return ErrUnknownPlayer
	}
	w.bench.Release(p.ID)
	w.metrics.SetSeatedPlayers(w.bench.SeatedCount())

	p.X, p.Y = SpawnPoint()
	p.VX, p.VY = 0, 0
	w.broadcastSnapshot()
	return nil
}

// PlaceCollider adds a tile obstacle. Placing an existing tile is no change.
func (w *World) PlaceCollider(playerID string, msg *protocol.PlaceCollider) error {
	if _, ok := w.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if !validTile(msg.Tile) {
		return fmt.Errorf("%w: tile (%d,%d)", ErrBadCoordinates, msg.Col, msg.Row)
	}
	if _, exists := w.colliders[msg.Tile]; exists {
		return nil
	}

	w.colliders[msg.Tile] = struct{}{}
	if data, err := protocol.Encode(protocol.NewColliderPlaced(msg.Tile)); err == nil {
		w.broadcaster.BroadcastToAll(data)
	}
	w.queueSaveColliders()
	return nil
}

// RemoveCollider deletes a tile obstacle. Removing a tile that was never
// added is no change: no broadcast, no save.
func (w *World) RemoveCollider(playerID string, msg *protocol.RemoveCollider) error {
	if _, ok := w.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if _, exists := w.colliders[msg.Tile]; !exists {
		return nil
	}

	delete(w.colliders, msg.Tile)
	if data, err := protocol.Encode(protocol.NewColliderRemoved(msg.Tile)); err == nil {
		w.broadcaster.BroadcastToAll(data)
	}
	w.queueSaveColliders()
	return nil
}

// PlaceObject inserts a display object. An overlap with an existing object
// rejects the insertion silently; the registry is never corrected.
func (w *World) PlaceObject(playerID string, msg *protocol.PlaceObject) error {
	if _, ok := w.players[playerID]; !ok {
		return ErrUnknownPlayer
	}

	x, y, err := resolvePoint(msg.X, msg.Y, msg.Col, msg.Row)
	if err != nil {
		return err
	}

	width := DefaultObjectWidth
	if msg.Width != nil {
		width = *msg.Width
	}
	height := DefaultObjectHeight
	if msg.Height != nil {
		height = *msg.Height
	}
	if !isFinite(width) || !isFinite(height) || width <= 0 || height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrBadCoordinates, width, height)
	}
	if x < 0 || x > WorldWidth || y < 0 || y > WorldHeight {
		return fmt.Errorf("%w: point (%v,%v)", ErrBadCoordinates, x, y)
	}

	now := w.now().UnixMilli()
	obj := &Object{
		ID:        uuid.New().String(),
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		ImageSrc:  msg.ImageSrc,
		Text:      msg.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	bounds := obj.Bounds()
	for _, id := range w.objectOrder {
		if w.objects[id].Bounds().Overlaps(bounds) {
			// Overlap is a silent no-op, not an error.
			return nil
		}
	}

	w.objects[obj.ID] = obj
	w.objectOrder = append(w.objectOrder, obj.ID)
	if data, err := protocol.Encode(protocol.NewObjectPlaced(w.objectState(obj))); err == nil {
		w.broadcaster.BroadcastToAll(data)
	}
	w.queueSaveObjects()
	return nil
}

// RemoveObject deletes a display object by ID or by a point it covers.
// The derived obstacle disappears with it; a miss is no change.
func (w *World) RemoveObject(playerID string, msg *protocol.RemoveObject) error {
	if _, ok := w.players[playerID]; !ok {
		return ErrUnknownPlayer
	}

	targetID := msg.ID
	if targetID == "" {
		x, y, err := resolvePoint(msg.X, msg.Y, msg.Col, msg.Row)
		if err != nil {
			return err
		}
		for _, id := range w.objectOrder {
			if w.objects[id].Bounds().Contains(x, y) {
				targetID = id
				break
			}
		}
	}
	if _, exists := w.objects[targetID]; !exists {
		return nil
	}

	delete(w.objects, targetID)
	for i, id := range w.objectOrder {
		if id == targetID {
			w.objectOrder = append(w.objectOrder[:i], w.objectOrder[i+1:]...)
			break
		}
	}
	if data, err := protocol.Encode(protocol.NewObjectRemoved(targetID)); err == nil {
		w.broadcaster.BroadcastToAll(data)
	}
	w.queueSaveObjects()
	return nil
}

// HugRequest pairs the requester with the only other connected player.
func (w *World) HugRequest(playerID string) error {
	p, ok := w.players[playerID]
	if !ok || !p.Connected {
		return ErrUnknownPlayer
	}
	other := w.otherConnected(playerID)
	if other == nil {
		return interaction.ErrNoPartner
	}
	if w.bench.SeatOf(p.ID) >= 0 || w.bench.SeatOf(other.ID) >= 0 {
		return ErrSeatedCannotHug
	}

	var otherEmbrace *interaction.Embrace
	if other != nil {
		otherEmbrace = &other.Embrace
	}
	err := interaction.StartEmbrace(&p.Embrace, otherEmbrace,
		p.X, p.Y, other.X, other.Y, HugRange, w.now(), HugDuration)
	if err != nil {
		return err
	}

	// Visual alignment: both participants share the average Y.
	avgY := (p.Y + other.Y) / 2
	p.Y = avgY
	other.Y = avgY
	p.VX, p.VY = 0, 0
	other.VX, other.VY = 0, 0

	if data, err := protocol.Encode(protocol.NewHugStarted(p.ID, other.ID)); err == nil {
		w.broadcaster.BroadcastToAll(data)
	}
	return nil
}

// endEmbrace returns one player to idle and emits their hug_ended event.
func (w *World) endEmbrace(p *Player) {
	p.Embrace.End()
	if data, err := protocol.Encode(protocol.NewHugEnded(p.ID)); err == nil {
		w.broadcaster.BroadcastToAll(data)
	}
}

// BenchSit seats the player if a seat is free and the bench is in reach.
// Sitting while seated or while the bench is full is a no-op.
func (w *World) BenchSit(playerID string) error {
	p, ok := w.players[playerID]
	if !ok || !p.Connected {
		return ErrUnknownPlayer
	}
	if p.Embrace.Active {
		return ErrHuggingCannotSit
	}

	x, y, err := w.bench.Sit(p.ID, p.X, p.Y)
	switch {
	case errors.Is(err, interaction.ErrAlreadySeated), errors.Is(err, interaction.ErrBenchFull):
		return nil
	case err != nil:
		return err
	}

	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	w.metrics.SetSeatedPlayers(w.bench.SeatedCount())

	// Observers see the teleport without waiting for the next tick.
	w.broadcastSnapshot()
	return nil
}

// BenchStand is unconditional for a seated player; standing while not
// seated is a no-op.
func (w *World) BenchStand(playerID string) error {
	p, ok := w.players[playerID]
	if !ok || !p.Connected {
		return ErrUnknownPlayer
	}

	x, y, err := w.bench.Stand(p.ID)
	if errors.Is(err, interaction.ErrNotSeated) {
		return nil
	}
	if err != nil {
		return err
	}

	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	w.metrics.SetSeatedPlayers(w.bench.SeatedCount())

	w.broadcastSnapshot()
	return nil
}

// resolvePoint accepts either pixel coordinates or a tile reference.
func resolvePoint(x, y *float64, col, row *int) (float64, float64, error) {
	if x != nil && y != nil {
		if !isFinite(*x) || !isFinite(*y) {
			return 0, 0, fmt.Errorf("%w: non-finite point", ErrBadCoordinates)
		}
		return *x, *y, nil
	}
	if col != nil && row != nil {
		t := models.Tile{Col: *col, Row: *row}
		if !validTile(t) {
			return 0, 0, fmt.Errorf("%w: tile (%d,%d)", ErrBadCoordinates, *col, *row)
		}
		return float64(*col)*TileSize + TileSize/2, float64(*row)*TileSize + TileSize/2, nil
	}
	return 0, 0, fmt.Errorf("%w: missing point", ErrBadCoordinates)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
