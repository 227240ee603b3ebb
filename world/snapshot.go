// world/snapshot.go
package world

import (
	"math"
	"sort"

	"github.com/wfunc/roomserver/models"
	"github.com/wfunc/roomserver/protocol"
)

// round2 trims snapshot values to two decimals to keep frames compact.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (w *World) playerState(p *Player) models.PlayerState {
	return models.PlayerState{
		ID:        p.ID,
		Name:      p.Name,
		Character: p.Character,
		X:         round2(p.X),
		Y:         round2(p.Y),
		VX:        round2(p.VX),
		VY:        round2(p.VY),
		LastSeq:   p.LastSeq,
		Hugging:   p.Embrace.Active,
		Seated:    w.bench.SeatOf(p.ID) >= 0,
	}
}

func (w *World) objectState(o *Object) models.ObjectState {
	return models.ObjectState{
		ID:        o.ID,
		X:         o.X,
		Y:         o.Y,
		Width:     o.Width,
		Height:    o.Height,
		ImageSrc:  o.ImageSrc,
		Text:      o.Text,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// buildGameState assembles the full world view: connected players only,
// every follower, every object, every tile collider.
func (w *World) buildGameState() models.GameState {
	gs := models.GameState{
		Players:   make([]models.PlayerState, 0, MaxPlayers),
		Followers: make([]models.FollowerState, 0, len(w.followers)),
		Objects:   make([]models.ObjectState, 0, len(w.objects)),
		Colliders: make([]models.Tile, 0, len(w.colliders)),
	}

	for _, id := range w.playerOrder {
		p := w.players[id]
		if !p.Connected {
			continue
		}
		gs.Players = append(gs.Players, w.playerState(p))
	}

	for _, f := range w.followers {
		gs.Followers = append(gs.Followers, models.FollowerState{
			ID:       f.ID,
			Kind:     f.Kind,
			X:        round2(f.X),
			Y:        round2(f.Y),
			VX:       round2(f.VX),
			VY:       round2(f.VY),
			TargetID: f.TargetID,
		})
	}

	for _, id := range w.objectOrder {
		gs.Objects = append(gs.Objects, w.objectState(w.objects[id]))
	}

	for t := range w.colliders {
		gs.Colliders = append(gs.Colliders, t)
	}
	sort.Slice(gs.Colliders, func(i, j int) bool {
		if gs.Colliders[i].Row != gs.Colliders[j].Row {
			return gs.Colliders[i].Row < gs.Colliders[j].Row
		}
		return gs.Colliders[i].Col < gs.Colliders[j].Col
	})

	return gs
}

// broadcastSnapshot pushes a full state_update to every joined connection.
// Also used out-of-band after teleports so observers see them immediately.
func (w *World) broadcastSnapshot() {
	update := protocol.NewStateUpdate(w.tick, w.now().UnixMilli(), w.buildGameState())
	data, err := protocol.Encode(update)
	if err != nil {
		return
	}
	w.broadcaster.BroadcastToAll(data)
	w.metrics.AddSnapshotBytes(len(data))
}
