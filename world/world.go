// world/world.go
package world

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/roomserver/interaction"
	"github.com/wfunc/roomserver/logger"
	"github.com/wfunc/roomserver/models"
	"github.com/wfunc/roomserver/protocol"
)

// MaxPlayers is the occupancy limit of the shared space.
const MaxPlayers = 2

var (
	ErrRoomFull         = errors.New("room is full")
	ErrAlreadyConnected = errors.New("player is already connected")
	ErrUnknownPlayer    = errors.New("unknown player")
)

// World owns all mutable room state. It is constructed once at startup and
// only ever touched from the run loop goroutine, so it carries no locks.
type World struct {
	broadcaster Broadcaster
	persister   Persister
	metrics     Metrics

	players     map[string]*Player
	playerOrder []string // stable insertion-order iteration

	followers []*Follower

	objects     map[string]*Object
	objectOrder []string

	colliders   map[models.Tile]struct{}
	staticRects []Rect

	bench interaction.Bench

	tick     uint64
	lastStep time.Time

	now func() time.Time // injectable clock
}

func NewWorld(b Broadcaster, p Persister, m Metrics) *World {
	if p == nil {
		p = NopPersister{}
	}
	if m == nil {
		m = NopMetrics{}
	}
	benchRect := Rect{X: BenchX, Y: BenchY, Width: BenchWidth, Height: BenchHeight}
	w := &World{
		broadcaster: b,
		persister:   p,
		metrics:     m,
		players:     make(map[string]*Player),
		followers:   newFollowers(),
		objects:     make(map[string]*Object),
		colliders:   make(map[models.Tile]struct{}),
		staticRects: []Rect{benchRect},
		bench: interaction.Bench{
			AnchorX:     benchRect.X + benchRect.Width/2,
			AnchorY:     benchRect.Y + benchRect.Height/2,
			SeatOffsetX: BenchSeatOffsetX,
			SeatOffsetY: BenchSeatOffsetY,
			StandOffX:   BenchStandOffX,
			StandOffY:   BenchStandOffY,
			SitRange:    BenchSitRange,
		},
		now: time.Now,
	}
	w.lastStep = w.now()
	return w
}

// Load seeds the world from the persisted documents. Any document may be nil.
func (w *World) Load(players *models.PlayersDocument, colliders *models.CollidersDocument, objects *models.ObjectsDocument) {
	if players != nil {
		ids := make([]string, 0, len(players.Players))
		for id := range players.Players {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			pp := players.Players[id]
			w.players[id] = &Player{
				ID:        pp.ID,
				Name:      pp.Name,
				Character: pp.Character,
				X:         clamp(pp.X, 0, WorldWidth),
				Y:         clamp(pp.Y, 0, WorldHeight),
			}
			w.playerOrder = append(w.playerOrder, id)
		}
	}
	if colliders != nil {
		for _, t := range colliders.Colliders {
			if validTile(t) {
				w.colliders[t] = struct{}{}
			}
		}
	}
	if objects != nil {
		for _, o := range objects.Objects {
			obj := &Object{
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
			w.objects[obj.ID] = obj
			w.objectOrder = append(w.objectOrder, obj.ID)
		}
	}
	logger.Log.Infof("World loaded: %d players, %d colliders, %d objects",
		len(w.players), len(w.colliders), len(w.objects))
}

// Join admits a session into the room, either creating a new player or
// resurrecting a known one. On success the welcome frame goes to the joining
// session and player_joined to everyone else.
func (w *World) Join(sessionID string, msg *protocol.Join) (string, error) {
	if w.connectedCount() >= MaxPlayers {
		return "", ErrRoomFull
	}

	var p *Player
	if msg.PlayerID != "" {
		if known, ok := w.players[msg.PlayerID]; ok {
			if known.Connected {
				return "", ErrAlreadyConnected
			}
			// Reconnection: resume the existing record, keep its position.
			p = known
			if msg.Name != "" {
				p.Name = msg.Name
			}
			if msg.Character != "" {
				p.Character = msg.Character
			}
		}
	}
	if p == nil {
		sx, sy := SpawnPoint()
		p = &Player{
			ID:        uuid.New().String(),
			Name:      msg.Name,
			Character: msg.Character,
			X:         sx,
			Y:         sy,
		}
		w.players[p.ID] = p
		w.playerOrder = append(w.playerOrder, p.ID)
	}

	p.Connected = true
	p.SessionID = sessionID
	p.VX, p.VY = 0, 0
	p.LastInput = protocol.KeyState{}

	w.reassignFollowers()
	w.metrics.SetConnectedPlayers(w.connectedCount())

	welcome, err := protocol.Encode(protocol.NewWelcome(p.ID, w.buildGameState()))
	if err == nil {
		w.broadcaster.SendTo(sessionID, welcome)
	}
	if joined, err := protocol.Encode(protocol.NewPlayerJoined(w.playerState(p))); err == nil {
		w.broadcaster.BroadcastToOthers(sessionID, joined)
	}

	w.queueSavePlayers()
	logger.Log.Infof("Player %s (%s) joined, session %s", p.ID, p.Name, sessionID)
	return p.ID, nil
}

// Disconnect marks the session's player as gone. The record survives for
// reconnection; only the connection flag and interaction states are cleared.
func (w *World) Disconnect(sessionID string) {
	p := w.playerBySession(sessionID)
	if p == nil {
		return
	}

	p.Connected = false
	p.SessionID = ""
	p.VX, p.VY = 0, 0
	p.LastInput = protocol.KeyState{}

	// A departing player cannot hold an interaction state open, and the
	// partner must not be left hugging nobody.
	if p.Embrace.Active {
		w.endEmbrace(p)
		for _, id := range w.playerOrder {
			if q := w.players[id]; q != p && q.Embrace.Active {
				w.endEmbrace(q)
			}
		}
	}
	w.bench.Release(p.ID)

	w.reassignFollowers()
	w.metrics.SetConnectedPlayers(w.connectedCount())
	w.metrics.SetSeatedPlayers(w.bench.SeatedCount())

	if left, err := protocol.Encode(protocol.NewPlayerLeft(p.ID)); err == nil {
		w.broadcaster.BroadcastToOthers(sessionID, left)
	}

	w.queueSavePlayers()
	logger.Log.Infof("Player %s disconnected, session %s", p.ID, sessionID)
}

// --- lookup helpers ---

func (w *World) playerBySession(sessionID string) *Player {
	for _, id := range w.playerOrder {
		if p := w.players[id]; p.SessionID == sessionID && p.Connected {
			return p
		}
	}
	return nil
}

// Player returns a player record by ID.
func (w *World) Player(playerID string) (*Player, bool) {
	p, ok := w.players[playerID]
	return p, ok
}

func (w *World) connectedCount() int {
	n := 0
	for _, id := range w.playerOrder {
		if w.players[id].Connected {
			n++
		}
	}
	return n
}

func (w *World) connectedIDs() []string {
	var ids []string
	for _, id := range w.playerOrder {
		if w.players[id].Connected {
			ids = append(ids, id)
		}
	}
	return ids
}

// otherConnected returns the single other connected player, if exactly one
// other player is connected.
func (w *World) otherConnected(playerID string) *Player {
	var other *Player
	for _, id := range w.playerOrder {
		p := w.players[id]
		if p.Connected && p.ID != playerID {
			if other != nil {
				return nil
			}
			other = p
		}
	}
	return other
}

func validTile(t models.Tile) bool {
	return t.Col >= 0 && t.Col < WorldCols && t.Row >= 0 && t.Row < WorldRows
}

// Stats summarizes the world for the admin RPC.
func (w *World) Stats() models.WorldStats {
	return models.WorldStats{
		Tick:      w.tick,
		Connected: w.connectedCount(),
		Seated:    w.bench.SeatedCount(),
		Followers: len(w.followers),
		Objects:   len(w.objects),
		Colliders: len(w.colliders),
	}
}

// SetClock replaces the time source, for tests.
func (w *World) SetClock(now func() time.Time) {
	w.now = now
	w.lastStep = now()
}
