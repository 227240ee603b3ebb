// world/player.go
package world

import (
	"math"

	"github.com/wfunc/roomserver/interaction"
	"github.com/wfunc/roomserver/protocol"
)

// Player 房间内的玩家实体（服务端权威状态）
type Player struct {
	ID        string
	Name      string
	Character string

	X, Y   float64
	VX, VY float64

	Connected bool
	SessionID string // current session, "" when disconnected

	// Last-input-wins buffer. Only the packet live at tick time matters.
	LastInput   protocol.KeyState
	LastSeq     uint64
	LastInputAt int64

	Embrace interaction.Embrace
}

// BufferInput replaces the buffered packet and advances the acknowledged
// sequence number. The sequence is a monotonic max and never decreases.
func (p *Player) BufferInput(msg *protocol.Input) {
	p.LastInput = msg.Keys
	p.LastInputAt = msg.Timestamp
	if msg.Seq > p.LastSeq {
		p.LastSeq = msg.Seq
	}
}

// desiredVelocity converts the buffered key state into a velocity vector.
// Diagonal input is normalized so it carries no speed bonus.
func (p *Player) desiredVelocity() (vx, vy float64) {
	keys := p.LastInput
	if keys.Left || keys.A {
		vx -= 1
	}
	if keys.Right || keys.D {
		vx += 1
	}
	if keys.Up || keys.W {
		vy -= 1
	}
	if keys.Down || keys.S {
		vy += 1
	}
	if vx != 0 && vy != 0 {
		inv := 1 / math.Sqrt2
		vx *= inv
		vy *= inv
	}
	return vx * MoveSpeed, vy * MoveSpeed
}

// clampToWorld enforces the world-bounds invariant regardless of how the
// position was produced.
func (p *Player) clampToWorld() {
	p.X = clamp(p.X, 0, WorldWidth)
	p.Y = clamp(p.Y, 0, WorldHeight)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
