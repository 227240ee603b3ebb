// world/follower.go
package world

import (
	"fmt"
	"math"
)

// Follower 跟随玩家的同伴实体，不参与碰撞
type Follower struct {
	ID   string
	Kind string
	Slot int // determines the trailing angle sign

	X, Y   float64
	VX, VY float64

	TargetID string // "" when no player is connected
}

func newFollowers() []*Follower {
	sx, sy := SpawnPoint()
	followers := make([]*Follower, 0, len(followerTemplates))
	for i, kind := range followerTemplates {
		followers = append(followers, &Follower{
			ID:   fmt.Sprintf("follower-%d", i+1),
			Kind: kind,
			Slot: i,
			X:    sx + float64(i+1)*TileSize,
			Y:    sy + TileSize,
		})
	}
	return followers
}

// reassignFollowers distributes followers over connected players
// round-robin. Called whenever connectivity changes.
func (w *World) reassignFollowers() {
	connected := w.connectedIDs()
	for i, f := range w.followers {
		if len(connected) == 0 {
			f.TargetID = ""
			f.VX, f.VY = 0, 0
			continue
		}
		f.TargetID = connected[i%len(connected)]
	}
}

// advanceFollowers moves every follower toward its trailing point.
func (w *World) advanceFollowers(delta float64) {
	for _, f := range w.followers {
		w.advanceFollower(f, delta)
	}
}

func (w *World) advanceFollower(f *Follower, delta float64) {
	target, ok := w.players[f.TargetID]
	if !ok || !target.Connected {
		f.VX, f.VY = 0, 0
		return
	}

	// Base offset rotated by the slot angle, alternating sides.
	angle := FollowSlotAngle * math.Pi / 180
	if f.Slot%2 == 1 {
		angle = -angle
	}
	offX := -FollowDistance * math.Sin(angle)
	offY := FollowDistance * math.Cos(angle)

	// Trail behind the direction of travel.
	targetSpeed := math.Hypot(target.VX, target.VY)
	if targetSpeed > 0 {
		offX -= target.VX / targetSpeed * FollowTrailLead
		offY -= target.VY / targetSpeed * FollowTrailLead
	}

	scale := 1.0
	if w.bench.SeatOf(target.ID) >= 0 {
		scale = FollowSeatedScale
	}

	desiredX := target.X + offX*scale
	desiredY := target.Y + offY*scale

	dx := desiredX - f.X
	dy := desiredY - f.Y
	dist := math.Hypot(dx, dy)
	if dist <= FollowArriveRadius {
		f.VX, f.VY = 0, 0
		return
	}

	speed := FollowBaseSpeed - targetSpeed*FollowSpeedDamp
	if speed < FollowMinSpeed {
		speed = FollowMinSpeed
	}

	step := speed * delta
	if step > dist {
		step = dist
	}

	f.X = clamp(f.X+dx/dist*step, 0, WorldWidth)
	f.Y = clamp(f.Y+dy/dist*step, 0, WorldHeight)
	f.VX = dx / dist * speed
	f.VY = dy / dist * speed
}
