// world/tuning.go
package world

import "time"

const TickRate = 20 // simulation steps per second

const (
	TileSize  = 16.0
	WorldCols = 240
	WorldRows = 180

	WorldWidth  = WorldCols * TileSize // 3840
	WorldHeight = WorldRows * TileSize // 2880

	// Spawn tile. A player spawns at the horizontal center of the tile,
	// feet on the tile's bottom edge.
	SpawnCol = 20
	SpawnRow = 10

	MoveSpeed    = 125.0 // px/s
	PlayerRadius = 10.0  // footprint radius for obstruction sampling

	TickInterval = time.Second / TickRate
	// A stalled scheduler never produces a simulation jump beyond 4 ticks.
	MaxDelta = 4 * TickInterval

	HugRange    = 80.0 // max distance between the two players
	HugDuration = 3 * time.Second

	DefaultObjectWidth  = 32.0
	DefaultObjectHeight = 32.0
)

// Bench geometry. The bench itself is a static obstacle; its anchor is the
// rectangle center. Seats mirror around the anchor, assigned by arrival order.
const (
	BenchX      = 118 * TileSize // 1888
	BenchY      = 88 * TileSize  // 1408
	BenchWidth  = 3 * TileSize
	BenchHeight = TileSize

	BenchSeatOffsetX = 14.0
	BenchSeatOffsetY = -6.0
	BenchStandOffX   = 40.0
	BenchStandOffY   = 18.0
	BenchSitRange    = 80.0
)

// Follower tuning.
const (
	FollowDistance     = 40.0 // base trailing offset magnitude
	FollowSlotAngle    = 30.0 // degrees, alternating sign by slot
	FollowTrailLead    = 18.0 // displacement opposite the target's velocity
	FollowSeatedScale  = 4.0  // followers back off when the target sits
	FollowBaseSpeed    = 110.0
	FollowSpeedDamp    = 0.6 // follower slows down while the target moves
	FollowMinSpeed     = 30.0
	FollowArriveRadius = 4.0 // deadband, avoids perpetual micro-jitter
)

// SpawnPoint returns the pixel position for the spawn tile.
func SpawnPoint() (x, y float64) {
	return SpawnCol*TileSize + TileSize/2, (SpawnRow + 1) * TileSize
}

// followerTemplates is the fixed companion roster created at startup.
var followerTemplates = []string{"cat", "duck", "robin"}
