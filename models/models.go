// models/models.go
package models

// PlayerState 玩家状态（广播给客户端）
type PlayerState struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Character string  `json:"character"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	LastSeq   uint64  `json:"lastSeq"`
	Hugging   bool    `json:"hugging"`
	Seated    bool    `json:"seated"`
}

// FollowerState 跟随者状态
type FollowerState struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	TargetID string  `json:"targetId,omitempty"`
}

// ObjectState 摆放物件状态
type ObjectState struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	ImageSrc  string  `json:"imageSrc"`
	Text      string  `json:"text"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

// Tile 地图格子坐标
type Tile struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// GameState is the full world view sent in welcome and state_update messages.
type GameState struct {
	Players   []PlayerState   `json:"players"`
	Followers []FollowerState `json:"followers"`
	Objects   []ObjectState   `json:"objects"`
	Colliders []Tile          `json:"colliders"`
}

// WorldStats is the summary exposed over the admin RPC.
type WorldStats struct {
	Tick      uint64
	Connected int
	Seated    int
	Followers int
	Objects   int
	Colliders int
}
