// models/documents.go
package models

// The three persisted documents. Saved independently and best-effort;
// none of them are transactional with the others.

// PersistedPlayer 持久化的玩家子集
type PersistedPlayer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Character string  `json:"character"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// PlayersDocument 玩家快照文档
type PlayersDocument struct {
	Players   map[string]PersistedPlayer `json:"players"`
	LastSaved int64                      `json:"lastSaved"`
}

// CollidersDocument 格子障碍文档
type CollidersDocument struct {
	Colliders []Tile `json:"colliders"`
	LastSaved int64  `json:"lastSaved"`
}

// ObjectsDocument 摆放物件文档
type ObjectsDocument struct {
	Objects   []ObjectState `json:"objects"`
	LastSaved int64         `json:"lastSaved"`
}
