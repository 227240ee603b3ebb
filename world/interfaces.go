// world/interfaces.go
package world

import (
	"time"

	"github.com/wfunc/roomserver/models"
)

// Broadcaster fans encoded frames out to clients. Defined here to break the
// import cycle with the broadcast package.
type Broadcaster interface {
	BroadcastToAll(data []byte) error
	BroadcastToOthers(excludeSessionID string, data []byte) error
	SendTo(sessionID string, data []byte) error
}

// Persister receives document snapshots to store. Saves are fire-and-forget:
// the simulation never waits for them and a failure must not delay ticking.
type Persister interface {
	SavePlayers(doc *models.PlayersDocument)
	SaveColliders(doc *models.CollidersDocument)
	SaveObjects(doc *models.ObjectsDocument)
}

// Metrics is the slice of the monitor the world reports into.
type Metrics interface {
	SetConnectedPlayers(n int)
	SetSeatedPlayers(n int)
	ObserveTickDuration(d time.Duration)
	AddSnapshotBytes(n int)
}

// NopPersister and NopMetrics keep tests and tools free of wiring.
type NopPersister struct{}

func (NopPersister) SavePlayers(*models.PlayersDocument)     {}
func (NopPersister) SaveColliders(*models.CollidersDocument) {}
func (NopPersister) SaveObjects(*models.ObjectsDocument)     {}

type NopMetrics struct{}

func (NopMetrics) SetConnectedPlayers(int)           {}
func (NopMetrics) SetSeatedPlayers(int)              {}
func (NopMetrics) ObserveTickDuration(time.Duration) {}
func (NopMetrics) AddSnapshotBytes(int)              {}
