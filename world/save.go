// world/save.go
package world

import (
	"github.com/wfunc/roomserver/models"
)

// Document builders cover every player ever seen (connected or not) so
// state survives reconnects and restarts.

func (w *World) BuildPlayersDocument() *models.PlayersDocument {
	doc := &models.PlayersDocument{
		Players:   make(map[string]models.PersistedPlayer, len(w.players)),
		LastSaved: w.now().UnixMilli(),
	}
	for id, p := range w.players {
		doc.Players[id] = models.PersistedPlayer{
			ID:        p.ID,
			Name:      p.Name,
			Character: p.Character,
			X:         p.X,
			Y:         p.Y,
		}
	}
	return doc
}

func (w *World) BuildCollidersDocument() *models.CollidersDocument {
	gs := w.buildGameState()
	return &models.CollidersDocument{
		Colliders: gs.Colliders,
		LastSaved: w.now().UnixMilli(),
	}
}

func (w *World) BuildObjectsDocument() *models.ObjectsDocument {
	doc := &models.ObjectsDocument{
		Objects:   make([]models.ObjectState, 0, len(w.objects)),
		LastSaved: w.now().UnixMilli(),
	}
	for _, id := range w.objectOrder {
		doc.Objects = append(doc.Objects, w.objectState(w.objects[id]))
	}
	return doc
}

func (w *World) queueSavePlayers() {
	w.persister.SavePlayers(w.BuildPlayersDocument())
}

func (w *World) queueSaveColliders() {
	w.persister.SaveColliders(w.BuildCollidersDocument())
}

func (w *World) queueSaveObjects() {
	w.persister.SaveObjects(w.BuildObjectsDocument())
}

// QueueSaveAll snapshots all three documents, used on the periodic cadence.
func (w *World) QueueSaveAll() {
	w.queueSavePlayers()
	w.queueSaveColliders()
	w.queueSaveObjects()
}
