// services/save_service.go
package services

import (
	"sync"

	"github.com/wfunc/roomserver/logger"
	"github.com/wfunc/roomserver/models"
	"github.com/wfunc/roomserver/persistence"
)

// SaveService turns world document snapshots into store writes. Writes run
// on their own goroutine so the simulation never waits on disk or the
// database; failures are logged and swallowed. Durability is best-effort.
type SaveService struct {
	store persistence.Store
	wg    sync.WaitGroup
}

func NewSaveService(store persistence.Store) *SaveService {
	return &SaveService{store: store}
}

func (s *SaveService) SavePlayers(doc *models.PlayersDocument) {
	s.async("players", func() error { return s.store.SavePlayers(doc) })
}

func (s *SaveService) SaveColliders(doc *models.CollidersDocument) {
	s.async("colliders", func() error { return s.store.SaveColliders(doc) })
}

func (s *SaveService) SaveObjects(doc *models.ObjectsDocument) {
	s.async("objects", func() error { return s.store.SaveObjects(doc) })
}

func (s *SaveService) async(name string, save func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := save(); err != nil {
			logger.Log.Errorf("Failed to save %s document: %v", name, err)
		}
	}()
}

// Flush writes all three documents synchronously. Used once, at shutdown.
func (s *SaveService) Flush(players *models.PlayersDocument, colliders *models.CollidersDocument, objects *models.ObjectsDocument) {
	s.wg.Wait()
	if err := s.store.SavePlayers(players); err != nil {
		logger.Log.Errorf("Shutdown flush of players failed: %v", err)
	}
	if err := s.store.SaveColliders(colliders); err != nil {
		logger.Log.Errorf("Shutdown flush of colliders failed: %v", err)
	}
	if err := s.store.SaveObjects(objects); err != nil {
		logger.Log.Errorf("Shutdown flush of objects failed: %v", err)
	}
}
