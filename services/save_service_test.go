package services

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/wfunc/roomserver/logger"
	"github.com/wfunc/roomserver/models"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// countingStore is a test double for the persistence.Store interface.
type countingStore struct {
	mutex     sync.Mutex
	players   int
	colliders int
	objects   int
	fail      bool
}

func (s *countingStore) LoadPlayers() (*models.PlayersDocument, error)     { return nil, nil }
func (s *countingStore) LoadColliders() (*models.CollidersDocument, error) { return nil, nil }
func (s *countingStore) LoadObjects() (*models.ObjectsDocument, error)     { return nil, nil }
func (s *countingStore) Close() error                                      { return nil }

func (s *countingStore) SavePlayers(doc *models.PlayersDocument) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.players++
	if s.fail {
		return errors.New("store down")
	}
	return nil
}

func (s *countingStore) SaveColliders(doc *models.CollidersDocument) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.colliders++
	if s.fail {
		return errors.New("store down")
	}
	return nil
}

func (s *countingStore) SaveObjects(doc *models.ObjectsDocument) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.objects++
	if s.fail {
		return errors.New("store down")
	}
	return nil
}

func (s *countingStore) counts() (int, int, int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.players, s.colliders, s.objects
}

func TestSaveService_WritesReachTheStore(t *testing.T) {
	store := &countingStore{}
	svc := NewSaveService(store)

	svc.SavePlayers(&models.PlayersDocument{})
	svc.SaveColliders(&models.CollidersDocument{})
	svc.SaveObjects(&models.ObjectsDocument{})

	deadline := time.After(time.Second)
	for {
		p, c, o := store.counts()
		if p == 1 && c == 1 && o == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("Saves did not reach the store: players=%d colliders=%d objects=%d", p, c, o)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSaveService_FailuresAreSwallowed(t *testing.T) {
	store := &countingStore{fail: true}
	svc := NewSaveService(store)

	// Must not panic or block the caller.
	svc.SavePlayers(&models.PlayersDocument{})
	svc.Flush(&models.PlayersDocument{}, &models.CollidersDocument{}, &models.ObjectsDocument{})
}

func TestSaveService_FlushWritesAllThree(t *testing.T) {
	store := &countingStore{}
	svc := NewSaveService(store)

	svc.Flush(&models.PlayersDocument{}, &models.CollidersDocument{}, &models.ObjectsDocument{})

	p, c, o := store.counts()
	if p != 1 || c != 1 || o != 1 {
		t.Errorf("Flush should write all three documents, got players=%d colliders=%d objects=%d", p, c, o)
	}
}
