// persistence/file.go
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wfunc/roomserver/models"
)

// FileStore keeps each document as a JSON file under a data directory.
// Writes go through a temp file and rename so a crash never leaves a
// half-written document behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) load(name string, out interface{}) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *FileStore) save(name string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	// Each write gets its own temp file. Saves run on the save service's
	// goroutines, so two in-flight writes of one document must never share
	// a temp path; the rename keeps the visible file complete either way.
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(name))
}

func (s *FileStore) LoadPlayers() (*models.PlayersDocument, error) {
	doc := &models.PlayersDocument{}
	if err := s.load(docPlayers, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) SavePlayers(doc *models.PlayersDocument) error {
	return s.save(docPlayers, doc)
}

func (s *FileStore) LoadColliders() (*models.CollidersDocument, error) {
	doc := &models.CollidersDocument{}
	if err := s.load(docColliders, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) SaveColliders(doc *models.CollidersDocument) error {
	return s.save(docColliders, doc)
}

func (s *FileStore) LoadObjects() (*models.ObjectsDocument, error) {
	doc := &models.ObjectsDocument{}
	if err := s.load(docObjects, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *FileStore) SaveObjects(doc *models.ObjectsDocument) error {
	return s.save(docObjects, doc)
}

func (s *FileStore) Close() error {
	return nil
}
