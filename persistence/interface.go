// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/wfunc/roomserver/models"
)

// Store 文档存储接口
// Three independent documents, saved best-effort and never transactional
// with each other.
type Store interface {
	LoadPlayers() (*models.PlayersDocument, error)
	SavePlayers(doc *models.PlayersDocument) error
	LoadColliders() (*models.CollidersDocument, error)
	SaveColliders(doc *models.CollidersDocument) error
	LoadObjects() (*models.ObjectsDocument, error)
	SaveObjects(doc *models.ObjectsDocument) error
	Close() error
}

// ErrNotFound means the document has never been saved; callers start empty.
var ErrNotFound = errors.New("document not found")

// Document names shared by the SQL-backed stores.
const (
	docPlayers   = "players"
	docColliders = "colliders"
	docObjects   = "objects"
)
