// session/session.go
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/roomserver/network"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID         string
	Conn       network.Connection
	PlayerID   string // set once the join handshake succeeds
	CreatedAt  time.Time
	LastActive time.Time
	mutex      sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) Send(data []byte) error {
	s.LastActive = time.Now()
	return s.Conn.Send(data)
}

func (s *Session) GetID() string {
	return s.ID
}

// Bind associates the session with an authenticated player.
func (s *Session) Bind(playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerID = playerID
}

// GetPlayerID returns the bound player ID, or "" before a successful join.
func (s *Session) GetPlayerID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.PlayerID
}

// Joined reports whether the session completed the join handshake.
func (s *Session) Joined() bool {
	return s.GetPlayerID() != ""
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Session管理器
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByPlayerID returns the session currently bound to a player, if any.
func (m *Manager) GetByPlayerID(playerID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, s := range m.sessions {
		if s.GetPlayerID() == playerID {
			return s, true
		}
	}
	return nil, false
}

// Joined returns a snapshot of all sessions that completed the handshake.
func (m *Manager) Joined() []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	var result []*Session
	for _, s := range m.sessions {
		if s.Joined() {
			result = append(result, s)
		}
	}
	return result
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
