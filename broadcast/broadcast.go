// broadcast/broadcast.go
package broadcast

import (
	"github.com/wfunc/roomserver/session"
)

// Broadcaster fans outbound frames to connected clients.
type Broadcaster interface {
	// BroadcastToAll sends to every session that completed the join handshake.
	BroadcastToAll(data []byte) error
	// BroadcastToOthers sends to every joined session except one.
	BroadcastToOthers(excludeSessionID string, data []byte) error
	// SendTo sends to a single session, joined or not.
	SendTo(sessionID string, data []byte) error
}

// SessionBroadcaster 基于会话管理器的广播器
type SessionBroadcaster struct {
	sessionManager *session.Manager
}

func NewSessionBroadcaster(sessionManager *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{sessionManager: sessionManager}
}

func (b *SessionBroadcaster) BroadcastToAll(data []byte) error {
	for _, s := range b.sessionManager.Joined() {
		if err := s.Send(data); err != nil {
			// 发送失败不致命，连接关闭时由读循环清理
			continue
		}
	}
	return nil
}

func (b *SessionBroadcaster) BroadcastToOthers(excludeSessionID string, data []byte) error {
	for _, s := range b.sessionManager.Joined() {
		if s.GetID() == excludeSessionID {
			continue
		}
		if err := s.Send(data); err != nil {
			continue
		}
	}
	return nil
}

func (b *SessionBroadcaster) SendTo(sessionID string, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return session.ErrSessionNotFound
	}
	return s.Send(data)
}
