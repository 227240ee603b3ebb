package broadcast

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/wfunc/roomserver/session"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent [][]byte
}

func (m *MockConnection) Send(data []byte) error {
	m.sent = append(m.sent, data)
	return nil
}
func (m *MockConnection) ReadFrame() ([]byte, error)          { return nil, nil }
func (m *MockConnection) Close() error                        { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration) {}

func setup() (*session.Manager, *SessionBroadcaster, map[string]*MockConnection) {
	manager := session.NewManager()
	b := NewSessionBroadcaster(manager)
	conns := make(map[string]*MockConnection)
	for _, id := range []string{"sess1", "sess2", "sess3"} {
		conn := &MockConnection{}
		conns[id] = conn
		manager.Add(session.NewSession(id, conn))
	}
	return manager, b, conns
}

func TestBroadcastToAll_JoinedOnly(t *testing.T) {
	manager, b, conns := setup()
	s1, _ := manager.Get("sess1")
	s2, _ := manager.Get("sess2")
	s1.Bind("p1")
	s2.Bind("p2")
	// sess3 never joins.

	if err := b.BroadcastToAll([]byte("frame")); err != nil {
		t.Fatalf("BroadcastToAll failed: %v", err)
	}

	if len(conns["sess1"].sent) != 1 || len(conns["sess2"].sent) != 1 {
		t.Error("Both joined sessions should receive the frame")
	}
	if len(conns["sess3"].sent) != 0 {
		t.Error("An unjoined session must not receive broadcasts")
	}
}

func TestBroadcastToOthers_ExcludesOne(t *testing.T) {
	manager, b, conns := setup()
	s1, _ := manager.Get("sess1")
	s2, _ := manager.Get("sess2")
	s1.Bind("p1")
	s2.Bind("p2")

	if err := b.BroadcastToOthers("sess1", []byte("frame")); err != nil {
		t.Fatalf("BroadcastToOthers failed: %v", err)
	}

	if len(conns["sess1"].sent) != 0 {
		t.Error("The excluded session must not receive the frame")
	}
	if len(conns["sess2"].sent) != 1 {
		t.Error("The other joined session should receive the frame")
	}
}

func TestSendTo_ReachesUnjoinedSession(t *testing.T) {
	_, b, conns := setup()

	// The welcome frame goes out before the session is bound.
	if err := b.SendTo("sess3", []byte("welcome")); err != nil {
		t.Fatalf("SendTo failed: %v", err)
	}
	if len(conns["sess3"].sent) != 1 {
		t.Error("SendTo should reach the session regardless of join state")
	}
}

func TestSendTo_UnknownSession(t *testing.T) {
	_, b, _ := setup()

	if err := b.SendTo("nope", []byte("frame")); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}
