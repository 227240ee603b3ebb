package session

import (
	"net"
	"testing"
	"time"
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

func TestSession_BindAndJoined(t *testing.T) {
	s := NewSession("sess1", &MockConnection{})

	if s.Joined() {
		t.Error("A fresh session has not joined")
	}
	if s.GetPlayerID() != "" {
		t.Errorf("Expected empty player ID, got %q", s.GetPlayerID())
	}

	s.Bind("p1")
	if !s.Joined() {
		t.Error("Session should report joined after Bind")
	}
	if s.GetPlayerID() != "p1" {
		t.Errorf("Expected player ID p1, got %q", s.GetPlayerID())
	}
}

func TestSession_SendGoesToConnection(t *testing.T) {
	conn := &MockConnection{}
	s := NewSession("sess1", conn)

	if err := s.Send([]byte("hello")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(conn.sent) != 1 || string(conn.sent[0]) != "hello" {
		t.Errorf("Expected the frame on the connection, got %v", conn.sent)
	}
}

func TestManager_AddGetRemove(t *testing.T) {
	m := NewManager()
	s := NewSession("sess1", &MockConnection{})

	m.Add(s)
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}

	got, exists := m.Get("sess1")
	if !exists || got != s {
		t.Error("Get should return the added session")
	}

	m.Remove("sess1")
	if _, exists := m.Get("sess1"); exists {
		t.Error("Removed session should be gone")
	}
	if m.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", m.Count())
	}
}

func TestManager_GetByPlayerID(t *testing.T) {
	m := NewManager()
	s1 := NewSession("sess1", &MockConnection{})
	s2 := NewSession("sess2", &MockConnection{})
	m.Add(s1)
	m.Add(s2)
	s2.Bind("p2")

	got, exists := m.GetByPlayerID("p2")
	if !exists || got != s2 {
		t.Error("GetByPlayerID should find the bound session")
	}
	if _, exists := m.GetByPlayerID("p1"); exists {
		t.Error("An unbound player ID should not resolve")
	}
}

func TestManager_JoinedFiltersHandshake(t *testing.T) {
	m := NewManager()
	s1 := NewSession("sess1", &MockConnection{})
	s2 := NewSession("sess2", &MockConnection{})
	m.Add(s1)
	m.Add(s2)
	s1.Bind("p1")

	joined := m.Joined()
	if len(joined) != 1 || joined[0] != s1 {
		t.Errorf("Only the bound session is joined, got %d", len(joined))
	}
}
