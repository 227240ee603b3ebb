// protocol/server_messages.go
package protocol

import (
	"encoding/json"

	"github.com/wfunc/roomserver/models"
)

// Server→client message type tags.
const (
	MsgWelcome         = "welcome"
	MsgStateUpdate     = "state_update"
	MsgPlayerJoined    = "player_joined"
	MsgPlayerLeft      = "player_left"
	MsgColliderPlaced  = "collider_placed"
	MsgColliderRemoved = "collider_removed"
	MsgObjectPlaced    = "object_placed"
	MsgObjectRemoved   = "object_removed"
	MsgHugStarted      = "hug_started"
	MsgHugEnded        = "hug_ended"
	MsgError           = "error"
)

// ServerMessage is the closed set of outbound messages.
type ServerMessage interface {
	isServerMessage()
}

type Welcome struct {
	Type      string           `json:"type"`
	PlayerID  string           `json:"playerId"`
	GameState models.GameState `json:"gameState"`
}

type StateUpdate struct {
	Type      string                 `json:"type"`
	Tick      uint64                 `json:"tick"`
	Timestamp int64                  `json:"timestamp"`
	Players   []models.PlayerState   `json:"players"`
	Followers []models.FollowerState `json:"followers"`
	Objects   []models.ObjectState   `json:"objects"`
	Colliders []models.Tile          `json:"colliders"`
}

type PlayerJoined struct {
	Type   string             `json:"type"`
	Player models.PlayerState `json:"player"`
}

type PlayerLeft struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type ColliderPlaced struct {
	Type     string      `json:"type"`
	Collider models.Tile `json:"collider"`
}

type ColliderRemoved struct {
	Type     string      `json:"type"`
	Collider models.Tile `json:"collider"`
}

type ObjectPlaced struct {
	Type   string             `json:"type"`
	Object models.ObjectState `json:"object"`
}

type ObjectRemoved struct {
	Type     string `json:"type"`
	ObjectID string `json:"objectId"`
}

type HugStarted struct {
	Type      string `json:"type"`
	PlayerID1 string `json:"playerId1"`
	PlayerID2 string `json:"playerId2"`
}

type HugEnded struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type Error struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (*Welcome) isServerMessage()         {}
func (*StateUpdate) isServerMessage()     {}
func (*PlayerJoined) isServerMessage()    {}
func (*PlayerLeft) isServerMessage()      {}
func (*ColliderPlaced) isServerMessage()  {}
func (*ColliderRemoved) isServerMessage() {}
func (*ObjectPlaced) isServerMessage()    {}
func (*ObjectRemoved) isServerMessage()   {}
func (*HugStarted) isServerMessage()      {}
func (*HugEnded) isServerMessage()        {}
func (*Error) isServerMessage()           {}

// Constructors fill in the type tag so callers cannot send an untagged frame.

func NewWelcome(playerID string, gs models.GameState) *Welcome {
	return &Welcome{Type: MsgWelcome, PlayerID: playerID, GameState: gs}
}

func NewStateUpdate(tick uint64, ts int64, gs models.GameState) *StateUpdate {
	return &StateUpdate{
		Type:      MsgStateUpdate,
		Tick:      tick,
		Timestamp: ts,
		Players:   gs.Players,
		Followers: gs.Followers,
		Objects:   gs.Objects,
		Colliders: gs.Colliders,
	}
}

func NewPlayerJoined(p models.PlayerState) *PlayerJoined {
	return &PlayerJoined{Type: MsgPlayerJoined, Player: p}
}

func NewPlayerLeft(playerID string) *PlayerLeft {
	return &PlayerLeft{Type: MsgPlayerLeft, PlayerID: playerID}
}

func NewColliderPlaced(t models.Tile) *ColliderPlaced {
	return &ColliderPlaced{Type: MsgColliderPlaced, Collider: t}
}

func NewColliderRemoved(t models.Tile) *ColliderRemoved {
	return &ColliderRemoved{Type: MsgColliderRemoved, Collider: t}
}

func NewObjectPlaced(o models.ObjectState) *ObjectPlaced {
	return &ObjectPlaced{Type: MsgObjectPlaced, Object: o}
}

func NewObjectRemoved(objectID string) *ObjectRemoved {
	return &ObjectRemoved{Type: MsgObjectRemoved, ObjectID: objectID}
}

func NewHugStarted(id1, id2 string) *HugStarted {
	return &HugStarted{Type: MsgHugStarted, PlayerID1: id1, PlayerID2: id2}
}

func NewHugEnded(playerID string) *HugEnded {
	return &HugEnded{Type: MsgHugEnded, PlayerID: playerID}
}

func NewError(text string) *Error {
	return &Error{Type: MsgError, Error: text}
}

// Encode serializes an outbound message to a JSON frame.
func Encode(msg ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}
