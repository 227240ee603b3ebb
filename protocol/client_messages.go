// protocol/client_messages.go
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/wfunc/roomserver/models"
)

// Client→server message type tags.
const (
	MsgJoin           = "join"
	MsgInput          = "input"
	MsgResetPosition  = "reset_position"
	MsgPlaceCollider  = "place_collider"
	MsgRemoveCollider = "remove_collider"
	MsgPlaceObject    = "place_object"
	MsgRemoveObject   = "remove_object"
	MsgHug            = "hug"
	MsgBenchSit       = "bench_sit"
	MsgBenchStand     = "bench_stand"
)

// ClientMessage is the closed set of inbound messages. Dispatch is an
// exhaustive type switch, so adding a message type is a compile-time change.
type ClientMessage interface {
	isClientMessage()
}

// KeyState 客户端按键状态
type KeyState struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
	W     bool `json:"w"`
	A     bool `json:"a"`
	S     bool `json:"s"`
	D     bool `json:"d"`
	E     bool `json:"e"`
}

type Join struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	PlayerID  string `json:"playerId,omitempty"`
}

type Input struct {
	Keys      KeyState `json:"keys"`
	Seq       uint64   `json:"seq"`
	Timestamp int64    `json:"timestamp"`
}

type ResetPosition struct{}

type PlaceCollider struct {
	models.Tile
}

type RemoveCollider struct {
	models.Tile
}

type PlaceObject struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Col      *int     `json:"col,omitempty"`
	Row      *int     `json:"row,omitempty"`
	ImageSrc string   `json:"imageSrc"`
	Text     string   `json:"text"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
}

type RemoveObject struct {
	ID  string   `json:"id,omitempty"`
	X   *float64 `json:"x,omitempty"`
	Y   *float64 `json:"y,omitempty"`
	Col *int     `json:"col,omitempty"`
	Row *int     `json:"row,omitempty"`
}

type Hug struct{}

type BenchSit struct{}

type BenchStand struct{}

func (*Join) isClientMessage()           {}
func (*Input) isClientMessage()          {}
func (*ResetPosition) isClientMessage()  {}
func (*PlaceCollider) isClientMessage()  {}
func (*RemoveCollider) isClientMessage() {}
func (*PlaceObject) isClientMessage()    {}
func (*RemoveObject) isClientMessage()   {}
func (*Hug) isClientMessage()            {}
func (*BenchSit) isClientMessage()       {}
func (*BenchStand) isClientMessage()     {}

type envelope struct {
	Type string `json:"type"`
}

// DecodeClientMessage parses one inbound JSON frame into its typed variant.
// Unknown types and malformed payloads are errors; the caller logs and drops.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}

	var msg ClientMessage
	switch env.Type {
	case MsgJoin:
		msg = &Join{}
	case MsgInput:
		msg = &Input{}
	case MsgResetPosition:
		msg = &ResetPosition{}
	case MsgPlaceCollider:
		msg = &PlaceCollider{}
	case MsgRemoveCollider:
		msg = &RemoveCollider{}
	case MsgPlaceObject:
		msg = &PlaceObject{}
	case MsgRemoveObject:
		msg = &RemoveObject{}
	case MsgHug:
		msg = &Hug{}
	case MsgBenchSit:
		msg = &BenchSit{}
	case MsgBenchStand:
		msg = &BenchStand{}
	default:
		return nil, fmt.Errorf("unknown message type %q", env.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("malformed %s message: %w", env.Type, err)
	}
	return msg, nil
}
