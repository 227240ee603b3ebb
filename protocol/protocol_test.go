package protocol

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/wfunc/roomserver/models"
)

func TestDecodeClientMessage_Join(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"join","name":"alice","character":"blue","playerId":"p1"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	join, ok := msg.(*Join)
	if !ok {
		t.Fatalf("Expected *Join, got %T", msg)
	}
	if join.Name != "alice" || join.Character != "blue" || join.PlayerID != "p1" {
		t.Errorf("Unexpected join fields: %+v", join)
	}
}

func TestDecodeClientMessage_Input(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"input","keys":{"right":true,"w":true},"seq":42,"timestamp":1700000000000}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	input, ok := msg.(*Input)
	if !ok {
		t.Fatalf("Expected *Input, got %T", msg)
	}
	if !input.Keys.Right || !input.Keys.W || input.Keys.Left {
		t.Errorf("Unexpected key state: %+v", input.Keys)
	}
	if input.Seq != 42 {
		t.Errorf("Expected seq 42, got %d", input.Seq)
	}
}

func TestDecodeClientMessage_PlaceObjectOptionalFields(t *testing.T) {
	// Pixel form with an explicit size.
	msg, err := DecodeClientMessage([]byte(`{"type":"place_object","x":100.5,"y":200,"width":48,"imageSrc":"tree.png"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	place := msg.(*PlaceObject)
	if place.X == nil || *place.X != 100.5 {
		t.Errorf("Expected x=100.5, got %v", place.X)
	}
	if place.Col != nil || place.Row != nil {
		t.Error("Tile fields should be absent in the pixel form")
	}
	if place.Width == nil || *place.Width != 48 || place.Height != nil {
		t.Error("Only the provided dimension should be set")
	}

	// Tile form with everything else defaulted.
	msg, err = DecodeClientMessage([]byte(`{"type":"place_object","col":30,"row":40}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	place = msg.(*PlaceObject)
	if place.Col == nil || *place.Col != 30 || place.X != nil {
		t.Errorf("Expected the tile form, got %+v", place)
	}
}

func TestDecodeClientMessage_Colliders(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"place_collider","col":7,"row":6}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	place := msg.(*PlaceCollider)
	if place.Tile != (models.Tile{Col: 7, Row: 6}) {
		t.Errorf("Unexpected tile: %+v", place.Tile)
	}
}

func TestDecodeClientMessage_BareActions(t *testing.T) {
	cases := map[string]ClientMessage{
		`{"type":"hug"}`:            &Hug{},
		`{"type":"bench_sit"}`:      &BenchSit{},
		`{"type":"bench_stand"}`:    &BenchStand{},
		`{"type":"reset_position"}`: &ResetPosition{},
	}
	for raw, want := range cases {
		msg, err := DecodeClientMessage([]byte(raw))
		if err != nil {
			t.Errorf("Decode %s failed: %v", raw, err)
			continue
		}
		if gotT, wantT := typeName(msg), typeName(want); gotT != wantT {
			t.Errorf("Decode %s: expected %s, got %s", raw, wantT, gotT)
		}
	}
}

func typeName(msg ClientMessage) string {
	switch msg.(type) {
	case *Hug:
		return "hug"
	case *BenchSit:
		return "bench_sit"
	case *BenchStand:
		return "bench_stand"
	case *ResetPosition:
		return "reset_position"
	default:
		return "other"
	}
}

func TestDecodeClientMessage_Rejections(t *testing.T) {
	if _, err := DecodeClientMessage([]byte(`{"type":"teleport"}`)); err == nil {
		t.Error("Unknown message types must be rejected")
	}
	if _, err := DecodeClientMessage([]byte(`not json`)); err == nil {
		t.Error("Malformed JSON must be rejected")
	}
	if _, err := DecodeClientMessage([]byte(`{"type":"input","seq":"high"}`)); err == nil {
		t.Error("A payload mismatching its declared type must be rejected")
	}
}

func TestEncode_TagsEveryFrame(t *testing.T) {
	frames := []ServerMessage{
		NewWelcome("p1", models.GameState{}),
		NewStateUpdate(7, 1700000000000, models.GameState{}),
		NewPlayerJoined(models.PlayerState{ID: "p1"}),
		NewPlayerLeft("p1"),
		NewColliderPlaced(models.Tile{Col: 1, Row: 2}),
		NewColliderRemoved(models.Tile{Col: 1, Row: 2}),
		NewObjectPlaced(models.ObjectState{ID: "o1"}),
		NewObjectRemoved("o1"),
		NewHugStarted("p1", "p2"),
		NewHugEnded("p1"),
		NewError("boom"),
	}
	wantTags := []string{
		MsgWelcome, MsgStateUpdate, MsgPlayerJoined, MsgPlayerLeft,
		MsgColliderPlaced, MsgColliderRemoved, MsgObjectPlaced,
		MsgObjectRemoved, MsgHugStarted, MsgHugEnded, MsgError,
	}

	for i, frame := range frames {
		data, err := Encode(frame)
		if err != nil {
			t.Fatalf("Encode %T failed: %v", frame, err)
		}
		var env struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("Frame %T is not valid JSON: %v", frame, err)
		}
		if env.Type != wantTags[i] {
			t.Errorf("Frame %T should carry tag %q, got %q", frame, wantTags[i], env.Type)
		}
	}
}

func TestEncode_StateUpdateShape(t *testing.T) {
	gs := models.GameState{
		Players: []models.PlayerState{{ID: "p1", X: 328, Y: 176}},
	}
	data, err := Encode(NewStateUpdate(3, 1700000000000, gs))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	raw := string(data)
	for _, key := range []string{`"tick":3`, `"players"`, `"followers"`, `"objects"`, `"colliders"`} {
		if !strings.Contains(raw, key) {
			t.Errorf("state_update should contain %s, frame: %s", key, raw)
		}
	}
}
