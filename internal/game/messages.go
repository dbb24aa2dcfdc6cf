package game

import (
	"encoding/json"
	"fmt"
)

// MessageType of a Message exchanged between a driver and a game session.
type MessageType string

const (
	// Commands, sent to the session.
	MsgTypeNew      MessageType = "new"       // Start a new game
	MsgTypeSelect   MessageType = "select"    // Toggle the selection of a card
	MsgTypeValidate MessageType = "validate"  // Check the 3 selected cards
	MsgTypeAddThree MessageType = "add_three" // Deal 3 more cards
	MsgTypeHint     MessageType = "hint"      // Reveal the next available SET
	MsgTypeShowSet  MessageType = "show_set"  // Show the first available SET
	MsgTypeState    MessageType = "state"     // Request a snapshot
	MsgTypeQuit     MessageType = "quit"      // End the session

	// Replies, sent by the session.
	MsgTypeSnapshot  MessageType = "snapshot"  // Full board state
	MsgTypeOutcome   MessageType = "outcome"   // Result of a validation
	MsgTypeSelection MessageType = "selection" // Result of a select
	MsgTypeAdded     MessageType = "added"     // Cards added by add_three
	MsgTypeSet       MessageType = "set"       // A SET revealed by hint or show_set
	MsgTypeGameOver  MessageType = "game_over" // No SETs left and the deck is empty
	MsgTypeError     MessageType = "error"     // Command was rejected
)

// Message is the envelope of every command and reply, one JSON object per line.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a new Message with a marshaled payload.
func NewMessage(msgType MessageType, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return Message{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into the type matching m.Type
// (e.g. *SelectMessage for MsgTypeSelect).
func (m *Message) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeNew:
		target = &NewGameMessage{}
	case MsgTypeSelect:
		target = &SelectMessage{}
	case MsgTypeValidate, MsgTypeAddThree, MsgTypeHint, MsgTypeShowSet, MsgTypeState, MsgTypeQuit:
		target = &EmptyMessage{}
	case MsgTypeSnapshot:
		target = &SnapshotMessage{}
	case MsgTypeOutcome:
		target = &OutcomeMessage{}
	case MsgTypeSelection:
		target = &SelectionMessage{}
	case MsgTypeAdded:
		target = &AddedMessage{}
	case MsgTypeSet:
		target = &SetMessage{}
	case MsgTypeGameOver:
		target = &GameOverMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %q", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// EmptyMessage is the payload of commands that take no arguments.
type EmptyMessage struct{}

// NewGameMessage is the payload for MsgTypeNew. Zero values keep the current setting.
type NewGameMessage struct {
	Seed uint64 `json:"seed,omitempty"` // 0 picks a random seed
	Mode string `json:"mode,omitempty"` // "solitaire" or "tutorial"
}

// SelectMessage is the payload for MsgTypeSelect.
type SelectMessage struct {
	Card Card `json:"card"`
}

// SnapshotMessage is the payload for MsgTypeSnapshot.
type SnapshotMessage struct {
	Mode     string   `json:"mode"`
	Seed     uint64   `json:"seed"`
	Snapshot Snapshot `json:"snapshot"`
}

// OutcomeMessage is the payload for MsgTypeOutcome.
type OutcomeMessage struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
	Set    []Card `json:"set,omitempty"`   // Cards removed, if valid
	Drawn  []Card `json:"drawn,omitempty"` // Cards dealt to replace them
}

// NewOutcomeMessage converts an Outcome to its message payload.
func NewOutcomeMessage(o Outcome) OutcomeMessage {
	msg := OutcomeMessage{Valid: o.Valid, Reason: string(o.Reason), Drawn: o.Drawn}
	if o.Valid {
		msg.Set = o.Set.Cards()
	}
	return msg
}

// SelectionMessage is the payload for MsgTypeSelection.
type SelectionMessage struct {
	Card     Card `json:"card"`
	Selected bool `json:"selected"` // Whether Card is selected after the command
	Count    int  `json:"count"`    // Number of selected cards
}

// AddedMessage is the payload for MsgTypeAdded.
type AddedMessage struct {
	Cards []Card `json:"cards"`
}

// SetMessage is the payload for MsgTypeSet.
type SetMessage struct {
	Cards []Card `json:"cards"`
	Index int    `json:"index"` // 1-based position among the available SETs
	Total int    `json:"total"` // Number of available SETs
}

// GameOverMessage is the payload for MsgTypeGameOver.
type GameOverMessage struct {
	SetsFound int `json:"sets_found"`
}

// ErrorMessage is the payload for MsgTypeError.
type ErrorMessage struct {
	Message string `json:"message"`
}
