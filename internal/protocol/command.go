// Package protocol owns the wire format: inbound command parsing into the
// closed action variant, and outbound snapshot documents.
package protocol

import (
	"encoding/json"

	"webrogue/internal/game"
)

// Command is the raw inbound message shape. The confirmation fields are
// pointers so an absent field and an explicit false stay distinct.
type Command struct {
	Action         string `json:"action"`
	ConfirmStairs  *bool  `json:"confirm_stairs"`
	ConfirmRestart *bool  `json:"confirm_restart"`
}

// ParseCommand decodes one client message into an action. A JSON failure is
// the only error path; unrecognized action strings parse into the invalid
// action, which the session rejects silently. Confirmation flags take
// precedence over the action string, restart before stairs.
func ParseCommand(data []byte) (game.Action, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return game.Action{}, err
	}
	if cmd.ConfirmRestart != nil && *cmd.ConfirmRestart {
		return game.Action{Kind: game.ActionConfirmRestart}, nil
	}
	if cmd.ConfirmStairs != nil && *cmd.ConfirmStairs {
		return game.Action{Kind: game.ActionConfirmStairs}, nil
	}
	switch cmd.Action {
	case "move_up":
		return game.Move(0, -1), nil
	case "move_down":
		return game.Move(0, 1), nil
	case "move_left":
		return game.Move(-1, 0), nil
	case "move_right":
		return game.Move(1, 0), nil
	case "ping":
		return game.Action{Kind: game.ActionPing}, nil
	}
	return game.Action{}, nil
}

// Welcome is the out-of-band identity document a connection receives once,
// at registration. Identity never rides the shared broadcast.
type Welcome struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

// NewWelcome builds the welcome document for a player id.
func NewWelcome(playerID string) Welcome {
	return Welcome{Type: "welcome", PlayerID: playerID}
}
