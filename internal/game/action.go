// Package game owns the running session: the level store, the turn phase
// machine, the action validator, and the confirmation handshakes. A Session
// is single-writer; the server funnels every mutation through one goroutine.
package game

// ActionKind discriminates the closed set of things a client can ask for.
type ActionKind int

const (
	ActionInvalid ActionKind = iota
	ActionMove
	ActionConfirmStairs
	ActionConfirmRestart
	ActionPing
)

// Action is one parsed client intent. DX/DY are only meaningful for moves.
type Action struct {
	Kind   ActionKind
	DX, DY int
}

// Move builds a movement action with a unit delta.
func Move(dx, dy int) Action { return Action{Kind: ActionMove, DX: dx, DY: dy} }

// Outcome classifies how a submission was handled. Rejections are values,
// not errors: the client sees silence, the server may log.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalidAction
	OutcomeOutOfTurn
	OutcomeBlocked
	OutcomeOutOfBounds
	OutcomeUnknownPlayer
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeInvalidAction:
		return "invalid_action"
	case OutcomeOutOfTurn:
		return "out_of_turn"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeOutOfBounds:
		return "out_of_bounds"
	case OutcomeUnknownPlayer:
		return "unknown_player"
	case OutcomeMalformed:
		return "malformed"
	}
	return "unknown"
}

// Result reports what one submission did. Mutated decides whether a
// broadcast goes out; the two handshake flags ride along on that broadcast.
type Result struct {
	Outcome          Outcome
	Mutated          bool
	LevelComplete    bool
	RestartConfirmed bool
}
