package game

import (
	"fmt"
	"math/rand"

	"webrogue/internal/event"
	"webrogue/internal/generate"
	"webrogue/internal/world"
)

// Phase is the coordinator's current mode, on the wire verbatim.
type Phase string

const (
	PhasePlayer Phase = "player"
	PhaseAI     Phase = "ai"
)

// Events are retained for late joiners up to this many entries; connections
// further behind just miss the oldest lines.
const maxLogRetained = 200

// PlayerInfo is one roster row for the snapshot's players list.
type PlayerInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	IsAlive          bool   `json:"is_alive"`
	HasActedThisTurn bool   `json:"has_acted_this_turn"`
}

// Session is one running game shared by every connection. Not safe for
// concurrent use; the session manager serializes all access.
type Session struct {
	Store       *world.Store
	Phase       Phase
	CurrentTurn int

	gen   *generate.Config
	rng   *rand.Rand
	names map[string]string
	// roster preserves join order for the players listing.
	roster []string

	acted           map[string]bool
	stairsConfirms  map[string]bool
	restartConfirms map[string]bool
	// wipeRoster is non-nil while the all-dead overlay is active; it names
	// the players whose restart confirmations are required.
	wipeRoster map[string]bool

	log     []event.Event
	logBase int
}

// NewSession generates a level and wraps it in a fresh session with no
// players. rng drives combat, AI, and any regenerated levels.
func NewSession(gen *generate.Config, rng *rand.Rand) *Session {
	return &Session{
		Store:           generate.Level(gen),
		Phase:           PhasePlayer,
		gen:             gen,
		rng:             rng,
		names:           make(map[string]string),
		acted:           make(map[string]bool),
		stairsConfirms:  make(map[string]bool),
		restartConfirms: make(map[string]bool),
	}
}

// AddPlayer spawns an entity for the player and puts them on the roster.
// Joining mid-cycle means the phase now waits for them too.
func (s *Session) AddPlayer(id, name string) {
	s.Store.SpawnPlayer(id)
	s.names[id] = name
	s.roster = append(s.roster, id)
	s.appendEvents(event.System(fmt.Sprintf("%s joined the game", name)))
}

// RemovePlayer drops the player from the session entirely: entity, roster,
// pending gates and confirmations. A departed player must never be awaited,
// so the phase-advance condition and both handshakes are re-evaluated.
func (s *Session) RemovePlayer(id string) Result {
	name := s.names[id]
	if name == "" {
		name = id
	}
	s.Store.RemoveEntity(id)
	delete(s.names, id)
	delete(s.acted, id)
	delete(s.stairsConfirms, id)
	delete(s.restartConfirms, id)
	delete(s.wipeRoster, id)
	for i, rid := range s.roster {
		if rid == id {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			break
		}
	}
	s.appendEvents(event.System(fmt.Sprintf("%s left the game", name)))

	res := Result{Outcome: OutcomeOK, Mutated: true}
	if s.stairsHandshakeDone() {
		s.completeLevel(&res)
		return res
	}
	// When the last wiped player leaves, nobody is left to confirm; restart
	// so a joiner mid-overlay is not stranded.
	if s.restartHandshakeDone() || (s.wipeRoster != nil && len(s.wipeRoster) == 0) {
		s.completeRestart(&res)
		return res
	}
	s.maybeAdvancePhase()
	s.maybeBeginWipe()
	return res
}

// Players returns the roster rows for the snapshot, in join order.
func (s *Session) Players() []PlayerInfo {
	out := make([]PlayerInfo, 0, len(s.roster))
	for _, id := range s.roster {
		p := s.Store.PlayerByID(id)
		if p == nil {
			continue
		}
		out = append(out, PlayerInfo{
			ID:               id,
			Name:             s.names[id],
			IsAlive:          p.Alive(),
			HasActedThisTurn: s.acted[id],
		})
	}
	return out
}

// IsMyTurn reports whether the given player may act right now.
func (s *Session) IsMyTurn(id string) bool {
	p := s.Store.PlayerByID(id)
	return s.Phase == PhasePlayer && p != nil && p.Alive() && !s.acted[id]
}

// OnStairs reports whether the given player stands on the stairs tile.
func (s *Session) OnStairs(id string) bool {
	p := s.Store.PlayerByID(id)
	return p != nil && p.Alive() && s.Store.OnStairs(p.X, p.Y)
}

// ─── event log ────────────────────────────────────────────────────────────────

func (s *Session) appendEvents(evs ...event.Event) {
	s.log = append(s.log, evs...)
	if over := len(s.log) - maxLogRetained; over > 0 {
		s.logBase += over
		s.log = append(s.log[:0:0], s.log[over:]...)
	}
}

// LogLen returns the absolute length of the event log, including trimmed
// entries. Connections track this as their delta cursor.
func (s *Session) LogLen() int {
	return s.logBase + len(s.log)
}

// EventsSince returns the log entries at absolute index cursor and later.
func (s *Session) EventsSince(cursor int) []event.Event {
	i := cursor - s.logBase
	if i < 0 {
		i = 0
	}
	if i >= len(s.log) {
		return nil
	}
	out := make([]event.Event, len(s.log)-i)
	copy(out, s.log[i:])
	return out
}
