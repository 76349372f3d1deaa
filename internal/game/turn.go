package game

import (
	"webrogue/internal/ai"
	"webrogue/internal/event"
	"webrogue/internal/generate"
)

// HandleAction is the single entry point for client intents. It validates
// against the current phase and gating state, applies the mutation, runs the
// phase machine, and reports whether anything changed.
func (s *Session) HandleAction(playerID string, a Action) Result {
	if s.names[playerID] == "" {
		return Result{Outcome: OutcomeUnknownPlayer}
	}

	switch a.Kind {
	case ActionPing:
		// A resync request; never mutates.
		return Result{Outcome: OutcomeOK}
	case ActionConfirmRestart:
		return s.confirmRestart(playerID)
	case ActionConfirmStairs:
		return s.confirmStairs(playerID)
	case ActionMove:
		return s.handleMove(playerID, a)
	}
	return Result{Outcome: OutcomeInvalidAction}
}

func (s *Session) handleMove(playerID string, a Action) Result {
	// The all-dead overlay suppresses movement; only restart confirmations
	// get through.
	if s.wipeRoster != nil {
		return Result{Outcome: OutcomeOutOfTurn}
	}
	if s.Phase != PhasePlayer {
		return Result{Outcome: OutcomeOutOfTurn}
	}
	p := s.Store.PlayerByID(playerID)
	if p == nil {
		return Result{Outcome: OutcomeUnknownPlayer}
	}
	if !p.Alive() || s.acted[playerID] {
		return Result{Outcome: OutcomeOutOfTurn}
	}

	res := s.applyMove(p, a.DX, a.DY)
	if res.Outcome != OutcomeOK {
		// Blocked and out-of-bounds moves are free retries: no has-acted,
		// no phase work, no broadcast.
		return res
	}

	s.acted[playerID] = true
	s.maybeAdvancePhase()
	s.maybeBeginWipe()
	return res
}

// ─── phase machine ────────────────────────────────────────────────────────────

// maybeAdvancePhase flips to the AI phase once every living player has
// acted, resolves every monster synchronously, and flips straight back. No
// client ever observes PhaseAI in a settled snapshot.
func (s *Session) maybeAdvancePhase() {
	alive := s.Store.AlivePlayers()
	if len(alive) == 0 {
		return
	}
	for _, p := range alive {
		if !s.acted[p.ID] {
			return
		}
	}

	s.Phase = PhaseAI
	if !s.Store.AllPlayersDead() {
		s.appendEvents(ai.ProcessTurns(s.rng, s.Store)...)
	}
	s.Phase = PhasePlayer
	s.acted = make(map[string]bool)
	s.CurrentTurn++
}

// maybeBeginWipe arms the all-dead overlay the moment the last player falls.
// The roster captured here is the set whose restart confirmations are
// required; later disconnects shrink it.
func (s *Session) maybeBeginWipe() {
	if s.wipeRoster != nil || !s.Store.AllPlayersDead() {
		return
	}
	s.wipeRoster = make(map[string]bool)
	for _, p := range s.Store.Players() {
		s.wipeRoster[p.ID] = true
	}
	s.appendEvents(event.LevelEvent("All players died! Confirm restart to try again."))
}

// ─── confirmation handshakes ──────────────────────────────────────────────────

func (s *Session) confirmStairs(playerID string) Result {
	if s.wipeRoster != nil {
		return Result{Outcome: OutcomeOutOfTurn}
	}
	p := s.Store.PlayerByID(playerID)
	if p == nil || !p.Alive() {
		return Result{Outcome: OutcomeOutOfTurn}
	}
	s.stairsConfirms[playerID] = true
	res := Result{Outcome: OutcomeOK, Mutated: true}
	if s.stairsHandshakeDone() {
		s.completeLevel(&res)
	}
	return res
}

func (s *Session) confirmRestart(playerID string) Result {
	s.restartConfirms[playerID] = true
	res := Result{Outcome: OutcomeOK, Mutated: true}
	if s.restartHandshakeDone() {
		s.completeRestart(&res)
	}
	return res
}

// stairsHandshakeDone reports whether every living player has confirmed the
// stairs. An empty roster never completes.
func (s *Session) stairsHandshakeDone() bool {
	alive := s.Store.AlivePlayers()
	if len(alive) == 0 {
		return false
	}
	for _, p := range alive {
		if !s.stairsConfirms[p.ID] {
			return false
		}
	}
	return true
}

// restartHandshakeDone reports whether the restart handshake is satisfied:
// everyone in the wipe roster when the overlay is armed, everyone on the
// roster for a voluntary restart.
func (s *Session) restartHandshakeDone() bool {
	required := s.wipeRoster
	if required == nil {
		if len(s.roster) == 0 {
			return false
		}
		required = make(map[string]bool, len(s.roster))
		for _, id := range s.roster {
			required[id] = true
		}
	}
	if len(required) == 0 {
		return false
	}
	for id := range required {
		if !s.restartConfirms[id] {
			return false
		}
	}
	return true
}

func (s *Session) completeLevel(res *Result) {
	s.appendEvents(event.LevelEvent("Level complete! All players confirmed. Preparing next level..."))
	s.regenerate()
	res.LevelComplete = true
}

func (s *Session) completeRestart(res *Result) {
	s.appendEvents(event.LevelEvent("Level restarted!"))
	s.regenerate()
	res.RestartConfirmed = true
}

// regenerate replaces the level wholesale: new map, monsters, chests, fresh
// player entities at full health, counters back to zero. The event log runs
// on so connection delta cursors stay valid.
func (s *Session) regenerate() {
	s.Store = generate.Level(s.gen)
	for _, id := range s.roster {
		s.Store.SpawnPlayer(id)
	}
	s.Phase = PhasePlayer
	s.CurrentTurn = 0
	s.acted = make(map[string]bool)
	s.stairsConfirms = make(map[string]bool)
	s.restartConfirms = make(map[string]bool)
	s.wipeRoster = nil
}
