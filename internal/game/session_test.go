package game

import (
	"math/rand"
	"testing"

	"webrogue/internal/catalog"
	"webrogue/internal/event"
	"webrogue/internal/gamemap"
	"webrogue/internal/generate"
	"webrogue/internal/world"
)

// newTestSession builds a session over a hand-made open arena so positions
// are exact. Regeneration (stairs/restart) falls back to a small generated
// level via gen.
func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	reg := catalog.NewRegistry(catalog.DefaultConfig().GameObjects)
	rng := rand.New(rand.NewSource(seed))

	m := gamemap.New(16, 16, gamemap.MakeWall("wall_dirt_top", 0, 0))
	for y := 1; y < 15; y++ {
		for x := 1; x < 15; x++ {
			m.Set(x, y, gamemap.MakeFloor("floor_stone", 1, 6))
		}
	}

	gen := generate.DefaultConfig(reg, rng)
	gen.MapWidth, gen.MapHeight = 24, 18
	gen.MinRooms, gen.MaxRooms = 2, 3

	return &Session{
		Store:           world.NewStore(m, reg),
		Phase:           PhasePlayer,
		gen:             gen,
		rng:             rng,
		names:           make(map[string]string),
		acted:           make(map[string]bool),
		stairsConfirms:  make(map[string]bool),
		restartConfirms: make(map[string]bool),
	}
}

func place(t *testing.T, s *Session, id string, x, y int) *world.Entity {
	t.Helper()
	p := s.Store.PlayerByID(id)
	if p == nil {
		t.Fatalf("no player %q", id)
	}
	p.X, p.Y = x, y
	return p
}

func addMonster(s *Session, id string, x, y int) *world.Entity {
	e := world.NewEntity(id, x, y, s.Store.Catalog.Get("orc"), world.ControllerAI)
	s.Store.Entities = append(s.Store.Entities, e)
	return e
}

func TestTurnGating(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")
	place(t, s, "player_0", 5, 5)
	place(t, s, "player_1", 10, 10)

	if res := s.HandleAction("player_0", Move(0, -1)); res.Outcome != OutcomeOK || !res.Mutated {
		t.Fatalf("first move: %+v", res)
	}
	res := s.HandleAction("player_0", Move(0, -1))
	if res.Outcome != OutcomeOutOfTurn || res.Mutated {
		t.Fatalf("second move in same cycle: %+v, want out-of-turn and no mutation", res)
	}
	if p := s.Store.PlayerByID("player_0"); p.Y != 4 {
		t.Errorf("player_0 at y=%d after rejected repeat, want 4", p.Y)
	}
}

func TestPhaseAdvanceAndTurnCounter(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")
	place(t, s, "player_0", 5, 5)
	place(t, s, "player_1", 10, 10)

	if s.CurrentTurn != 0 {
		t.Fatalf("fresh session current_turn = %d, want 0", s.CurrentTurn)
	}

	s.HandleAction("player_0", Move(0, -1))
	if s.CurrentTurn != 0 || s.Phase != PhasePlayer {
		t.Fatalf("phase advanced after one of two players acted")
	}
	s.HandleAction("player_1", Move(0, 1))
	if s.CurrentTurn != 1 {
		t.Errorf("current_turn = %d after full cycle, want 1", s.CurrentTurn)
	}
	if s.Phase != PhasePlayer {
		t.Errorf("settled phase = %q, want player", s.Phase)
	}
	for _, info := range s.Players() {
		if info.HasActedThisTurn {
			t.Errorf("%s still marked acted after cycle reset", info.ID)
		}
	}
	// Both may act again in the new cycle.
	if res := s.HandleAction("player_0", Move(1, 0)); res.Outcome != OutcomeOK {
		t.Errorf("move in new cycle rejected: %+v", res)
	}
}

func TestWallCollisionIsFreeRetry(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	p := place(t, s, "player_0", 1, 1)

	res := s.HandleAction("player_0", Move(-1, 0))
	if res.Outcome != OutcomeBlocked || res.Mutated {
		t.Fatalf("wall bump: %+v, want blocked and no mutation", res)
	}
	if p.X != 1 || p.Y != 1 {
		t.Errorf("position moved to (%d,%d) on blocked move", p.X, p.Y)
	}
	if s.acted["player_0"] {
		t.Error("blocked move consumed the turn")
	}
	if s.CurrentTurn != 0 {
		t.Error("blocked move advanced the phase")
	}
	// The retry is free: a legal move afterwards still works this cycle.
	if res := s.HandleAction("player_0", Move(1, 0)); res.Outcome != OutcomeOK {
		t.Errorf("retry after block rejected: %+v", res)
	}
}

func TestOutOfBoundsMove(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	p := place(t, s, "player_0", 0, 0)
	// Force the corner even though it is a wall tile; only bounds matter here.
	res := s.HandleAction("player_0", Move(-1, 0))
	if res.Outcome != OutcomeOutOfBounds || res.Mutated {
		t.Fatalf("edge move: %+v, want out-of-bounds", res)
	}
	if p.X != 0 || p.Y != 0 {
		t.Error("position changed on out-of-bounds move")
	}
}

func TestMoveIntoMonsterAttacks(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	p := place(t, s, "player_0", 5, 5)
	orc := addMonster(s, "monster_0", 6, 5)

	before := s.LogLen()
	res := s.HandleAction("player_0", Move(1, 0))
	if res.Outcome != OutcomeOK || !res.Mutated {
		t.Fatalf("attack move: %+v", res)
	}
	if p.X != 5 || p.Y != 5 {
		t.Error("attacker moved onto the target tile")
	}
	if orc.CurrentHealth >= orc.MaxHealth {
		t.Error("target took no damage")
	}
	events := s.EventsSince(before)
	found := false
	for _, e := range events {
		if e.MessageType == "combat" {
			found = true
		}
	}
	if !found {
		t.Error("no combat event appended")
	}
}

// TestTwoPlayerScenario walks the end-to-end cycle: a plain move, then an
// attack that completes the cycle and triggers the monster resolution pass.
func TestTwoPlayerScenario(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")
	a := place(t, s, "player_0", 5, 5)
	b := place(t, s, "player_1", 10, 10)
	addMonster(s, "monster_0", 10, 11)

	res := s.HandleAction("player_0", Move(0, -1))
	if res.Outcome != OutcomeOK || a.X != 5 || a.Y != 4 {
		t.Fatalf("A's move: %+v at (%d,%d)", res, a.X, a.Y)
	}
	if s.Phase != PhasePlayer || s.CurrentTurn != 0 {
		t.Fatal("phase flipped before all players acted")
	}

	cursor := s.LogLen()
	res = s.HandleAction("player_1", Move(0, 1))
	if res.Outcome != OutcomeOK {
		t.Fatalf("B's attack move: %+v", res)
	}
	if b.X != 10 || b.Y != 10 {
		t.Error("B moved onto the monster tile")
	}
	if s.CurrentTurn != 1 || s.Phase != PhasePlayer {
		t.Errorf("after full cycle: turn=%d phase=%q", s.CurrentTurn, s.Phase)
	}
	// The one settled delta carries B's combat event and any monster events.
	events := s.EventsSince(cursor)
	if len(events) == 0 || events[0].MessageType != "combat" {
		t.Fatalf("delta does not start with B's combat event: %+v", events)
	}
}

func TestWipeSuppressesMovementAndRestarts(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")
	place(t, s, "player_0", 5, 5)
	place(t, s, "player_1", 10, 10)

	for _, p := range s.Store.Players() {
		p.CurrentHealth = 0
	}
	s.maybeBeginWipe()
	if s.wipeRoster == nil {
		t.Fatal("wipe overlay not armed")
	}

	if res := s.HandleAction("player_0", Move(0, 1)); res.Outcome != OutcomeOutOfTurn {
		t.Errorf("movement during wipe: %+v, want out-of-turn", res)
	}
	if res := s.HandleAction("player_0", Action{Kind: ActionConfirmStairs}); res.Outcome != OutcomeOutOfTurn {
		t.Errorf("stairs confirm during wipe: %+v, want out-of-turn", res)
	}

	res := s.HandleAction("player_0", Action{Kind: ActionConfirmRestart})
	if res.RestartConfirmed || !res.Mutated {
		t.Fatalf("first confirm: %+v, want recorded but not complete", res)
	}
	oldStore := s.Store
	res = s.HandleAction("player_1", Action{Kind: ActionConfirmRestart})
	if !res.RestartConfirmed {
		t.Fatalf("second confirm: %+v, want restart", res)
	}
	if s.Store == oldStore {
		t.Error("store was not replaced on restart")
	}
	if s.CurrentTurn != 0 || s.Phase != PhasePlayer {
		t.Errorf("restarted session: turn=%d phase=%q", s.CurrentTurn, s.Phase)
	}
	for _, p := range s.Store.Players() {
		if !p.Alive() || p.CurrentHealth != p.MaxHealth {
			t.Errorf("player %s not at fresh health after restart", p.ID)
		}
	}
	if s.wipeRoster != nil {
		t.Error("wipe overlay survived the restart")
	}
}

func TestStairsHandshake(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")

	res := s.HandleAction("player_0", Action{Kind: ActionConfirmStairs})
	if res.LevelComplete || !res.Mutated {
		t.Fatalf("first stairs confirm: %+v", res)
	}
	oldStore := s.Store
	res = s.HandleAction("player_1", Action{Kind: ActionConfirmStairs})
	if !res.LevelComplete {
		t.Fatalf("second stairs confirm: %+v, want level complete", res)
	}
	if s.Store == oldStore {
		t.Error("store not replaced for the next level")
	}
	if len(s.Store.AlivePlayers()) != 2 {
		t.Errorf("%d players respawned on the next level, want 2", len(s.Store.AlivePlayers()))
	}
	if s.CurrentTurn != 0 {
		t.Errorf("next level current_turn = %d, want 0", s.CurrentTurn)
	}
}

func TestDisconnectUnblocksPhase(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")
	place(t, s, "player_0", 5, 5)
	place(t, s, "player_1", 10, 10)

	s.HandleAction("player_0", Move(0, -1))
	if s.CurrentTurn != 0 {
		t.Fatal("premature advance")
	}
	res := s.RemovePlayer("player_1")
	if !res.Mutated {
		t.Fatal("disconnect should mutate and broadcast")
	}
	if s.CurrentTurn != 1 {
		t.Errorf("current_turn = %d after last blocker left, want 1", s.CurrentTurn)
	}
}

func TestDisconnectCompletesStairsHandshake(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")

	s.HandleAction("player_0", Action{Kind: ActionConfirmStairs})
	res := s.RemovePlayer("player_1")
	if !res.LevelComplete {
		t.Errorf("handshake did not complete when the holdout left: %+v", res)
	}
}

func TestUnknownPlayerRejected(t *testing.T) {
	s := newTestSession(t, 1)
	res := s.HandleAction("ghost", Move(0, 1))
	if res.Outcome != OutcomeUnknownPlayer || res.Mutated {
		t.Fatalf("ghost action: %+v", res)
	}
}

func TestPingAndInvalidDoNotMutate(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")

	if res := s.HandleAction("player_0", Action{Kind: ActionPing}); res.Outcome != OutcomeOK || res.Mutated {
		t.Errorf("ping: %+v, want ok and no mutation", res)
	}
	if res := s.HandleAction("player_0", Action{}); res.Outcome != OutcomeInvalidAction || res.Mutated {
		t.Errorf("invalid action: %+v", res)
	}
	if s.acted["player_0"] {
		t.Error("non-action consumed the turn")
	}
}

func TestChestBumpOpensAndConsumesTurn(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	p := place(t, s, "player_0", 5, 5)
	s.Store.Chests = append(s.Store.Chests, &world.Chest{ID: "chest_0", X: 6, Y: 5, ObjectID: "chest", OpenObjectID: "chest_open"})

	res := s.HandleAction("player_0", Move(1, 0))
	if res.Outcome != OutcomeOK || !res.Mutated {
		t.Fatalf("chest bump: %+v", res)
	}
	if p.X != 5 {
		t.Error("player moved while opening the chest")
	}
	if !s.Store.Chests[0].IsOpen {
		t.Error("chest still closed")
	}
	if s.Store.ConsumableAt(6, 5) < 0 {
		t.Error("opened chest spawned nothing")
	}
}

func TestConsumablePickupHeals(t *testing.T) {
	s := newTestSession(t, 1)
	s.AddPlayer("player_0", "Player 0")
	p := place(t, s, "player_0", 5, 5)
	p.CurrentHealth = 50
	s.Store.SpawnConsumable(6, 5, "health_potion")

	res := s.HandleAction("player_0", Move(1, 0))
	if res.Outcome != OutcomeOK {
		t.Fatalf("pickup move: %+v", res)
	}
	if p.CurrentHealth != 70 {
		t.Errorf("health after potion = %d, want 70", p.CurrentHealth)
	}
	if s.Store.ConsumableAt(6, 5) >= 0 {
		t.Error("consumable not removed after pickup")
	}
}

func TestEventLogDelta(t *testing.T) {
	s := newTestSession(t, 1)
	cursor := s.LogLen()
	s.AddPlayer("player_0", "Player 0")

	events := s.EventsSince(cursor)
	if len(events) != 1 || events[0].MessageType != "system" {
		t.Fatalf("join delta = %+v, want one system event", events)
	}
	if got := s.EventsSince(s.LogLen()); got != nil {
		t.Errorf("caught-up cursor returned %+v", got)
	}

	// The log trims from the front but absolute cursors stay valid.
	for i := 0; i < maxLogRetained+50; i++ {
		s.appendEvents(event.System("tick"))
	}
	if s.LogLen() != cursor+1+maxLogRetained+50 {
		t.Errorf("absolute log length %d drifted", s.LogLen())
	}
	if got := s.EventsSince(0); len(got) != maxLogRetained {
		t.Errorf("retained %d events, want %d", len(got), maxLogRetained)
	}
}
