package protocol

import (
	"encoding/json"
	"math/rand"
	"testing"

	"webrogue/internal/catalog"
	"webrogue/internal/game"
	"webrogue/internal/generate"
)

func TestParseCommandActions(t *testing.T) {
	cases := []struct {
		in   string
		want game.Action
	}{
		{`{"action":"move_up"}`, game.Move(0, -1)},
		{`{"action":"move_down"}`, game.Move(0, 1)},
		{`{"action":"move_left"}`, game.Move(-1, 0)},
		{`{"action":"move_right"}`, game.Move(1, 0)},
		{`{"action":"ping"}`, game.Action{Kind: game.ActionPing}},
		{`{"action":"teleport"}`, game.Action{}},
		{`{"action":""}`, game.Action{}},
		{`{"action":"move_up","confirm_stairs":true}`, game.Action{Kind: game.ActionConfirmStairs}},
		{`{"confirm_restart":true}`, game.Action{Kind: game.ActionConfirmRestart}},
		{`{"confirm_stairs":true,"confirm_restart":true}`, game.Action{Kind: game.ActionConfirmRestart}},
		{`{"action":"move_up","confirm_stairs":false}`, game.Move(0, -1)},
	}
	for _, c := range cases {
		got, err := ParseCommand([]byte(c.in))
		if err != nil {
			t.Errorf("ParseCommand(%s): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseCommand(%s) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseCommandMalformed(t *testing.T) {
	if _, err := ParseCommand([]byte(`{"action":`)); err == nil {
		t.Fatal("truncated JSON accepted")
	}
}

func TestWelcomeDocument(t *testing.T) {
	data, err := json.Marshal(NewWelcome("player_3"))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["type"] != "welcome" || doc["player_id"] != "player_3" {
		t.Errorf("welcome = %v", doc)
	}
}

func newSnapshotSession(t *testing.T) *game.Session {
	t.Helper()
	reg := catalog.NewRegistry(catalog.DefaultConfig().GameObjects)
	rng := rand.New(rand.NewSource(4))
	gen := generate.DefaultConfig(reg, rng)
	gen.MapWidth, gen.MapHeight = 30, 20
	gen.MinRooms, gen.MaxRooms = 3, 4
	s := game.NewSession(gen, rng)
	s.AddPlayer("player_0", "Player 0")
	s.AddPlayer("player_1", "Player 1")
	return s
}

func TestSnapshotPersonalization(t *testing.T) {
	s := newSnapshotSession(t)
	snap := BuildSnapshot(s, game.Result{Outcome: game.OutcomeOK, Mutated: true})

	for _, id := range []string{"player_0", "player_1"} {
		data, err := snap.For(id, 0)
		if err != nil {
			t.Fatalf("For(%s): %v", id, err)
		}
		var u Update
		if err := json.Unmarshal(data, &u); err != nil {
			t.Fatalf("unmarshal %s: %v", id, err)
		}
		if u.CurrentPlayerID != id {
			t.Errorf("current_player_id = %q for %s's payload", u.CurrentPlayerID, id)
		}
		if !u.IsMyTurn {
			t.Errorf("%s should have the turn in a fresh session", id)
		}
		if u.TurnPhase != "player" || u.CurrentTurn != 0 {
			t.Errorf("phase=%q turn=%d, want player/0", u.TurnPhase, u.CurrentTurn)
		}
		if u.Width != 30 || u.Height != 20 || len(u.Map) != 20 {
			t.Errorf("map dims %dx%d/%d rows", u.Width, u.Height, len(u.Map))
		}
		if len(u.Players) != 2 {
			t.Errorf("players roster has %d rows, want 2", len(u.Players))
		}
	}
}

func TestSnapshotEventDelta(t *testing.T) {
	s := newSnapshotSession(t)
	snap := BuildSnapshot(s, game.Result{})

	data, err := snap.For("player_0", 0)
	if err != nil {
		t.Fatal(err)
	}
	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatal(err)
	}
	// Two join events so far.
	if len(u.Messages) != 2 {
		t.Fatalf("delta from 0 carries %d messages, want 2", len(u.Messages))
	}

	caughtUp := snap.LogLen()
	data, err = snap.For("player_0", caughtUp)
	if err != nil {
		t.Fatal(err)
	}
	u = Update{}
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatal(err)
	}
	if len(u.Messages) != 0 {
		t.Errorf("caught-up cursor got %d messages", len(u.Messages))
	}
}

func TestSnapshotOmitsDeadEntities(t *testing.T) {
	s := newSnapshotSession(t)
	for _, m := range s.Store.AliveMonsters() {
		m.CurrentHealth = 0
	}
	p := s.Store.PlayerByID("player_1")
	p.CurrentHealth = 0

	snap := BuildSnapshot(s, game.Result{})
	data, err := snap.For("player_0", 0)
	if err != nil {
		t.Fatal(err)
	}
	var u Update
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatal(err)
	}
	for _, e := range u.Entities {
		if e.CurrentHealth == 0 {
			t.Errorf("dead entity %s in snapshot", e.ID)
		}
		if e.ID == "player_1" {
			t.Error("dead player entity still serialized")
		}
	}
	// The roster keeps the dead player visible.
	foundDead := false
	for _, row := range u.Players {
		if row.ID == "player_1" && !row.IsAlive {
			foundDead = true
		}
	}
	if !foundDead {
		t.Error("players roster lost the dead player")
	}
}
