package protocol

import (
	"encoding/json"

	"webrogue/internal/event"
	"webrogue/internal/game"
	"webrogue/internal/gamemap"
	"webrogue/internal/world"
)

// EntityData is one entity as clients see it: position, combat stats, and
// the sprite the catalog assigns its object id.
type EntityData struct {
	ID                string `json:"id"`
	ObjectID          string `json:"object_id"`
	X                 int    `json:"x"`
	Y                 int    `json:"y"`
	SpriteX           int    `json:"sprite_x"`
	SpriteY           int    `json:"sprite_y"`
	SpriteSheet       string `json:"sprite_sheet,omitempty"`
	Controller        string `json:"controller"`
	CurrentHealth     int    `json:"current_health"`
	MaxHealth         int    `json:"max_health"`
	Attack            int    `json:"attack"`
	Defense           int    `json:"defense"`
	CritChancePercent int    `json:"crit_chance_percent"`
	CritDamagePercent int    `json:"crit_damage_percent"`
	FacingRight       bool   `json:"facing_right"`
}

// ChestData carries both sprite states so clients can flip without a
// catalog round-trip.
type ChestData struct {
	ID          string `json:"id"`
	ObjectID    string `json:"object_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	SpriteX     int    `json:"sprite_x"`
	SpriteY     int    `json:"sprite_y"`
	SpriteSheet string `json:"sprite_sheet,omitempty"`
	IsOpen      bool   `json:"is_open"`
	OpenSpriteX int    `json:"open_sprite_x"`
	OpenSpriteY int    `json:"open_sprite_y"`
}

// ConsumableData is one pickup on the floor.
type ConsumableData struct {
	ID          string `json:"id"`
	ObjectID    string `json:"object_id"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	SpriteX     int    `json:"sprite_x"`
	SpriteY     int    `json:"sprite_y"`
	SpriteSheet string `json:"sprite_sheet,omitempty"`
}

// Update is the outbound snapshot document. The three personalized fields
// are stamped per connection; everything else is identical for everyone.
type Update struct {
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	Map            [][]gamemap.Tile  `json:"map"`
	Entities       []EntityData      `json:"entities"`
	Chests         []ChestData       `json:"chests"`
	Consumables    []ConsumableData  `json:"consumables"`
	StairsPosition []int             `json:"stairs_position"`
	Players        []game.PlayerInfo `json:"players"`
	TurnPhase      string            `json:"turn_phase"`
	CurrentTurn    int               `json:"current_turn"`
	AllPlayersDead bool              `json:"all_players_dead"`
	LevelComplete  bool              `json:"level_complete"`
	RestartConfirm bool              `json:"restart_confirmed"`
	Messages       []event.Event     `json:"messages"`

	CurrentPlayerID string `json:"current_player_id"`
	IsMyTurn        bool   `json:"is_my_turn"`
	OnStairs        bool   `json:"on_stairs"`
}

// playerView is the per-connection state captured at snapshot time.
type playerView struct {
	isMyTurn bool
	onStairs bool
}

// Snapshot is an immutable capture of the session taken inside the
// single-writer section. Fan-out happens after capture, so a concurrent
// action can never tear a payload mid-send.
type Snapshot struct {
	core    Update
	views   map[string]playerView
	logBase int
	events  []event.Event
}

// BuildSnapshot captures the session and the handshake flags of the
// submission that produced it. Dead entities are omitted; dead players stay
// visible through the players roster.
func BuildSnapshot(s *game.Session, res game.Result) *Snapshot {
	st := s.Store

	tiles := make([][]gamemap.Tile, st.Map.Height)
	for y := range st.Map.Tiles {
		tiles[y] = append([]gamemap.Tile(nil), st.Map.Tiles[y]...)
	}

	var entities []EntityData
	for _, e := range st.Entities {
		if !e.Alive() {
			continue
		}
		entities = append(entities, entityData(st, e))
	}

	var chests []ChestData
	for _, c := range st.Chests {
		chests = append(chests, chestData(st, c))
	}

	var consumables []ConsumableData
	for _, c := range st.Consumables {
		consumables = append(consumables, consumableData(st, c))
	}

	var stairs []int
	if st.Stairs != nil {
		stairs = []int{st.Stairs.X, st.Stairs.Y}
	}

	views := make(map[string]playerView)
	for _, info := range s.Players() {
		views[info.ID] = playerView{
			isMyTurn: s.IsMyTurn(info.ID),
			onStairs: s.OnStairs(info.ID),
		}
	}

	events := s.EventsSince(0)
	return &Snapshot{
		core: Update{
			Width:          st.Map.Width,
			Height:         st.Map.Height,
			Map:            tiles,
			Entities:       entities,
			Chests:         chests,
			Consumables:    consumables,
			StairsPosition: stairs,
			Players:        s.Players(),
			TurnPhase:      string(s.Phase),
			CurrentTurn:    s.CurrentTurn,
			AllPlayersDead: st.AllPlayersDead(),
			LevelComplete:  res.LevelComplete,
			RestartConfirm: res.RestartConfirmed,
		},
		views:   views,
		logBase: s.LogLen() - len(events),
		events:  events,
	}
}

// LogLen returns the absolute event-log length captured in this snapshot.
// Connections store it as their delta cursor after a send.
func (snap *Snapshot) LogLen() int {
	return snap.logBase + len(snap.events)
}

// For marshals the snapshot personalized for one player, with the event
// delta since the connection's cursor.
func (snap *Snapshot) For(playerID string, cursor int) ([]byte, error) {
	u := snap.core
	u.CurrentPlayerID = playerID
	if v, ok := snap.views[playerID]; ok {
		u.IsMyTurn = v.isMyTurn
		u.OnStairs = v.onStairs
	}

	i := cursor - snap.logBase
	if i < 0 {
		i = 0
	}
	if i < len(snap.events) {
		u.Messages = snap.events[i:]
	}
	return json.Marshal(&u)
}

func entityData(st *world.Store, e *world.Entity) EntityData {
	d := EntityData{
		ID:                e.ID,
		ObjectID:          e.ObjectID,
		X:                 e.X,
		Y:                 e.Y,
		Controller:        e.Controller,
		CurrentHealth:     e.CurrentHealth,
		MaxHealth:         e.MaxHealth,
		Attack:            e.Attack,
		Defense:           e.Defense,
		CritChancePercent: e.CritChancePercent,
		CritDamagePercent: e.CritDamagePercent,
		FacingRight:       e.FacingRight,
	}
	if obj := st.Catalog.Get(e.ObjectID); obj != nil {
		s := obj.FirstSprite()
		d.SpriteX, d.SpriteY = s.X, s.Y
		d.SpriteSheet = obj.SpriteSheet
	}
	return d
}

func chestData(st *world.Store, c *world.Chest) ChestData {
	d := ChestData{
		ID:       c.ID,
		ObjectID: c.ObjectID,
		X:        c.X,
		Y:        c.Y,
		IsOpen:   c.IsOpen,
	}
	if obj := st.Catalog.Get(c.ObjectID); obj != nil {
		s := obj.FirstSprite()
		d.SpriteX, d.SpriteY = s.X, s.Y
		d.SpriteSheet = obj.SpriteSheet
	}
	if open := st.Catalog.Get(c.OpenObjectID); open != nil {
		s := open.FirstSprite()
		d.OpenSpriteX, d.OpenSpriteY = s.X, s.Y
	}
	return d
}

func consumableData(st *world.Store, c world.Consumable) ConsumableData {
	d := ConsumableData{
		ID:       c.ID,
		ObjectID: c.ObjectID,
		X:        c.X,
		Y:        c.Y,
	}
	if obj := st.Catalog.Get(c.ObjectID); obj != nil {
		s := obj.FirstSprite()
		d.SpriteX, d.SpriteY = s.X, s.Y
		d.SpriteSheet = obj.SpriteSheet
	}
	return d
}
