package world

import (
	"fmt"

	"webrogue/internal/catalog"
	"webrogue/internal/gamemap"
)

// Store owns one level's worth of state. Entities, chests, and consumables
// are kept in slices so broadcasts see a stable order.
type Store struct {
	Map         *gamemap.GameMap
	Entities    []*Entity
	Consumables []Consumable
	Chests      []*Chest
	Stairs      *Position

	Catalog *catalog.Registry

	nextConsumable int
}

// NewStore wraps an already-populated map and registry.
func NewStore(m *gamemap.GameMap, reg *catalog.Registry) *Store {
	return &Store{Map: m, Catalog: reg}
}

// EntityAt returns the living entity standing on (x, y), or nil.
func (s *Store) EntityAt(x, y int) *Entity {
	for _, e := range s.Entities {
		if e.X == x && e.Y == y && e.Alive() {
			return e
		}
	}
	return nil
}

// MonsterAt returns the living AI entity on (x, y), or nil.
func (s *Store) MonsterAt(x, y int) *Entity {
	if e := s.EntityAt(x, y); e != nil && !e.IsPlayer() {
		return e
	}
	return nil
}

// PlayerByID returns the player entity with the given id, or nil.
func (s *Store) PlayerByID(id string) *Entity {
	for _, e := range s.Entities {
		if e.ID == id && e.IsPlayer() {
			return e
		}
	}
	return nil
}

// AlivePlayers returns every living player entity in roster order.
func (s *Store) AlivePlayers() []*Entity {
	var out []*Entity
	for _, e := range s.Entities {
		if e.IsPlayer() && e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// Players returns every player entity, dead or alive.
func (s *Store) Players() []*Entity {
	var out []*Entity
	for _, e := range s.Entities {
		if e.IsPlayer() {
			out = append(out, e)
		}
	}
	return out
}

// AliveMonsters returns every living AI entity.
func (s *Store) AliveMonsters() []*Entity {
	var out []*Entity
	for _, e := range s.Entities {
		if !e.IsPlayer() && e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// AllPlayersDead reports whether at least one player exists and none are
// alive. An empty roster is not a wipe.
func (s *Store) AllPlayersDead() bool {
	any := false
	for _, e := range s.Entities {
		if e.IsPlayer() {
			any = true
			if e.Alive() {
				return false
			}
		}
	}
	return any
}

// ChestAt returns the chest on (x, y), or nil.
func (s *Store) ChestAt(x, y int) *Chest {
	for _, c := range s.Chests {
		if c.X == x && c.Y == y {
			return c
		}
	}
	return nil
}

// ConsumableAt returns the index of the consumable on (x, y), or -1.
func (s *Store) ConsumableAt(x, y int) int {
	for i, c := range s.Consumables {
		if c.X == x && c.Y == y {
			return i
		}
	}
	return -1
}

// RemoveConsumable deletes the consumable at slice index i.
func (s *Store) RemoveConsumable(i int) {
	s.Consumables = append(s.Consumables[:i], s.Consumables[i+1:]...)
}

// SpawnConsumable places a new consumable of the given catalog object on
// (x, y) and returns it.
func (s *Store) SpawnConsumable(x, y int, objectID string) Consumable {
	c := Consumable{
		ID:       fmt.Sprintf("consumable_%d", s.nextConsumable),
		X:        x,
		Y:        y,
		ObjectID: objectID,
	}
	s.nextConsumable++
	s.Consumables = append(s.Consumables, c)
	return c
}

// OnStairs reports whether (x, y) is the stairs tile.
func (s *Store) OnStairs(x, y int) bool {
	return s.Stairs != nil && s.Stairs.X == x && s.Stairs.Y == y
}

// Passable reports whether a character can step onto (x, y): in bounds, tile
// walkable, chest (if any) open enough to walk on, and no living entity
// standing there.
func (s *Store) Passable(x, y int) bool {
	if !s.Map.IsWalkable(x, y) {
		return false
	}
	if c := s.ChestAt(x, y); c != nil {
		obj := s.Catalog.Get(c.ObjectID)
		if obj == nil {
			return c.IsOpen
		}
		if !obj.InteractableWalkable(c.IsOpen) {
			return false
		}
	}
	return s.EntityAt(x, y) == nil
}

// MoveEntity steps the entity by (dx, dy). Horizontal motion flips the
// facing even when the step is blocked. Returns true when the entity moved.
func (s *Store) MoveEntity(e *Entity, dx, dy int) bool {
	if dx > 0 {
		e.FacingRight = true
	} else if dx < 0 {
		e.FacingRight = false
	}
	nx, ny := e.X+dx, e.Y+dy
	if !s.Passable(nx, ny) {
		return false
	}
	e.X = nx
	e.Y = ny
	return true
}

// RemoveEntity drops the player entity with the given id from the store.
func (s *Store) RemoveEntity(id string) {
	kept := s.Entities[:0]
	for _, e := range s.Entities {
		if e.ID == id && e.IsPlayer() {
			continue
		}
		kept = append(kept, e)
	}
	s.Entities = kept
}

// FindSpawn picks a spawn tile for a new player: orthogonally adjacent to an
// existing living player when possible, otherwise the first free walkable
// tile in row order.
func (s *Store) FindSpawn() (int, int) {
	for _, p := range s.Entities {
		if !p.IsPlayer() || !p.Alive() {
			continue
		}
		adjacent := [4]Position{
			{p.X - 1, p.Y},
			{p.X + 1, p.Y},
			{p.X, p.Y - 1},
			{p.X, p.Y + 1},
		}
		for _, pos := range adjacent {
			if s.Passable(pos.X, pos.Y) {
				return pos.X, pos.Y
			}
		}
		break
	}
	for y := 0; y < s.Map.Height; y++ {
		for x := 0; x < s.Map.Width; x++ {
			if s.Passable(x, y) {
				return x, y
			}
		}
	}
	return 1, 1
}

// SpawnPlayer creates a player entity from the catalog template at a spawn
// tile and adds it to the store.
func (s *Store) SpawnPlayer(id string) *Entity {
	x, y := s.FindSpawn()
	e := NewEntity(id, x, y, s.Catalog.Player(), ControllerPlayer)
	s.Entities = append(s.Entities, e)
	return e
}
