// Package generate builds dungeon levels: a room-and-corridor tile grid
// plus the monsters, chests, and stairs that populate it.
package generate

import (
	"math/rand"

	"webrogue/internal/catalog"
	"webrogue/internal/gamemap"
)

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int
	MinRooms, MaxRooms  int
	MinRoomSize         int
	MaxRoomSize         int

	MinMonstersPerRoom int
	MaxMonstersPerRoom int
	// ChestCount of 0 means one chest for every other room.
	ChestCount int

	Catalog *catalog.Registry
	Rand    *rand.Rand
}

// DefaultConfig returns the standard level parameters.
func DefaultConfig(reg *catalog.Registry, rng *rand.Rand) *Config {
	return &Config{
		MapWidth:           80,
		MapHeight:          50,
		MinRooms:           8,
		MaxRooms:           12,
		MinRoomSize:        4,
		MaxRoomSize:        8,
		MinMonstersPerRoom: 1,
		MaxMonstersPerRoom: 1,
		Catalog:            reg,
		Rand:               rng,
	}
}

// Wall and floor object ids the generator reaches for. Missing catalog
// entries degrade to bare tiles rather than failing generation.
const (
	wallObjectID = "wall_dirt_top"
	floorDarkID  = "floor_dark"
	floorStoneID = "floor_stone"
)

func (cfg *Config) wallTile() gamemap.Tile {
	if o := cfg.Catalog.Get(wallObjectID); o != nil {
		s := o.FirstSprite()
		return gamemap.MakeWall(wallObjectID, s.X, s.Y)
	}
	return gamemap.MakeWall(wallObjectID, 0, 0)
}

// floorTile picks a floor variant and a random sprite for it so large rooms
// don't look stamped.
func (cfg *Config) floorTile() gamemap.Tile {
	ids := [2]string{floorDarkID, floorStoneID}
	id := ids[cfg.Rand.Intn(len(ids))]
	if o := cfg.Catalog.Get(id); o != nil {
		s := o.RandomSprite(cfg.Rand)
		return gamemap.MakeFloor(id, s.X, s.Y)
	}
	return gamemap.MakeFloor(id, 0, 0)
}

// Dungeon carves rooms and corridors into a fresh map. Rooms that would
// overlap an earlier room are discarded, so the final count can land under
// the target on crowded maps.
func Dungeon(cfg *Config) *gamemap.GameMap {
	m := gamemap.New(cfg.MapWidth, cfg.MapHeight, cfg.wallTile())

	target := cfg.MinRooms
	if cfg.MaxRooms > cfg.MinRooms {
		target += cfg.Rand.Intn(cfg.MaxRooms - cfg.MinRooms + 1)
	}

	for attempt := 0; attempt < target*5 && len(m.Rooms) < target; attempt++ {
		w := cfg.MinRoomSize + cfg.Rand.Intn(cfg.MaxRoomSize-cfg.MinRoomSize+1)
		h := cfg.MinRoomSize + cfg.Rand.Intn(cfg.MaxRoomSize-cfg.MinRoomSize+1)
		x := 1 + cfg.Rand.Intn(cfg.MapWidth-w-2)
		y := 1 + cfg.Rand.Intn(cfg.MapHeight-h-2)

		room := gamemap.Rect{X1: x, Y1: y, X2: x + w - 1, Y2: y + h - 1}
		overlaps := false
		for _, other := range m.Rooms {
			// Leave a one-tile wall between rooms.
			grown := gamemap.Rect{X1: other.X1 - 1, Y1: other.Y1 - 1, X2: other.X2 + 1, Y2: other.Y2 + 1}
			if room.Intersects(grown) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		for ry := room.Y1; ry <= room.Y2; ry++ {
			for rx := room.X1; rx <= room.X2; rx++ {
				m.Set(rx, ry, cfg.floorTile())
			}
		}
		m.Rooms = append(m.Rooms, room)
	}

	// Connect each room to the next with an L-shaped corridor.
	for i := 0; i+1 < len(m.Rooms); i++ {
		x1, y1 := m.Rooms[i].Center()
		x2, y2 := m.Rooms[i+1].Center()
		if cfg.Rand.Intn(2) == 0 {
			carveH(m, cfg, x1, x2, y1)
			carveV(m, cfg, y1, y2, x2)
		} else {
			carveV(m, cfg, y1, y2, x1)
			carveH(m, cfg, x1, x2, y2)
		}
	}

	return m
}

func carveH(m *gamemap.GameMap, cfg *Config, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if m.InBounds(x, y) {
			m.Set(x, y, cfg.floorTile())
		}
	}
}

func carveV(m *gamemap.GameMap, cfg *Config, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if m.InBounds(x, y) {
			m.Set(x, y, cfg.floorTile())
		}
	}
}
