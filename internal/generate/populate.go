package generate

import (
	"fmt"

	"webrogue/internal/gamemap"
	"webrogue/internal/world"
)

// Level generates a dungeon and populates it, returning a ready store with
// no players yet. Players join through the store afterwards.
func Level(cfg *Config) *world.Store {
	m := Dungeon(cfg)
	s := world.NewStore(m, cfg.Catalog)

	spawnX, spawnY := firstWalkable(m)
	placeMonsters(s, cfg, spawnX, spawnY)
	placeStairs(s, cfg, spawnX, spawnY)
	placeChests(s, cfg, spawnX, spawnY)
	return s
}

// firstWalkable returns the first floor tile in row order: the tile the
// first connecting player will spawn on.
func firstWalkable(m *gamemap.GameMap) (int, int) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.IsWalkable(x, y) {
				return x, y
			}
		}
	}
	return 1, 1
}

func placeMonsters(s *world.Store, cfg *Config, spawnX, spawnY int) {
	templates := cfg.Catalog.Monsters()
	if len(templates) == 0 {
		return
	}
	counter := 0
	for _, room := range s.Map.Rooms {
		free := roomPositions(s, room, spawnX, spawnY)
		if len(free) == 0 {
			continue
		}
		cfg.Rand.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

		n := cfg.MinMonstersPerRoom
		if cfg.MaxMonstersPerRoom > cfg.MinMonstersPerRoom {
			n += cfg.Rand.Intn(cfg.MaxMonstersPerRoom - cfg.MinMonstersPerRoom + 1)
		}
		if n > len(free) {
			n = len(free)
		}
		for i := 0; i < n; i++ {
			tpl := templates[cfg.Rand.Intn(len(templates))]
			pos := free[i]
			id := fmt.Sprintf("monster_%d", counter)
			counter++
			s.Entities = append(s.Entities, world.NewEntity(id, pos.X, pos.Y, tpl, world.ControllerAI))
		}
	}
}

// placeStairs puts the stairs near the center of the room farthest from the
// player spawn, by Manhattan distance between spawn and room center.
func placeStairs(s *world.Store, cfg *Config, spawnX, spawnY int) {
	if cfg.Catalog.Get("stairs") == nil {
		return
	}
	var farthest *gamemap.Rect
	best := -1
	for i := range s.Map.Rooms {
		cx, cy := s.Map.Rooms[i].Center()
		d := abs(spawnX-cx) + abs(spawnY-cy)
		if d > best {
			best = d
			farthest = &s.Map.Rooms[i]
		}
	}
	if farthest == nil {
		return
	}
	cx, cy := farthest.Center()
	// Widen the search from the center until a walkable tile turns up. The
	// stairs stay a position marker; the tile underneath is untouched.
	for radius := 0; radius <= 5; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := cx+dx, cy+dy
				if s.Map.IsWalkable(x, y) {
					s.Stairs = &world.Position{X: x, Y: y}
					return
				}
			}
		}
	}
}

func placeChests(s *world.Store, cfg *Config, spawnX, spawnY int) {
	templates := cfg.Catalog.Chests()
	if len(templates) == 0 {
		return
	}
	target := cfg.ChestCount
	if target == 0 {
		target = len(s.Map.Rooms) / 2
	}

	var free []world.Position
	for _, room := range s.Map.Rooms {
		free = append(free, roomPositions(s, room, spawnX, spawnY)...)
	}
	cfg.Rand.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	if target > len(free) {
		target = len(free)
	}

	for i := 0; i < target; i++ {
		tpl := templates[cfg.Rand.Intn(len(templates))]
		pos := free[i]
		s.Chests = append(s.Chests, &world.Chest{
			ID:           fmt.Sprintf("chest_%d", i),
			X:            pos.X,
			Y:            pos.Y,
			ObjectID:     tpl.ID,
			OpenObjectID: tpl.OpenObjectID,
		})
	}
}

// roomPositions lists the walkable tiles in a room not claimed by the player
// spawn, an entity, the stairs, or a chest.
func roomPositions(s *world.Store, room gamemap.Rect, spawnX, spawnY int) []world.Position {
	var out []world.Position
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			if !s.Map.IsWalkable(x, y) {
				continue
			}
			if x == spawnX && y == spawnY {
				continue
			}
			if s.EntityAt(x, y) != nil || s.ChestAt(x, y) != nil || s.OnStairs(x, y) {
				continue
			}
			out = append(out, world.Position{X: x, Y: y})
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
