package ai

import "webrogue/internal/world"

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// findStep runs a BFS over walkable tiles from the mover toward (tx, ty) and
// returns the unit step onto the path's first tile. Living entities block
// except on the target tile itself. When no path exists the mover lunges in
// the target's general direction and lets movement rules reject it.
func findStep(s *world.Store, mover *world.Entity, tx, ty int) (int, int, bool) {
	dx, dy := tx-mover.X, ty-mover.Y
	if dx == 0 && dy == 0 {
		return 0, 0, false
	}
	if abs(dx) <= 1 && abs(dy) <= 1 {
		return sign(dx), sign(dy), true
	}

	type pt struct{ x, y int }
	start := pt{mover.X, mover.Y}
	goal := pt{tx, ty}

	parent := map[pt]pt{start: start}
	queue := []pt{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			// Walk back to the tile right after start.
			step := cur
			for parent[step] != start {
				step = parent[step]
			}
			return sign(step.x - mover.X), sign(step.y - mover.Y), true
		}
		for _, d := range directions {
			next := pt{cur.x + d[0], cur.y + d[1]}
			if _, seen := parent[next]; seen {
				continue
			}
			if !s.Map.IsWalkable(next.x, next.y) {
				continue
			}
			if next != goal {
				if e := s.EntityAt(next.x, next.y); e != nil && e != mover {
					continue
				}
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	return sign(dx), sign(dy), true
}
