// Package ai drives monster turns: chase the nearest player in sight,
// attack when adjacent, wander otherwise.
package ai

import (
	"math/rand"

	"webrogue/internal/combat"
	"webrogue/internal/event"
	"webrogue/internal/world"
)

// SightRange is how far a monster can see, in Chebyshev distance.
const SightRange = 5

var directions = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// ProcessTurns runs one turn for every living monster and returns the combat
// log entries their attacks produced.
func ProcessTurns(rng *rand.Rand, s *world.Store) []event.Event {
	var events []event.Event

	players := s.AlivePlayers()
	for _, m := range s.AliveMonsters() {
		target := nearestInSight(m, players)
		if target == nil {
			// Nobody in sight, wander one random step.
			d := directions[rng.Intn(len(directions))]
			s.MoveEntity(m, d[0], d[1])
			continue
		}

		dx, dy := target.X-m.X, target.Y-m.Y
		if (abs(dx) == 1 && dy == 0) || (dx == 0 && abs(dy) == 1) {
			_, ev := combat.Strike(rng, s, m, target)
			events = append(events, ev)
			continue
		}

		if sdx, sdy, ok := findStep(s, m, target.X, target.Y); ok {
			s.MoveEntity(m, sdx, sdy)
		}
	}
	return events
}

// nearestInSight returns the closest living player within sight range, or
// nil. Ties go to the earlier roster entry.
func nearestInSight(m *world.Entity, players []*world.Entity) *world.Entity {
	var best *world.Entity
	bestDist := SightRange + 1
	for _, p := range players {
		d := max(abs(p.X-m.X), abs(p.Y-m.Y))
		if d <= SightRange && d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
