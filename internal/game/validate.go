package game

import (
	"webrogue/internal/combat"
	"webrogue/internal/event"
	"webrogue/internal/world"
)

// applyMove resolves one movement intent against the store. Bumping a closed
// chest opens it, bumping a living monster attacks it, stepping onto a
// consumable drinks it. Walls, map edges, and occupied tiles reject the move
// without mutating anything.
func (s *Session) applyMove(p *world.Entity, dx, dy int) Result {
	nx, ny := p.X+dx, p.Y+dy
	if !s.Store.Map.InBounds(nx, ny) {
		return Result{Outcome: OutcomeOutOfBounds}
	}

	if c := s.Store.ChestAt(nx, ny); c != nil && !c.IsOpen {
		c.IsOpen = true
		if items := s.Store.Catalog.Consumables(); len(items) > 0 {
			tpl := items[s.rng.Intn(len(items))]
			s.Store.SpawnConsumable(nx, ny, tpl.ID)
		}
		s.appendEvents(event.LevelEvent("Chest opened!"))
		return Result{Outcome: OutcomeOK, Mutated: true}
	}

	if target := s.Store.MonsterAt(nx, ny); target != nil {
		_, ev := combat.Strike(s.rng, s.Store, p, target)
		s.appendEvents(ev)
		return Result{Outcome: OutcomeOK, Mutated: true}
	}

	if !s.Store.Map.IsWalkable(nx, ny) {
		return Result{Outcome: OutcomeBlocked}
	}
	if !s.Store.Passable(nx, ny) {
		// Walkable tile held by another entity or a shut chest state.
		return Result{Outcome: OutcomeBlocked}
	}

	s.Store.MoveEntity(p, dx, dy)

	if i := s.Store.ConsumableAt(p.X, p.Y); i >= 0 {
		item := s.Store.Consumables[i]
		if obj := s.Store.Catalog.Get(item.ObjectID); obj != nil && obj.HealingPower > 0 {
			healed := p.Heal(obj.HealingPower)
			s.appendEvents(event.Healing(obj.Name, p.ID, healed, p.CurrentHealth))
			s.Store.RemoveConsumable(i)
		}
	}

	return Result{Outcome: OutcomeOK, Mutated: true}
}
