package combat

import (
	"math/rand"

	"webrogue/internal/event"
	"webrogue/internal/world"
)

// Strike resolves a full attack against the store: rolls damage, spawns the
// consumable drop when a monster dies, and returns the combat log entry.
// Log lines use catalog display names rather than entity ids.
func Strike(rng *rand.Rand, s *world.Store, attacker, target *world.Entity) (Result, event.Event) {
	res := Attack(rng, attacker, target)

	if res.TargetDied && !target.IsPlayer() && RollDrop(rng) {
		if items := s.Catalog.Consumables(); len(items) > 0 {
			tpl := items[rng.Intn(len(items))]
			s.SpawnConsumable(target.X, target.Y, tpl.ID)
		}
	}

	attackerName := s.Catalog.Name(attacker.ObjectID)
	targetName := s.Catalog.Name(target.ObjectID)
	if res.IsCrit {
		return res, event.CombatCrit(attackerName, targetName, res.Damage, res.HealthAfter, res.TargetDied)
	}
	return res, event.Combat(attackerName, targetName, res.Damage, res.HealthAfter, res.TargetDied)
}
