// Package combat resolves attacks between entities.
package combat

import (
	"math/rand"

	"webrogue/internal/world"
)

// DropChancePercent is the chance a slain monster leaves a consumable.
const DropChancePercent = 25

// Result describes one resolved attack.
type Result struct {
	Damage      int
	HealthAfter int
	TargetDied  bool
	IsCrit      bool
}

// Attack rolls damage from attacker against target and applies it. Damage is
// attack plus a uniform roll in ±spread percent, multiplied on a critical
// hit, minus the target's defense, never below 1. The attacker turns to face
// the target when they differ horizontally.
func Attack(rng *rand.Rand, attacker, target *world.Entity) Result {
	spread := 0
	if attacker.AttackSpreadPercent > 0 {
		span := attacker.Attack * attacker.AttackSpreadPercent / 100
		if span > 0 {
			spread = rng.Intn(2*span+1) - span
		}
	}
	damage := attacker.Attack + spread

	isCrit := attacker.CritChancePercent > 0 && rng.Intn(100) < attacker.CritChancePercent
	if isCrit {
		damage = damage * attacker.CritDamagePercent / 100
	}

	damage -= target.Defense
	if damage < 1 {
		damage = 1
	}

	target.TakeDamage(damage)

	if attacker.X < target.X {
		attacker.FacingRight = true
	} else if attacker.X > target.X {
		attacker.FacingRight = false
	}

	return Result{
		Damage:      damage,
		HealthAfter: target.CurrentHealth,
		TargetDied:  !target.Alive(),
		IsCrit:      isCrit,
	}
}

// RollDrop reports whether a slain monster drops a consumable.
func RollDrop(rng *rand.Rand) bool {
	return rng.Intn(100) < DropChancePercent
}
