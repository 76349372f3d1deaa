// Package world holds the mutable level state: the tile grid plus every
// entity, chest, and consumable on it. A Store is not safe for concurrent
// use; the game session serializes all access to it.
package world

import "webrogue/internal/catalog"

// Controller says who drives an entity. The values appear verbatim on the
// wire, so clients switch on them directly.
const (
	ControllerPlayer = "Player"
	ControllerAI     = "AI"
)

// Position is a tile coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is one character on the map, player or monster. Combat stats are
// copied from the catalog template at spawn time so later catalog edits do
// not retroactively change live entities.
type Entity struct {
	ID                  string `json:"id"`
	X                   int    `json:"x"`
	Y                   int    `json:"y"`
	ObjectID            string `json:"object_id"`
	Attack              int    `json:"attack"`
	Defense             int    `json:"defense"`
	AttackSpreadPercent int    `json:"attack_spread_percent"`
	CritChancePercent   int    `json:"crit_chance_percent"`
	CritDamagePercent   int    `json:"crit_damage_percent"`
	MaxHealth           int    `json:"max_health"`
	CurrentHealth       int    `json:"current_health"`
	Controller          string `json:"controller"`
	FacingRight         bool   `json:"facing_right"`
}

// NewEntity spawns an entity at (x, y) from a catalog template.
func NewEntity(id string, x, y int, tpl *catalog.Object, controller string) *Entity {
	return &Entity{
		ID:                  id,
		X:                   x,
		Y:                   y,
		ObjectID:            tpl.ID,
		Attack:              tpl.Attack,
		Defense:             tpl.Defense,
		AttackSpreadPercent: tpl.AttackSpreadPercent,
		CritChancePercent:   tpl.CritChancePercent,
		CritDamagePercent:   tpl.CritDamagePercent,
		MaxHealth:           tpl.Health,
		CurrentHealth:       tpl.Health,
		Controller:          controller,
		FacingRight:         true,
	}
}

// Alive reports whether the entity still has health.
func (e *Entity) Alive() bool {
	return e.CurrentHealth > 0
}

// IsPlayer reports whether a player drives this entity.
func (e *Entity) IsPlayer() bool {
	return e.Controller == ControllerPlayer
}

// Heal restores up to amount health, capped at max, and returns how much was
// actually restored.
func (e *Entity) Heal(amount int) int {
	before := e.CurrentHealth
	e.CurrentHealth += amount
	if e.CurrentHealth > e.MaxHealth {
		e.CurrentHealth = e.MaxHealth
	}
	return e.CurrentHealth - before
}

// TakeDamage subtracts damage from health, flooring at zero.
func (e *Entity) TakeDamage(damage int) {
	e.CurrentHealth -= damage
	if e.CurrentHealth < 0 {
		e.CurrentHealth = 0
	}
}

// Consumable is a pickup lying on a tile.
type Consumable struct {
	ID       string `json:"id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	ObjectID string `json:"object_id"`
}

// Chest is an openable container on a tile.
type Chest struct {
	ID           string `json:"id"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	ObjectID     string `json:"object_id"`
	OpenObjectID string `json:"open_object_id,omitempty"`
	IsOpen       bool   `json:"is_open"`
}
