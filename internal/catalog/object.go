// Package catalog holds the static game-object definitions: tiles,
// characters, consumables, chests, and goal objects, each linking an object
// id to its sprite-sheet coordinates and gameplay stats. The catalog is
// content, not state: the server loads it once at startup and only ever
// reads from it afterwards.
package catalog

import "math/rand"

// Object types as they appear in the config file.
const (
	TypeTile       = "tile"
	TypeCharacter  = "character"
	TypeConsumable = "consumable"
	TypeChest      = "chest"
	TypeGoal       = "goal"
)

// Sprite is one coordinate pair on a sprite sheet, measured in tiles.
type Sprite struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Object is one catalog entry. Zero values mean "not applicable": a tile has
// no health, a consumable has no attack, and so on.
type Object struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Walkable bool   `yaml:"walkable" json:"walkable"`

	// Character stats.
	Health              int  `yaml:"health,omitempty" json:"health,omitempty"`
	Attack              int  `yaml:"attack,omitempty" json:"attack,omitempty"`
	Defense             int  `yaml:"defense,omitempty" json:"defense,omitempty"`
	AttackSpreadPercent int  `yaml:"attack_spread_percent,omitempty" json:"attack_spread_percent,omitempty"`
	CritChancePercent   int  `yaml:"crit_chance_percent,omitempty" json:"crit_chance_percent,omitempty"`
	CritDamagePercent   int  `yaml:"crit_damage_percent,omitempty" json:"crit_damage_percent,omitempty"`
	Monster             bool `yaml:"monster,omitempty" json:"monster,omitempty"`

	// Consumable stats.
	HealingPower int `yaml:"healing_power,omitempty" json:"healing_power,omitempty"`

	// Chest interactable states. OpenObjectID names the catalog entry whose
	// sprite an opened chest uses; WalkableOpen is the tile's walkability
	// after opening (a closed chest blocks, an open one usually does not).
	OpenObjectID string `yaml:"open_object_id,omitempty" json:"open_object_id,omitempty"`
	WalkableOpen bool   `yaml:"walkable_open,omitempty" json:"walkable_open,omitempty"`

	// Rendering. Sprites may hold several variants; tiles pick one at random
	// when placed so large floors don't look stamped.
	Sprites     []Sprite `yaml:"sprites" json:"sprites"`
	SpriteSheet string   `yaml:"sprite_sheet,omitempty" json:"sprite_sheet,omitempty"`
}

// FirstSprite returns the object's primary sprite, or the zero coordinate
// when the object defines none.
func (o *Object) FirstSprite() Sprite {
	if len(o.Sprites) == 0 {
		return Sprite{}
	}
	return o.Sprites[0]
}

// RandomSprite picks one of the object's sprite variants using rng.
func (o *Object) RandomSprite(rng *rand.Rand) Sprite {
	if len(o.Sprites) == 0 {
		return Sprite{}
	}
	return o.Sprites[rng.Intn(len(o.Sprites))]
}

// InteractableWalkable reports whether the object's tile can be walked on in
// the given interactable state. Objects without interactable states just
// report their plain walkable flag.
func (o *Object) InteractableWalkable(open bool) bool {
	if o.Type != TypeChest {
		return o.Walkable
	}
	if open {
		return o.WalkableOpen
	}
	return o.Walkable
}
