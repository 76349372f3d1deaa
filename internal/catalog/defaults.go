package catalog

// DefaultConfig returns the built-in game content: enough tiles, characters,
// and items for a playable level. Sprite coordinates index the standard
// tiles.png / rogues.png sheets; operators tune them through the external
// editor once the file is on disk.
func DefaultConfig() Config {
	return Config{GameObjects: []Object{
		{
			ID: "wall_dirt_top", Name: "Dirt Wall (Top)", Type: TypeTile,
			Sprites: []Sprite{{X: 0, Y: 0}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "wall_dirt_side", Name: "Dirt Wall (Side)", Type: TypeTile,
			Sprites: []Sprite{{X: 1, Y: 0}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "wall_stone_top", Name: "Stone Wall (Top)", Type: TypeTile,
			Sprites: []Sprite{{X: 0, Y: 1}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "floor_dark", Name: "Dark Floor", Type: TypeTile, Walkable: true,
			Sprites: []Sprite{{X: 0, Y: 6}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "floor_stone", Name: "Stone Floor", Type: TypeTile, Walkable: true,
			Sprites:     []Sprite{{X: 1, Y: 6}, {X: 2, Y: 6}, {X: 3, Y: 6}},
			SpriteSheet: "tiles.png",
		},
		{
			ID: "stairs", Name: "Stairs Down", Type: TypeGoal, Walkable: true,
			Sprites: []Sprite{{X: 7, Y: 16}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "player", Name: "Player Character", Type: TypeCharacter, Walkable: true,
			Health: 100, Attack: 10, AttackSpreadPercent: 20,
			CritChancePercent: 5, CritDamagePercent: 150,
			Sprites: []Sprite{{X: 0, Y: 0}}, SpriteSheet: "rogues.png",
		},
		{
			ID: "orc", Name: "Orc", Type: TypeCharacter, Walkable: true,
			Health: 50, Attack: 5, AttackSpreadPercent: 20,
			CritDamagePercent: 150, Monster: true,
			Sprites: []Sprite{{X: 1, Y: 2}}, SpriteSheet: "rogues.png",
		},
		{
			ID: "skeleton", Name: "Skeleton", Type: TypeCharacter, Walkable: true,
			Health: 30, Attack: 7, Defense: 1, AttackSpreadPercent: 30,
			CritChancePercent: 10, CritDamagePercent: 150, Monster: true,
			Sprites: []Sprite{{X: 2, Y: 5}}, SpriteSheet: "rogues.png",
		},
		{
			ID: "health_potion", Name: "Health Potion", Type: TypeConsumable, Walkable: true,
			HealingPower: 20,
			Sprites:      []Sprite{{X: 14, Y: 10}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "chest", Name: "Chest", Type: TypeChest,
			OpenObjectID: "chest_open", WalkableOpen: true,
			Sprites: []Sprite{{X: 8, Y: 12}}, SpriteSheet: "tiles.png",
		},
		{
			ID: "chest_open", Name: "Chest (Open)", Type: TypeChest, Walkable: true,
			Sprites: []Sprite{{X: 9, Y: 12}}, SpriteSheet: "tiles.png",
		},
	}}
}
