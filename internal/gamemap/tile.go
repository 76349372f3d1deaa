package gamemap

// Tile holds one map cell: the catalog object it renders as and whether
// characters can stand on it. Sprite coordinates are baked in at generation
// time so variant floors stay stable across broadcasts.
type Tile struct {
	ObjectID string `json:"object_id"`
	Walkable bool   `json:"walkable"`
	SpriteX  int    `json:"sprite_x"`
	SpriteY  int    `json:"sprite_y"`
}

// MakeWall returns a blocking tile rendered with the given object and sprite.
func MakeWall(objectID string, spriteX, spriteY int) Tile {
	return Tile{ObjectID: objectID, Walkable: false, SpriteX: spriteX, SpriteY: spriteY}
}

// MakeFloor returns a passable tile rendered with the given object and sprite.
func MakeFloor(objectID string, spriteX, spriteY int) Tile {
	return Tile{ObjectID: objectID, Walkable: true, SpriteX: spriteX, SpriteY: spriteY}
}
