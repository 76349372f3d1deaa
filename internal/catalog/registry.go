package catalog

// Registry indexes catalog objects by id and by role. Built once from a
// Config; safe for concurrent reads.
type Registry struct {
	objects map[string]*Object
	ordered []*Object
}

// NewRegistry builds a Registry from a list of objects. Later duplicates of
// an id win, matching file-order overrides.
func NewRegistry(objects []Object) *Registry {
	r := &Registry{objects: make(map[string]*Object, len(objects))}
	for i := range objects {
		o := objects[i]
		if _, seen := r.objects[o.ID]; !seen {
			r.ordered = append(r.ordered, &o)
		}
		r.objects[o.ID] = &o
	}
	// Keep ordered entries pointing at the winning definitions.
	for i, o := range r.ordered {
		r.ordered[i] = r.objects[o.ID]
	}
	return r
}

// Get returns the object with the given id, or nil.
func (r *Registry) Get(id string) *Object {
	return r.objects[id]
}

// All returns every object in file order.
func (r *Registry) All() []*Object {
	return r.ordered
}

// Player returns the player character template. The catalog must define an
// object with id "player"; Load enforces this.
func (r *Registry) Player() *Object {
	return r.objects["player"]
}

// Monsters returns every character object flagged as a monster.
func (r *Registry) Monsters() []*Object {
	var out []*Object
	for _, o := range r.ordered {
		if o.Type == TypeCharacter && o.Monster {
			out = append(out, o)
		}
	}
	return out
}

// Consumables returns every consumable-type object.
func (r *Registry) Consumables() []*Object {
	var out []*Object
	for _, o := range r.ordered {
		if o.Type == TypeConsumable {
			out = append(out, o)
		}
	}
	return out
}

// Chests returns every chest-type object.
func (r *Registry) Chests() []*Object {
	var out []*Object
	for _, o := range r.ordered {
		if o.Type == TypeChest {
			out = append(out, o)
		}
	}
	return out
}

// Name returns the display name for an object id, falling back to the id
// itself when the object is unknown.
func (r *Registry) Name(id string) string {
	if o := r.objects[id]; o != nil {
		return o.Name
	}
	return id
}
