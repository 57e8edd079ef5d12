package types

import "sort"

// Entity identifies a simulated object. Ids are handed out in increasing order
// and never reused within a world.
type Entity uint32

// Components holds the optional components of one entity. A nil pointer means
// the entity does not carry that component.
type Components struct {
	Transform  *Transform
	Velocity   *Velocity
	Gravity    *Gravity
	Collider   *Collider
	Solid      *Solid
	Player     *Player
	Facing     *Facing
	CoyoteTime *CoyoteTime
	Platform   bool
	Vine       bool
}

// World is the simulated state shared by both peers. Iteration always visits
// entities in ascending id order.
type World struct {
	nextEntity Entity
	entities   []Entity
	components map[Entity]*Components
}

func NewWorld() *World {
	return &World{
		components: make(map[Entity]*Components),
	}
}

// Spawn adds an entity and returns its id.
func (w *World) Spawn(c Components) Entity {
	e := w.nextEntity
	w.nextEntity++
	w.entities = append(w.entities, e)
	w.components[e] = &c
	return e
}

// Despawn removes an entity. Unknown ids are ignored.
func (w *World) Despawn(e Entity) {
	if _, ok := w.components[e]; !ok {
		return
	}
	delete(w.components, e)
	i := sort.Search(len(w.entities), func(i int) bool { return w.entities[i] >= e })
	w.entities = append(w.entities[:i], w.entities[i+1:]...)
}

// Clear despawns every entity. The id counter keeps counting.
func (w *World) Clear() {
	w.entities = nil
	w.components = make(map[Entity]*Components)
}

// Get returns the components of e.
func (w *World) Get(e Entity) (*Components, bool) {
	c, ok := w.components[e]
	return c, ok
}

// Entities returns the live entity ids in ascending order.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Each calls fn for every entity in ascending id order.
func (w *World) Each(fn func(e Entity, c *Components)) {
	for _, e := range w.entities {
		fn(e, w.components[e])
	}
}

// NextEntity returns the id the next Spawn will hand out.
func (w *World) NextEntity() Entity {
	return w.nextEntity
}

// Replace swaps the world's contents for the given entities. It is used when
// restoring a snapshot; ids must be unique.
func (w *World) Replace(next Entity, entities map[Entity]*Components) {
	w.nextEntity = next
	w.components = entities
	w.entities = nil
	for e := range entities {
		w.entities = append(w.entities, e)
	}
	sort.Slice(w.entities, func(i, j int) bool { return w.entities[i] < w.entities[j] })
}
