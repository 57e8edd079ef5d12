// Package collisions finds the contacts between every pair of colliders in a
// world. A resolv spatial hash proposes candidate pairs and an exact float32
// box test decides them.
package collisions

import (
	"sort"

	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/solarlune/resolv"
)

const (
	CollisionSpaceTagBody = "body"

	// proxyMargin pads each broad-phase proxy, in space pixels, so that boxes
	// which touch exactly always share a cell.
	proxyMargin = 2
)

// Bounds describes the region of the world covered by the spatial hash.
// Bodies outside it are paired by brute force.
type Bounds struct {
	MinX   float32
	MinY   float32
	Width  float32
	Height float32
	// Scale converts world units to space pixels
	Scale float32
	// CellSize is the hash cell edge in space pixels
	CellSize int
}

// DefaultBounds covers a 128x128 unit area centred on the origin.
var DefaultBounds = Bounds{
	MinX:     -64,
	MinY:     -64,
	Width:    128,
	Height:   128,
	Scale:    16,
	CellSize: 32,
}

// Engine detects collisions. The broad-phase space is derived from the world on
// every call, so the engine carries no state that needs to be rolled back.
type Engine struct {
	bounds  Bounds
	width   float64
	height  float64
	space   *resolv.Space
	proxies map[types.Entity]*resolv.Object
}

func NewEngine(bounds Bounds) *Engine {
	width := int(bounds.Width * bounds.Scale)
	height := int(bounds.Height * bounds.Scale)
	return &Engine{
		bounds:  bounds,
		width:   float64(width),
		height:  float64(height),
		space:   resolv.NewSpace(width, height, bounds.CellSize, bounds.CellSize),
		proxies: make(map[types.Entity]*resolv.Object),
	}
}

type body struct {
	entity    types.Entity
	transform *types.Transform
	collider  *types.Collider
	solid     bool
	inSpace   bool
}

// Detect clears every collider's contacts and records this tick's contacts.
// Pairs are visited in ascending entity order so both peers append contacts in
// the same order.
func (e *Engine) Detect(w *types.World) {
	bodies := e.sync(w)

	index := make(map[types.Entity]int, len(bodies))
	var outside []int
	for i, b := range bodies {
		b.collider.ClearCollisions()
		index[b.entity] = i
		if !b.inSpace {
			outside = append(outside, i)
		}
	}

	for i := range bodies {
		for _, j := range e.candidates(bodies, i, index, outside) {
			Narrow(bodies[i].entity, bodies[i].transform, bodies[i].collider, bodies[i].solid,
				bodies[j].entity, bodies[j].transform, bodies[j].collider, bodies[j].solid)
		}
	}
}

// candidates returns the indexes greater than i that may touch bodies[i], sorted.
func (e *Engine) candidates(bodies []*body, i int, index map[types.Entity]int, outside []int) []int {
	if !bodies[i].inSpace {
		all := make([]int, 0, len(bodies)-i-1)
		for j := i + 1; j < len(bodies); j++ {
			all = append(all, j)
		}
		return all
	}

	seen := make(map[int]struct{})
	if collision := e.proxies[bodies[i].entity].Check(0, 0, CollisionSpaceTagBody); collision != nil {
		for _, o := range collision.Objects {
			other, ok := o.Data.(types.Entity)
			if !ok {
				continue
			}
			if j, ok := index[other]; ok && j > i {
				seen[j] = struct{}{}
			}
		}
	}
	for _, j := range outside {
		if j > i {
			seen[j] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for j := range seen {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// sync moves the broad-phase proxies to the world's current boxes and returns
// the colliding bodies in ascending entity order.
func (e *Engine) sync(w *types.World) []*body {
	var bodies []*body
	live := make(map[types.Entity]struct{})
	w.Each(func(ent types.Entity, c *types.Components) {
		if c.Transform == nil || c.Collider == nil {
			return
		}
		live[ent] = struct{}{}
		b := &body{
			entity:    ent,
			transform: c.Transform,
			collider:  c.Collider,
			solid:     c.Solid != nil && bool(*c.Solid),
		}
		b.inSpace = e.place(ent, c.Transform, c.Collider)
		bodies = append(bodies, b)
	})

	for ent, proxy := range e.proxies {
		if _, ok := live[ent]; !ok {
			e.space.Remove(proxy)
			delete(e.proxies, ent)
		}
	}
	return bodies
}

// place updates the proxy of ent and reports whether it lies wholly inside the space.
func (e *Engine) place(ent types.Entity, t *types.Transform, c *types.Collider) bool {
	half := c.HalfExtents()
	x := float64((t.Position.X-half.X-e.bounds.MinX)*e.bounds.Scale) - proxyMargin
	y := float64((t.Position.Y-half.Y-e.bounds.MinY)*e.bounds.Scale) - proxyMargin
	width := float64(c.BoundingBox.X*e.bounds.Scale) + 2*proxyMargin
	height := float64(c.BoundingBox.Y*e.bounds.Scale) + 2*proxyMargin

	inside := x >= 0 && y >= 0 &&
		x+width <= e.width &&
		y+height <= e.height

	proxy, ok := e.proxies[ent]
	if !inside {
		if ok {
			e.space.Remove(proxy)
			delete(e.proxies, ent)
		}
		return false
	}

	if !ok {
		proxy = resolv.NewObject(x, y, width, height, CollisionSpaceTagBody)
		proxy.Data = ent
		e.proxies[ent] = proxy
		e.space.Add(proxy)
	}
	proxy.Position.X = x
	proxy.Position.Y = y
	proxy.Size.X = width
	proxy.Size.Y = height
	proxy.Update()
	return true
}
