package rollback

import (
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	snapshotfb "github.com/cbodonnell/lockstep/flatbuffers/snapshot"
	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/cbodonnell/lockstep/pkg/kinematic"
	flatbuffers "github.com/google/flatbuffers/go"
)

// component presence bits stored on each snapshot entity
const (
	hasTransform uint16 = 1 << iota
	hasVelocity
	hasGravity
	hasCollider
	hasSolid
	hasPlayer
	hasFacing
	hasCoyoteTime
	isPlatform
	isVine
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

func bits(f float32) uint32 {
	return math.Float32bits(f)
}

func float(b uint32) float32 {
	return math.Float32frombits(b)
}

// Snapshot serializes every rollback-relevant component of the world. Entities
// are written in ascending id order, so equal worlds produce equal bytes.
func Snapshot(w *types.World) []byte {
	builder := flatbuffers.NewBuilder(1024)

	entities := w.Entities()
	offsets := make([]flatbuffers.UOffsetT, 0, len(entities))
	for _, e := range entities {
		c, _ := w.Get(e)
		offsets = append(offsets, serializeEntity(builder, e, c))
	}

	snapshotfb.WorldSnapshotStartEntitiesVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	entitiesVector := builder.EndVector(len(offsets))

	snapshotfb.WorldSnapshotStart(builder)
	snapshotfb.WorldSnapshotAddNextEntity(builder, uint32(w.NextEntity()))
	snapshotfb.WorldSnapshotAddEntities(builder, entitiesVector)
	builder.Finish(snapshotfb.WorldSnapshotEnd(builder))

	return builder.FinishedBytes()
}

func serializeEntity(builder *flatbuffers.Builder, e types.Entity, c *types.Components) flatbuffers.UOffsetT {
	var collisions flatbuffers.UOffsetT
	if c.Collider != nil {
		offsets := make([]flatbuffers.UOffsetT, 0, len(c.Collider.Collisions))
		for _, collision := range c.Collider.Collisions {
			snapshotfb.CollisionStart(builder)
			snapshotfb.CollisionAddOther(builder, uint32(collision.Other))
			snapshotfb.CollisionAddSide(builder, byte(collision.Side))
			snapshotfb.CollisionAddOverlapBits(builder, bits(collision.Overlap))
			snapshotfb.CollisionAddSolid(builder, collision.Solid)
			offsets = append(offsets, snapshotfb.CollisionEnd(builder))
		}
		snapshotfb.EntityStartCollisionsVector(builder, len(offsets))
		for i := len(offsets) - 1; i >= 0; i-- {
			builder.PrependUOffsetT(offsets[i])
		}
		collisions = builder.EndVector(len(offsets))
	}

	var present uint16
	snapshotfb.EntityStart(builder)
	snapshotfb.EntityAddId(builder, uint32(e))
	if t := c.Transform; t != nil {
		present |= hasTransform
		snapshotfb.EntityAddPosXBits(builder, bits(t.Position.X))
		snapshotfb.EntityAddPosYBits(builder, bits(t.Position.Y))
		snapshotfb.EntityAddPosZBits(builder, bits(t.Z))
		snapshotfb.EntityAddRotationBits(builder, bits(t.Rotation))
	}
	if v := c.Velocity; v != nil {
		present |= hasVelocity
		snapshotfb.EntityAddVelXBits(builder, bits(v.X))
		snapshotfb.EntityAddVelYBits(builder, bits(v.Y))
	}
	if g := c.Gravity; g != nil {
		present |= hasGravity
		snapshotfb.EntityAddGravityBits(builder, bits(g.Acceleration))
		snapshotfb.EntityAddGravityOverride(builder, g.Overridden())
	}
	if col := c.Collider; col != nil {
		present |= hasCollider
		snapshotfb.EntityAddBboxXBits(builder, bits(col.BoundingBox.X))
		snapshotfb.EntityAddBboxYBits(builder, bits(col.BoundingBox.Y))
		snapshotfb.EntityAddSides(builder, byte(col.Sides))
		snapshotfb.EntityAddCollisions(builder, collisions)
	}
	if s := c.Solid; s != nil {
		present |= hasSolid
		snapshotfb.EntityAddSolid(builder, bool(*s))
	}
	if p := c.Player; p != nil {
		present |= hasPlayer
		snapshotfb.EntityAddPlayerHandle(builder, int32(p.Handle))
	}
	if f := c.Facing; f != nil {
		present |= hasFacing
		snapshotfb.EntityAddFacingLeft(builder, f.Left)
	}
	if ct := c.CoyoteTime; ct != nil {
		present |= hasCoyoteTime
		snapshotfb.EntityAddCoyoteDurationBits(builder, bits(ct.Duration))
		snapshotfb.EntityAddCoyoteElapsedBits(builder, bits(ct.Elapsed))
	}
	if c.Platform {
		present |= isPlatform
	}
	if c.Vine {
		present |= isVine
	}
	snapshotfb.EntityAddComponents(builder, present)
	return snapshotfb.EntityEnd(builder)
}

// Restore replaces the contents of w with a snapshot. On error w is left untouched.
func Restore(w *types.World, blob []byte) (err error) {
	if len(blob) < flatbuffers.SizeUOffsetT {
		return fmt.Errorf("%w: %d bytes", ErrInvalidSnapshot, len(blob))
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidSnapshot, r)
		}
	}()

	root := snapshotfb.GetRootAsWorldSnapshot(blob, 0)
	entities := make(map[types.Entity]*types.Components, root.EntitiesLength())

	entity := new(snapshotfb.Entity)
	for i := 0; i < root.EntitiesLength(); i++ {
		if !root.Entities(entity, i) {
			return fmt.Errorf("%w: missing entity %d", ErrInvalidSnapshot, i)
		}
		id := types.Entity(entity.Id())
		if _, dup := entities[id]; dup {
			return fmt.Errorf("%w: duplicate entity %d", ErrInvalidSnapshot, id)
		}
		entities[id] = deserializeEntity(entity)
	}

	w.Replace(types.Entity(root.NextEntity()), entities)
	return nil
}

func deserializeEntity(entity *snapshotfb.Entity) *types.Components {
	present := entity.Components()
	c := &types.Components{
		Platform: present&isPlatform != 0,
		Vine:     present&isVine != 0,
	}
	if present&hasTransform != 0 {
		c.Transform = &types.Transform{
			Position: kinematic.Vector{X: float(entity.PosXBits()), Y: float(entity.PosYBits())},
			Z:        float(entity.PosZBits()),
			Rotation: float(entity.RotationBits()),
		}
	}
	if present&hasVelocity != 0 {
		c.Velocity = &types.Velocity{Vector: kinematic.Vector{X: float(entity.VelXBits()), Y: float(entity.VelYBits())}}
	}
	if present&hasGravity != 0 {
		c.Gravity = types.NewGravity(float(entity.GravityBits()))
		if entity.GravityOverride() {
			c.Gravity.TempOverride()
		}
	}
	if present&hasCollider != 0 {
		collider := &types.Collider{
			BoundingBox: kinematic.Vector{X: float(entity.BboxXBits()), Y: float(entity.BboxYBits())},
			Collisions:  make([]types.Collision, 0, entity.CollisionsLength()),
			Sides:       types.SideSet(entity.Sides()),
		}
		collision := new(snapshotfb.Collision)
		for j := 0; j < entity.CollisionsLength(); j++ {
			if !entity.Collisions(collision, j) {
				continue
			}
			collider.Collisions = append(collider.Collisions, types.Collision{
				Other:   types.Entity(collision.Other()),
				Side:    types.Side(collision.Side()),
				Overlap: float(collision.OverlapBits()),
				Solid:   collision.Solid(),
			})
		}
		c.Collider = collider
	}
	if present&hasSolid != 0 {
		s := types.Solid(entity.Solid())
		c.Solid = &s
	}
	if present&hasPlayer != 0 {
		c.Player = &types.Player{Handle: int(entity.PlayerHandle())}
	}
	if present&hasFacing != 0 {
		c.Facing = &types.Facing{Left: entity.FacingLeft()}
	}
	if present&hasCoyoteTime != 0 {
		c.CoyoteTime = &types.CoyoteTime{
			Duration: float(entity.CoyoteDurationBits()),
			Elapsed:  float(entity.CoyoteElapsedBits()),
		}
	}
	return c
}

// Checksum returns the CRC-32 (IEEE) of a snapshot.
func Checksum(blob []byte) uint32 {
	return crc32.ChecksumIEEE(blob)
}
