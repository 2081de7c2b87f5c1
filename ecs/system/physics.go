package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
	"go.uber.org/zap"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeGround
	collisionTypeSolid
	collisionTypeTrigger
)

const collisionSlop = 0.01

type PhysicsSystem struct {
	space         *cp.Space
	dt            float64
	log           *zap.Logger
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	characters   map[ecs.Entity]*CharacterBody
	groundShapes map[*cp.Shape]*CharacterBody
	triggers     []ecs.TriggerEvent
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

// NewPhysicsSystem steps a Chipmunk space by dt seconds per tick. Characters
// integrate their own gravity, so the space has none.
func NewPhysicsSystem(dt float64, log *zap.Logger) *PhysicsSystem {
	if log == nil {
		log = zap.NewNop()
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetCollisionSlop(collisionSlop)
	return &PhysicsSystem{
		space:        space,
		dt:           dt,
		log:          log,
		entities:     make(map[ecs.Entity]*bodyInfo),
		characters:   make(map[ecs.Entity]*CharacterBody),
		groundShapes: make(map[*cp.Shape]*CharacterBody),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// World exposes the space to the traversal controller's ledge probe.
func (ps *PhysicsSystem) World() traversal.World {
	return spaceRaycaster{space: ps.space}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	for _, cb := range ps.characters {
		cb.prepare(ps.dt)
	}
	ps.space.Step(ps.dt)
	for _, cb := range ps.characters {
		cb.settle()
	}

	ps.syncTransforms(w)
	ps.flushTriggers(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypeGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		sensor, _ := arb.Shapes()
		if cb, ok := sys.groundShapes[sensor]; ok {
			cb.contact = true
		}
		return true
	}

	triggerHandler := ps.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeTrigger)
	triggerHandler.UserData = ps
	triggerHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.queueTrigger(arb, ecs.TriggerEnter)
		}
		return true
	}
	triggerHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
			sys.queueTrigger(arb, ecs.TriggerExit)
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) queueTrigger(arb *cp.Arbiter, phase ecs.TriggerPhase) {
	actorShape, volumeShape := arb.Shapes()
	actor, ok := actorShape.UserData.(ecs.Entity)
	if !ok {
		return
	}
	volume, ok := volumeShape.UserData.(ecs.Entity)
	if !ok {
		return
	}
	ps.triggers = append(ps.triggers, ecs.TriggerEvent{Phase: phase, Actor: actor, Volume: volume})
}

func (ps *PhysicsSystem) flushTriggers(w *ecs.World) {
	for _, evt := range ps.triggers {
		w.Events().Push(ecs.Event{Type: ecs.EventTrigger, Data: evt})
	}
	ps.triggers = ps.triggers[:0]
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		layer, _ := ecs.Get(w, e, component.CollisionLayerComponent.Kind())
		info := ps.createBodyInfo(e, transform, bodyComp, layer)
		if info == nil {
			return
		}
		ps.entities[e] = info
		ps.log.Debug("physics body added", zap.Stringer("entity", e), zap.Int("type", int(bodyComp.Type)))
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, layer *component.CollisionLayer) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		ps.log.Warn("physics body without size", zap.Stringer("entity", e))
		return nil
	}

	filter := shapeFilter(bodyComp.Type, layer)
	center := cp.Vector{X: transform.X, Y: transform.Y}

	switch bodyComp.Type {
	case component.BodyKinematic:
		body := cp.NewKinematicBody()
		body.SetPosition(center)
		body.UserData = e
		ps.space.AddBody(body)

		shape := cp.NewBox(body, width, height, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(filter)
		shape.UserData = e
		ps.space.AddShape(shape)

		info := &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
		if bodyComp.CarryHeight > 0 {
			carry := cp.NewBox2(body, cp.BB{
				L: -width / 2,
				B: height / 2,
				R: width / 2,
				T: height/2 + bodyComp.CarryHeight,
			}, 0)
			carry.SetSensor(true)
			carry.SetCollisionType(collisionTypeTrigger)
			carry.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.LayerTrigger), cp.ALL_CATEGORIES))
			carry.UserData = e
			ps.space.AddShape(carry)
			info.shapes = append(info.shapes, carry)
		}
		bodyComp.Body = body
		bodyComp.Shape = shape
		return info
	default:
		bb := cp.NewBBForExtents(center, width/2, height/2)
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetFilter(filter)
		shape.UserData = e
		if bodyComp.Type == component.BodySensor {
			shape.SetSensor(true)
			shape.SetCollisionType(collisionTypeTrigger)
		} else {
			shape.SetCollisionType(collisionTypeSolid)
		}
		ps.space.AddShape(shape)

		bodyComp.Body = ps.space.StaticBody
		bodyComp.Shape = shape
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}
}

func shapeFilter(typ component.BodyType, layer *component.CollisionLayer) cp.ShapeFilter {
	category := component.LayerSolid
	if typ == component.BodySensor {
		category = component.LayerTrigger
	}
	mask := cp.ALL_CATEGORIES
	if layer != nil {
		if layer.Category != 0 {
			category = layer.Category
		}
		if layer.Mask != 0 {
			mask = uint(layer.Mask)
		}
	}
	return cp.NewShapeFilter(cp.NO_GROUP, uint(category), mask)
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW := bounds.Width
	worldH := bounds.Height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // floor
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // ceiling
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 0.05)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.LayerSolid), cp.ALL_CATEGORIES))
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}

	ps.entities[boundsEntity] = info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, cb := range ps.characters {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := cb.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Type != component.BodyKinematic || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		ps.log.Debug("physics body removed", zap.Stringer("entity", e))
	}

	for e, cb := range ps.characters {
		if w.IsAlive(e) {
			continue
		}
		cb.remove()
		delete(ps.characters, e)
	}
}
