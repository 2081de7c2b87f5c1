package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
)

// groundSkin is how far the ground sensor reaches below the feet.
const groundSkin = 0.05

// CharacterBody is the Chipmunk side of traversal.Body. The body origin is the
// character's feet; displacement queued with Move is turned into a velocity
// for the next space step.
type CharacterBody struct {
	space  *cp.Space
	entity ecs.Entity
	body   *cp.Body
	shape  *cp.Shape
	ground *cp.Shape
	env    traversal.Envelope

	pending  cp.Vector
	enabled  bool
	contact  bool
	grounded bool

	groundShapes map[*cp.Shape]*CharacterBody
}

// NewCharacterBody adds a non-rotating body for e to the space, with its feet
// at pos.
func (ps *PhysicsSystem) NewCharacterBody(e ecs.Entity, pos cp.Vector, env traversal.Envelope) *CharacterBody {
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(pos)
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(body, cp.Vector{}, damping, dt)
	})
	body.UserData = e
	ps.space.AddBody(body)

	cb := &CharacterBody{
		space:        ps.space,
		entity:       e,
		body:         body,
		enabled:      true,
		groundShapes: ps.groundShapes,
	}
	cb.attachShapes(env)
	ps.characters[e] = cb
	return cb
}

func (cb *CharacterBody) attachShapes(env traversal.Envelope) {
	cb.env = env
	bottom := env.Center.Y - env.Height/2

	cb.shape = cp.NewBox2(cb.body, cp.NewBBForExtents(env.Center, env.Width/2, env.Height/2), 0)
	cb.shape.SetFriction(0)
	cb.shape.SetCollisionType(collisionTypeCharacter)
	cb.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.LayerCharacter), uint(component.LayerSolid|component.LayerLedge|component.LayerTrigger)))
	cb.shape.SetSensor(!cb.enabled)
	cb.shape.UserData = cb.entity
	cb.space.AddShape(cb.shape)

	cb.ground = cp.NewBox2(cb.body, cp.BB{
		L: env.Center.X - env.Width*0.45,
		B: bottom - groundSkin,
		R: env.Center.X + env.Width*0.45,
		T: bottom + groundSkin,
	}, 0)
	cb.ground.SetSensor(true)
	cb.ground.SetCollisionType(collisionTypeGround)
	cb.ground.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(component.LayerCharacter), uint(component.LayerSolid|component.LayerLedge)))
	cb.ground.UserData = cb.entity
	cb.space.AddShape(cb.ground)
	cb.groundShapes[cb.ground] = cb
}

func (cb *CharacterBody) detachShapes() {
	delete(cb.groundShapes, cb.ground)
	cb.space.RemoveShape(cb.ground)
	cb.space.RemoveShape(cb.shape)
	cb.ground = nil
	cb.shape = nil
}

func (cb *CharacterBody) remove() {
	cb.detachShapes()
	cb.space.RemoveBody(cb.body)
}

func (cb *CharacterBody) prepare(dt float64) {
	cb.contact = false
	if !cb.enabled || dt <= 0 {
		cb.body.SetVelocityVector(cp.Vector{})
	} else {
		cb.body.SetVelocityVector(cb.pending.Mult(1 / dt))
	}
	cb.pending = cp.Vector{}
}

func (cb *CharacterBody) settle() {
	cb.grounded = cb.enabled && cb.contact
}

// Move queues a displacement for the next space step. Calls within one tick
// accumulate.
func (cb *CharacterBody) Move(delta cp.Vector) {
	cb.pending = cb.pending.Add(delta)
}

func (cb *CharacterBody) Position() cp.Vector { return cb.body.Position() }

// SetPosition places the body and discards any displacement queued this tick.
func (cb *CharacterBody) SetPosition(p cp.Vector) {
	cb.body.SetPosition(p)
	cb.pending = cp.Vector{}
}

func (cb *CharacterBody) Grounded() bool { return cb.grounded }

func (cb *CharacterBody) Velocity() cp.Vector {
	if !cb.enabled {
		return cp.Vector{}
	}
	return cb.body.Velocity()
}

func (cb *CharacterBody) Bounds() cp.BB {
	return cp.NewBBForExtents(cb.Position().Add(cb.env.Center), cb.env.Width/2, cb.env.Height/2)
}

func (cb *CharacterBody) Enabled() bool { return cb.enabled }

// SetEnabled switches collision response. A disabled body keeps reporting
// trigger overlaps but neither collides nor moves on its own.
func (cb *CharacterBody) SetEnabled(enabled bool) {
	cb.enabled = enabled
	cb.shape.SetSensor(!enabled)
	if !enabled {
		cb.grounded = false
		cb.body.SetVelocityVector(cp.Vector{})
	}
}

func (cb *CharacterBody) Envelope() traversal.Envelope { return cb.env }

// SetEnvelope rebuilds the collision shapes. Overlapping trigger volumes see
// an exit followed by a fresh enter on the next step.
func (cb *CharacterBody) SetEnvelope(env traversal.Envelope) {
	if env == cb.env {
		return
	}
	cb.detachShapes()
	cb.attachShapes(env)
}

func (cb *CharacterBody) Entity() ecs.Entity { return cb.entity }
