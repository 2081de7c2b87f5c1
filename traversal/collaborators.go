package traversal

import "github.com/jakecoffman/cp"

// Envelope is the character's collision volume: a Width x Height box whose
// centre sits at Center relative to the body position (the feet).
type Envelope struct {
	Width  float64
	Height float64
	Center cp.Vector
}

// Body is the physical character controller driven by the traversal
// controller. Move queues a displacement for the current step and SetPosition
// discards it; Grounded reports the latest contact query.
type Body interface {
	Move(delta cp.Vector)
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Grounded() bool
	Velocity() cp.Vector
	Bounds() cp.BB
	Enabled() bool
	SetEnabled(enabled bool)
	Envelope() Envelope
	SetEnvelope(env Envelope)
}

// Surface is anything a character can hang from or ride. The controller only
// holds it for the duration of a grab and never owns it.
type Surface interface {
	Position() cp.Vector
}

// RayHit is the result of a successful ray cast.
type RayHit struct {
	Point   cp.Vector
	Surface Surface
}

// World answers geometric queries. Raycast returns the first hit along dir
// (unit length) within maxDist on a shape whose layer intersects mask.
type World interface {
	Raycast(origin, dir cp.Vector, maxDist float64, mask uint) (RayHit, bool)
}

// Ladder is a climbable volume.
type Ladder interface {
	// ClimbAxis is the horizontal coordinate the climber is snapped to.
	ClimbAxis() float64
	// TravelBounds is the vertical range of the climber's position.
	TravelBounds() (bottom, top float64)
	// TopExit is where the climber stands after climbing off the top.
	TopExit() cp.Vector
}
