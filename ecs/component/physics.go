package component

import "github.com/jakecoffman/cp"

type BodyType int

const (
	BodyStatic BodyType = iota
	BodyKinematic
	BodySensor
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration for
// level geometry, platforms and trigger volumes. The box is centred on the
// entity transform.
type PhysicsBody struct {
	Type     BodyType
	Width    float64
	Height   float64
	Friction float64
	// CarryHeight adds a sensor of this height on top of a kinematic body;
	// characters inside it ride the body.
	CarryHeight float64

	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
