package component

// Transform places an entity in world units, Y up. Characters are placed by
// their feet, every other body by its centre. Yaw is the visual facing.
type Transform struct {
	X   float64
	Y   float64
	Yaw float64
}

var TransformComponent = NewComponent[Transform]()
