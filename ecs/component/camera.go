package component

type Camera struct {
	TargetName string
	// Zoom is screen pixels per world unit.
	Zoom       float64
	Smoothness float64
	X          float64
	Y          float64
}

var CameraComponent = NewComponent[Camera]()
