package component

import "github.com/jakecoffman/cp"

// MovingPlatform loops a kinematic body through Points at Speed units per
// second, waiting Delay seconds at each point.
type MovingPlatform struct {
	Points []cp.Vector
	Speed  float64
	Delay  float64

	Index int
	Wait  float64
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()
