package component

import "image/color"

// DebugShape draws the entity as a filled box in the debug renderer.
type DebugShape struct {
	Color  color.Color
	Width  float64
	Height float64
	// Character shapes are anchored at the feet instead of the centre.
	Anchored bool
}

var DebugShapeComponent = NewComponent[DebugShape]()
