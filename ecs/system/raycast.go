package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/traversal"
)

// spaceRaycaster answers the ledge probe with Chipmunk segment queries.
// Sensors never block a ray.
type spaceRaycaster struct {
	space *cp.Space
}

func (r spaceRaycaster) Raycast(origin, dir cp.Vector, maxDist float64, mask uint) (traversal.RayHit, bool) {
	if r.space == nil || maxDist <= 0 {
		return traversal.RayHit{}, false
	}
	end := origin.Add(dir.Mult(maxDist))
	info := r.space.SegmentQueryFirst(origin, end, 0, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask))
	if info.Shape == nil {
		return traversal.RayHit{}, false
	}
	// A shape's body is the surface: the static body never moves, a
	// platform's kinematic body carries the hanging character with it.
	return traversal.RayHit{Point: info.Point, Surface: info.Shape.Body()}, true
}
