package traversal

import "github.com/jakecoffman/cp"

var (
	down  = cp.Vector{X: 0, Y: -1}
	right = cp.Vector{X: 1, Y: 0}
)

// ledgeAnchor is a confirmed ledge: the top of the surface and its face.
type ledgeAnchor struct {
	vertical   RayHit
	horizontal RayHit
}

// probeLedge casts a downward ray from above the leading edge of the body and,
// on a hit, a forward ray just below the hit height. Both must hit.
func (c *Controller) probeLedge() (ledgeAnchor, bool) {
	facing := c.facingSign()
	pos := c.body.Position()
	bb := c.body.Bounds()

	front := bb.R
	if !c.facingRight {
		front = bb.L
	}
	origin := cp.Vector{
		X: front + facing*c.cfg.LedgeVerticalOffsets.X,
		Y: bb.T + c.cfg.LedgeVerticalOffsets.Y,
	}
	vertical, ok := c.world.Raycast(origin, down, c.cfg.LedgeRaysLength.Y, c.cfg.LedgeMask)
	if !ok {
		return ledgeAnchor{}, false
	}

	origin = cp.Vector{X: pos.X, Y: vertical.Point.Y - c.cfg.LedgeProbeSkin}
	horizontal, ok := c.world.Raycast(origin, right.Mult(facing), c.cfg.LedgeRaysLength.X, c.cfg.LedgeMask)
	if !ok {
		return ledgeAnchor{}, false
	}
	return ledgeAnchor{vertical: vertical, horizontal: horizontal}, true
}
