package traversal

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// Reset teleports the character to p and abandons any ledge, ladder or roll
// in progress. The mechanic is released like its completion command would;
// the next Step settles into Grounded or InAir.
func (c *Controller) Reset(p cp.Vector) {
	switch s := c.state.(type) {
	case *OnLedge:
		if !s.released {
			s.surface = nil
			s.climbing = false
			s.released = true
		}
	case *OnLadder:
		if !s.released {
			c.endClimb(s)
		}
	case *Rolling:
		if !s.released {
			c.body.SetEnvelope(s.saved)
			s.released = true
		}
	}
	c.pending = nil
	c.rider = rider{}
	c.movement = cp.Vector{}
	c.jumped = false

	c.body.SetEnabled(true)
	c.body.SetPosition(p)

	c.anim.SetBool(ParamOnLedge, false)
	c.anim.SetBool(ParamOnLadder, false)
	c.anim.SetBool(ParamRolling, false)
	c.anim.SetBool(ParamJumped, false)
	c.log.Debug("traversal reset", zap.Float64("x", p.X), zap.Float64("y", p.Y))
}
