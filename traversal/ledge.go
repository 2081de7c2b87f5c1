package traversal

import "github.com/jakecoffman/cp"

func (c *Controller) ledgeCheck() {
	if c.pending != nil || c.world == nil || c.grounded {
		return
	}
	anchor, ok := c.probeLedge()
	if !ok {
		return
	}
	c.grabLedge(anchor)
}

// grabLedge hangs the character flush against the ledge face, below the top,
// and records its offset from the surface so it follows moving geometry.
func (c *Controller) grabLedge(anchor ledgeAnchor) {
	c.movement = cp.Vector{}
	c.body.SetEnabled(false)

	pos := cp.Vector{
		X: anchor.horizontal.Point.X - c.facingSign()*c.cfg.LedgeGrabOffsets.X,
		Y: anchor.vertical.Point.Y - c.cfg.LedgeGrabOffsets.Y,
	}
	c.body.SetPosition(pos)

	s := &OnLedge{surface: anchor.vertical.Surface}
	if s.surface != nil {
		s.offset = pos.Sub(s.surface.Position())
	}
	c.pending = s

	c.anim.SetTrigger(TriggerLedgeGrab)
	c.anim.SetBool(ParamOnLedge, true)
}

func (c *Controller) onLedgeUpdate(s *OnLedge) {
	if s.released {
		return
	}
	if s.surface != nil {
		c.body.SetPosition(s.surface.Position().Add(s.offset))
	}
	if c.input.JumpPressed && !s.climbing {
		s.climbing = true
		c.anim.SetTrigger(TriggerLedgeClimb)
	}
}

// NotifyLedgeClimbComplete finishes a ledge climb: the character is placed on
// top of the ledge and physics resumes. It panics unless a climb is in
// progress.
func (c *Controller) NotifyLedgeClimbComplete() {
	s, ok := c.state.(*OnLedge)
	if !ok || s.released {
		c.violation("ledge climb complete while not on a ledge")
	}
	if !s.climbing {
		c.violation("ledge climb complete before the climb started")
	}

	climb := cp.Vector{X: c.facingSign() * c.cfg.LedgeClimbOffset.X, Y: c.cfg.LedgeClimbOffset.Y}
	c.body.SetPosition(c.body.Position().Add(climb))

	s.surface = nil
	s.climbing = false
	s.released = true
	c.body.SetEnabled(true)
	c.anim.SetBool(ParamOnLedge, false)
}
