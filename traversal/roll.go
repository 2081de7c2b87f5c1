package traversal

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// startRoll locks the facing and lowers the envelope to the roll height,
// keeping its bottom edge in place.
func (c *Controller) startRoll() {
	env := c.body.Envelope()
	c.body.SetEnvelope(Envelope{
		Width:  env.Width,
		Height: c.cfg.RollHeight,
		Center: cp.Vector{X: env.Center.X, Y: env.Center.Y - (env.Height-c.cfg.RollHeight)/2},
	})
	c.pending = &Rolling{facingRight: c.facingRight, saved: env}

	c.anim.SetTrigger(TriggerRoll)
	c.anim.SetBool(ParamRolling, true)
}

func (c *Controller) rollingUpdate(s *Rolling, dt float64) {
	if !s.released {
		c.movement.X = common.Sign(s.facingRight) * c.cfg.RollSpeed
	}
	if c.grounded {
		c.movement.Y = -c.cfg.GroundBias
	} else {
		c.applyGravity(dt)
	}
	c.move(dt)
}

// NotifyRollComplete restores the standing envelope. It panics unless a roll
// is in progress.
func (c *Controller) NotifyRollComplete() {
	s, ok := c.state.(*Rolling)
	if !ok || s.released {
		c.violation("roll complete while not rolling")
	}
	c.body.SetEnvelope(s.saved)
	s.released = true
	c.anim.SetBool(ParamRolling, false)
}
