package traversal

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

func (c *Controller) ladderEntryReady() bool {
	return c.pending == nil && c.input.InteractPressed && c.ladders.nearby != nil
}

// ladderCheck enters the nearby ladder on an interact press. The snap onto
// the climb axis replaces whatever displacement the step already queued.
func (c *Controller) ladderCheck() {
	if !c.ladderEntryReady() {
		return
	}
	l := c.ladders.nearby

	c.grounded = false
	c.resetJump()
	c.movement = cp.Vector{}

	pos := c.body.Position()
	axis := l.ClimbAxis()
	c.facingRight = pos.X <= axis
	bottom, top := l.TravelBounds()
	c.body.SetPosition(cp.Vector{X: axis, Y: common.Clamp(pos.Y, bottom, top)})

	c.ladders.active = l
	c.pending = &OnLadder{ladder: l}

	c.anim.SetTrigger(TriggerLadderGrab)
	c.anim.SetBool(ParamOnLadder, true)
}

// onLadderUpdate runs at most one exit path per step: jump dismount, then
// stepping off at the bottom or losing the ladder, then reaching the top.
func (c *Controller) onLadderUpdate(s *OnLadder, dt float64) {
	if s.released {
		return
	}
	if s.climbingOff {
		c.body.Move(c.rider.delta)
		return
	}

	if c.input.JumpPressed {
		c.facingRight = !c.facingRight
		c.movement = cp.Vector{X: c.facingSign() * c.cfg.WalkSpeed}
		c.endClimb(s)
		c.jump()
		c.move(dt)
		return
	}

	if (c.grounded && c.input.MoveY < 0) || c.ladders.nearby != s.ladder {
		c.movement = cp.Vector{}
		c.endClimb(s)
		c.body.Move(c.rider.delta)
		return
	}

	pos := c.body.Position()
	bottom, top := s.ladder.TravelBounds()
	dy := c.input.MoveY * c.cfg.LadderClimbSpeed * dt

	// Only climbing up reaches the top; a climber resting there stays put.
	if dy > 0 && pos.Y+dy >= top {
		c.body.SetPosition(cp.Vector{X: s.ladder.ClimbAxis(), Y: top})
		c.movement = cp.Vector{}
		s.climbingOff = true
		c.anim.SetTrigger(TriggerLadderClimbOff)
		c.body.Move(c.rider.delta)
		return
	}
	if pos.Y+dy < bottom {
		dy = min(0, bottom-pos.Y)
	}

	c.movement = cp.Vector{Y: dy / dt}
	c.body.Move(cp.Vector{Y: dy}.Add(c.rider.delta))
}

func (c *Controller) endClimb(s *OnLadder) {
	s.released = true
	s.climbingOff = false
	c.ladders.active = nil
	c.anim.SetBool(ParamOnLadder, false)
}

// NotifyLadderClimbOffComplete places the climber at the ladder's top exit and
// ends the climb. It panics unless a climb-off is in progress.
func (c *Controller) NotifyLadderClimbOffComplete() {
	s, ok := c.state.(*OnLadder)
	if !ok || s.released || c.ladders.active == nil {
		c.violation("ladder climb-off complete with no active ladder")
	}
	if !s.climbingOff {
		c.violation("ladder climb-off complete before reaching the top")
	}
	c.body.SetPosition(c.ladders.active.TopExit())
	c.endClimb(s)
}
