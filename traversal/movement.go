package traversal

import "github.com/milk9111/platformer/common"

func (c *Controller) groundedUpdate(dt float64) {
	// Accelerates towards walk speed with input, decelerates to rest without.
	if c.input.MoveX != 0 {
		c.movement.X = common.MoveTowards(c.movement.X, c.cfg.WalkSpeed*c.input.MoveX, c.cfg.WalkAcceleration*dt)
	} else {
		c.movement.X = common.MoveTowards(c.movement.X, 0, c.cfg.WalkDeceleration*dt)
	}
	// A jump stays under gravity until the contact query lets go.
	if c.jumped {
		c.applyGravity(dt)
	} else {
		c.movement.Y = -c.cfg.GroundBias
	}

	switch {
	case c.ladderEntryReady():
		// the ladder takes the step; ladderCheck snaps onto it
	case c.jump():
	case c.input.RollPressed:
		c.startRoll()
	}

	c.move(dt)
}

func (c *Controller) inAirUpdate(dt float64) {
	// Coasts when there is no input.
	if c.input.MoveX != 0 {
		c.movement.X = common.MoveTowards(c.movement.X, c.cfg.WalkSpeed*c.input.MoveX, c.cfg.WalkAcceleration*c.cfg.AirControl*dt)
	}
	c.applyGravity(dt)
	c.move(dt)
}

// applyGravity uses the steeper multiplier once the character stops rising.
// The branch is chosen from the velocity before this step, so zero counts as
// rising.
func (c *Controller) applyGravity(dt float64) {
	if c.movement.Y >= 0 {
		c.movement.Y -= c.cfg.GravityForce * dt
	} else {
		c.movement.Y -= c.cfg.GravityForce * c.cfg.GravityFallMultiplier * dt
	}
}

// jump applies the jump impulse on a press-edge when no jump is in progress.
func (c *Controller) jump() bool {
	if !c.input.JumpPressed || c.jumped {
		return false
	}
	c.jumped = true
	c.movement.Y = c.cfg.JumpForce
	c.anim.SetTrigger(TriggerJump)
	c.anim.SetBool(ParamJumped, true)
	return true
}

func (c *Controller) resetJump() {
	c.jumped = false
	c.anim.SetBool(ParamJumped, false)
}

// move clamps the vertical velocity and hands the step's displacement to the
// body, including whatever the ridden platform moved since the last step.
func (c *Controller) move(dt float64) {
	c.movement.Y = common.Clamp(c.movement.Y, -c.cfg.MaxFallSpeed, c.cfg.JumpForce)
	c.body.Move(c.movement.Mult(dt).Add(c.rider.delta))
}
