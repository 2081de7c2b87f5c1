package traversal

import (
	"math"

	"github.com/milk9111/platformer/common"
)

const yawLeft = math.Pi

// rotate eases the visual yaw towards the facing direction. Facing only
// follows horizontal movement while grounded.
func (c *Controller) rotate(dt float64) {
	if c.state.Kind() == KindGrounded && c.movement.X != 0 {
		c.facingRight = c.movement.X > 0
	}
	target := 0.0
	if !c.facingRight {
		target = -yawLeft
	}
	c.yaw = common.Lerp(c.yaw, target, common.Clamp(c.cfg.RotateSpeed*dt, 0, 1))
}
