package traversal

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrInvalidConfig = errors.New("traversal: invalid config")

// Config holds the movement tuning. Speeds are world units per second and
// accelerations world units per second squared.
type Config struct {
	WalkSpeed        float64
	WalkAcceleration float64
	WalkDeceleration float64
	AirControl       float64

	JumpForce             float64
	GravityForce          float64
	GravityFallMultiplier float64
	MaxFallSpeed          float64
	// GroundBias is the constant downward speed applied while grounded so the
	// contact query stays stable.
	GroundBias float64

	RotateSpeed float64

	// LedgeRaysLength: X is the horizontal ray, Y the vertical ray.
	LedgeRaysLength cp.Vector
	// LedgeVerticalOffsets: X pushes the vertical ray forward of the body,
	// Y lifts it above the top of the body.
	LedgeVerticalOffsets cp.Vector
	// LedgeGrabOffsets: hang position relative to the two hit points.
	LedgeGrabOffsets cp.Vector
	// LedgeClimbOffset: displacement applied when a climb finishes.
	LedgeClimbOffset cp.Vector
	// LedgeProbeSkin lowers the horizontal ray below the ledge top.
	LedgeProbeSkin float64
	LedgeMask      uint

	LadderClimbSpeed float64

	RollSpeed  float64
	RollHeight float64
}

// DefaultConfig returns tuning for a 0.6 x 1.8 character.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:             5,
		WalkAcceleration:      30,
		WalkDeceleration:      40,
		AirControl:            0.6,
		JumpForce:             9,
		GravityForce:          22,
		GravityFallMultiplier: 2,
		MaxFallSpeed:          20,
		GroundBias:            2,
		RotateSpeed:           12,
		LedgeRaysLength:       cp.Vector{X: 0.5, Y: 0.8},
		LedgeVerticalOffsets:  cp.Vector{X: 0.2, Y: 0.3},
		LedgeGrabOffsets:      cp.Vector{X: 0.35, Y: 1.6},
		LedgeClimbOffset:      cp.Vector{X: 0.6, Y: 1.7},
		LedgeProbeSkin:        0.02,
		LedgeMask:             1 << 1,
		LadderClimbSpeed:      3,
		RollSpeed:             8,
		RollHeight:            0.9,
	}
}

func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"walk speed", c.WalkSpeed},
		{"walk acceleration", c.WalkAcceleration},
		{"walk deceleration", c.WalkDeceleration},
		{"jump force", c.JumpForce},
		{"gravity force", c.GravityForce},
		{"gravity fall multiplier", c.GravityFallMultiplier},
		{"max fall speed", c.MaxFallSpeed},
		{"ladder climb speed", c.LadderClimbSpeed},
		{"roll speed", c.RollSpeed},
		{"roll height", c.RollHeight},
		{"vertical ledge ray", c.LedgeRaysLength.Y},
		{"horizontal ledge ray", c.LedgeRaysLength.X},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.AirControl < 0 || c.AirControl > 1 {
		return fmt.Errorf("%w: air control must be within [0, 1], got %v", ErrInvalidConfig, c.AirControl)
	}
	if c.GroundBias < 0 || c.RotateSpeed < 0 || c.LedgeProbeSkin < 0 {
		return fmt.Errorf("%w: ground bias, rotate speed and probe skin must not be negative", ErrInvalidConfig)
	}
	if c.LedgeMask == 0 {
		return fmt.Errorf("%w: ledge mask is empty", ErrInvalidConfig)
	}
	return nil
}
