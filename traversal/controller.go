// Package traversal implements the character movement controller: a five-state
// machine (grounded, in air, on ledge, on ladder, rolling) that turns polled
// input into body displacement and animation signals.
//
// The controller is single-threaded and step driven. Completion of the ledge
// climb, ladder climb-off and roll animations is reported back through the
// Notify* commands; the controller never polls the animation layer.
package traversal

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"go.uber.org/zap"
)

// Input is one step of polled input. The *Pressed fields are press-edges:
// true for exactly one step per press.
type Input struct {
	MoveX           float64
	MoveY           float64
	JumpPressed     bool
	RollPressed     bool
	InteractPressed bool
}

type Option func(*Controller)

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func WithAnimator(anim Animator) Option {
	return func(c *Controller) {
		if anim != nil {
			c.anim = anim
		}
	}
}

type Controller struct {
	cfg   Config
	body  Body
	world World
	anim  Animator
	log   *zap.Logger

	state   State
	pending State

	input       Input
	movement    cp.Vector
	facingRight bool
	yaw         float64
	grounded    bool
	jumped      bool

	ladders ladderRegistry
	rider   rider
}

// New builds a controller in the grounded state, facing right. A body that
// starts without ground contact falls on the first step. world may be nil, in
// which case ledges are never detected.
func New(cfg Config, body Body, world World, opts ...Option) (*Controller, error) {
	if body == nil {
		return nil, fmt.Errorf("traversal: new controller: nil body")
	}
	c := &Controller{
		body:        body,
		world:       world,
		anim:        nopAnimator{},
		log:         zap.NewNop(),
		state:       stateGrounded,
		facingRight: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.grounded = body.Grounded()
	if err := c.SetConfig(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// SetConfig swaps the tuning. It is safe between steps.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	standing := c.body.Envelope().Height
	if s, ok := c.state.(*Rolling); ok {
		standing = s.saved.Height
	}
	if cfg.RollHeight > standing {
		return fmt.Errorf("%w: roll height %v exceeds standing height %v", ErrInvalidConfig, cfg.RollHeight, standing)
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) Config() Config { return c.cfg }

// Step advances the controller by dt seconds: sample input, run the current
// state, evaluate transitions, update facing, push animation values.
func (c *Controller) Step(in Input, dt float64) {
	c.input = in
	c.rider.advance()

	switch s := c.state.(type) {
	case *Grounded:
		c.groundedUpdate(dt)
		c.groundCheck()
		c.ladderCheck()
	case *InAir:
		c.inAirUpdate(dt)
		c.groundCheck()
		c.ledgeCheck()
		c.ladderCheck()
	case *OnLedge:
		c.onLedgeUpdate(s)
	case *OnLadder:
		c.onLadderUpdate(s, dt)
		c.groundCheck()
	case *Rolling:
		c.rollingUpdate(s, dt)
		c.groundCheck()
	}

	c.stateChange()
	c.rotate(dt)
	c.pushAnimator()
}

func (c *Controller) stateChange() {
	next := c.pending
	c.pending = nil

	if next == nil {
		switch s := c.state.(type) {
		case *Grounded:
			if !c.grounded {
				next = stateInAir
			}
		case *InAir:
			if c.grounded {
				next = stateGrounded
			}
		case *OnLedge:
			if s.released {
				next = c.settledState()
			}
		case *OnLadder:
			if s.released {
				next = c.settledState()
			}
		case *Rolling:
			if s.released {
				next = c.settledState()
			}
		}
	}

	if next == nil || next == c.state {
		return
	}
	c.log.Debug("traversal state change",
		zap.Stringer("from", c.state.Kind()),
		zap.Stringer("to", next.Kind()),
	)
	c.state = next
}

func (c *Controller) settledState() State {
	if c.grounded {
		return stateGrounded
	}
	return stateInAir
}

// groundCheck samples the contact query and dispatches the landing and
// leaving-ground reactions once per transition.
func (c *Controller) groundCheck() {
	now := c.body.Grounded()
	if now == c.grounded {
		return
	}
	c.grounded = now
	if now {
		c.resetJump()
	} else if !c.jumped {
		c.movement.Y = 0
	}
}

func (c *Controller) pushAnimator() {
	c.anim.SetFloat(ParamSpeed, c.body.Velocity().Length())
	c.anim.SetBool(ParamGrounded, c.body.Grounded())
}

func (c *Controller) facingSign() float64 {
	return common.Sign(c.facingRight)
}

// violation reports a broken caller contract.
func (c *Controller) violation(msg string) {
	c.log.Error("traversal contract violation", zap.String("reason", msg), zap.Stringer("state", c.state.Kind()))
	panic("traversal: " + msg)
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Kind() StateKind     { return c.state.Kind() }
func (c *Controller) Grounded() bool      { return c.grounded }
func (c *Controller) Jumped() bool        { return c.jumped }
func (c *Controller) FacingRight() bool   { return c.facingRight }
func (c *Controller) Movement() cp.Vector { return c.movement }

// Yaw is the visual facing rotation in radians: 0 faces right, -π left.
func (c *Controller) Yaw() float64 { return c.yaw }

func (c *Controller) OnLedge() bool {
	s, ok := c.state.(*OnLedge)
	return ok && !s.released
}

func (c *Controller) OnLadder() bool {
	s, ok := c.state.(*OnLadder)
	return ok && !s.released
}

func (c *Controller) Rolling() bool {
	s, ok := c.state.(*Rolling)
	return ok && !s.released
}
