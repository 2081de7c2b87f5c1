package traversal

import "github.com/jakecoffman/cp"

// rider carries the character along with a moving surface it stands on.
type rider struct {
	carrier Surface
	last    cp.Vector
	delta   cp.Vector
}

func (r *rider) advance() {
	if r.carrier == nil {
		r.delta = cp.Vector{}
		return
	}
	p := r.carrier.Position()
	r.delta = p.Sub(r.last)
	r.last = p
}

// Ride attaches the character to a moving surface; its displacement is added
// to every move from the next step on.
func (c *Controller) Ride(s Surface) {
	if s == nil {
		return
	}
	c.rider = rider{carrier: s, last: s.Position()}
}

// Dismount detaches from s if it is the current carrier.
func (c *Controller) Dismount(s Surface) {
	if c.rider.carrier == s {
		c.rider = rider{}
	}
}

func (c *Controller) Carrier() Surface { return c.rider.carrier }
