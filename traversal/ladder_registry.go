package traversal

// ladderRegistry tracks the ladder volume the character overlaps and the one
// being climbed.
type ladderRegistry struct {
	nearby Ladder
	active Ladder
}

// EnterLadder records l as the nearby ladder. It is called by trigger volumes
// and is independent of the current state.
func (c *Controller) EnterLadder(l Ladder) {
	c.ladders.nearby = l
}

// ExitLadder clears the nearby ladder if it is l.
func (c *Controller) ExitLadder(l Ladder) {
	if c.ladders.nearby == l {
		c.ladders.nearby = nil
	}
}

func (c *Controller) NearbyLadder() Ladder { return c.ladders.nearby }
func (c *Controller) ActiveLadder() Ladder { return c.ladders.active }
