package component

import "github.com/jakecoffman/cp"

// Ladder is a climbable volume. The climber's feet travel between Bottom and
// Top on the vertical line X = Axis.
type Ladder struct {
	Axis   float64
	Bottom float64
	Top    float64
	Exit   cp.Vector
}

func (l *Ladder) ClimbAxis() float64                  { return l.Axis }
func (l *Ladder) TravelBounds() (bottom, top float64) { return l.Bottom, l.Top }
func (l *Ladder) TopExit() cp.Vector                  { return l.Exit }

var LadderComponent = NewComponent[Ladder]()
