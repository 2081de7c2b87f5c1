package traversal

import "github.com/jakecoffman/cp"

type StateKind int

const (
	KindGrounded StateKind = iota
	KindInAir
	KindOnLedge
	KindOnLadder
	KindRolling
)

func (k StateKind) String() string {
	switch k {
	case KindGrounded:
		return "grounded"
	case KindInAir:
		return "in_air"
	case KindOnLedge:
		return "on_ledge"
	case KindOnLadder:
		return "on_ladder"
	case KindRolling:
		return "rolling"
	default:
		return "unknown"
	}
}

// State is the active traversal state. Each variant carries only the data its
// mechanic needs; callers type-switch on the concrete type.
type State interface {
	Kind() StateKind
}

// Stateless singletons (avoid allocations on transitions).
var (
	stateGrounded State = &Grounded{}
	stateInAir    State = &InAir{}
)

type Grounded struct{}

type InAir struct{}

// OnLedge hangs from a surface. released is set by the climb-complete command
// and consumed by the next transition step.
type OnLedge struct {
	surface  Surface
	offset   cp.Vector
	climbing bool
	released bool
}

// OnLadder climbs the active ladder. While climbingOff the climber ignores
// input until the climb-off animation reports completion.
type OnLadder struct {
	ladder      Ladder
	climbingOff bool
	released    bool
}

// Rolling dashes in a locked direction with a reduced envelope.
type Rolling struct {
	facingRight bool
	saved       Envelope
	released    bool
}

func (*Grounded) Kind() StateKind { return KindGrounded }
func (*InAir) Kind() StateKind    { return KindInAir }
func (*OnLedge) Kind() StateKind  { return KindOnLedge }
func (*OnLadder) Kind() StateKind { return KindOnLadder }
func (*Rolling) Kind() StateKind  { return KindRolling }

func (s *OnLedge) Surface() Surface { return s.surface }
func (s *OnLedge) Climbing() bool   { return s.climbing }

func (s *OnLadder) Ladder() Ladder    { return s.ladder }
func (s *OnLadder) ClimbingOff() bool { return s.climbingOff }

func (s *Rolling) FacingRight() bool { return s.facingRight }
