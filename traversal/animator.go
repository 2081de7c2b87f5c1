package traversal

// Animator receives the controller's animation signals. Triggers fire at most
// once per causing event; floats and bools are pushed as state changes.
type Animator interface {
	SetFloat(name string, value float64)
	SetBool(name string, value bool)
	SetTrigger(name string)
}

// Animation parameter names.
const (
	ParamSpeed    = "speed"
	ParamGrounded = "grounded"
	ParamJumped   = "jumped"
	ParamOnLedge  = "on_ledge"
	ParamOnLadder = "on_ladder"
	ParamRolling  = "rolling"
)

// Animation trigger names.
const (
	TriggerJump           = "jump"
	TriggerLedgeGrab      = "ledge_grab"
	TriggerLedgeClimb     = "ledge_climb"
	TriggerLadderGrab     = "ladder_grab"
	TriggerLadderClimbOff = "ladder_climb_off"
	TriggerRoll           = "roll"
)

type nopAnimator struct{}

func (nopAnimator) SetFloat(string, float64) {}
func (nopAnimator) SetBool(string, bool)     {}
func (nopAnimator) SetTrigger(string)        {}
