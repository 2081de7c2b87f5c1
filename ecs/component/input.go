package component

// Input stores per-frame input state for an entity. The *Pressed fields are
// press-edges.
type Input struct {
	MoveX           float64
	MoveY           float64
	JumpPressed     bool
	RollPressed     bool
	InteractPressed bool
}

var InputComponent = NewComponent[Input]()
