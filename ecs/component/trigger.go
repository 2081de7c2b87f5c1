package component

// Trigger runs a script when a character enters or leaves the entity's
// sensor volume.
type Trigger struct {
	Script string
	Params map[string]any
	// Once disables the trigger after its first enter.
	Once  bool
	Fired bool
}

var TriggerComponent = NewComponent[Trigger]()
