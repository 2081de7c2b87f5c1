package component

// Collectable bobs on a sine wave and spins until a character touches it.
type Collectable struct {
	Kind         string
	BaseY        float64
	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
	SpinSpeed    float64
	Spin         float64
	Collected    bool
	Initialized  bool
}

var CollectableComponent = NewComponent[Collectable]()
