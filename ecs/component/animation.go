package component

// AnimationDef describes one clip. Frames advance at FPS; a clip that does
// not loop stops on its last frame.
type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
	// Complete names the traversal mechanic a one-shot clip finishes, if any.
	Complete string
}

// Animation is a small parameter-driven state machine. It receives the
// traversal controller's floats, bools and triggers and picks clips from
// them.
type Animation struct {
	Defs         map[string]AnimationDef
	TriggerClips map[string]string
	Current      string
	Frame        int
	FrameTimer   int
	Playing      bool

	Floats   map[string]float64
	Bools    map[string]bool
	Triggers []string
}

func (a *Animation) SetFloat(name string, value float64) {
	if a.Floats == nil {
		a.Floats = make(map[string]float64)
	}
	a.Floats[name] = value
}

func (a *Animation) SetBool(name string, value bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	a.Bools[name] = value
}

// SetTrigger queues a one-shot signal until the animation system consumes it.
func (a *Animation) SetTrigger(name string) {
	a.Triggers = append(a.Triggers, name)
}

// Play restarts clip from its first frame. Unknown clips are ignored.
func (a *Animation) Play(clip string) bool {
	if _, ok := a.Defs[clip]; !ok {
		return false
	}
	a.Current = clip
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

var AnimationComponent = NewComponent[Animation]()
