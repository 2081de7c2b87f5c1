package traversal

import (
	"math"

	"github.com/jakecoffman/cp"
)

type fakeBody struct {
	pos      cp.Vector
	last     cp.Vector
	queued   cp.Vector
	moves    int
	grounded bool
	disabled bool
	env      Envelope
}

func newFakeBody(x, y float64, grounded bool) *fakeBody {
	return &fakeBody{
		pos:      cp.Vector{X: x, Y: y},
		grounded: grounded,
		env:      Envelope{Width: 0.6, Height: 1.8, Center: cp.Vector{X: 0, Y: 0.9}},
	}
}

// Move records the displacement and queues it for settle. Tests that never
// call settle see positions change only through SetPosition.
func (b *fakeBody) Move(delta cp.Vector) {
	b.last = delta
	b.queued = b.queued.Add(delta)
	b.moves++
}

// settle applies the queued displacement like a physics step would.
func (b *fakeBody) settle() {
	b.pos = b.pos.Add(b.queued)
	b.queued = cp.Vector{}
}

func (b *fakeBody) SetPosition(p cp.Vector) {
	b.pos = p
	b.queued = cp.Vector{}
}

func (b *fakeBody) Position() cp.Vector      { return b.pos }
func (b *fakeBody) Grounded() bool           { return b.grounded }
func (b *fakeBody) Velocity() cp.Vector      { return b.last }
func (b *fakeBody) Enabled() bool            { return !b.disabled }
func (b *fakeBody) SetEnabled(enabled bool)  { b.disabled = !enabled }
func (b *fakeBody) Envelope() Envelope       { return b.env }
func (b *fakeBody) SetEnvelope(env Envelope) { b.env = env }

func (b *fakeBody) Bounds() cp.BB {
	c := b.pos.Add(b.env.Center)
	return cp.BB{
		L: c.X - b.env.Width/2,
		B: c.Y - b.env.Height/2,
		R: c.X + b.env.Width/2,
		T: c.Y + b.env.Height/2,
	}
}

type fakeSurface struct {
	pos cp.Vector
}

func (s *fakeSurface) Position() cp.Vector { return s.pos }

type fakeBox struct {
	bb      cp.BB
	layer   uint
	surface Surface
}

type fakeWorld struct {
	boxes []fakeBox
	casts int
}

// Raycast runs a slab test against every box and keeps the nearest hit.
func (w *fakeWorld) Raycast(origin, dir cp.Vector, maxDist float64, mask uint) (RayHit, bool) {
	w.casts++
	best := math.Inf(1)
	var hit RayHit
	for _, box := range w.boxes {
		if box.layer&mask == 0 {
			continue
		}
		t, ok := slab(origin, dir, maxDist, box.bb)
		if !ok || t >= best {
			continue
		}
		best = t
		hit = RayHit{Point: origin.Add(dir.Mult(t)), Surface: box.surface}
	}
	return hit, !math.IsInf(best, 1)
}

func slab(origin, dir cp.Vector, maxDist float64, bb cp.BB) (float64, bool) {
	tmin, tmax := 0.0, maxDist
	axes := []struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, bb.L, bb.R},
		{origin.Y, dir.Y, bb.B, bb.T},
	}
	for _, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return 0, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

type fakeLadder struct {
	axis        float64
	bottom, top float64
	exit        cp.Vector
}

func (l *fakeLadder) ClimbAxis() float64                  { return l.axis }
func (l *fakeLadder) TravelBounds() (bottom, top float64) { return l.bottom, l.top }
func (l *fakeLadder) TopExit() cp.Vector                  { return l.exit }

type recorder struct {
	triggers map[string]int
	bools    map[string]bool
	floats   map[string]float64
}

func newRecorder() *recorder {
	return &recorder{
		triggers: make(map[string]int),
		bools:    make(map[string]bool),
		floats:   make(map[string]float64),
	}
}

func (r *recorder) SetFloat(name string, value float64) { r.floats[name] = value }
func (r *recorder) SetBool(name string, value bool)     { r.bools[name] = value }
func (r *recorder) SetTrigger(name string)              { r.triggers[name]++ }
