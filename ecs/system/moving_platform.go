package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// MovingPlatformSystem drives kinematic platforms along their points. The
// body is placed directly so riders read the new position in the same tick.
type MovingPlatformSystem struct {
	dt float64
}

func NewMovingPlatformSystem(dt float64) *MovingPlatformSystem {
	return &MovingPlatformSystem{dt: dt}
}

func (s *MovingPlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mp *component.MovingPlatform, t *component.Transform) {
		pos := advancePlatform(mp, cp.Vector{X: t.X, Y: t.Y}, s.dt)
		t.X = pos.X
		t.Y = pos.Y
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			body.Body.SetPosition(pos)
		}
	})
}

// advancePlatform moves pos toward the current point. On arrival the platform
// waits Delay seconds, then targets the next point, wrapping to the first.
// A path needs two points to move at all.
func advancePlatform(mp *component.MovingPlatform, pos cp.Vector, dt float64) cp.Vector {
	if len(mp.Points) < 2 || mp.Speed <= 0 {
		return pos
	}
	mp.Index %= len(mp.Points)

	if mp.Wait > 0 {
		mp.Wait -= dt
		return pos
	}

	target := mp.Points[mp.Index]
	step := mp.Speed * dt
	if pos.Distance(target) > step {
		return pos.Add(target.Sub(pos).Normalize().Mult(step))
	}

	mp.Index = (mp.Index + 1) % len(mp.Points)
	mp.Wait = mp.Delay
	return target
}
