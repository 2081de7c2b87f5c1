package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

const (
	defaultBobAmplitude = 0.1
	defaultBobSpeed     = 3.0
)

// CollectableSystem animates uncollected items and removes collected ones,
// keeping a tally per kind.
type CollectableSystem struct {
	dt     float64
	log    *zap.Logger
	counts map[string]int
}

func NewCollectableSystem(dt float64, log *zap.Logger) *CollectableSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollectableSystem{dt: dt, log: log, counts: make(map[string]int)}
}

// Count reports how many items of kind have been collected.
func (s *CollectableSystem) Count(kind string) int { return s.counts[kind] }

func (s *CollectableSystem) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

func (s *CollectableSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var collected []ecs.Entity
	ecs.ForEach2(w, component.CollectableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collectable, t *component.Transform) {
		if c.Collected {
			collected = append(collected, e)
			return
		}

		if !c.Initialized {
			c.BaseY = t.Y
			c.Initialized = true
			if c.BobAmplitude == 0 {
				c.BobAmplitude = defaultBobAmplitude
			}
			if c.BobSpeed == 0 {
				c.BobSpeed = defaultBobSpeed
			}
		}

		c.BobPhase += c.BobSpeed * s.dt
		t.Y = c.BaseY + math.Sin(c.BobPhase)*c.BobAmplitude
		c.Spin = math.Mod(c.Spin+c.SpinSpeed*s.dt, 2*math.Pi)
		t.Yaw = c.Spin
	})

	for _, e := range collected {
		c, _ := ecs.Get(w, e, component.CollectableComponent.Kind())
		s.counts[c.Kind]++
		w.DestroyEntity(e)
		s.log.Info("item collected", zap.String("kind", c.Kind), zap.Int("count", s.counts[c.Kind]))
	}
}
