package system

import (
	"math"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestCollectableBobsAroundItsStart(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 1, Y: 2})
	_ = ecs.Add(w, e, component.CollectableComponent.Kind(), &component.Collectable{Kind: "gem", BobSpeed: math.Pi / 2, BobAmplitude: 0.5, SpinSpeed: 1})

	s := NewCollectableSystem(1, nil)
	want := []float64{2.5, 2, 1.5, 2}
	for i, y := range want {
		s.Update(w)
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if math.Abs(tr.Y-y) > 1e-9 {
			t.Fatalf("tick %d: y = %v, want %v", i, tr.Y, y)
		}
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if math.Abs(tr.Yaw-4) > 1e-9 {
		t.Fatalf("yaw = %v, want 4", tr.Yaw)
	}
}

func TestCollectableDefaults(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Y: 1})
	_ = ecs.Add(w, e, component.CollectableComponent.Kind(), &component.Collectable{})

	NewCollectableSystem(testDT, nil).Update(w)

	c, _ := ecs.Get(w, e, component.CollectableComponent.Kind())
	if c.BaseY != 1 || c.BobAmplitude != defaultBobAmplitude || c.BobSpeed != defaultBobSpeed {
		t.Fatalf("collectable = %+v", c)
	}
}

func TestCollectedItemsAreRemovedAndCounted(t *testing.T) {
	w := ecs.NewWorld()
	s := NewCollectableSystem(testDT, nil)
	kinds := []string{"gem", "gem", "key"}
	var items []ecs.Entity
	for _, kind := range kinds {
		e := w.CreateEntity()
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
		_ = ecs.Add(w, e, component.CollectableComponent.Kind(), &component.Collectable{Kind: kind})
		items = append(items, e)
	}

	for _, e := range items[:2] {
		c, _ := ecs.Get(w, e, component.CollectableComponent.Kind())
		c.Collected = true
	}
	s.Update(w)

	if w.IsAlive(items[0]) || w.IsAlive(items[1]) || !w.IsAlive(items[2]) {
		t.Fatal("wrong entities destroyed")
	}
	if s.Count("gem") != 2 || s.Count("key") != 0 || s.Total() != 2 {
		t.Fatalf("counts gem=%d key=%d total=%d", s.Count("gem"), s.Count("key"), s.Total())
	}
}
