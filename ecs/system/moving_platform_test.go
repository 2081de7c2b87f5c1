package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestAdvancePlatformDwellsAndWraps(t *testing.T) {
	mp := &component.MovingPlatform{
		Points: []cp.Vector{{X: 0, Y: 0}, {X: 2, Y: 0}},
		Speed:  1,
		Delay:  0.5,
	}
	pos := cp.Vector{}

	steps := []struct {
		x     float64
		index int
	}{
		{x: 0, index: 1},   // arrived at the first point
		{x: 0, index: 1},   // dwelling
		{x: 0.5, index: 1}, // travelling
		{x: 1, index: 1},
		{x: 1.5, index: 1},
		{x: 2, index: 0}, // arrived, wraps to the first point
		{x: 2, index: 0},
		{x: 1.5, index: 0},
	}
	for i, want := range steps {
		pos = advancePlatform(mp, pos, 0.5)
		if pos.X != want.x || pos.Y != 0 || mp.Index != want.index {
			t.Fatalf("step %d: pos=%v index=%d, want x=%v index=%d", i, pos, mp.Index, want.x, want.index)
		}
	}
}

func TestAdvancePlatformEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		mp   component.MovingPlatform
		want cp.Vector
	}{
		{name: "no_points", mp: component.MovingPlatform{Speed: 1}, want: cp.Vector{X: 1, Y: 1}},
		{name: "no_speed", mp: component.MovingPlatform{Points: []cp.Vector{{X: 5}, {X: 6}}}, want: cp.Vector{X: 1, Y: 1}},
		{name: "single_point", mp: component.MovingPlatform{Points: []cp.Vector{{X: 5}}, Speed: 1}, want: cp.Vector{X: 1, Y: 1}},
		{name: "index_out_of_range", mp: component.MovingPlatform{Points: []cp.Vector{{X: 1, Y: 1}, {X: 1, Y: 3}}, Speed: 1, Index: 3}, want: cp.Vector{X: 1, Y: 1.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := advancePlatform(&tc.mp, cp.Vector{X: 1, Y: 1}, 0.5)
			if got != tc.want {
				t.Fatalf("pos = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMovingPlatformSystemMovesBody(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	body := cp.NewKinematicBody()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Type: component.BodyKinematic, Body: body}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{
		Points: []cp.Vector{{X: 4, Y: 1}, {X: 0, Y: 1}},
		Speed:  2,
	}); err != nil {
		t.Fatal(err)
	}

	NewMovingPlatformSystem(0.5).Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 1 || tr.Y != 1 {
		t.Fatalf("transform = %+v, want (1, 1)", tr)
	}
	if got := body.Position(); got != (cp.Vector{X: 1, Y: 1}) {
		t.Fatalf("body position = %v, want (1, 1)", got)
	}
}
