package system

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func addControlled(t *testing.T, w *ecs.World, ps *PhysicsSystem, feet cp.Vector) (*CharacterBody, *component.Character) {
	t.Helper()
	e, cb := addCharacter(t, w, ps, feet)
	ctrl, err := traversal.New(traversal.DefaultConfig(), cb, ps.World())
	if err != nil {
		t.Fatal(err)
	}
	ch := &component.Character{Controller: ctrl, Body: cb, Spawn: cp.Vector{X: -3, Y: 1}}
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), ch); err != nil {
		t.Fatal(err)
	}
	return cb, ch
}

func addScriptVolume(t *testing.T, w *ecs.World, x, y float64, trig *component.Trigger) ecs.Entity {
	t.Helper()
	e := addBlock(t, w, x, y, 2, 2, component.BodySensor, 0)
	if err := ecs.Add(w, e, component.TriggerComponent.Kind(), trig); err != nil {
		t.Fatal(err)
	}
	return e
}

func tickTriggers(w *ecs.World, ps *PhysicsSystem, ts *TriggerSystem) {
	ps.Update(w)
	ts.Update(w)
	w.Events().Drain()
}

func TestTriggerSystemLadderProximity(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, nil)
	ts := NewTriggerSystem(nil)

	volume := addBlock(t, w, 0, 2, 1, 4, component.BodySensor, 0)
	ladder := &component.Ladder{Axis: 0, Bottom: 0, Top: 3, Exit: cp.Vector{X: 1, Y: 4}}
	if err := ecs.Add(w, volume, component.LadderComponent.Kind(), ladder); err != nil {
		t.Fatal(err)
	}
	cb, ch := addControlled(t, w, ps, cp.Vector{X: 0, Y: 0.5})

	tickTriggers(w, ps, ts)
	if ch.Controller.NearbyLadder() != ladder {
		t.Fatalf("nearby ladder = %v, want %v", ch.Controller.NearbyLadder(), ladder)
	}

	cb.SetPosition(cp.Vector{X: 8, Y: 0.5})
	tickTriggers(w, ps, ts)
	if ch.Controller.NearbyLadder() != nil {
		t.Fatal("ladder still registered after leaving its volume")
	}
}

func TestTriggerSystemPlatformRiding(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, nil)
	ts := NewTriggerSystem(nil)

	platform := w.CreateEntity()
	if err := ecs.Add(w, platform, component.TransformComponent.Kind(), &component.Transform{X: 0, Y: -0.25}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, platform, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Type: component.BodyKinematic, Width: 3, Height: 0.5, CarryHeight: 0.3}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, platform, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{Points: []cp.Vector{{X: 0, Y: -0.25}}, Speed: 1}); err != nil {
		t.Fatal(err)
	}
	cb, ch := addControlled(t, w, ps, cp.Vector{X: 0, Y: 0})

	tickTriggers(w, ps, ts)
	body, _ := ecs.Get(w, platform, component.PhysicsBodyComponent.Kind())
	if ch.Controller.Carrier() != traversal.Surface(body.Body) {
		t.Fatalf("carrier = %v, want the platform body", ch.Controller.Carrier())
	}

	cb.SetPosition(cp.Vector{X: 0, Y: 6})
	tickTriggers(w, ps, ts)
	if ch.Controller.Carrier() != nil {
		t.Fatal("still riding after leaving the platform")
	}
}

func TestTriggerSystemResetScript(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   cp.Vector
	}{
		{name: "explicit_point", params: map[string]any{"x": 5, "y": 2.5}, want: cp.Vector{X: 5, Y: 2.5}},
		{name: "spawn_point", want: cp.Vector{X: -3, Y: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(testDT, nil)
			ts := NewTriggerSystem(nil)
			addScriptVolume(t, w, 0, 1, &component.Trigger{Script: "reset.tengo", Params: tc.params})
			cb, ch := addControlled(t, w, ps, cp.Vector{X: 0, Y: 0.5})
			cb.SetEnabled(false)

			tickTriggers(w, ps, ts)
			if got := cb.Position(); got.Distance(tc.want) > 1e-9 {
				t.Fatalf("position = %v, want %v", got, tc.want)
			}
			if !cb.Enabled() {
				t.Fatal("reset left the body disabled")
			}
			if ch.Controller.Movement() != (cp.Vector{}) {
				t.Fatalf("movement = %v, want zero", ch.Controller.Movement())
			}
		})
	}
}

func TestTriggerSystemCollectScript(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, nil)
	ts := NewTriggerSystem(nil)
	volume := addScriptVolume(t, w, 0, 1, &component.Trigger{Script: "collect.tengo", Params: map[string]any{"kind": "gem"}})
	if err := ecs.Add(w, volume, component.CollectableComponent.Kind(), &component.Collectable{Kind: "gem"}); err != nil {
		t.Fatal(err)
	}
	addControlled(t, w, ps, cp.Vector{X: 0, Y: 0.5})

	tickTriggers(w, ps, ts)
	c, _ := ecs.Get(w, volume, component.CollectableComponent.Kind())
	if !c.Collected {
		t.Fatal("collectable not collected")
	}
	if ecs.Has(w, volume, component.PhysicsBodyComponent.Kind()) {
		t.Fatal("collected volume kept its physics body")
	}

	// the body leaves the space on the next step and the exit is harmless
	tickTriggers(w, ps, ts)
	if len(ps.entities) != 0 {
		t.Fatalf("bodies left in the space: %d", len(ps.entities))
	}
}

func TestTriggerSystemOnceFiresOnlyOnce(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(testDT, nil)
	ts := NewTriggerSystem(zap.New(core))
	ts.loadScript = func(string) ([]byte, error) {
		return []byte(`
on_enter := func(engine, params) { engine.log("hit") }
on_exit := func(engine, params) { engine.log("left") }
`), nil
	}
	addScriptVolume(t, w, 0, 1, &component.Trigger{Script: "once.tengo", Once: true})
	cb, _ := addControlled(t, w, ps, cp.Vector{X: 0, Y: 0.5})

	for range 2 {
		tickTriggers(w, ps, ts)
		cb.SetPosition(cp.Vector{X: 8, Y: 0.5})
		tickTriggers(w, ps, ts)
		cb.SetPosition(cp.Vector{X: 0, Y: 0.5})
	}

	if got := logs.FilterMessage("hit").Len(); got != 1 {
		t.Fatalf("enter ran %d times, want 1", got)
	}
	if got := logs.FilterMessage("left").Len(); got != 2 {
		t.Fatalf("exit ran %d times, want 2", got)
	}
}

func TestTriggerSystemBadScripts(t *testing.T) {
	tests := []struct {
		name string
		load func(string) ([]byte, error)
	}{
		{name: "missing", load: func(string) ([]byte, error) { return nil, errors.New("not found") }},
		{name: "syntax", load: func(string) ([]byte, error) { return []byte("on_enter := func("), nil }},
		{name: "runtime", load: func(string) ([]byte, error) {
			return []byte("on_enter := func(engine, params) { engine.set_spawn(1) }\non_exit := func(engine, params) {}"), nil
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(testDT, nil)
			ts := NewTriggerSystem(zap.New(core))
			ts.loadScript = tc.load
			addScriptVolume(t, w, 0, 1, &component.Trigger{Script: "broken.tengo"})
			addControlled(t, w, ps, cp.Vector{X: 0, Y: 0.5})

			tickTriggers(w, ps, ts)
			if logs.Len() != 1 {
				t.Fatalf("error logs = %d, want 1", logs.Len())
			}
		})
	}
}

func TestTriggerSystemIgnoresNonCharacters(t *testing.T) {
	w := ecs.NewWorld()
	ts := NewTriggerSystem(nil)
	ts.loadScript = func(string) ([]byte, error) {
		t.Fatal("script loaded for a non-character actor")
		return nil, nil
	}
	volume := w.CreateEntity()
	_ = ecs.Add(w, volume, component.TriggerComponent.Kind(), &component.Trigger{Script: "x.tengo"})
	actor := w.CreateEntity()
	w.Events().Push(ecs.Event{Type: ecs.EventTrigger, Data: ecs.TriggerEvent{Phase: ecs.TriggerEnter, Actor: actor, Volume: volume}})

	ts.Update(w)
}
