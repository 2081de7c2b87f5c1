package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
)

// TraversalSystem steps every character controller with the entity's input.
// It runs before physics so queued moves land in this tick's space step.
type TraversalSystem struct {
	dt float64
}

func NewTraversalSystem(dt float64) *TraversalSystem {
	return &TraversalSystem{dt: dt}
}

func (s *TraversalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ch *component.Character, input *component.Input) {
		if ch.Controller == nil {
			return
		}
		ch.Controller.Step(traversal.Input{
			MoveX:           input.MoveX,
			MoveY:           input.MoveY,
			JumpPressed:     input.JumpPressed,
			RollPressed:     input.RollPressed,
			InteractPressed: input.InteractPressed,
		}, s.dt)

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Yaw = ch.Controller.Yaw()
		}
	})
}
