package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
	"go.uber.org/zap"
)

// Base clip names chosen from the animator parameters when no one-shot clip
// is playing.
const (
	clipIdle  = "idle"
	clipWalk  = "walk"
	clipFall  = "fall"
	clipHang  = "hang"
	clipClimb = "climb"
)

const walkThreshold = 0.1

type AnimationSystem struct {
	tps float64
	log *zap.Logger
}

// NewAnimationSystem advances clips assuming tps updates per second.
func NewAnimationSystem(tps float64, log *zap.Logger) *AnimationSystem {
	if tps <= 0 {
		tps = 60
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AnimationSystem{tps: tps, log: log}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		for _, trigger := range anim.Triggers {
			if clip, ok := anim.TriggerClips[trigger]; ok {
				anim.Play(clip)
			}
		}
		anim.Triggers = anim.Triggers[:0]

		if !a.holdingOneShot(anim) {
			if base := baseClip(anim); base != "" && base != anim.Current {
				anim.Play(base)
			}
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || !anim.Playing || def.FrameCount <= 0 {
			return
		}

		ticksPerFrame := 1
		if def.FPS > 0 {
			ticksPerFrame = max(int(a.tps/def.FPS), 1)
		}

		anim.FrameTimer++
		if anim.FrameTimer < ticksPerFrame {
			return
		}
		anim.FrameTimer = 0
		anim.Frame++
		if anim.Frame < def.FrameCount {
			return
		}
		if def.Loop {
			anim.Frame = 0
			return
		}

		anim.Frame = def.FrameCount - 1
		anim.Playing = false
		w.Events().Push(ecs.Event{Type: ecs.EventAnimationDone, Data: ecs.AnimationEvent{Entity: e, Clip: def.Name}})
		if def.Complete != "" {
			a.complete(w, e, def.Complete)
		}
	})
}

// holdingOneShot keeps a non-looping clip on screen while it plays, and a
// finished roll until the controller leaves the rolling state.
func (a *AnimationSystem) holdingOneShot(anim *component.Animation) bool {
	def, ok := anim.Defs[anim.Current]
	if !ok || def.Loop {
		return false
	}
	if anim.Playing {
		return true
	}
	return anim.Bools[traversal.ParamRolling]
}

func baseClip(anim *component.Animation) string {
	var clip string
	switch {
	case anim.Bools[traversal.ParamRolling]:
		return ""
	case anim.Bools[traversal.ParamOnLadder]:
		clip = clipClimb
	case anim.Bools[traversal.ParamOnLedge]:
		clip = clipHang
	case !anim.Bools[traversal.ParamGrounded]:
		clip = clipFall
	case anim.Floats[traversal.ParamSpeed] > walkThreshold:
		clip = clipWalk
	default:
		clip = clipIdle
	}
	if _, ok := anim.Defs[clip]; ok {
		return clip
	}
	if _, ok := anim.Defs[clipIdle]; ok {
		return clipIdle
	}
	return ""
}

// complete tells the entity's controller that a mechanic's clip ended. A
// completion the controller is not waiting for is dropped.
func (a *AnimationSystem) complete(w *ecs.World, e ecs.Entity, mechanic string) {
	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return
	}
	ctrl := ch.Controller

	switch mechanic {
	case traversal.TriggerLedgeClimb:
		if s, ok := ctrl.State().(*traversal.OnLedge); ok && ctrl.OnLedge() && s.Climbing() {
			ctrl.NotifyLedgeClimbComplete()
			return
		}
	case traversal.TriggerLadderClimbOff:
		if s, ok := ctrl.State().(*traversal.OnLadder); ok && ctrl.OnLadder() && s.ClimbingOff() && ctrl.ActiveLadder() != nil {
			ctrl.NotifyLadderClimbOffComplete()
			return
		}
	case traversal.TriggerRoll:
		if ctrl.Rolling() {
			ctrl.NotifyRollComplete()
			return
		}
	default:
		a.log.Warn("unknown clip completion", zap.String("mechanic", mechanic), zap.Stringer("entity", e))
		return
	}
	a.log.Warn("clip completion ignored", zap.String("mechanic", mechanic), zap.Stringer("state", ctrl.Kind()), zap.Stringer("entity", e))
}
