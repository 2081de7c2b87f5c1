package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

// TriggerSystem turns the physics step's sensor overlaps into gameplay:
// ladder proximity, platform riding, and scripted volumes.
type TriggerSystem struct {
	log        *zap.Logger
	loadScript func(name string) ([]byte, error)
	scripts    map[string]*triggerScript
}

func NewTriggerSystem(log *zap.Logger) *TriggerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &TriggerSystem{
		log:        log,
		loadScript: prefabs.LoadScript,
		scripts:    make(map[string]*triggerScript),
	}
}

// InvalidateScripts drops compiled scripts so edited sources are picked up on
// the next overlap.
func (s *TriggerSystem) InvalidateScripts() {
	if s == nil {
		return
	}
	clear(s.scripts)
}

func (s *TriggerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, evt := range w.Events().Peek() {
		if evt.Type != ecs.EventTrigger {
			continue
		}
		te, ok := evt.Data.(ecs.TriggerEvent)
		if !ok {
			continue
		}
		s.handle(w, te)
	}
}

func (s *TriggerSystem) handle(w *ecs.World, te ecs.TriggerEvent) {
	if !w.IsAlive(te.Actor) {
		return
	}
	ch, ok := ecs.Get(w, te.Actor, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return
	}

	// An exit can arrive after the volume was destroyed; the character
	// still has to let go of it.
	if ladder, ok := ecs.Get(w, te.Volume, component.LadderComponent.Kind()); ok {
		if te.Phase == ecs.TriggerEnter {
			ch.Controller.EnterLadder(ladder)
		} else {
			ch.Controller.ExitLadder(ladder)
		}
	}

	if _, ok := ecs.Get(w, te.Volume, component.MovingPlatformComponent.Kind()); ok {
		if body, ok := ecs.Get(w, te.Volume, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
			if te.Phase == ecs.TriggerEnter {
				ch.Controller.Ride(body.Body)
			} else {
				ch.Controller.Dismount(body.Body)
			}
		}
	}

	trig, ok := ecs.Get(w, te.Volume, component.TriggerComponent.Kind())
	if !ok || trig.Script == "" {
		return
	}
	if te.Phase == ecs.TriggerEnter && trig.Once && trig.Fired {
		return
	}

	script, err := s.script(trig.Script)
	if err != nil {
		s.log.Error("trigger script unavailable", zap.String("script", trig.Script), zap.Error(err))
		return
	}

	engine := buildTriggerEngine(&triggerContext{
		World:     w,
		Actor:     te.Actor,
		Volume:    te.Volume,
		Character: ch,
		Log:       s.log.With(zap.String("script", trig.Script)),
	})
	if err := script.run(te.Phase, engine, trig.Params); err != nil {
		s.log.Error("trigger script failed", zap.String("script", trig.Script), zap.Stringer("phase", te.Phase), zap.Error(err))
		return
	}
	if te.Phase == ecs.TriggerEnter && trig.Once {
		trig.Fired = true
	}
}

func (s *TriggerSystem) script(name string) (*triggerScript, error) {
	if ts, ok := s.scripts[name]; ok {
		return ts, nil
	}
	src, err := s.loadScript(name)
	if err != nil {
		return nil, err
	}
	ts, err := compileTriggerScript(name, src)
	if err != nil {
		return nil, err
	}
	s.scripts[name] = ts
	return ts, nil
}
