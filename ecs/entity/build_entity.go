package entity

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/traversal"
	"go.uber.org/zap"
)

var errNoPhysics = errors.New("no physics system in build context")

// BuildContext carries what component builders need besides the prefab: the
// physics system characters attach to, the spawn point, and per-instance
// overrides keyed by component name.
type BuildContext struct {
	Physics   *system.PhysicsSystem
	Log       *zap.Logger
	Origin    cp.Vector
	Overrides map[string]any

	prefabPath string
}

func (ctx *BuildContext) logger() *zap.Logger {
	if ctx == nil || ctx.Log == nil {
		return zap.NewNop()
	}
	return ctx.Log
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"camera_tag":      addCameraTag,
	"input":           addInput,
	"transform":       addTransform,
	"render_layer":    addRenderLayer,
	"debug_shape":     addDebugShape,
	"camera":          addCamera,
	"physics_body":    addPhysicsBody,
	"collision_layer": addCollisionLayer,
	"animation":       addAnimation,
	"ladder":          addLadder,
	"moving_platform": addMovingPlatform,
	"trigger":         addTrigger,
	"collectable":     addCollectable,
	"character":       addCharacter,
}

// Later builders read what earlier ones added: ladders and platforms need
// the transform and body, characters need the transform and animation.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"input",
	"transform",
	"render_layer",
	"debug_shape",
	"camera",
	"physics_body",
	"collision_layer",
	"animation",
	"ladder",
	"moving_platform",
	"trigger",
	"collectable",
	"character",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if ctx == nil {
		ctx = &BuildContext{}
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	local := *ctx
	local.prefabPath = prefabPath

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = mergeOverride(v, ctx.Overrides[k])
	}
	for k, v := range ctx.Overrides {
		if _, ok := remaining[k]; !ok {
			remaining[k] = v
		}
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var unknown []string
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	e := w.CreateEntity()
	for _, name := range names {
		if err := componentRegistry[name](w, e, remaining[name], &local); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	local.logger().Debug("entity built", zap.String("prefab", prefabPath), zap.Stringer("entity", e))
	return e, nil
}

// mergeOverride lays a per-instance override over a prefab component. Maps
// merge one level deep; anything else replaces the prefab value.
func mergeOverride(base, override any) any {
	if override == nil {
		return base
	}
	bm, ok := base.(map[string]any)
	if !ok {
		return override
	}
	om, ok := override.(map[string]any)
	if !ok {
		return override
	}
	out := maps.Clone(bm)
	if out == nil {
		out = make(map[string]any, len(om))
	}
	for k, v := range om {
		out[k] = v
	}
	return out
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: ctx.Origin.X + spec.X,
		Y: ctx.Origin.Y + spec.Y,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type debugShapeSpec = prefabs.DebugShapeComponentSpec

func addDebugShape(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[debugShapeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode debug shape spec: %w", err)
	}
	shape := &component.DebugShape{Width: spec.Width, Height: spec.Height, Anchored: spec.Anchored}
	if spec.Color != nil {
		shape.Color = spec.Color.Color
	}
	return ecs.Add(w, e, component.DebugShapeComponent.Kind(), shape)
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.TargetName == "" {
		spec.TargetName = "player"
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	typ, err := spec.BodyType()
	if err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("physics body needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:        typ,
		Width:       spec.Width,
		Height:      spec.Height,
		Friction:    spec.Friction,
		CarryHeight: spec.CarryHeight,
	})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	cat, err := prefabs.LayerBits(spec.Category)
	if err != nil {
		return err
	}
	mask, err := prefabs.LayerBits(spec.Mask)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: cat, Mask: mask})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	defs := make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		defs[name] = component.AnimationDef{
			Name:       name,
			FrameCount: def.FrameCount,
			FPS:        def.FPS,
			Loop:       def.Loop,
			Complete:   def.Complete,
		}
	}
	for trigger, clip := range spec.Triggers {
		if _, ok := defs[clip]; !ok {
			return fmt.Errorf("trigger %q plays unknown clip %q", trigger, clip)
		}
	}

	anim := &component.Animation{Defs: defs, TriggerClips: spec.Triggers}
	if spec.Current != "" {
		anim.Play(spec.Current)
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

type ladderSpec = prefabs.LadderComponentSpec

func addLadder(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ladderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ladder spec: %w", err)
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("ladder needs a transform")
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Type != component.BodySensor {
		return fmt.Errorf("ladder needs a sensor physics body")
	}

	bottom := t.Y - body.Height/2
	top := t.Y + body.Height/2
	return ecs.Add(w, e, component.LadderComponent.Kind(), &component.Ladder{
		Axis:   t.X,
		Bottom: bottom,
		Top:    top - spec.TopMargin,
		Exit:   cp.Vector{X: t.X + spec.ExitOffset.X, Y: top + spec.ExitOffset.Y},
	})
}

type movingPlatformSpec = prefabs.MovingPlatformComponentSpec

func addMovingPlatform(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[movingPlatformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode moving platform spec: %w", err)
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("moving platform needs a transform")
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); !ok || body.Type != component.BodyKinematic {
		return fmt.Errorf("moving platform needs a kinematic physics body")
	}

	points := make([]cp.Vector, 0, len(spec.Path))
	for _, p := range spec.Path {
		points = append(points, cp.Vector{X: t.X + p.X, Y: t.Y + p.Y})
	}
	return ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{
		Points: points,
		Speed:  spec.Speed,
		Delay:  spec.Delay,
	})
}

type triggerSpec = prefabs.TriggerComponentSpec

func addTrigger(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[triggerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("trigger without a script")
	}
	return ecs.Add(w, e, component.TriggerComponent.Kind(), &component.Trigger{
		Script: spec.Script,
		Params: spec.Params,
		Once:   spec.Once,
	})
}

type collectableSpec = prefabs.CollectableComponentSpec

func addCollectable(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collectableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collectable spec: %w", err)
	}
	return ecs.Add(w, e, component.CollectableComponent.Kind(), &component.Collectable{
		Kind:         spec.Kind,
		BobAmplitude: spec.BobAmplitude,
		BobSpeed:     spec.BobSpeed,
		SpinSpeed:    spec.SpinSpeed,
	})
}

type characterSpec = prefabs.CharacterComponentSpec

func addCharacter(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	if ctx.Physics == nil {
		return errNoPhysics
	}
	spec, err := prefabs.DecodeComponentSpec[characterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character spec: %w", err)
	}
	cfg, err := spec.ToConfig()
	if err != nil {
		return err
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("character needs a transform")
	}
	spawn := cp.Vector{X: t.X, Y: t.Y}

	opts := []traversal.Option{traversal.WithLogger(ctx.logger().Named("traversal").With(zap.Stringer("entity", e)))}
	if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
		opts = append(opts, traversal.WithAnimator(anim))
	}

	body := ctx.Physics.NewCharacterBody(e, spawn, spec.Envelope())
	ctrl, err := traversal.New(cfg, body, ctx.Physics.World(), opts...)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		Controller: ctrl,
		Body:       body,
		Spawn:      spawn,
		Prefab:     ctx.prefabPath,
	})
}
