package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"go.uber.org/zap"
)

// Trigger scripts define on_enter(engine, params) and on_exit(engine, params).
const triggerDispatchScript = `
if __phase == "enter" {
	on_enter(__engine, __params)
} else if __phase == "exit" {
	on_exit(__engine, __params)
}
`

type triggerScript struct {
	name     string
	compiled *tengo.Compiled
}

func compileTriggerScript(name string, src []byte) (*triggerScript, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + triggerDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__params", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile trigger script %q: %w", name, err)
	}
	return &triggerScript{name: name, compiled: compiled}, nil
}

func (ts *triggerScript) run(phase ecs.TriggerPhase, engine *tengo.ImmutableMap, params map[string]any) error {
	if ts == nil || ts.compiled == nil {
		return fmt.Errorf("nil trigger script")
	}
	if params == nil {
		params = map[string]any{}
	}
	if err := ts.compiled.Set("__phase", phase.String()); err != nil {
		return err
	}
	if err := ts.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := ts.compiled.Set("__params", params); err != nil {
		return err
	}
	return ts.compiled.Run()
}

// triggerContext is what a running script may touch: the character that
// crossed the volume and the volume itself.
type triggerContext struct {
	World     *ecs.World
	Actor     ecs.Entity
	Volume    ecs.Entity
	Character *component.Character
	Log       *zap.Logger
}

func buildTriggerEngine(ctx *triggerContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["reset"] = &tengo.UserFunction{Name: "reset", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Character == nil || ctx.Character.Controller == nil {
			return tengo.FalseValue, nil
		}
		point := ctx.Character.Spawn
		if len(args) >= 2 {
			x, okX := tengo.ToFloat64(args[0])
			y, okY := tengo.ToFloat64(args[1])
			if !okX || !okY {
				return nil, tengo.ErrInvalidArgumentType{Name: "point", Expected: "float", Found: args[0].TypeName()}
			}
			point = cp.Vector{X: x, Y: y}
		}
		ctx.Character.Controller.Reset(point)
		return tengo.TrueValue, nil
	}}

	values["set_spawn"] = &tengo.UserFunction{Name: "set_spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		if ctx.Character == nil {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "point", Expected: "float", Found: args[0].TypeName()}
		}
		ctx.Character.Spawn = cp.Vector{X: x, Y: y}
		return tengo.TrueValue, nil
	}}

	values["collect"] = &tengo.UserFunction{Name: "collect", Value: func(args ...tengo.Object) (tengo.Object, error) {
		c, ok := ecs.Get(ctx.World, ctx.Volume, component.CollectableComponent.Kind())
		if !ok || c.Collected {
			return tengo.FalseValue, nil
		}
		c.Collected = true
		ecs.Remove(ctx.World, ctx.Volume, component.PhysicsBodyComponent.Kind())
		return tengo.TrueValue, nil
	}}

	values["disable"] = &tengo.UserFunction{Name: "disable", Value: func(args ...tengo.Object) (tengo.Object, error) {
		trig, ok := ecs.Get(ctx.World, ctx.Volume, component.TriggerComponent.Kind())
		if !ok {
			return tengo.FalseValue, nil
		}
		trig.Fired = true
		trig.Once = true
		return tengo.TrueValue, nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Character == nil || ctx.Character.Controller == nil {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: ctx.Character.Controller.Kind().String()}, nil
	}}

	values["actor_position"] = &tengo.UserFunction{Name: "actor_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return entityPosition(ctx.World, ctx.Actor), nil
	}}

	values["volume_position"] = &tengo.UserFunction{Name: "volume_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return entityPosition(ctx.World, ctx.Volume), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		ctx.Log.Info(strings.Join(parts, " "), zap.Stringer("actor", ctx.Actor), zap.Stringer("volume", ctx.Volume))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func entityPosition(w *ecs.World, e ecs.Entity) tengo.Object {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: 0}, &tengo.Float{Value: 0}}}
	}
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: t.X}, &tengo.Float{Value: t.Y}}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
