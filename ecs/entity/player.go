package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

const characterPrefab = "character.yaml"

func NewCharacterAt(w *ecs.World, ctx BuildContext, x, y float64) (ecs.Entity, error) {
	ctx.Origin = cp.Vector{X: x, Y: y}
	return BuildEntity(w, characterPrefab, &ctx)
}

// ReloadCharacterTuning re-reads the character component of every character
// built from prefab and swaps the new tuning into its controller. It returns
// how many controllers took the new tuning; prefabs without a character
// component reload nothing.
func ReloadCharacterTuning(w *ecs.World, prefab string, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return 0, err
	}
	raw, ok := spec.Components["character"]
	if !ok {
		return 0, nil
	}
	charSpec, err := prefabs.DecodeComponentSpec[characterSpec](raw)
	if err != nil {
		return 0, fmt.Errorf("reload %q: decode character spec: %w", prefab, err)
	}
	cfg, err := charSpec.ToConfig()
	if err != nil {
		return 0, fmt.Errorf("reload %q: %w", prefab, err)
	}

	reloaded := 0
	var firstErr error
	ecs.ForEach(w, component.CharacterComponent.Kind(), func(e ecs.Entity, ch *component.Character) {
		if ch.Prefab != prefab || ch.Controller == nil {
			return
		}
		if err := ch.Controller.SetConfig(cfg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		reloaded++
		log.Info("character tuning reloaded", zap.Stringer("entity", e), zap.String("prefab", prefab))
	})
	return reloaded, firstErr
}
