package entity

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const cameraPrefab = "camera.yaml"

// EnsureCamera builds the default camera unless the world already has one.
func EnsureCamera(w *ecs.World, ctx BuildContext) (ecs.Entity, error) {
	if e, ok := w.First(component.CameraComponent.Kind()); ok {
		return e, nil
	}
	return BuildEntity(w, cameraPrefab, &ctx)
}
