package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const defaultZoom = 48.0

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	viewW        float64
	viewH        float64
	snapped      bool
}

// NewCameraSystem follows the camera's target inside a viewW x viewH pixel
// view.
func NewCameraSystem(viewW, viewH int) *CameraSystem {
	return &CameraSystem{viewW: float64(viewW), viewH: float64(viewH)}
}

// Update eases the camera centre towards the target and keeps the view inside
// the level bounds. The first update snaps.
func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.snapped = false
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}

	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
		cs.snapped = false
	}
	focus, ok := cameraFocus(w, cs.targetEntity)
	if !ok {
		return
	}

	if !cs.snapped {
		cam.X, cam.Y = focus.X, focus.Y
		cs.snapped = true
	} else {
		k := 1 - common.Clamp(cam.Smoothness, 0, 0.99)
		cam.X = common.Lerp(cam.X, focus.X, k)
		cam.Y = common.Lerp(cam.Y, focus.Y, k)
	}

	if bounds, ok := firstLevelBounds(w); ok {
		zoom := cameraZoom(cam)
		cam.X = clampAxis(cam.X, bounds.Width, cs.viewW/zoom)
		cam.Y = clampAxis(cam.Y, bounds.Height, cs.viewH/zoom)
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}

// cameraFocus is the centre of the target's drawn box.
func cameraFocus(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	focus := cp.Vector{X: t.X, Y: t.Y}
	if shape, ok := ecs.Get(w, e, component.DebugShapeComponent.Kind()); ok && shape.Anchored {
		focus.Y += shape.Height / 2
	}
	return focus, true
}

func firstLevelBounds(w *ecs.World) (*component.LevelBounds, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return nil, false
	}
	b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok || b.Width <= 0 || b.Height <= 0 {
		return nil, false
	}
	return b, true
}

// clampAxis keeps a view of size span inside [0, size]; a level smaller than
// the view is centred.
func clampAxis(center, size, span float64) float64 {
	if span >= size {
		return size / 2
	}
	return common.Clamp(center, span/2, size-span/2)
}

func cameraZoom(cam *component.Camera) float64 {
	if cam == nil || cam.Zoom <= 0 {
		return defaultZoom
	}
	return cam.Zoom
}

// cameraView maps world units (Y up) to screen pixels (Y down).
type cameraView struct {
	X, Y    float64
	Zoom    float64
	screenW float64
	screenH float64
}

func currentView(w *ecs.World, screenW, screenH int) cameraView {
	view := cameraView{Zoom: defaultZoom, screenW: float64(screenW), screenH: float64(screenH)}
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return view
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		view.X, view.Y = cam.X, cam.Y
		view.Zoom = cameraZoom(cam)
	}
	return view
}

func (v cameraView) toScreen(p cp.Vector) (float32, float32) {
	x := (p.X-v.X)*v.Zoom + v.screenW/2
	y := v.screenH/2 - (p.Y-v.Y)*v.Zoom
	return float32(x), float32(y)
}
