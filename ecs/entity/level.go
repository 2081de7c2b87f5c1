package entity

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

// Tile codes in physics layers.
const (
	TileEmpty = 0
	TileSolid = 1
	// TileLedge is solid geometry whose top edge can be grabbed.
	TileLedge = 2
)

const tileLayerIndex = 0

// LoadLevelToWorld creates the level bounds, merged tile colliders for every
// physics layer, and one prefab entity per level entity. Tile rows run top
// to bottom while world Y runs up, so row r sits at y = Height-1-r.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, ctx BuildContext) error {
	if lvl == nil {
		return fmt.Errorf("load level: level is nil")
	}
	log := ctx.logger()

	bounds := w.CreateEntity()
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Width:  float64(lvl.Width),
		Height: float64(lvl.Height),
	}); err != nil {
		return err
	}

	colliders := 0
	for layerIdx, layer := range lvl.Layers {
		if !lvl.LayerHasPhysics(layerIdx) {
			continue
		}
		if len(layer) != lvl.Width*lvl.Height {
			return fmt.Errorf("load level %q: layer %d has %d tiles, want %d", lvl.Name, layerIdx, len(layer), lvl.Width*lvl.Height)
		}
		n, err := addMergedTileColliders(w, layer, lvl.Width, lvl.Height)
		if err != nil {
			return fmt.Errorf("load level %q: layer %d: %w", lvl.Name, layerIdx, err)
		}
		colliders += n
	}

	for i, ent := range lvl.Entities {
		prefab := prefabName(ent.Type)
		if prefab == "" {
			log.Warn("level entity without a type", zap.Int("index", i))
			continue
		}
		entCtx := ctx
		entCtx.Origin = cp.Vector{X: ent.X, Y: ent.Y}
		entCtx.Overrides = ent.Props
		if _, err := BuildEntity(w, prefab, &entCtx); err != nil {
			return fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err)
		}
	}

	if _, err := EnsureCamera(w, ctx); err != nil {
		return fmt.Errorf("load level %q: camera: %w", lvl.Name, err)
	}

	log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("colliders", colliders),
		zap.Int("entities", len(lvl.Entities)),
	)
	return nil
}

func prefabName(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" || strings.HasSuffix(typ, ".yaml") {
		return typ
	}
	return typ + ".yaml"
}

// addMergedTileColliders joins horizontal runs of the same tile code into a
// single static box. Runs are not merged vertically: a ledge is only a ledge
// along the top edge of its own row.
func addMergedTileColliders(w *ecs.World, layer []int, width, height int) (int, error) {
	count := 0
	for row := 0; row < height; row++ {
		y := float64(height-1-row) + 0.5
		for x := 0; x < width; {
			code := layer[row*width+x]
			if code == TileEmpty {
				x++
				continue
			}
			start := x
			for x < width && layer[row*width+x] == code {
				x++
			}
			if err := addTileRun(w, code, float64(start), float64(x), y); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func addTileRun(w *ecs.World, code int, x0, x1, centerY float64) error {
	category := component.LayerSolid
	clr := colornames.Slategray
	switch code {
	case TileSolid:
	case TileLedge:
		category |= component.LayerLedge
		clr = colornames.Darkseagreen
	default:
		return fmt.Errorf("unknown tile code %d", code)
	}

	width := x1 - x0
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x0 + width/2,
		Y: centerY,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:     component.BodyStatic,
		Width:    width,
		Height:   1,
		Friction: 0.9,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.DebugShapeComponent.Kind(), &component.DebugShape{
		Color:  clr,
		Width:  width,
		Height: 1,
	}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: tileLayerIndex})
}
