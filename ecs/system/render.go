package system

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"golang.org/x/image/colornames"
)

const ladderRungSpacing = 0.4

// RenderSystem draws every entity with a DebugShape as a flat box, back to
// front by render layer.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	view := currentView(w, screen.Bounds().Dx(), screen.Bounds().Dy())

	entities := w.Query(component.TransformComponent.Kind(), component.DebugShapeComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		shape, _ := ecs.Get(w, e, component.DebugShapeComponent.Kind())

		width := shape.Width
		if c, ok := ecs.Get(w, e, component.CollectableComponent.Kind()); ok {
			// spin reads as a box narrowing and widening
			width *= math.Max(math.Abs(math.Cos(c.Spin)), 0.15)
		}
		center := cp.Vector{X: t.X, Y: t.Y}
		height := shape.Height
		if ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && ch.Body != nil {
			// the envelope shrinks while rolling
			env := ch.Body.Envelope()
			width, height = env.Width, env.Height
			center = center.Add(env.Center)
		} else if shape.Anchored {
			center.Y += height / 2
		}

		clr := shape.Color
		if clr == nil {
			clr = colornames.Magenta
		}
		x, y := view.toScreen(cp.Vector{X: center.X - width/2, Y: center.Y + height/2})
		pw := float32(width * view.Zoom)
		ph := float32(height * view.Zoom)
		vector.FillRect(screen, x, y, pw, ph, clr, false)

		if ladder, ok := ecs.Get(w, e, component.LadderComponent.Kind()); ok {
			drawLadderRungs(screen, view, ladder, shape.Width)
		}
		if ecs.Has(w, e, component.CharacterComponent.Kind()) {
			drawFacing(screen, view, center, width, t.Yaw)
		}
	}
}

func drawLadderRungs(screen *ebiten.Image, view cameraView, ladder *component.Ladder, width float64) {
	for y := ladder.Bottom + ladderRungSpacing/2; y < ladder.Top+ladderRungSpacing; y += ladderRungSpacing {
		x1, y1 := view.toScreen(cp.Vector{X: ladder.Axis - width/2, Y: y})
		x2, y2 := view.toScreen(cp.Vector{X: ladder.Axis + width/2, Y: y})
		vector.StrokeLine(screen, x1, y1, x2, y2, 2, colornames.Saddlebrown, true)
	}
}

// drawFacing marks the facing direction. Yaw turns from 0 (right) to -π
// (left), so the nose sweeps through the middle while turning.
func drawFacing(screen *ebiten.Image, view cameraView, center cp.Vector, width, yaw float64) {
	tip := center.Add(cp.Vector{X: math.Cos(yaw) * width * 0.8, Y: 0.3})
	x1, y1 := view.toScreen(center.Add(cp.Vector{Y: 0.3}))
	x2, y2 := view.toScreen(tip)
	vector.StrokeLine(screen, x1, y1, x2, y2, 3, colornames.White, true)
}

// DrawCharacterDebug prints the player's traversal state in the top-left
// corner.
func DrawCharacterDebug(w *ecs.World, screen *ebiten.Image, collected int) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	ch, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return
	}
	ctrl := ch.Controller
	clip := "none"
	if anim, ok := ecs.Get(w, player, component.AnimationComponent.Kind()); ok && anim.Current != "" {
		clip = fmt.Sprintf("%s[%d]", anim.Current, anim.Frame)
	}
	pos := ch.Body.Position()
	text := fmt.Sprintf("State: %s\nGrounded: %v\nJumped: %v\nPos: %.2f, %.2f\nClip: %s\nCollected: %d",
		ctrl.Kind(), ctrl.Grounded(), ctrl.Jumped(), pos.X, pos.Y, clip, collected)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// BackgroundColor is what the game clears the screen with.
var BackgroundColor color.Color = colornames.Midnightblue
