package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

type Game struct {
	cfg *config.Runtime
	log *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler

	physics     *system.PhysicsSystem
	triggers    *system.TriggerSystem
	collectable *system.CollectableSystem
	render      *system.RenderSystem

	watcher *prefabs.Watcher
	debug   bool
}

// NewGame loads cfg.Game.Level and wires the per-tick systems. Order matters:
// platforms move before characters step, and triggers read the contacts the
// physics step produced.
func NewGame(cfg *config.Runtime, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dt := 1.0 / float64(cfg.Game.TPS)

	g := &Game{
		cfg:         cfg,
		log:         log.Named("game"),
		world:       ecs.NewWorld(),
		physics:     system.NewPhysicsSystem(dt, log.Named("physics")),
		triggers:    system.NewTriggerSystem(log.Named("trigger")),
		collectable: system.NewCollectableSystem(dt, log.Named("collectable")),
		render:      system.NewRenderSystem(),
		debug:       cfg.Game.Debug,
	}
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewMovingPlatformSystem(dt),
		system.NewTraversalSystem(dt),
		g.physics,
		g.triggers,
		g.collectable,
		system.NewAnimationSystem(float64(cfg.Game.TPS), log.Named("animation")),
		system.NewCameraSystem(cfg.Window.Width, cfg.Window.Height),
	)

	lvl, err := levels.LoadLevelFromFS(cfg.Game.Level)
	if err != nil {
		return nil, err
	}
	ctx := entity.BuildContext{Physics: g.physics, Log: log.Named("entity")}
	if err := entity.LoadLevelToWorld(g.world, lvl, ctx); err != nil {
		return nil, err
	}

	if cfg.Game.HotReload {
		w, err := prefabs.NewWatcher(prefabs.DiskDir(), log.Named("watch"))
		if err != nil {
			g.log.Warn("hot reload disabled", zap.String("dir", prefabs.DiskDir()), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	g.applyPrefabChanges()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for _, change := range g.watcher.Pending() {
		g.log.Info("prefab changed", zap.String("name", change.Name), zap.Stringer("kind", change.Kind))
		switch change.Kind {
		case prefabs.ChangeScript:
			g.triggers.InvalidateScripts()
		case prefabs.ChangePrefab:
			n, err := entity.ReloadCharacterTuning(g.world, change.Name, g.log)
			if err != nil {
				g.log.Error("reload character tuning", zap.String("prefab", change.Name), zap.Error(err))
				continue
			}
			if n == 0 {
				g.log.Debug("prefab change applies to new entities only", zap.String("prefab", change.Name))
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(system.BackgroundColor)
	g.render.Draw(g.world, screen)
	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawCharacterDebug(g.world, screen, g.collectable.Total())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		g.log.Warn("close prefab watcher", zap.Error(err))
	}
}
