package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/logger"
	"github.com/milk9111/platformer/prefabs"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Named("main")

	prefabs.SetDiskDir(cfg.Game.PrefabDir)

	game, err := NewGame(cfg, logger.Log)
	if err != nil {
		log.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Game.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game stopped", zap.Error(err))
	}
}
