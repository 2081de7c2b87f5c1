// Package config holds the runtime settings of the game binary.
package config

// Runtime is everything the binary needs besides gameplay tuning, which lives
// in the prefabs.
type Runtime struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Game    GameConfig    `yaml:"game"`
}

type WindowConfig struct {
	Width  int    `yaml:"width" env:"PLATFORMER_WINDOW_WIDTH"`
	Height int    `yaml:"height" env:"PLATFORMER_WINDOW_HEIGHT"`
	Title  string `yaml:"title" env:"PLATFORMER_WINDOW_TITLE"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"PLATFORMER_LOG_LEVEL"`
	File  string `yaml:"file" env:"PLATFORMER_LOG_FILE"`
}

type GameConfig struct {
	// Level is a level name under levels/, with or without .json.
	Level string `yaml:"level" env:"PLATFORMER_LEVEL"`
	// TPS is the fixed simulation rate.
	TPS   int  `yaml:"tps" env:"PLATFORMER_TPS"`
	Debug bool `yaml:"debug" env:"PLATFORMER_DEBUG"`
	// PrefabDir overrides the embedded prefabs when it holds a file of the
	// same name.
	PrefabDir string `yaml:"prefab_dir" env:"PLATFORMER_PREFAB_DIR"`
	HotReload bool   `yaml:"hot_reload" env:"PLATFORMER_HOT_RELOAD"`
}

func Default() *Runtime {
	return &Runtime{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "platformer",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Game: GameConfig{
			Level:     "demo",
			TPS:       60,
			PrefabDir: "prefabs",
		},
	}
}
