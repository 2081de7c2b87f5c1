package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/traversal"
	"gopkg.in/yaml.v3"
)

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.Color
		wantErr bool
	}{
		{name: "hex rgb", in: `"#ff8000"`, want: color.NRGBA{R: 255, G: 128, A: 255}},
		{name: "hex rgba", in: `"#10203040"`, want: color.NRGBA{R: 16, G: 32, B: 48, A: 64}},
		{name: "no hash", in: `"00ff00"`, want: color.NRGBA{G: 255, A: 255}},
		{name: "named", in: `Gold`, want: color.RGBA{R: 255, G: 215, A: 255}},
		{name: "short hex", in: `"#fff"`, wantErr: true},
		{name: "bad digits", in: `"#gg0000"`, wantErr: true},
		{name: "not scalar", in: `[1, 2]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Color != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, c.Color)
			}
		})
	}
}

func TestYAMLColorSurvivesDecode(t *testing.T) {
	raw := map[string]any{"color": "#4fc3f7", "width": 1.0}
	spec, err := DecodeComponentSpec[DebugShapeComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
	if spec.Color == nil || spec.Color.Color != want {
		t.Fatalf("expected %v, got %+v", want, spec.Color)
	}

	again, err := DecodeComponentSpec[DebugShapeComponentSpec](spec)
	if err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if again.Color == nil || again.Color.Color != want {
		t.Fatalf("color lost on re-encode: %+v", again.Color)
	}
}

func TestLayerBits(t *testing.T) {
	tests := []struct {
		names   []string
		want    uint32
		wantErr bool
	}{
		{names: nil, want: 0},
		{names: []string{"solid"}, want: component.LayerSolid},
		{names: []string{" Ledge ", "solid"}, want: component.LayerSolid | component.LayerLedge},
		{names: []string{"trigger", "character"}, want: component.LayerTrigger | component.LayerCharacter},
		{names: []string{"water"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := LayerBits(tt.names)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%v: unexpected error state %v", tt.names, err)
		}
		if got != tt.want {
			t.Fatalf("%v: expected %b, got %b", tt.names, tt.want, got)
		}
	}
}

func TestCharacterSpecToConfig(t *testing.T) {
	t.Run("empty keeps defaults", func(t *testing.T) {
		cfg, err := CharacterComponentSpec{}.ToConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg != traversal.DefaultConfig() {
			t.Fatalf("expected default config")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		spec := CharacterComponentSpec{
			WalkSpeed:        7,
			LedgeGrabOffsets: &VectorSpec{X: 0.4, Y: 1.5},
			LedgeMask:        []string{"ledge", "solid"},
		}
		cfg, err := spec.ToConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.WalkSpeed != 7 {
			t.Fatalf("expected walk speed 7, got %v", cfg.WalkSpeed)
		}
		if cfg.LedgeGrabOffsets != (cp.Vector{X: 0.4, Y: 1.5}) {
			t.Fatalf("unexpected grab offsets %v", cfg.LedgeGrabOffsets)
		}
		if cfg.LedgeMask != uint(component.LayerLedge|component.LayerSolid) {
			t.Fatalf("unexpected ledge mask %b", cfg.LedgeMask)
		}
		if cfg.JumpForce != traversal.DefaultConfig().JumpForce {
			t.Fatalf("untouched fields must keep defaults")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := (CharacterComponentSpec{WalkSpeed: -1}).ToConfig(); err == nil {
			t.Fatalf("expected validation error")
		}
		if _, err := (CharacterComponentSpec{LedgeMask: []string{"nope"}}).ToConfig(); err == nil {
			t.Fatalf("expected layer error")
		}
	})
}

func TestCharacterEnvelope(t *testing.T) {
	env := CharacterComponentSpec{}.Envelope()
	if env.Width != 0.6 || env.Height != 1.8 || env.Center != (cp.Vector{Y: 0.9}) {
		t.Fatalf("unexpected default envelope %+v", env)
	}
	env = CharacterComponentSpec{Width: 1, Height: 2}.Envelope()
	if env.Center.Y != 1 {
		t.Fatalf("expected centre above feet, got %+v", env)
	}
}

func TestEmbeddedPrefabsDecode(t *testing.T) {
	entries, err := PrefabsFS.ReadDir(".")
	if err != nil {
		t.Fatalf("read embedded prefabs: %v", err)
	}
	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(entry.Name())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name == "" || len(spec.Components) == 0 {
				t.Fatalf("prefab %s has no name or components", entry.Name())
			}
			if raw, ok := spec.Components["character"]; ok {
				cs, err := DecodeComponentSpec[CharacterComponentSpec](raw)
				if err != nil {
					t.Fatalf("decode character: %v", err)
				}
				if _, err := cs.ToConfig(); err != nil {
					t.Fatalf("character tuning invalid: %v", err)
				}
			}
			if raw, ok := spec.Components["trigger"]; ok {
				ts, err := DecodeComponentSpec[TriggerComponentSpec](raw)
				if err != nil {
					t.Fatalf("decode trigger: %v", err)
				}
				if _, err := LoadScript(ts.Script); err != nil {
					t.Fatalf("trigger script %q: %v", ts.Script, err)
				}
			}
		})
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	prev := DiskDir()
	t.Cleanup(func() { SetDiskDir(prev) })

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte("name: disk\ncomponents:\n  camera_tag: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "reset.tengo"), []byte("// disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetDiskDir(dir)

	spec, err := LoadEntityBuildSpec("prefabs/camera.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "disk" {
		t.Fatalf("expected the disk prefab, got %q", spec.Name)
	}
	script, err := LoadScript("reset.tengo")
	if err != nil || string(script) != "// disk" {
		t.Fatalf("expected the disk script, got %q (%v)", script, err)
	}

	if spec, err := LoadEntityBuildSpec("ladder.yaml"); err != nil || spec.Name != "ladder" {
		t.Fatalf("expected embedded fallback, got %q (%v)", spec.Name, err)
	}
}
