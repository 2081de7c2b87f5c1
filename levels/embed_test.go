package levels

import (
	"testing"
	"testing/fstest"
)

func TestLoadDemoLevel(t *testing.T) {
	lvl, err := LoadLevelFromFS("demo")
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	if lvl.Name != "demo" {
		t.Fatalf("expected name demo, got %q", lvl.Name)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			t.Fatalf("layer %d: expected %d tiles, got %d", i, lvl.Width*lvl.Height, len(layer))
		}
	}
	if !lvl.LayerHasPhysics(0) {
		t.Fatalf("expected layer 0 to carry physics")
	}

	characters := 0
	for _, e := range lvl.Entities {
		if e.Type == "character" {
			characters++
		}
	}
	if characters != 1 {
		t.Fatalf("expected one character, got %d", characters)
	}
}

func TestLoadLevel(t *testing.T) {
	fsys := fstest.MapFS{
		"tiny.json":  {Data: []byte(`{"width":2,"height":1,"layers":[[1,2]],"layer_meta":[{"physics":true}],"entities":[{"type":"ladder","x":1.5,"y":2.25,"props":{"ladder":{"top_margin":0.1}}}]}`)},
		"empty.json": {Data: []byte(`{"width":0,"height":3}`)},
		"bad.json":   {Data: []byte(`{"width":`)},
	}

	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{name: "suffix optional", file: "tiny"},
		{name: "with suffix", file: "tiny.json"},
		{name: "zero size", file: "empty", wantErr: true},
		{name: "bad json", file: "bad", wantErr: true},
		{name: "missing", file: "nope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := loadLevel(fsys, tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lvl.Name != "tiny" {
				t.Fatalf("expected name from file, got %q", lvl.Name)
			}
			if len(lvl.Entities) != 1 || lvl.Entities[0].X != 1.5 || lvl.Entities[0].Y != 2.25 {
				t.Fatalf("unexpected entities %+v", lvl.Entities)
			}
			if _, ok := lvl.Entities[0].Props["ladder"].(map[string]any); !ok {
				t.Fatalf("expected ladder props map, got %T", lvl.Entities[0].Props["ladder"])
			}
			if lvl.LayerHasPhysics(1) {
				t.Fatalf("layer 1 does not exist")
			}
		})
	}
}
