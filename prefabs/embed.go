package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

var diskDir = "prefabs"

// SetDiskDir changes where on-disk copies of the embedded prefabs and scripts
// are looked up. An empty dir keeps the current one.
func SetDiskDir(dir string) {
	if dir != "" {
		diskDir = dir
	}
}

func DiskDir() string { return diskDir }

// Load reads a prefab, preferring the copy under DiskDir so edits apply
// without a rebuild.
func Load(name string) ([]byte, error) {
	return readLayered(PrefabsFS, prefabKey(name))
}

// LoadScript reads a trigger script by file name, e.g. "reset.tengo".
func LoadScript(name string) ([]byte, error) {
	return readLayered(ScriptsFS, scriptKey(name))
}

func readLayered(embedded fs.FS, key string) ([]byte, error) {
	if key == "" || key == "." || !fs.ValidPath(key) {
		return nil, fmt.Errorf("prefabs: invalid name %q", key)
	}
	data, err := os.ReadFile(filepath.Join(diskDir, filepath.FromSlash(key)))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return fs.ReadFile(embedded, key)
}

func prefabKey(name string) string {
	s := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(s, "prefabs/")
}

// scriptKey maps "reset.tengo", "scripts/reset.tengo" and
// "prefabs/scripts/reset.tengo" to the same key.
func scriptKey(name string) string {
	s := prefabKey(name)
	s = strings.TrimPrefix(s, "scripts/")
	if s == "" || s == "." {
		return ""
	}
	return "scripts/" + s
}
