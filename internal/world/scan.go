package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SceneEntry represents a discoverable scene file in a scene directory.
type SceneEntry struct {
	Name   string // Display name (file name without extension)
	Path   string // Path to the scene file
	Script bool   // True for scripted scenes, false for JSON definitions
}

// ScanScenes scans a directory for scene files. Both JSON definitions
// and scene scripts are listed; the order follows the directory listing,
// which os.ReadDir keeps sorted by file name.
func ScanScenes(dir string) ([]SceneEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene directory: %w", err)
	}

	var scenes []SceneEntry

	for _, entry := range entries {
		// Skip subdirectories and hidden files
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".json" && !isScriptExt(ext) {
			continue
		}

		scenes = append(scenes, SceneEntry{
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Path:   filepath.Join(dir, name),
			Script: isScriptExt(ext),
		})
	}

	return scenes, nil
}

// FindScene resolves a scene by display name against the files in dir.
func FindScene(dir, name string) (SceneEntry, error) {
	scenes, err := ScanScenes(dir)
	if err != nil {
		return SceneEntry{}, err
	}
	for _, s := range scenes {
		if s.Name == name {
			return s, nil
		}
	}
	return SceneEntry{}, fmt.Errorf("scene %q not found in %s", name, dir)
}

// IsScriptPath reports whether path names a scripted scene rather than
// a JSON definition, judged by its extension.
func IsScriptPath(path string) bool {
	return isScriptExt(strings.ToLower(filepath.Ext(path)))
}

func isScriptExt(ext string) bool {
	switch ext {
	case ".zy", ".lisp", ".lsp":
		return true
	}
	return false
}
