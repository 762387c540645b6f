package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file that marks a reflectc project root.
const ManifestName = "reflect.toml"

// boundaryMarkers stop the upward search: a manifest above the repository
// that holds the headers does not belong to them.
var boundaryMarkers = []string{".git", ".hg"}

// FindManifest walks up from startDir to locate reflect.toml. The search
// ends at the filesystem root or at the first directory that holds a
// version-control marker, after checking that directory itself.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		found, err := exists(candidate)
		if err != nil {
			return "", false, err
		}
		if found {
			return candidate, true, nil
		}
		atBoundary, err := isBoundary(dir)
		if err != nil {
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if atBoundary || parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// FindProjectRoot returns the directory containing reflect.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

func isBoundary(dir string) (bool, error) {
	for _, marker := range boundaryMarkers {
		found, err := exists(filepath.Join(dir, marker))
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}
