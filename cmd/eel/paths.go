package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"

	"eel/interpreter-go/pkg/driver"
)

// config is the CLI's view of the environment.
type config struct {
	Home    string
	Path    []string
	History string
	Debug   bool
	NoColor bool
}

// loadConfig is swapped out by tests.
var loadConfig = configFromEnv

func configFromEnv() config {
	home := env.Str("EEL_HOME", filepath.Join(env.HomeDir(), ".eel"))
	return config{
		Home:    home,
		Path:    splitPathList(env.Str("EEL_PATH")),
		History: env.Str("EEL_HISTORY", filepath.Join(home, "history")),
		Debug:   env.Bool("EEL_DEBUG"),
		NoColor: env.Has("NO_COLOR"),
	}
}

func splitPathList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, string(os.PathListSeparator)) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// packageDir is where an installed dependency's scripts live.
func (c config) packageDir(name, version string) string {
	return filepath.Join(c.Home, "pkg", name, sanitizePathSegment(version))
}

// libraryPaths lists the directories IMPORT searches after the working
// directory: manifest lib_paths, locked dependencies, EEL_PATH and
// $EEL_HOME/libs, in that order.
func libraryPaths(cfg config, manifest *driver.Manifest) ([]string, error) {
	var paths []string
	if manifest != nil {
		paths = append(paths, manifest.LibraryDirs()...)
		lock, err := driver.LoadLockfile(filepath.Join(manifest.Dir(), driver.LockfileName))
		switch {
		case err == nil:
			for _, pkg := range lock.Packages {
				if pkg.Path != "" {
					paths = append(paths, pkg.Path)
				}
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	paths = append(paths, cfg.Path...)
	if cfg.Home != "" {
		paths = append(paths, filepath.Join(cfg.Home, "libs"))
	}
	return paths, nil
}

// findProjectManifest returns the manifest governing dir, or nil when there
// is none.
func findProjectManifest(dir string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(dir)
	if errors.Is(err, driver.ErrManifestNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
