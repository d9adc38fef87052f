package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ScriptExt is the file extension of eel scripts.
const ScriptExt = ".eel"

// Source identifies a script found by the Loader.
type Source struct {
	Name    string
	Path    string
	Bundled bool
}

// Loader resolves script names for IMPORT. Local scripts are looked up
// relative to WorkDir; library scripts are searched in LibraryPaths and
// then in the Bundled filesystem.
type Loader struct {
	WorkDir      string
	LibraryPaths []string
	Bundled      fs.FS
}

// NewLoader builds a loader with absolute, de-duplicated library paths.
// Empty entries are skipped.
func NewLoader(workDir string, libraryPaths []string, bundled fs.FS) (*Loader, error) {
	if workDir == "" {
		workDir = "."
	}
	absWork, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", workDir, err)
	}
	seen := make(map[string]struct{}, len(libraryPaths))
	paths := make([]string, 0, len(libraryPaths))
	for _, p := range libraryPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("loader: resolve %s: %w", p, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		paths = append(paths, abs)
	}
	return &Loader{WorkDir: absWork, LibraryPaths: paths, Bundled: bundled}, nil
}

// ResolveLocal looks for <WorkDir>/<name>.eel.
func (l *Loader) ResolveLocal(name string) (Source, bool) {
	if l == nil || !validScriptName(name) {
		return Source{}, false
	}
	dir := l.WorkDir
	if dir == "" {
		dir = "."
	}
	return fileSource(name, filepath.Join(dir, filepath.FromSlash(name)+ScriptExt))
}

// ResolveLibrary searches the library paths in order, then the bundled
// scripts.
func (l *Loader) ResolveLibrary(name string) (Source, bool) {
	if l == nil || !validScriptName(name) {
		return Source{}, false
	}
	for _, dir := range l.LibraryPaths {
		if src, ok := fileSource(name, filepath.Join(dir, filepath.FromSlash(name)+ScriptExt)); ok {
			return src, true
		}
	}
	if l.Bundled != nil {
		p := path.Clean(name) + ScriptExt
		if !fs.ValidPath(p) {
			return Source{}, false
		}
		if info, err := fs.Stat(l.Bundled, p); err == nil && !info.IsDir() {
			return Source{Name: name, Path: p, Bundled: true}, true
		}
	}
	return Source{}, false
}

// Read returns the script text of src.
func (l *Loader) Read(src Source) (string, error) {
	if src.Bundled {
		if l == nil || l.Bundled == nil {
			return "", fmt.Errorf("loader: no bundled scripts for %s", src.Path)
		}
		data, err := fs.ReadFile(l.Bundled, src.Path)
		if err != nil {
			return "", fmt.Errorf("loader: read bundled %s: %w", src.Path, err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return "", fmt.Errorf("loader: read %s: %w", src.Path, err)
	}
	return string(data), nil
}

func fileSource(name, p string) (Source, bool) {
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return Source{}, false
	}
	return Source{Name: name, Path: p}, true
}

func validScriptName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.ContainsRune(name, 0)
}
