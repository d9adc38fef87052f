package driver

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoaderResolveOrder(t *testing.T) {
	work := t.TempDir()
	libA := t.TempDir()
	libB := t.TempDir()
	writeScript(t, work, "local", "VAR x = 1")
	writeScript(t, libA, "shared", "VAR from = \"a\"")
	writeScript(t, libB, "shared", "VAR from = \"b\"")

	bundled := fstest.MapFS{
		"lists.eel":  {Data: []byte("VAR bundled = 1")},
		"shared.eel": {Data: []byte("VAR from = \"bundled\"")},
	}
	loader, err := NewLoader(work, []string{libA, "", libB, libA}, bundled)
	if err != nil {
		t.Fatalf("NewLoader error: %v", err)
	}
	if len(loader.LibraryPaths) != 2 {
		t.Fatalf("library paths not de-duplicated: %#v", loader.LibraryPaths)
	}

	if _, ok := loader.ResolveLocal("shared"); ok {
		t.Fatalf("shared should not resolve locally")
	}
	src, ok := loader.ResolveLocal("local")
	if !ok || src.Path != filepath.Join(work, "local.eel") || src.Bundled {
		t.Fatalf("unexpected local source %#v", src)
	}

	src, ok = loader.ResolveLibrary("shared")
	if !ok {
		t.Fatalf("shared not found")
	}
	text, err := loader.Read(src)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if text != "VAR from = \"a\"" {
		t.Fatalf("library order wrong, read %q", text)
	}

	src, ok = loader.ResolveLibrary("lists")
	if !ok || !src.Bundled {
		t.Fatalf("expected bundled lists, got %#v", src)
	}
	text, err = loader.Read(src)
	if err != nil || text != "VAR bundled = 1" {
		t.Fatalf("bundled read = %q, %v", text, err)
	}

	if _, ok := loader.ResolveLibrary("nope"); ok {
		t.Fatalf("unexpected resolution for missing script")
	}
}

func writeScript(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+ScriptExt), []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
