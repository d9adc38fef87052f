package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eel/interpreter-go/pkg/driver"
)

func TestDepsInstallPathDependency(t *testing.T) {
	useConfig(t, testConfig(t))
	root := tempRoot(t)
	writeFile(t, filepath.Join(root, "greeter", "eel.yml"), `
name: greeter
version: 1.2.0
`)
	writeFile(t, filepath.Join(root, "greeter", "greet.eel"), `FN hello(name) -> "hello " + name`)

	project := filepath.Join(root, "app")
	writeFile(t, filepath.Join(project, "eel.yml"), `
name: app
main: main.eel
dependencies:
  greeter:
    path: ../greeter
`)
	writeFile(t, filepath.Join(project, "main.eel"), `
IMPORT "greet"
PRINT(greet::hello("eel"))
`)
	t.Chdir(project)

	code, stdout, stderr := captureCLI(t, []string{"deps", "install"})
	if code != 0 {
		t.Fatalf("deps install: exit %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "Created eel.lock") || !strings.Contains(stdout, "Dependencies installed.") {
		t.Fatalf("deps install stdout = %q", stdout)
	}

	lock, err := driver.LoadLockfile(filepath.Join(project, driver.LockfileName))
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	pkg := findLockedPackage(lock.Packages, "greeter")
	if pkg == nil {
		t.Fatalf("greeter missing from lockfile: %#v", lock.Packages)
	}
	want := filepath.Join(root, "greeter")
	if pkg.Version != "1.2.0" || pkg.Path != want || pkg.Source != "path:"+want || pkg.Checksum == "" {
		t.Fatalf("unexpected locked package %#v", pkg)
	}

	code, stdout, stderr = captureCLI(t, []string{"run"})
	if code != 0 || stdout != "hello eel\n" {
		t.Fatalf("run: exit %d stdout %q stderr %q", code, stdout, stderr)
	}

	code, stdout, _ = captureCLI(t, []string{"deps", "install"})
	if code != 0 || !strings.Contains(stdout, "eel.lock already up to date") {
		t.Fatalf("second install: exit %d stdout %q", code, stdout)
	}
}

func TestDepsInstallTransitive(t *testing.T) {
	cfg := useConfig(t, testConfig(t))
	root := tempRoot(t)
	writeFile(t, filepath.Join(root, "base", "base.eel"), `VAR answer = 42`)
	writeFile(t, filepath.Join(root, "middle", "eel.yml"), `
name: middle
dependencies:
  base:
    path: ../base
`)
	writeFile(t, filepath.Join(root, "middle", "middle.eel"), `VAR ok = true`)
	writeFile(t, filepath.Join(root, "app", "eel.yml"), `
name: app
dependencies:
  middle:
    path: ../middle
`)
	manifest, err := driver.LoadManifest(filepath.Join(root, "app", "eel.yml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	lock := driver.NewLockfile("app", cliToolVersion)
	changed, logs, err := newDependencyInstaller(manifest, cfg).Install(lock)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !changed || len(logs) != 2 {
		t.Fatalf("changed=%v logs=%v", changed, logs)
	}
	if len(lock.Packages) != 2 || lock.Packages[0].Name != "base" || lock.Packages[1].Name != "middle" {
		t.Fatalf("packages = %#v", lock.Packages)
	}
	if lock.Packages[0].Version != devVersion {
		t.Fatalf("base version = %q", lock.Packages[0].Version)
	}
}

func TestDepsInstallDetectsCycle(t *testing.T) {
	cfg := useConfig(t, testConfig(t))
	root := tempRoot(t)
	writeFile(t, filepath.Join(root, "a", "eel.yml"), `
name: a
dependencies:
  b:
    path: ../b
`)
	writeFile(t, filepath.Join(root, "b", "eel.yml"), `
name: b
dependencies:
  a:
    path: ../a
`)
	writeFile(t, filepath.Join(root, "app", "eel.yml"), `
name: app
dependencies:
  a:
    path: ../a
`)
	manifest, err := driver.LoadManifest(filepath.Join(root, "app", "eel.yml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	_, _, err = newDependencyInstaller(manifest, cfg).Install(driver.NewLockfile("app", cliToolVersion))
	if err == nil || !strings.Contains(err.Error(), "dependency cycle detected at a") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestDepsInstallRegistryDependency(t *testing.T) {
	cfg := useConfig(t, testConfig(t))
	writeFile(t, filepath.Join(cfg.Home, "registry", "strutil", "0.3.0", "strutil.eel"), `FN twice(s) -> s * 2`)

	project := filepath.Join(tempRoot(t), "app")
	writeFile(t, filepath.Join(project, "eel.yml"), `
name: app
dependencies:
  strutil: 0.3.0
`)
	writeFile(t, filepath.Join(project, "main.eel"), `
IMPORT "strutil"
PRINT(strutil::twice("ab"))
`)
	t.Chdir(project)

	if code, _, stderr := captureCLI(t, []string{"deps", "install"}); code != 0 {
		t.Fatalf("deps install: exit %d stderr %q", code, stderr)
	}
	lock, err := driver.LoadLockfile(filepath.Join(project, driver.LockfileName))
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	pkg := findLockedPackage(lock.Packages, "strutil")
	want := cfg.packageDir("strutil", "0.3.0")
	if pkg == nil || pkg.Path != want || pkg.Source != "registry:strutil/0.3.0" {
		t.Fatalf("unexpected locked package %#v", pkg)
	}
	if _, err := os.Stat(filepath.Join(want, "strutil.eel")); err != nil {
		t.Fatalf("package not copied into cache: %v", err)
	}

	code, stdout, stderr := captureCLI(t, []string{"main.eel"})
	if code != 0 || stdout != "abab\n" {
		t.Fatalf("run: exit %d stdout %q stderr %q", code, stdout, stderr)
	}
}

func TestDepsInstallMissingRegistryPackage(t *testing.T) {
	useConfig(t, testConfig(t))
	project := tempRoot(t)
	writeFile(t, filepath.Join(project, "eel.yml"), `
name: app
dependencies:
  nothing: 9.9.9
`)
	t.Chdir(project)

	code, _, stderr := captureCLI(t, []string{"deps", "install"})
	if code != 1 || !strings.Contains(stderr, "registry: package nothing@9.9.9 not found") {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(project, driver.LockfileName)); !os.IsNotExist(err) {
		t.Fatalf("lockfile should not be written on failure: %v", err)
	}
}

func TestDepsInstallGitDependency(t *testing.T) {
	cfg := useConfig(t, testConfig(t))
	root := tempRoot(t)
	repo := filepath.Join(root, "remote")
	writeFile(t, filepath.Join(repo, "eel.yml"), `
name: shapes
version: 2.0.0
`)
	writeFile(t, filepath.Join(repo, "shapes.eel"), `FN area(w, h) -> w * h`)
	rev := initGitRepo(t, repo)

	project := filepath.Join(root, "app")
	writeFile(t, filepath.Join(project, "eel.yml"), `
name: app
dependencies:
  shapes:
    git: `+repo+`
    rev: `+rev+`
`)
	manifest, err := driver.LoadManifest(filepath.Join(project, "eel.yml"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	lock := driver.NewLockfile("app", cliToolVersion)
	if _, _, err := newDependencyInstaller(manifest, cfg).Install(lock); err != nil {
		t.Fatalf("Install: %v", err)
	}
	pkg := findLockedPackage(lock.Packages, "shapes")
	if pkg == nil {
		t.Fatalf("shapes missing from lockfile")
	}
	if pkg.Version != rev || pkg.Source != "git+"+repo+"@"+rev {
		t.Fatalf("unexpected locked package %#v", pkg)
	}
	if pkg.Path != cfg.packageDir("shapes", rev) {
		t.Fatalf("path = %q", pkg.Path)
	}
	if _, err := os.Stat(filepath.Join(pkg.Path, "shapes.eel")); err != nil {
		t.Fatalf("checkout missing script: %v", err)
	}
}

func TestDepsRejectsUnknownSubcommand(t *testing.T) {
	useConfig(t, testConfig(t))
	if code, _, stderr := captureCLI(t, []string{"deps", "update"}); code != 1 || !strings.Contains(stderr, `unknown deps subcommand "update"`) {
		t.Fatalf("exit %d stderr %q", code, stderr)
	}
}
