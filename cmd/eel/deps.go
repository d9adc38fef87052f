package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"eel/interpreter-go/pkg/driver"
)

func runDeps(cfg config, args []string) int {
	if len(args) == 0 {
		logError("eel deps requires a subcommand (install)")
		return exitError
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			logError("eel deps install does not take arguments (received %s)", strings.Join(args[1:], " "))
			return exitError
		}
		return runDepsInstall(cfg)
	default:
		logError("unknown deps subcommand %q", args[0])
		return exitError
	}
}

func runDepsInstall(cfg config) int {
	cwd, err := os.Getwd()
	if err != nil {
		logError("failed to determine working directory: %v", err)
		return exitError
	}
	manifestPath, err := driver.FindManifest(cwd)
	if err != nil {
		logError("unable to locate %s: %v", driver.ManifestName, err)
		return exitError
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		logError("failed to read manifest: %v", err)
		return exitError
	}

	logInfo("Manifest: %s", manifest.Path)
	logInfo("Root package: %s", manifest.Name)
	logInfo("Dependencies: %d", len(manifest.Dependencies))
	logInfo("Cache directory: %s", cfg.Home)

	lockPath := filepath.Join(manifest.Dir(), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if !lock.OwnedBy(manifest.Name) {
			logError("lockfile root %q does not match manifest name %q", lock.Root, manifest.Name)
			return exitError
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
		lockCreated = true
	default:
		logError("failed to read lockfile: %v", err)
		return exitError
	}
	lock.Path = lockPath
	lock.Tool = cliToolVersion

	installer := newDependencyInstaller(manifest, cfg)
	changed, logs, err := installer.Install(lock)
	for _, line := range logs {
		logInfo("%s", line)
	}
	if err != nil {
		logError("failed to resolve dependencies: %v", err)
		return exitError
	}

	if changed || lockCreated {
		action := "Updated"
		if lockCreated {
			action = "Created"
		}
		if err := driver.WriteLockfile(lock, lockPath); err != nil {
			logError("failed to write lockfile: %v", err)
			return exitError
		}
		logInfo("%s %s: %s", action, driver.LockfileName, lock.Path)
	} else {
		logInfo("%s already up to date: %s", driver.LockfileName, lock.Path)
	}
	logSuccess(os.Stdout, "Dependencies installed.")
	return exitOK
}

// fetcher materialises one dependency and reports where its scripts live.
// manifest is the dependency's own eel.yml, when it has one.
type fetcher interface {
	Fetch(name string, spec *driver.DependencySpec) (pkg *driver.LockedPackage, manifest *driver.Manifest, err error)
}

type dependencyInstaller struct {
	manifest  *driver.Manifest
	logs      []string
	path      fetcher
	registry  fetcher
	git       fetcher
	resolved  map[string]*driver.LockedPackage
	resolving map[string]bool
}

func newDependencyInstaller(manifest *driver.Manifest, cfg config) *dependencyInstaller {
	return &dependencyInstaller{
		manifest: manifest,
		path:     pathFetcher{},
		registry: newRegistryFetcher(cfg),
		git:      newGitFetcher(cfg),
	}
}

// Install resolves every dependency, including those declared by the
// dependencies' own manifests, and replaces lock's packages. It reports
// whether the package set changed.
func (d *dependencyInstaller) Install(lock *driver.Lockfile) (bool, []string, error) {
	d.logs = nil
	d.resolved = make(map[string]*driver.LockedPackage)
	d.resolving = make(map[string]bool)

	for _, name := range d.manifest.DependencyNames() {
		spec := resolveSpecPath(d.manifest, d.manifest.Dependencies[name])
		if err := d.installDependency(name, spec); err != nil {
			return false, d.logs, err
		}
	}

	desired := make([]*driver.LockedPackage, 0, len(d.resolved))
	for _, pkg := range d.resolved {
		desired = append(desired, pkg)
	}
	sort.Slice(desired, func(i, j int) bool { return desired[i].Name < desired[j].Name })

	changed := len(desired) != len(lock.Packages)
	for _, pkg := range desired {
		if current := lock.Find(pkg.Name); current == nil || !lockedPackageEqual(current, pkg) {
			changed = true
		}
	}
	lock.Packages = nil
	for _, pkg := range desired {
		lock.Put(pkg)
	}
	return changed, d.logs, nil
}

func (d *dependencyInstaller) installDependency(name string, spec *driver.DependencySpec) error {
	if spec == nil {
		return fmt.Errorf("dependency %q has no descriptor", name)
	}
	if _, done := d.resolved[name]; done {
		return nil
	}
	if d.resolving[name] {
		return fmt.Errorf("dependency cycle detected at %s", name)
	}
	d.resolving[name] = true
	defer delete(d.resolving, name)

	var f fetcher
	switch {
	case spec.Path != "":
		f = d.path
	case spec.Git != "":
		f = d.git
	case spec.Version != "":
		f = d.registry
	default:
		return fmt.Errorf("dependency %q: unsupported descriptor", name)
	}
	pkg, depManifest, err := f.Fetch(name, spec)
	if err != nil {
		return err
	}
	d.logs = append(d.logs, fmt.Sprintf("installed %s %s (%s)", pkg.Name, pkg.Version, pkg.Source))

	if depManifest != nil {
		for _, child := range depManifest.DependencyNames() {
			childSpec := resolveSpecPath(depManifest, depManifest.Dependencies[child])
			if err := d.installDependency(child, childSpec); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	d.resolved[name] = pkg
	return nil
}

// resolveSpecPath returns spec with a relative path made absolute against
// the declaring manifest.
func resolveSpecPath(m *driver.Manifest, spec *driver.DependencySpec) *driver.DependencySpec {
	if spec == nil || spec.Path == "" || filepath.IsAbs(spec.Path) {
		return spec
	}
	clone := *spec
	clone.Path = m.Resolve(spec.Path)
	return &clone
}

// lockedPackageEqual compares everything but the name, which the lockfile
// normalises.
func lockedPackageEqual(a, b *driver.LockedPackage) bool {
	return a.Version == b.Version &&
		a.Source == b.Source &&
		a.Checksum == b.Checksum &&
		a.Path == b.Path
}
