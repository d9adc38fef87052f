package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"eel/interpreter-go/pkg/driver"
)

const devVersion = "0.0.0-dev"

// pathFetcher links a local directory in place.
type pathFetcher struct{}

func (pathFetcher) Fetch(name string, spec *driver.DependencySpec) (*driver.LockedPackage, *driver.Manifest, error) {
	abs, err := filepath.Abs(spec.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: resolve path %q: %w", name, spec.Path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: stat %s: %w", name, abs, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("dependency %q: expected directory at %s", name, abs)
	}
	depManifest, err := loadOptionalManifest(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: %w", name, err)
	}
	checksum, err := dirChecksum(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: checksum %s: %w", name, abs, err)
	}
	return &driver.LockedPackage{
		Name:     name,
		Version:  manifestVersion(depManifest),
		Source:   "path:" + abs,
		Checksum: checksum,
		Path:     abs,
	}, depManifest, nil
}

// registryFetcher copies <registry>/<name>/<version> into the package cache.
// The registry defaults to $EEL_HOME/registry.
type registryFetcher struct {
	cfg  config
	root string
}

func newRegistryFetcher(cfg config) *registryFetcher {
	return &registryFetcher{cfg: cfg, root: filepath.Join(cfg.Home, "registry")}
}

func (r *registryFetcher) Fetch(name string, spec *driver.DependencySpec) (*driver.LockedPackage, *driver.Manifest, error) {
	version := strings.TrimSpace(spec.Version)
	packageDir := filepath.Join(r.root, name, version)
	info, err := os.Stat(packageDir)
	if err != nil {
		return nil, nil, fmt.Errorf("registry: package %s@%s not found in %s: %w", name, version, r.root, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("registry: expected directory at %s", packageDir)
	}

	target := r.cfg.packageDir(name, version)
	if err := copyOrSyncDir(packageDir, target); err != nil {
		return nil, nil, fmt.Errorf("registry: copy %s -> %s: %w", packageDir, target, err)
	}
	checksum, err := dirChecksum(target)
	if err != nil {
		return nil, nil, fmt.Errorf("registry: checksum %s: %w", target, err)
	}
	depManifest, err := loadOptionalManifest(target)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: %w", name, err)
	}
	return &driver.LockedPackage{
		Name:     name,
		Version:  version,
		Source:   fmt.Sprintf("registry:%s/%s", name, version),
		Checksum: checksum,
		Path:     target,
	}, depManifest, nil
}

// gitFetcher clones a repository and checks out the pinned revision into
// the package cache.
type gitFetcher struct {
	cfg config
}

func newGitFetcher(cfg config) *gitFetcher {
	return &gitFetcher{cfg: cfg}
}

func (g *gitFetcher) Fetch(name string, spec *driver.DependencySpec) (*driver.LockedPackage, *driver.Manifest, error) {
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, nil, fmt.Errorf("dependency %q: git URL required", name)
	}
	baseDir := filepath.Join(g.cfg.Home, "pkg", name)
	version, commit, err := ensureGitCheckout(baseDir, url, spec)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: %w", name, err)
	}

	checkoutDir := g.cfg.packageDir(name, version)
	checksum, err := dirChecksum(checkoutDir)
	if err != nil {
		return nil, nil, err
	}
	depManifest, err := loadOptionalManifest(checkoutDir)
	if err != nil {
		return nil, nil, fmt.Errorf("dependency %q: %w", name, err)
	}
	return &driver.LockedPackage{
		Name:     name,
		Version:  version,
		Source:   fmt.Sprintf("git+%s@%s", url, commit),
		Checksum: checksum,
		Path:     checkoutDir,
	}, depManifest, nil
}

// ensureGitCheckout returns the pinned version label and the commit hash.
// A checkout that already exists for the label is reused.
func ensureGitCheckout(baseDir, url string, spec *driver.DependencySpec) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}
	revision, descriptor, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", "", err
	}

	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		if _, err := os.Stat(filepath.Join(baseDir, sanitizePathSegment(rev))); err == nil {
			return rev, rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}
	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	version := gitPinnedVersion(descriptor, hash.String())
	targetDir := filepath.Join(baseDir, sanitizePathSegment(version))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return version, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return version, hash.String(), nil
}

func gitPinnedVersion(descriptor, commit string) string {
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return descriptor + "@" + commit
}

func gitRevisionFromSpec(spec *driver.DependencySpec) (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), branch, nil
	}
	return "", "", errors.New("git dependencies require rev, tag, or branch")
}

// loadOptionalManifest reads dir/eel.yml, returning nil when it is absent.
func loadOptionalManifest(dir string) (*driver.Manifest, error) {
	path := filepath.Join(dir, driver.ManifestName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return driver.LoadManifest(path)
}

func manifestVersion(m *driver.Manifest) string {
	if m == nil || strings.TrimSpace(m.Version) == "" {
		return devVersion
	}
	return strings.TrimSpace(m.Version)
}

func copyOrSyncDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(entries))
	for _, entry := range entries {
		keep[entry.Name()] = true
	}

	// Remove stale files from destination.
	if existing, err := os.ReadDir(dst); err == nil {
		for _, entry := range existing {
			if keep[entry.Name()] {
				continue
			}
			if err := os.RemoveAll(filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			err = copyOrSyncDir(srcPath, dstPath)
		} else {
			err = copyFile(srcPath, dstPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// dirChecksum hashes file names and contents, skipping .git.
func dirChecksum(root string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
