package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Script is a program ready to evaluate.
type Script struct {
	// Name is the target name, or the path for plain files.
	Name string
	// Path is where the source was read from on disk.
	Path   string
	Source string
	// Commit is the resolved hash for git-backed targets.
	Commit string
}

// Loader reads scripts from local files and from git-backed targets. Git
// checkouts are cached under CacheDir, one directory per resolved commit.
type Loader struct {
	CacheDir string
}

// NewLoader returns a loader caching checkouts under cacheDir.
func NewLoader(cacheDir string) *Loader {
	return &Loader{CacheDir: cacheDir}
}

// ResolveCraftHome returns $CRAFT_HOME, falling back to ~/.craft.
func ResolveCraftHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("CRAFT_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve CRAFT_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".craft"), nil
}

// LoadFile reads a script from disk.
func (l *Loader) LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Script{Name: path, Path: path, Source: string(data)}, nil
}

// LoadTarget resolves a config target to its script. Relative paths and
// local repository paths resolve against the config directory.
func (l *Loader) LoadTarget(ctx context.Context, cfg *Config, target *TargetSpec) (*Script, error) {
	if target == nil {
		return nil, fmt.Errorf("missing target")
	}
	if !target.IsGit() {
		script, err := l.LoadFile(resolveAgainst(cfg.Dir(), target.Path))
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", target.Name, err)
		}
		script.Name = target.Name
		return script, nil
	}

	if l.CacheDir == "" {
		return nil, errors.New("git loader unavailable: no cache directory")
	}
	url := target.Git
	if isLocalRepository(url) {
		url = resolveAgainst(cfg.Dir(), url)
	}
	baseDir := filepath.Join(l.CacheDir, "git", sanitizePathSegment(target.Name))
	checkoutDir, commit, err := ensureGitCheckout(ctx, baseDir, url, target)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", target.Name, err)
	}

	path, err := containedPath(checkoutDir, target.File)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", target.Name, err)
	}
	script, err := l.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", target.Name, err)
	}
	script.Name = target.Name
	script.Commit = commit
	return script, nil
}

// ensureGitCheckout clones url, resolves the target's revision and leaves a
// checkout of that commit at baseDir/<commit>. Existing checkouts are reused.
func ensureGitCheckout(ctx context.Context, baseDir, url string, target *TargetSpec) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	if rev := target.Rev; rev != "" && plumbing.IsHash(rev) {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return existing, rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainCloneContext(ctx, tmpDir, false, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := resolveTargetRevision(repo, target)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}

	targetDir := filepath.Join(baseDir, hash.String())
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", hash, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, hash.String(), nil
}

func resolveTargetRevision(repo *git.Repository, target *TargetSpec) (*plumbing.Hash, error) {
	var candidates []plumbing.Revision
	switch {
	case target.Rev != "":
		candidates = []plumbing.Revision{plumbing.Revision(target.Rev)}
	case target.Tag != "":
		candidates = []plumbing.Revision{plumbing.Revision("refs/tags/" + target.Tag)}
	case target.Branch != "":
		candidates = []plumbing.Revision{
			plumbing.Revision("refs/remotes/origin/" + target.Branch),
			plumbing.Revision("refs/heads/" + target.Branch),
		}
	default:
		candidates = []plumbing.Revision{plumbing.Revision(plumbing.HEAD)}
	}
	var lastErr error
	for _, rev := range candidates {
		hash, err := repo.ResolveRevision(rev)
		if err == nil {
			return hash, nil
		}
		lastErr = fmt.Errorf("resolve revision %s: %w", rev, err)
	}
	return nil, lastErr
}

func containedPath(root, rel string) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	inside, err := filepath.Rel(root, path)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("file %q escapes the repository", rel)
	}
	return path, nil
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, filepath.FromSlash(path))
}

func isLocalRepository(url string) bool {
	if strings.Contains(url, "://") {
		return false
	}
	// scp-like syntax: user@host:path
	if at, colon := strings.Index(url, "@"), strings.Index(url, ":"); at >= 0 && colon > at {
		return false
	}
	return true
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
