// Package gitinfo looks up the git repository a source folder lives in, so
// generated pages can link back to where their sources are hosted.
package gitinfo

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/moss/internal/logfields"
)

// Info describes the repository containing a folder.
type Info struct {
	RemoteURL string
	WebURL    string // browsable GitHub URL, "" for other hosts
	Branch    string
	Head      string
}

// Detect opens the repository containing dir, searching parent directories.
// A folder outside any repository yields (nil, nil).
func Detect(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	info := &Info{}
	if remote, rerr := repo.Remote("origin"); rerr == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.RemoteURL = urls[0]
			info.WebURL, _ = GitHubWebURL(urls[0])
		}
	} else if !errors.Is(rerr, git.ErrRemoteNotFound) {
		return nil, fmt.Errorf("read origin remote: %w", rerr)
	}

	if ref, herr := repo.Head(); herr == nil {
		info.Head = ref.Hash().String()
		if ref.Name().IsBranch() {
			info.Branch = ref.Name().Short()
		}
	} else if !errors.Is(herr, plumbing.ErrReferenceNotFound) {
		slog.Debug("Repository has no readable HEAD", logfields.Path(dir), logfields.Error(herr))
	}

	return info, nil
}

// Lookup is Detect for callers that treat git metadata as optional:
// failures are logged and reported as no repository.
func Lookup(dir string) *Info {
	info, err := Detect(dir)
	if err != nil {
		slog.Debug("Git detection failed", logfields.Path(dir), logfields.Error(err))
		return nil
	}
	return info
}

// GitHubWebURL converts a GitHub remote (https, ssh or scp-like) to the
// repository's https URL.
func GitHubWebURL(remote string) (string, bool) {
	remote = strings.TrimSpace(remote)
	var host, repoPath string

	switch {
	case strings.Contains(remote, "://"):
		u, err := url.Parse(remote)
		if err != nil {
			return "", false
		}
		host, repoPath = u.Hostname(), u.Path
	case strings.Contains(remote, ":"):
		// scp-like: git@github.com:owner/repo.git
		userHost, p, _ := strings.Cut(remote, ":")
		if i := strings.LastIndex(userHost, "@"); i >= 0 {
			userHost = userHost[i+1:]
		}
		host, repoPath = userHost, p
	default:
		return "", false
	}

	if !strings.EqualFold(host, "github.com") {
		return "", false
	}
	repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
	owner, name, ok := strings.Cut(repoPath, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return "https://github.com/" + owner + "/" + name, true
}
