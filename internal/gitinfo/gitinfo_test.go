package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubWebURL(t *testing.T) {
	tests := []struct {
		remote string
		want   string
		ok     bool
	}{
		{"https://github.com/inful/moss.git", "https://github.com/inful/moss", true},
		{"https://github.com/inful/moss", "https://github.com/inful/moss", true},
		{"git@github.com:inful/moss.git", "https://github.com/inful/moss", true},
		{"ssh://git@github.com/inful/moss.git", "https://github.com/inful/moss", true},
		{"https://gitlab.com/inful/moss.git", "", false},
		{"/srv/git/moss.git", "", false},
		{"https://github.com/inful", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			got, ok := GitHubWebURL(tt.remote)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_FindsRepositoryFromSubfolder(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:example/blog.git"}})
	require.NoError(t, err)

	site := filepath.Join(root, "site")
	require.NoError(t, os.MkdirAll(site, 0o750))

	info, err := Detect(site)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "git@github.com:example/blog.git", info.RemoteURL)
	assert.Equal(t, "https://github.com/example/blog", info.WebURL)
	assert.Empty(t, info.Head, "fresh repository has no commits")

	assert.Equal(t, info, Lookup(site))
}

func TestDetect_ReadsBranchAndHead(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.md"), []byte("# Home"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("index.md")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Moss", Email: "moss@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	info := Lookup(root)
	require.NotNil(t, info)
	assert.Equal(t, hash.String(), info.Head)
	assert.Equal(t, "master", info.Branch)
	assert.Empty(t, info.RemoteURL)
}

func TestDetect_WithoutOrigin(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	info, err := Detect(root)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Empty(t, info.WebURL)
}

func TestDetect_OutsideRepository(t *testing.T) {
	dir := t.TempDir()
	info, err := Detect(dir)
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.Nil(t, Lookup(dir))
}
