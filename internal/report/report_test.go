package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/version"
)

func TestNew_AssignsBuildID(t *testing.T) {
	a := New("/src")
	b := New("/src")
	_, err := uuid.Parse(a.BuildID)
	require.NoError(t, err)
	assert.NotEqual(t, a.BuildID, b.BuildID)
	assert.Equal(t, SchemaVersion, a.SchemaVersion)
	assert.Equal(t, version.Version, a.Generator)
}

func TestFinish_DerivesOutcome(t *testing.T) {
	ok := New("/src")
	ok.Finish(nil)
	assert.Equal(t, OutcomeSuccess, ok.Outcome)

	warn := New("/src")
	warn.AddWarnings([]ferrors.Warning{{Kind: ferrors.WarningAssetCopy, Path: "a.png", Err: errors.New("denied")}})
	warn.Finish(nil)
	assert.Equal(t, OutcomeWarning, warn.Outcome)
	assert.Equal(t, Issue{Kind: "asset_copy", Category: "asset", Path: "a.png", Message: "denied"}, warn.Issues[0])

	failed := New("/src")
	failed.Finish(errors.New("boom"))
	assert.Equal(t, OutcomeFailed, failed.Outcome)
	assert.Equal(t, "boom", failed.Error)
}

func TestMarshalAndLoad(t *testing.T) {
	r := New("/src")
	r.Files = 3
	r.ObserveStage("render", 1500*time.Millisecond)
	r.AddPage(Page{URLPath: "z.html", Template: "page"})
	r.AddPage(Page{URLPath: "a.html", Source: "a.md", Template: "page", Fingerprint: "sha256:abc"})
	r.Finish(nil)

	data, err := r.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "build-report.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, r.BuildID, loaded.BuildID)
	assert.Equal(t, int64(1500), loaded.StageMillis["render"])
	require.Len(t, loaded.Pages, 2)
	assert.Equal(t, "a.html", loaded.Pages[0].URLPath)
	assert.Equal(t, "sha256:abc", loaded.Pages[0].Fingerprint)
	assert.Equal(t, OutcomeSuccess, loaded.Outcome)
	assert.Contains(t, r.Summary(), "pages=2")
}
