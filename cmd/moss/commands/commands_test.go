package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("moss"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	args = append([]string{"-c", filepath.Join(t.TempDir(), "moss.yaml")}, args...)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = kctx.Run(&Global{Logger: slog.Default(), Out: &out}, &cli)
	return out.String(), err
}

func blogFolder(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"README.md":             "# My Blog\n\nWelcome.",
		"journal/2025-01-15.md": "# First Post\n\nHello.",
		"journal/2025-01-10.md": "# Earlier\n\nHi.",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return root
}

func TestGenerateCommand(t *testing.T) {
	root := blogFolder(t)
	out, err := runCLI(t, "generate", root)
	require.NoError(t, err)

	assert.Contains(t, out, `Generated "My Blog": 4 pages`)
	assert.Contains(t, out, filepath.Join(root, ".moss", "site"))
	assert.FileExists(t, filepath.Join(root, ".moss", "site", "index.html"))
	assert.FileExists(t, filepath.Join(root, ".moss", "build-report.json"))
}

func TestGenerateCommand_ReportDisabledByEnv(t *testing.T) {
	t.Setenv("MOSS_REPORT", "false")
	root := blogFolder(t)
	_, err := runCLI(t, "generate", root)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(root, ".moss", "build-report.json"))
}

func TestGenerateCommand_ReportsSkippedContent(t *testing.T) {
	root := blogFolder(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.md"), []byte("---\ntitle: [\n---\n"), 0o600))

	out, err := runCLI(t, "generate", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped: 1 (document_parse=1)")
	assert.Contains(t, out, "broken.md")
}

func TestGenerateCommand_EmptyFolder(t *testing.T) {
	_, err := runCLI(t, "generate", t.TempDir())
	require.Error(t, err)

	adapter := ferrors.NewCLIErrorAdapter(false, slog.Default())
	assert.Equal(t, 3, adapter.ExitCodeFor(err))
	assert.Contains(t, adapter.FormatError(err), "no files found")
}

func TestGenerateCommand_MissingFolder(t *testing.T) {
	_, err := runCLI(t, "generate", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, slog.Default()).ExitCodeFor(err))
}

func TestScanCommand(t *testing.T) {
	root := blogFolder(t)
	out, err := runCLI(t, "scan", root)
	require.NoError(t, err)

	assert.Contains(t, out, "homepage_with_collections")
	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "journal")
	assert.NotContains(t, out, "2025-01-15.md")
	assert.NoDirExists(t, filepath.Join(root, ".moss"))
}

func TestScanCommand_Files(t *testing.T) {
	root := blogFolder(t)
	out, err := runCLI(t, "scan", "--files", root)
	require.NoError(t, err)

	assert.Contains(t, out, "journal/2025-01-15.md")
	assert.Contains(t, out, "markdown")
	assert.Contains(t, out, "B")
}

func TestAfterApply_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "moss.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log: [unclosed"), 0o600))

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("moss"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"-c", cfgPath, "scan", t.TempDir()})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestSettingsDefaultsWithoutAfterApply(t *testing.T) {
	var cli CLI
	cfg := cli.settings()
	assert.Equal(t, 4040, cfg.Preview.Port)
	assert.True(t, cfg.Build.ReportEnabled())
}
