package structure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/scanner"
	"git.home.luguber.info/inful/moss/internal/util/sets"
)

func records(paths ...string) []scanner.FileRecord {
	out := make([]scanner.FileRecord, 0, len(paths))
	for _, p := range paths {
		out = append(out, scanner.NewFileRecord(p, 1, time.Time{}))
	}
	return out
}

func TestDetectHomepage(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"index beats readme", []string{"README.md", "index.md"}, "index.md"},
		{"readme beats plain docs", []string{"about.md", "README.md"}, "README.md"},
		{"alphabetical fallback", []string{"b.md", "a.md"}, "a.md"},
		{"case insensitive index", []string{"Index.MD", "README.md"}, "Index.MD"},
		{"pages before docx", []string{"index.docx", "index.pages", "README.md"}, "index.pages"},
		{"docx before readme", []string{"index.docx", "README.md"}, "index.docx"},
		{"nested index ignored", []string{"posts/index.md", "zeta.md"}, "zeta.md"},
		{"images do not count", []string{"index.png", "notes.txt"}, ""},
		{"no files", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectHomepage(records(tt.files...)))
		})
	}
}

func TestDetectContentFolders(t *testing.T) {
	got := DetectContentFolders(records(
		"index.md",
		"posts/x.md",
		"posts/y.md",
		"projects/a.docx",
		"images/p.jpg",
	))
	assert.Equal(t, []string{"posts", "projects"}, sets.Sorted(got))
}

func TestDetectContentFolders_NestedDocumentCountsForTopLevel(t *testing.T) {
	got := DetectContentFolders(records("notes/2025/jan/a.markdown", "assets/favicon.svg"))
	assert.Equal(t, []string{"notes"}, sets.Sorted(got))
}

func TestClassifyProject(t *testing.T) {
	assert.Equal(t, HomepageWithCollections, ClassifyProject(sets.New("posts"), 12))
	assert.Equal(t, SimpleFlatSite, ClassifyProject(sets.New[string](), 0))
	assert.Equal(t, SimpleFlatSite, ClassifyProject(sets.New[string](), FlatSiteThreshold))
	assert.Equal(t, BlogStyleFlatSite, ClassifyProject(sets.New[string](), 7))
}

func TestClassify(t *testing.T) {
	ps := Classify(records(
		"posts/b.md",
		"index.md",
		"posts/a.md",
		"page.html",
		"images/p.jpg",
		"doc/report.docx",
	))

	assert.Equal(t, 6, ps.TotalFileCount)
	require.Len(t, ps.Markdown, 3)
	assert.Equal(t, "index.md", ps.Markdown[0].RelativePath)
	assert.Equal(t, "posts/a.md", ps.Markdown[1].RelativePath)
	assert.Len(t, ps.HTML, 1)
	assert.Len(t, ps.Images, 1)
	assert.Len(t, ps.Other, 1)
	assert.Equal(t, "index.md", ps.HomepageFile)
	assert.True(t, ps.IsHomepage("index.md"))
	assert.False(t, ps.IsHomepage("posts/a.md"))
	assert.Equal(t, []string{"doc", "posts"}, ps.SortedContentFolders())
	assert.Equal(t, HomepageWithCollections, ps.ProjectType)

	folder, ok := ps.InContentFolder("posts/a.md")
	assert.True(t, ok)
	assert.Equal(t, "posts", folder)
	_, ok = ps.InContentFolder("images/p.jpg")
	assert.False(t, ok)
	_, ok = ps.InContentFolder("index.md")
	assert.False(t, ok)
}

func TestClassify_FlatSites(t *testing.T) {
	simple := Classify(records("a.md", "b.md", "c.md", "d.md", "e.md"))
	assert.Equal(t, SimpleFlatSite, simple.ProjectType)

	blog := Classify(records("a.md", "b.md", "c.md", "d.md", "e.md", "f.md", "g.md"))
	assert.Equal(t, BlogStyleFlatSite, blog.ProjectType)
	assert.Equal(t, "a.md", blog.HomepageFile)
}

func TestClassify_Empty(t *testing.T) {
	ps := Classify(nil)
	assert.Equal(t, 0, ps.TotalFileCount)
	assert.False(t, ps.HasHomepage())
	assert.Equal(t, 0, ps.ContentFolders.Len())
	assert.Equal(t, SimpleFlatSite, ps.ProjectType)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"README.md":             "# My Blog",
		"journal/2025-01-15.md": "# First Post",
		"journal/cover.png":     "png",
	} {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	ps, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, 3, ps.TotalFileCount)
	assert.Equal(t, "README.md", ps.HomepageFile)
	assert.Equal(t, []string{"journal"}, ps.SortedContentFolders())
	assert.Empty(t, ps.Warnings)
}

func TestScan_EmptyFolder(t *testing.T) {
	ps, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, ps.TotalFileCount)
}

func TestScan_MissingFolder(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryInput))
}

func TestProjectTypeString(t *testing.T) {
	assert.Equal(t, "homepage_with_collections", HomepageWithCollections.String())
	assert.Equal(t, "simple_flat_site", SimpleFlatSite.String())
	assert.Equal(t, "blog_style_flat_site", BlogStyleFlatSite.String())
}
