// Package structure infers the shape of a scanned folder: which file is the
// homepage, which top-level folders are content collections, and what kind
// of site the folder represents. Classification is pure; Scan is the only
// function here that touches the filesystem.
package structure

import (
	"log/slog"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/logfields"
	"git.home.luguber.info/inful/moss/internal/scanner"
	"git.home.luguber.info/inful/moss/internal/util/sets"
)

// ProjectType is the overall structural classification of a source folder.
type ProjectType int

const (
	HomepageWithCollections ProjectType = iota
	SimpleFlatSite
	BlogStyleFlatSite
)

func (t ProjectType) String() string {
	switch t {
	case HomepageWithCollections:
		return "homepage_with_collections"
	case SimpleFlatSite:
		return "simple_flat_site"
	case BlogStyleFlatSite:
		return "blog_style_flat_site"
	default:
		return "unknown"
	}
}

// FlatSiteThreshold is the largest root document count still treated as a
// simple flat site.
const FlatSiteThreshold = 5

// homepagePriority lists root-level homepage candidates, lowercased, most
// preferred first.
var homepagePriority = []string{"index.md", "index.pages", "index.docx", "readme.md"}

var documentExtensions = sets.New("md", "markdown", "pages", "docx", "doc")

// IsDocument reports whether a record is a document-type file. Opaque
// formats count even though they are never parsed.
func IsDocument(r scanner.FileRecord) bool {
	return documentExtensions.Has(r.Extension)
}

// ProjectStructure is the read-only input every generation stage works from.
type ProjectStructure struct {
	Markdown []scanner.FileRecord
	HTML     []scanner.FileRecord
	Images   []scanner.FileRecord
	Other    []scanner.FileRecord

	TotalFileCount int
	HomepageFile   string // relative path of the homepage source, or ""
	ContentFolders sets.Set[string]
	ProjectType    ProjectType

	// Warnings carries scan-time partial failures forward.
	Warnings []ferrors.Warning
}

// HasHomepage reports whether a homepage file was detected.
func (p *ProjectStructure) HasHomepage() bool { return p.HomepageFile != "" }

// IsHomepage reports whether relPath is the detected homepage file.
func (p *ProjectStructure) IsHomepage(relPath string) bool {
	return p.HomepageFile != "" && p.HomepageFile == relPath
}

// SortedContentFolders returns the content folder names in ascending order.
func (p *ProjectStructure) SortedContentFolders() []string {
	return sets.Sorted(p.ContentFolders)
}

// InContentFolder returns the content folder relPath lives under, if any.
func (p *ProjectStructure) InContentFolder(relPath string) (string, bool) {
	dir, _, found := strings.Cut(relPath, "/")
	if !found || !p.ContentFolders.Has(dir) {
		return "", false
	}
	return dir, true
}

// Classify builds a ProjectStructure from scanned records without any I/O.
// Records are bucketed in relative-path order so output is deterministic.
func Classify(files []scanner.FileRecord) *ProjectStructure {
	sorted := slices.Clone(files)
	slices.SortFunc(sorted, func(a, b scanner.FileRecord) int {
		return strings.Compare(a.RelativePath, b.RelativePath)
	})

	ps := &ProjectStructure{TotalFileCount: len(sorted)}
	for _, f := range sorted {
		switch f.Type() {
		case scanner.TypeMarkdown:
			ps.Markdown = append(ps.Markdown, f)
		case scanner.TypeHTML:
			ps.HTML = append(ps.HTML, f)
		case scanner.TypeImage:
			ps.Images = append(ps.Images, f)
		default:
			ps.Other = append(ps.Other, f)
		}
	}

	ps.HomepageFile = DetectHomepage(sorted)
	ps.ContentFolders = DetectContentFolders(sorted)
	ps.ProjectType = ClassifyProject(ps.ContentFolders, RootDocumentCount(sorted))
	return ps
}

// DetectHomepage picks the homepage among root-level files. Named candidates
// win in priority order; otherwise the alphabetically first root document is
// used. It returns "" when the root holds no documents.
func DetectHomepage(files []scanner.FileRecord) string {
	byName := make(map[string]string)
	var roots []string
	for _, f := range files {
		if !f.IsRoot() || !IsDocument(f) {
			continue
		}
		lower := strings.ToLower(f.RelativePath)
		if _, seen := byName[lower]; !seen {
			byName[lower] = f.RelativePath
		}
		roots = append(roots, f.RelativePath)
	}

	for _, candidate := range homepagePriority {
		if p, ok := byName[candidate]; ok {
			return p
		}
	}
	if len(roots) == 0 {
		return ""
	}
	slices.Sort(roots)
	return roots[0]
}

// DetectContentFolders returns the top-level directories that hold at least
// one document-type file anywhere beneath them.
func DetectContentFolders(files []scanner.FileRecord) sets.Set[string] {
	folders := sets.New[string]()
	for _, f := range files {
		if f.IsRoot() || !IsDocument(f) {
			continue
		}
		folders.Add(f.TopLevelDir())
	}
	return folders
}

// RootDocumentCount counts document-type files directly in the root.
func RootDocumentCount(files []scanner.FileRecord) int {
	n := 0
	for _, f := range files {
		if f.IsRoot() && IsDocument(f) {
			n++
		}
	}
	return n
}

// ClassifyProject applies the fixed decision tree.
func ClassifyProject(contentFolders sets.Set[string], rootDocs int) ProjectType {
	switch {
	case contentFolders.Len() > 0:
		return HomepageWithCollections
	case rootDocs <= FlatSiteThreshold:
		return SimpleFlatSite
	default:
		return BlogStyleFlatSite
	}
}

// Scan walks root and classifies the result. Partial scan failures are kept
// on the returned structure as warnings.
func Scan(root string) (*ProjectStructure, error) {
	res, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	ps := Classify(res.Files)
	ps.Warnings = res.Warnings

	slog.Info("Classified folder",
		logfields.Path(root),
		logfields.Count(ps.TotalFileCount),
		slog.String("project_type", ps.ProjectType.String()),
		slog.String("homepage", ps.HomepageFile),
		slog.Int("content_folders", ps.ContentFolders.Len()),
		slog.Int("warnings", len(ps.Warnings)))
	return ps, nil
}
