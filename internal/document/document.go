// Package document turns one Markdown source file into a Document: rendered
// HTML plus the metadata every page template needs.
package document

import (
	"fmt"
	"html"
	"log/slog"
	"path"
	"strings"

	"github.com/inful/mdfp"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/frontmatter"
	"git.home.luguber.info/inful/moss/internal/htmltext"
	"git.home.luguber.info/inful/moss/internal/logfields"
	"git.home.luguber.info/inful/moss/internal/markdown"
	"git.home.luguber.info/inful/moss/internal/urlpath"
)

const (
	// HomepageURLPath is the output path reserved for the site homepage.
	HomepageURLPath = "index.html"

	wordsPerMinute = 200
	excerptLength  = 200
)

// Document is one parsed source file. It is built once and never mutated.
type Document struct {
	SourcePath   string
	Title        string
	DisplayTitle string
	RawContent   string
	HTMLContent  string
	URLPath      string
	Date         string
	Topics       []string
	ReadingTime  int
	Excerpt      string
	Slug         string
	Permalink    string
	Weight       *int
	GitHubURL    string
	HeadScripts  string
	Fingerprint  string
}

// HasDate reports whether the document carries a date.
func (d *Document) HasDate() bool { return d.Date != "" }

// FormattedDate returns the human-readable date, or "" when undated.
func (d *Document) FormattedDate() string {
	if d.Date == "" {
		return ""
	}
	return FormatDate(d.Date)
}

// Dir returns the output directory of the document, "" at the root.
func (d *Document) Dir() string {
	dir := path.Dir(d.URLPath)
	if dir == "." {
		return ""
	}
	return dir
}

// IsHomepage reports whether the document is written as the site index.
func (d *Document) IsHomepage() bool { return d.URLPath == HomepageURLPath }

// Processor converts Markdown sources into Documents.
type Processor struct {
	renderer     *markdown.Renderer
	homepageFile string
}

// NewProcessor returns a processor. homepageFile is the relative path the
// classifier chose as homepage; only that file is mapped to index.html.
func NewProcessor(homepageFile string) *Processor {
	return &Processor{renderer: markdown.New(), homepageFile: homepageFile}
}

// Process parses raw, the content of the file at relPath (slash separated,
// relative to the source root). It fails only when the frontmatter cannot
// be decoded or the body cannot be rendered.
func (p *Processor) Process(relPath string, raw []byte) (*Document, error) {
	parsed, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDocument, "failed to parse frontmatter").
			WithContext("path", relPath).
			Build()
	}

	htmlContent, err := p.renderer.Render([]byte(parsed.Body))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDocument, "failed to render markdown").
			WithContext("path", relPath).
			Build()
	}

	frag, err := htmltext.Parse(htmlContent)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDocument, "failed to inspect rendered html").
			WithContext("path", relPath).
			Build()
	}

	meta := parsed.Meta
	stem := fileStem(relPath)
	fileTitle := TitleFromFilename(stem)

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = frag.FirstHeading("h1", "h2", "h3")
	}
	if title == "" {
		title = fileTitle
	}

	displayTitle := title
	if h1 := frag.FirstHeading("h1"); h1 != "" && h1 != fileTitle {
		displayTitle = h1
	}

	date := strings.TrimSpace(meta.Date)
	if date == "" {
		date = dateFromFilename(stem)
	}

	urlPath := p.URLPathFor(relPath)

	doc := &Document{
		SourcePath:   relPath,
		Title:        title,
		DisplayTitle: displayTitle,
		RawContent:   parsed.Body,
		HTMLContent:  htmlContent,
		URLPath:      urlPath,
		Date:         date,
		Topics:       []string(meta.Topics),
		ReadingTime:  ReadingTime(parsed.Body),
		Excerpt:      excerpt(frag),
		Slug:         GenerateSlug(title),
		Permalink:    urlpath.ForURLPath(urlPath).GeneratePermalink(urlPath),
		Weight:       meta.Weight,
		GitHubURL:    strings.TrimSpace(meta.GitHub),
		HeadScripts:  meta.HeadScripts,
		Fingerprint:  mdfp.CalculateFingerprintFromParts(parsed.Raw, parsed.Body),
	}

	slog.Debug("Processed document",
		logfields.File(relPath),
		logfields.URLPath(urlPath),
		logfields.Title(title),
		slog.Int("reading_time", doc.ReadingTime))
	return doc, nil
}

// URLPathFor maps a source path to its output path. The homepage file maps
// to index.html when it is a root index.md or readme.md; every other file
// keeps its directory and gets a slugified stem with an .html extension.
func (p *Processor) URLPathFor(relPath string) string {
	if relPath == p.homepageFile && IsHomepageSource(relPath) {
		return HomepageURLPath
	}
	name := GenerateSlug(fileStem(relPath)) + ".html"
	dir := path.Dir(relPath)
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

// IsHomepageSource reports whether relPath names a root-level index.md or
// readme.md, compared case-insensitively. Other homepage candidates, such as
// the alphabetical fallback, keep their own output path.
func IsHomepageSource(relPath string) bool {
	if strings.Contains(relPath, "/") {
		return false
	}
	switch strings.ToLower(relPath) {
	case "index.md", "readme.md":
		return true
	}
	return false
}

// TitleFromFilename turns a file stem into a title by replacing hyphens and
// underscores with spaces.
func TitleFromFilename(stem string) string {
	t := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return htmltext.Collapse(t)
}

// ReadingTime estimates minutes to read body at 200 words per minute,
// never less than one.
func ReadingTime(body string) int {
	return max(1, len(strings.Fields(body))/wordsPerMinute)
}

// excerpt is HTML: the first paragraph with emphasis unwrapped, or escaped
// plain text when that would run past the excerpt length.
func excerpt(frag *htmltext.Fragment) string {
	if p := frag.FirstParagraph(); p != nil {
		text := htmltext.NodeText(p)
		if len([]rune(text)) > excerptLength {
			return html.EscapeString(htmltext.Truncate(text, excerptLength))
		}
		return htmltext.InlineHTML(p)
	}
	return html.EscapeString(htmltext.Truncate(frag.Text(), excerptLength))
}

func fileStem(relPath string) string {
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// ParseWarning builds the warning recorded when a document is skipped.
func ParseWarning(relPath string, err error) ferrors.Warning {
	return ferrors.Warning{
		Kind: ferrors.WarningDocumentParse,
		Path: relPath,
		Err:  fmt.Errorf("skipping document: %w", err),
	}
}
