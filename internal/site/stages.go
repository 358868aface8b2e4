package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/moss/internal/document"
	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/logfields"
	"git.home.luguber.info/inful/moss/internal/metrics"
	"git.home.luguber.info/inful/moss/internal/render"
	"git.home.luguber.info/inful/moss/internal/report"
	"git.home.luguber.info/inful/moss/internal/scanner"
	"git.home.luguber.info/inful/moss/internal/structure"
	"git.home.luguber.info/inful/moss/internal/urlpath"
)

// buildState carries what one run has produced so far across stages.
type buildState struct {
	g      *Generator
	ps     *structure.ProjectStructure
	report *report.BuildReport

	docs       []*document.Document
	homepage   *document.Document
	hasFavicon bool
	siteTitle  string
	sourceURL  string
	pages      int
	warnings   []ferrors.Warning
}

func newBuildState(g *Generator, ps *structure.ProjectStructure, rep *report.BuildReport) *buildState {
	return &buildState{g: g, ps: ps, report: rep, siteTitle: UntitledSite}
}

// stageFunc is one step of a run. A returned error aborts the run.
type stageFunc func(bs *buildState) error

type stageDef struct {
	name metrics.Stage
	fn   stageFunc
}

func defaultStages() []stageDef {
	return []stageDef{
		{metrics.StagePrepare, stagePrepareOutput},
		{metrics.StageParse, stageParseDocuments},
		{metrics.StageAssets, stageCopyAssets},
		{metrics.StageRender, stageRenderPages},
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error.
func runStages(bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		before := len(bs.warnings)
		t := metrics.StartStage(bs.g.recorder, st.name)
		err := st.fn(bs)

		result := metrics.ResultSuccess
		switch {
		case err != nil:
			result = metrics.ResultFatal
		case len(bs.warnings) > before:
			result = metrics.ResultWarning
		}
		d := t.Stop(result)
		bs.report.ObserveStage(string(st.name), d)
		slog.Debug("Stage complete",
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(d.Microseconds())/1000),
			slog.String("result", string(result)))

		if err != nil {
			return err
		}
	}
	return nil
}

func (bs *buildState) warn(kind ferrors.WarningKind, path string, err error) {
	slog.Warn("Skipping content", logfields.Kind(string(kind)), logfields.Path(path), logfields.Error(err))
	bs.warnings = append(bs.warnings, ferrors.Warning{Kind: kind, Path: path, Err: err})
}

func (bs *buildState) sourcePath(rel string) string {
	return filepath.Join(bs.g.sourceRoot, filepath.FromSlash(rel))
}

func outputError(err error, msg, path string) error {
	return ferrors.OutputError(msg).
		WithCause(fmt.Errorf("%w: %w", ErrOutputWrite, err)).
		WithContext("path", path).
		Build()
}

func stagePrepareOutput(bs *buildState) error {
	if err := bs.g.ws.Prepare(); err != nil {
		return outputError(err, "cannot prepare output directory", bs.g.ws.SiteDir())
	}
	return nil
}

// stageParseDocuments turns every markdown record into a Document. Broken
// documents and documents whose output path is already taken are skipped.
func stageParseDocuments(bs *buildState) error {
	proc := document.NewProcessor(bs.ps.HomepageFile)
	taken := make(map[string]string)

	for _, rec := range bs.ps.Markdown {
		raw, err := os.ReadFile(bs.sourcePath(rec.RelativePath))
		if err != nil {
			bs.warn(ferrors.WarningDocumentParse, rec.RelativePath, err)
			continue
		}
		doc, err := proc.Process(rec.RelativePath, raw)
		if err != nil {
			w := document.ParseWarning(rec.RelativePath, err)
			bs.warn(w.Kind, w.Path, w.Err)
			continue
		}

		if prev, ok := taken[doc.URLPath]; ok {
			bs.warn(ferrors.WarningDocumentParse, rec.RelativePath,
				fmt.Errorf("%w: %s is produced by %s", ErrDuplicateURLPath, doc.URLPath, prev))
			continue
		}
		taken[doc.URLPath] = rec.RelativePath

		if doc.IsHomepage() {
			bs.homepage = doc
		}
		bs.docs = append(bs.docs, doc)
	}

	switch {
	case bs.homepage != nil:
		bs.siteTitle = bs.homepage.Title
	case len(bs.docs) > 0:
		bs.siteTitle = bs.docs[0].Title
	}
	slog.Info("Parsed documents", logfields.Count(len(bs.docs)), logfields.Title(bs.siteTitle))
	return nil
}

// stageCopyAssets writes the bundled stylesheet and script, then copies
// every image, html and opaque file byte for byte. Source files cannot
// replace the bundled assets.
func stageCopyAssets(bs *buildState) error {
	for src, dst := range staticAssets {
		data, err := static.ReadFile(src)
		if err != nil {
			return ferrors.InternalError("bundled asset missing").
				WithCause(err).
				WithContext("path", src).
				Build()
		}
		if err := bs.g.ws.WriteFile(dst, data); err != nil {
			return outputError(err, "cannot write "+dst, dst)
		}
	}

	copied := 0
	for _, group := range [][]scanner.FileRecord{bs.ps.Images, bs.ps.HTML, bs.ps.Other} {
		for _, rec := range group {
			if isBundledPath(rec.RelativePath) {
				bs.warn(ferrors.WarningAssetCopy, rec.RelativePath, ErrReservedPath)
				continue
			}
			if err := bs.g.ws.CopyFile(bs.sourcePath(rec.RelativePath), rec.RelativePath); err != nil {
				bs.warn(ferrors.WarningAssetCopy, rec.RelativePath, err)
				continue
			}
			copied++
			if rec.RelativePath == urlpath.Favicon {
				bs.hasFavicon = true
			}
		}
	}
	slog.Debug("Copied assets", logfields.Count(copied), slog.Bool("favicon", bs.hasFavicon))
	return nil
}

// stageRenderPages writes every document page, the topic and collection
// indexes, and finally index.html. Only index.html is fatal.
func stageRenderPages(bs *buildState) error {
	r := render.NewSiteRenderer(render.Context{
		SiteTitle:      bs.siteTitle,
		Documents:      bs.docs,
		Homepage:       bs.homepage,
		ContentFolders: bs.ps.ContentFolders,
		HasFavicon:     bs.hasFavicon,
		SourceURL:      bs.sourceURL,
	})

	for _, doc := range bs.docs {
		if doc == bs.homepage || r.IsShadowed(doc) {
			continue
		}
		out, err := r.RenderDocument(doc)
		if err != nil {
			bs.warn(ferrors.WarningPageWrite, doc.SourcePath, err)
			continue
		}
		bs.writePage(out, doc)
	}

	topics, err := r.RenderTopics()
	if err != nil {
		bs.warn(ferrors.WarningPageWrite, "topics", err)
	}
	collections, err := r.RenderCollections()
	if err != nil {
		bs.warn(ferrors.WarningPageWrite, "collections", err)
	}
	for _, out := range append(topics, collections...) {
		bs.writePage(out, nil)
	}

	index, err := r.RenderIndex()
	if err != nil {
		return ferrors.InternalError("cannot render index.html").WithCause(err).Build()
	}
	if err := bs.g.ws.WriteFile(index.URLPath, []byte(index.HTML)); err != nil {
		return outputError(err, "cannot write index.html", index.URLPath)
	}
	bs.recordPage(index, bs.homepage)
	return nil
}

// writePage writes one non-index page; a failure only loses that page.
func (bs *buildState) writePage(out render.Output, doc *document.Document) {
	if err := bs.g.ws.WriteFile(out.URLPath, []byte(out.HTML)); err != nil {
		bs.warn(ferrors.WarningPageWrite, out.URLPath, err)
		return
	}
	bs.recordPage(out, doc)
}

func (bs *buildState) recordPage(out render.Output, doc *document.Document) {
	bs.pages++
	page := report.Page{URLPath: out.URLPath, Template: out.Template.String()}
	if doc != nil {
		page.Source = doc.SourcePath
		page.Fingerprint = doc.Fingerprint
	}
	bs.report.AddPage(page)
	bs.g.recorder.AddPages(out.Template.String(), 1)
	slog.Debug("Wrote page", logfields.URLPath(out.URLPath), slog.String("template", out.Template.String()))
}
