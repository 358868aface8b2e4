package site

import (
	"fmt"
	"log/slog"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/gitinfo"
	"git.home.luguber.info/inful/moss/internal/logfields"
	"git.home.luguber.info/inful/moss/internal/metrics"
	"git.home.luguber.info/inful/moss/internal/report"
	"git.home.luguber.info/inful/moss/internal/structure"
	"git.home.luguber.info/inful/moss/internal/workspace"
)

// UntitledSite is the title used when no document provides one.
const UntitledSite = "Untitled Site"

// Result summarises a finished generation run.
type Result struct {
	PageCount  int
	OutputPath string
	SiteTitle  string

	// Warnings lists every unit of content that was skipped, including
	// scan-time warnings carried on the project structure.
	Warnings []ferrors.Warning
	Report   *report.BuildReport
}

// Generator materializes one source folder.
type Generator struct {
	sourceRoot  string
	ws          *workspace.Manager
	recorder    metrics.Recorder
	writeReport bool
	repoInfo    func(dir string) *gitinfo.Info
}

// NewGenerator returns a generator writing to sourceRoot/.moss/site.
func NewGenerator(sourceRoot string) *Generator {
	return &Generator{
		sourceRoot:  sourceRoot,
		ws:          workspace.NewManager(sourceRoot),
		recorder:    metrics.NoopRecorder{},
		writeReport: true,
		repoInfo:    gitinfo.Lookup,
	}
}

// SetRecorder injects a metrics recorder. A nil recorder disables metrics.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		g.recorder = metrics.NoopRecorder{}
		return g
	}
	g.recorder = r
	return g
}

// SetReport toggles writing .moss/build-report.json.
func (g *Generator) SetReport(enabled bool) *Generator {
	g.writeReport = enabled
	return g
}

// OutputPath returns the directory pages are written to.
func (g *Generator) OutputPath() string { return g.ws.SiteDir() }

// GenerateSite scans the source folder and generates the site. A folder
// without any files is rejected with a no-content error before anything
// is written.
func (g *Generator) GenerateSite() (*Result, error) {
	ps, err := structure.Scan(g.sourceRoot)
	if err != nil {
		return nil, err
	}
	if ps.TotalFileCount == 0 {
		return nil, ferrors.NoContentError(
			fmt.Sprintf("no files found in %s; choose a folder with documents", g.sourceRoot)).
			WithCause(ErrNoContent).
			WithContext("path", g.sourceRoot).
			Build()
	}
	return g.Generate(ps)
}

// Generate materializes ps into the output directory.
func (g *Generator) Generate(ps *structure.ProjectStructure) (*Result, error) {
	slog.Info("Starting site generation",
		logfields.Path(g.sourceRoot),
		slog.String("output", g.ws.SiteDir()),
		logfields.Count(ps.TotalFileCount))

	rep := report.New(g.sourceRoot)
	rep.Output = g.ws.SiteDir()
	rep.ProjectType = ps.ProjectType.String()
	rep.Files = ps.TotalFileCount
	g.recorder.SetSourceFiles(ps.TotalFileCount)

	bs := newBuildState(g, ps, rep)
	bs.warnings = append(bs.warnings, ps.Warnings...)
	if info := g.repoInfo(g.sourceRoot); info != nil {
		bs.sourceURL = info.WebURL
		rep.Git = &report.Git{Remote: info.RemoteURL, Branch: info.Branch, Head: info.Head}
	}

	err := runStages(bs, defaultStages())

	rep.SiteTitle = bs.siteTitle
	rep.AddWarnings(bs.warnings)
	rep.Finish(err)
	g.finishMetrics(rep, bs.warnings)

	if g.writeReport {
		if perr := g.persistReport(rep); perr != nil {
			slog.Warn("Failed to persist build report", logfields.Path(g.ws.ReportPath()), logfields.Error(perr))
			bs.warnings = append(bs.warnings, ferrors.Warning{Kind: ferrors.WarningReport, Path: workspace.ReportFileName, Err: perr})
		}
	}

	if err != nil {
		slog.Error("Site generation failed", logfields.Path(g.sourceRoot), logfields.Error(err))
		return nil, err
	}

	slog.Info("Site generation completed",
		slog.String("output", g.ws.SiteDir()),
		logfields.Title(bs.siteTitle),
		slog.Int("pages", bs.pages),
		slog.Int("warnings", len(bs.warnings)),
		logfields.DurationMS(float64(rep.End.Sub(rep.Start).Microseconds())/1000))

	return &Result{
		PageCount:  bs.pages,
		OutputPath: g.ws.SiteDir(),
		SiteTitle:  bs.siteTitle,
		Warnings:   bs.warnings,
		Report:     rep,
	}, nil
}

func (g *Generator) persistReport(rep *report.BuildReport) error {
	t := metrics.StartStage(g.recorder, metrics.StageReport)
	data, err := rep.Marshal()
	if err == nil {
		err = g.ws.WriteState(workspace.ReportFileName, data)
	}
	if err != nil {
		t.Stop(metrics.ResultWarning)
		return err
	}
	t.Stop(metrics.ResultSuccess)
	return nil
}

func (g *Generator) finishMetrics(rep *report.BuildReport, warnings []ferrors.Warning) {
	g.recorder.ObserveBuildDuration(rep.End.Sub(rep.Start))
	g.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(rep.Outcome))
	for _, w := range warnings {
		g.recorder.IncWarning(string(w.Kind))
	}
}

// Generate materializes ps, scanned from sourceRoot, with default settings.
func Generate(sourceRoot string, ps *structure.ProjectStructure) (*Result, error) {
	return NewGenerator(sourceRoot).Generate(ps)
}

// GenerateSite is the single entry point for callers that only have a
// folder path: it scans, classifies and generates.
func GenerateSite(sourceFolder string) (*Result, error) {
	return NewGenerator(sourceFolder).GenerateSite()
}
