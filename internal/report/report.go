// Package report records what a generation run produced. The report is
// written as JSON next to the generated site and is advisory: failing to
// write it never fails a build.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/version"
)

// SchemaVersion is bumped on incompatible changes to the JSON layout.
const SchemaVersion = 1

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// Page is one written page.
type Page struct {
	URLPath     string `json:"url_path"`
	Source      string `json:"source,omitempty"`
	Template    string `json:"template"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Issue is a serialisable warning.
type Issue struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// Git identifies the revision a site was generated from.
type Git struct {
	Remote string `json:"remote,omitempty"`
	Branch string `json:"branch,omitempty"`
	Head   string `json:"head,omitempty"`
}

// BuildReport captures a single generation run.
type BuildReport struct {
	SchemaVersion int              `json:"schema_version"`
	BuildID       string           `json:"build_id"`
	Generator     string           `json:"generator"`
	Source        string           `json:"source"`
	Output        string           `json:"output"`
	ProjectType   string           `json:"project_type"`
	SiteTitle     string           `json:"site_title"`
	Files         int              `json:"files"`
	Git           *Git             `json:"git,omitempty"`
	Start         time.Time        `json:"start"`
	End           time.Time        `json:"end"`
	StageMillis   map[string]int64 `json:"stage_durations_ms"`
	Pages         []Page           `json:"pages"`
	Issues        []Issue          `json:"warnings"`
	Outcome       Outcome          `json:"outcome"`
	Error         string           `json:"error,omitempty"`
}

// New starts a report for source with a fresh build id.
func New(source string) *BuildReport {
	return &BuildReport{
		SchemaVersion: SchemaVersion,
		BuildID:       uuid.NewString(),
		Generator:     version.Version,
		Source:        source,
		Start:         time.Now(),
		StageMillis:   make(map[string]int64),
		Pages:         make([]Page, 0),
		Issues:        make([]Issue, 0),
	}
}

// ObserveStage records a stage duration.
func (r *BuildReport) ObserveStage(stage string, d time.Duration) {
	r.StageMillis[stage] += d.Milliseconds()
}

// AddPage records a written page.
func (r *BuildReport) AddPage(p Page) {
	r.Pages = append(r.Pages, p)
}

// AddWarnings records skipped content.
func (r *BuildReport) AddWarnings(warnings []ferrors.Warning) {
	for _, w := range warnings {
		msg := ""
		if w.Err != nil {
			msg = w.Err.Error()
		}
		r.Issues = append(r.Issues, Issue{
			Kind:     string(w.Kind),
			Category: string(w.Category()),
			Path:     w.Path,
			Message:  msg,
		})
	}
}

// Finish stamps the end time and derives the outcome from err and the
// recorded warnings.
func (r *BuildReport) Finish(err error) {
	r.End = time.Now()
	switch {
	case err != nil:
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
	case len(r.Issues) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
	sort.Slice(r.Pages, func(i, j int) bool { return r.Pages[i].URLPath < r.Pages[j].URLPath })
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("build=%s files=%d pages=%d warnings=%d duration=%s outcome=%s",
		r.BuildID, r.Files, len(r.Pages), len(r.Issues), dur.Truncate(time.Millisecond), r.Outcome)
}

// Marshal encodes the report as indented JSON.
func (r *BuildReport) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report json: %w", err)
	}
	return append(b, '\n'), nil
}

// Load reads a report written from Marshal.
func Load(path string) (*BuildReport, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var r BuildReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report json: %w", err)
	}
	return &r, nil
}
