package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/site"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Folder string `arg:"" help:"Source folder" default:"." type:"path"`
}

func (g *GenerateCmd) Run(global *Global, root *CLI) error {
	res, err := site.NewGenerator(g.Folder).
		SetReport(root.settings().Build.ReportEnabled()).
		GenerateSite()
	if err != nil {
		return err
	}
	printResult(global.out(), res)
	return nil
}

func printResult(w io.Writer, res *site.Result) {
	_, _ = fmt.Fprintf(w, "Generated %q: %d pages\n", res.SiteTitle, res.PageCount)
	_, _ = fmt.Fprintf(w, "Output: %s\n", res.OutputPath)
	if len(res.Warnings) == 0 {
		return
	}
	counts := ferrors.CountByKind(res.Warnings)
	parts := make([]string, 0, len(counts))
	for _, kind := range slices.Sorted(maps.Keys(counts)) {
		parts = append(parts, fmt.Sprintf("%s=%d", kind, counts[kind]))
	}
	_, _ = fmt.Fprintf(w, "Skipped: %d (%s)\n", len(res.Warnings), strings.Join(parts, ", "))
	for _, warning := range res.Warnings {
		_, _ = fmt.Fprintf(w, "  %s\n", warning)
	}
}
