package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"git.home.luguber.info/inful/moss/internal/scanner"
	"git.home.luguber.info/inful/moss/internal/structure"
)

// ScanCmd implements the 'scan' command: it prints the classification of
// a folder without generating anything.
type ScanCmd struct {
	Folder string `arg:"" help:"Source folder" default:"." type:"path"`
	Files  bool   `short:"f" help:"List every scanned file"`
}

func (s *ScanCmd) Run(global *Global, _ *CLI) error {
	ps, err := structure.Scan(s.Folder)
	if err != nil {
		return err
	}

	homepage := ps.HomepageFile
	if homepage == "" {
		homepage = "(none)"
	}
	folders := strings.Join(ps.SortedContentFolders(), ", ")
	if folders == "" {
		folders = "(none)"
	}

	summary := tablewriter.NewWriter(global.out())
	summary.Header("Property", "Value")
	rows := [][]string{
		{"Project type", ps.ProjectType.String()},
		{"Homepage", homepage},
		{"Content folders", folders},
		{"Markdown", strconv.Itoa(len(ps.Markdown))},
		{"HTML", strconv.Itoa(len(ps.HTML))},
		{"Images", strconv.Itoa(len(ps.Images))},
		{"Other", strconv.Itoa(len(ps.Other))},
		{"Total files", strconv.Itoa(ps.TotalFileCount)},
		{"Warnings", strconv.Itoa(len(ps.Warnings))},
	}
	for _, row := range rows {
		if err := summary.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	if err := summary.Render(); err != nil {
		return err
	}

	if !s.Files {
		return nil
	}
	files := tablewriter.NewWriter(global.out())
	files.Header("Path", "Type", "Size", "Modified")
	for _, group := range [][]scanner.FileRecord{ps.Markdown, ps.HTML, ps.Images, ps.Other} {
		for _, rec := range group {
			modified := "unknown"
			if !rec.Modified.IsZero() {
				modified = humanize.Time(rec.Modified)
			}
			if err := files.Append(rec.RelativePath, rec.Type().String(), humanize.Bytes(rec.SizeBytes), modified); err != nil {
				return fmt.Errorf("render file table: %w", err)
			}
		}
	}
	return files.Render()
}
