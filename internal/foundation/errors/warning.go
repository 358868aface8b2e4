package errors

import "fmt"

// WarningKind names the per-unit failure classes that never abort a build.
type WarningKind string

const (
	WarningPartialScan   WarningKind = "partial_scan"
	WarningDocumentParse WarningKind = "document_parse"
	WarningAssetCopy     WarningKind = "asset_copy"
	WarningPageWrite     WarningKind = "page_write"
	WarningReport        WarningKind = "report"
)

// Warning records a skipped unit of content. Results carry a list of these so
// callers can assert that failures were observed even when the build succeeds.
type Warning struct {
	Kind WarningKind
	Path string
	Err  error
}

func (w Warning) String() string {
	if w.Err == nil {
		return fmt.Sprintf("%s: %s", w.Kind, w.Path)
	}
	return fmt.Sprintf("%s: %s: %v", w.Kind, w.Path, w.Err)
}

// Category maps the warning kind onto the error taxonomy.
func (w Warning) Category() ErrorCategory {
	switch w.Kind {
	case WarningPartialScan:
		return CategoryScan
	case WarningDocumentParse:
		return CategoryDocument
	case WarningAssetCopy:
		return CategoryAsset
	case WarningPageWrite:
		return CategoryOutput
	default:
		return CategoryInternal
	}
}

// CountByKind tallies warnings per kind.
func CountByKind(warnings []Warning) map[WarningKind]int {
	out := make(map[WarningKind]int)
	for _, w := range warnings {
		out[w.Kind]++
	}
	return out
}
