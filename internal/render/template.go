package render

import (
	"embed"
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/moss/internal/document"
	"git.home.luguber.info/inful/moss/internal/util/sets"
)

//go:embed skeletons/*.html
var skeletonFS embed.FS

// TemplateType selects the page skeleton.
type TemplateType int

const (
	TemplatePage TemplateType = iota
	TemplateArticle
	TemplateTopic
	TemplateCollection
)

func (t TemplateType) String() string {
	switch t {
	case TemplatePage:
		return "page"
	case TemplateArticle:
		return "article"
	case TemplateTopic:
		return "topic"
	case TemplateCollection:
		return "collection"
	default:
		return "unknown"
	}
}

var skeletons = mustLoadSkeletons()

func mustLoadSkeletons() map[TemplateType]string {
	out := make(map[TemplateType]string)
	for _, t := range []TemplateType{TemplatePage, TemplateArticle, TemplateTopic, TemplateCollection} {
		raw, err := skeletonFS.ReadFile("skeletons/" + t.String() + ".html")
		if err != nil {
			panic(fmt.Sprintf("missing skeleton for %s: %v", t, err))
		}
		out[t] = string(raw)
	}
	return out
}

var placeholder = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// Render substitutes vars into the skeleton for t in a single pass.
// Placeholders without a value become empty strings; values are inserted
// verbatim and never re-scanned.
func Render(t TemplateType, vars map[string]string) string {
	skel, ok := skeletons[t]
	if !ok {
		return ""
	}
	return placeholder.ReplaceAllStringFunc(skel, func(m string) string {
		return vars[m[2:len(m)-2]]
	})
}

// SelectTemplate picks the skeleton for a document. A nil document is a
// pure listing and uses Page, as does the homepage. Documents under a
// content folder are Articles. Topic and Collection are only chosen by the
// callers that build those aggregate pages.
func SelectTemplate(doc *document.Document, isHomepage bool, contentFolders sets.Set[string]) TemplateType {
	if doc == nil || isHomepage {
		return TemplatePage
	}
	dir, _, found := strings.Cut(doc.SourcePath, "/")
	if found && contentFolders.Has(dir) {
		return TemplateArticle
	}
	return TemplatePage
}
