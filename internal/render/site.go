package render

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"git.home.luguber.info/inful/moss/internal/document"
	"git.home.luguber.info/inful/moss/internal/htmltext"
	"git.home.luguber.info/inful/moss/internal/urlpath"
	"git.home.luguber.info/inful/moss/internal/util/sets"
)

// Context is everything the renderer knows about the site being built.
type Context struct {
	SiteTitle      string
	Documents      []*document.Document
	Homepage       *document.Document
	ContentFolders sets.Set[string]
	HasFavicon     bool
	SourceURL      string
}

// Output is one rendered file.
type Output struct {
	URLPath  string
	HTML     string
	Template TemplateType
}

// SiteRenderer renders every page of one site. Shared fragments such as
// the navigation items and topic list are computed once.
type SiteRenderer struct {
	ctx         Context
	navItems    []NavItem
	topics      []string
	entries     []*document.Document
	collections map[string][]*document.Document
}

// NewSiteRenderer prepares a renderer for ctx.
func NewSiteRenderer(ctx Context) *SiteRenderer {
	if ctx.ContentFolders == nil {
		ctx.ContentFolders = sets.New[string]()
	}
	r := &SiteRenderer{ctx: ctx, collections: make(map[string][]*document.Document)}

	var pages []*document.Document
	for _, d := range ctx.Documents {
		if folder, ok := r.contentFolder(d); ok {
			r.collections[folder] = append(r.collections[folder], d)
			if !r.IsShadowed(d) {
				r.entries = append(r.entries, d)
			}
			continue
		}
		if d == ctx.Homepage {
			continue
		}
		pages = append(pages, d)
	}
	r.entries = SortNewestFirst(r.entries)

	for _, d := range SortForNavigation(pages) {
		r.navItems = append(r.navItems, NavItem{Title: d.DisplayTitle, URLPath: d.URLPath})
	}
	for _, folder := range r.Collections() {
		r.navItems = append(r.navItems, NavItem{Title: CollectionName(folder), URLPath: CollectionIndexPath(folder)})
	}

	r.topics = collectTopics(ctx.Documents)
	return r
}

// Topics returns the distinct topics of the site, sorted.
func (r *SiteRenderer) Topics() []string { return slices.Clone(r.topics) }

// Collections returns the content folders that have at least one
// document, sorted. A folder holding only its index document still gets a
// collection page so that document has somewhere to appear.
func (r *SiteRenderer) Collections() []string {
	out := make([]string, 0, len(r.collections))
	for _, folder := range sets.Sorted(r.ctx.ContentFolders) {
		if len(r.collections[folder]) > 0 {
			out = append(out, folder)
		}
	}
	return out
}

// TemplateFor returns the skeleton RenderDocument will use for doc.
func (r *SiteRenderer) TemplateFor(doc *document.Document) TemplateType {
	return SelectTemplate(doc, doc == r.ctx.Homepage, r.ctx.ContentFolders)
}

// RenderDocument renders a single document page.
func (r *SiteRenderer) RenderDocument(doc *document.Document) (Output, error) {
	chrome := r.chrome(doc.DisplayTitle, doc.URLPath)
	chrome.HeadScripts = doc.HeadScripts

	t := r.TemplateFor(doc)
	var vars Variables
	switch t {
	case TemplateArticle:
		vars = ArticleVars{
			Chrome:     chrome,
			Content:    doc.HTMLContent,
			Breadcrumb: Breadcrumb(doc),
			Meta:       ArticleMeta(doc),
		}
	default:
		vars = PageVars{
			Chrome:  chrome,
			Content: nonEmpty(doc.HTMLContent),
			Sidebar: LatestSidebar(r.entries, doc.URLPath),
			Topics:  TopicsInline(r.topics, doc.URLPath),
		}
	}
	return r.render(doc.URLPath, vars)
}

// RenderIndex renders index.html: the homepage document followed by the
// collection feed when a homepage exists, a listing of every document
// otherwise.
func (r *SiteRenderer) RenderIndex() (Output, error) {
	const urlPath = document.HomepageURLPath
	chrome := r.chrome(r.ctx.SiteTitle, urlPath)

	var content string
	if hp := r.ctx.Homepage; hp != nil {
		chrome.HeadScripts = hp.HeadScripts
		content = htmltext.StripLeadingHeading(hp.HTMLContent, hp.Title)
		if len(r.entries) > 0 {
			content += "\n" + Feed(r.entries)
		}
	} else {
		content = fmt.Sprintf("<h1>%s</h1>\n<ul class=\"article-list\">\n%s\n</ul>",
			html.EscapeString(r.ctx.SiteTitle), ArticleList(SortForListing(r.ctx.Documents), urlPath))
	}

	return r.render(urlPath, PageVars{
		Chrome:  chrome,
		Content: nonEmpty(content),
		Sidebar: LatestSidebar(r.entries, urlPath),
		Topics:  TopicsInline(r.topics, urlPath),
	})
}

// RenderTopics renders one page per distinct topic.
func (r *SiteRenderer) RenderTopics() ([]Output, error) {
	out := make([]Output, 0, len(r.topics))
	for _, topic := range r.topics {
		slug := document.GenerateSlug(topic)
		var tagged []*document.Document
		for _, d := range r.ctx.Documents {
			if slices.ContainsFunc(d.Topics, func(t string) bool { return document.GenerateSlug(t) == slug }) {
				tagged = append(tagged, d)
			}
		}
		urlPath := TopicPath(topic)
		o, err := r.render(urlPath, TopicVars{
			Chrome:      r.chrome("Topic: "+topic, urlPath),
			Heading:     html.EscapeString(topic),
			ArticleList: ArticleList(SortForListing(tagged), urlPath),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// RenderCollections renders one index per content folder. A document
// written at the folder's index path becomes the page intro.
func (r *SiteRenderer) RenderCollections() ([]Output, error) {
	folders := r.Collections()
	out := make([]Output, 0, len(folders))
	for _, folder := range folders {
		urlPath := CollectionIndexPath(folder)
		name := CollectionName(folder)
		intro := ""
		if d := r.docAt(urlPath); d != nil {
			intro = nonEmpty(htmltext.StripLeadingHeading(d.HTMLContent, d.Title))
		}
		o, err := r.render(urlPath, CollectionVars{
			Chrome:      r.chrome(name, urlPath),
			Heading:     html.EscapeString(name),
			Intro:       intro,
			ArticleList: ArticleList(SortForListing(r.members(folder)), urlPath),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// IsShadowed reports whether a generated collection index replaces doc.
func (r *SiteRenderer) IsShadowed(doc *document.Document) bool {
	folder, ok := r.contentFolder(doc)
	return ok && doc.URLPath == CollectionIndexPath(folder)
}

func (r *SiteRenderer) render(urlPath string, vars Variables) (Output, error) {
	page, err := RenderVariables(vars)
	if err != nil {
		return Output{}, fmt.Errorf("render %s: %w", urlPath, err)
	}
	return Output{URLPath: urlPath, HTML: page, Template: vars.Template()}, nil
}

func (r *SiteRenderer) chrome(title, urlPath string) Chrome {
	res := urlpath.ForURLPath(urlPath)
	pageTitle := title
	if title != r.ctx.SiteTitle && r.ctx.SiteTitle != "" {
		pageTitle = title + " | " + r.ctx.SiteTitle
	}
	return Chrome{
		Title:      html.EscapeString(pageTitle),
		CSSPath:    res.CSSPath(),
		JSPath:     res.JSPath(),
		Favicon:    FaviconLink(r.ctx.HasFavicon, urlPath),
		HomeLink:   HomeLink(r.ctx.SiteTitle, urlPath),
		Navigation: Navigation(r.navItems, urlPath),
		Footer:     Footer(r.ctx.SourceURL),
	}
}

func (r *SiteRenderer) contentFolder(d *document.Document) (string, bool) {
	folder, _, _ := strings.Cut(d.Dir(), "/")
	if folder == "" || !r.ctx.ContentFolders.Has(folder) {
		return "", false
	}
	return folder, true
}

// members are the collection documents other than a shadowed folder index.
func (r *SiteRenderer) members(folder string) []*document.Document {
	var out []*document.Document
	for _, d := range r.collections[folder] {
		if !r.IsShadowed(d) {
			out = append(out, d)
		}
	}
	return out
}

func (r *SiteRenderer) docAt(urlPath string) *document.Document {
	for _, d := range r.ctx.Documents {
		if d.URLPath == urlPath {
			return d
		}
	}
	return nil
}

func collectTopics(docs []*document.Document) []string {
	bySlug := make(map[string]string)
	for _, d := range docs {
		for _, t := range d.Topics {
			slug := document.GenerateSlug(t)
			if existing, ok := bySlug[slug]; !ok || t < existing {
				bySlug[slug] = t
			}
		}
	}
	out := make([]string, 0, len(bySlug))
	for _, t := range bySlug {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func nonEmpty(content string) string {
	if content == "" {
		return "<p></p>"
	}
	return content
}
