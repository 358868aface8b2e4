package render

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/moss/internal/document"
	"git.home.luguber.info/inful/moss/internal/urlpath"
)

const themeToggle = `<li><button class="theme-toggle" type="button" aria-label="Toggle dark mode">&#9680;</button></li>`

var titleCaser = cases.Title(language.English)

// CollectionName turns a folder name into a heading: "my_notes" becomes
// "My Notes".
func CollectionName(folder string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(folder))
	return titleCaser.String(strings.Join(words, " "))
}

// CollectionIndexPath is the output path of a content folder's index.
func CollectionIndexPath(folder string) string {
	return folder + "/" + document.HomepageURLPath
}

// TopicPath is the output path of a topic page.
func TopicPath(topic string) string {
	return "topics/" + document.GenerateSlug(topic) + ".html"
}

// NavItem is one link in the main navigation.
type NavItem struct {
	Title   string
	URLPath string
}

// Navigation renders the main nav for the page at currentURL. The theme
// toggle is always the last item.
func Navigation(items []NavItem, currentURL string) string {
	res := urlpath.ForURLPath(currentURL)
	var b strings.Builder
	b.WriteString(`<nav class="site-nav"><ul>`)
	for _, item := range items {
		class := ""
		if item.URLPath == currentURL {
			class = ` class="active" aria-current="page"`
		}
		fmt.Fprintf(&b, `<li><a href="%s"%s>%s</a></li>`,
			html.EscapeString(res.Resolve(item.URLPath)), class, html.EscapeString(item.Title))
	}
	b.WriteString(themeToggle)
	b.WriteString(`</ul></nav>`)
	return b.String()
}

// HomeLink renders the site-name anchor back to the index.
func HomeLink(siteTitle, currentURL string) string {
	res := urlpath.ForURLPath(currentURL)
	return fmt.Sprintf(`<a class="site-name" href="%s">%s</a>`,
		html.EscapeString(res.Resolve(document.HomepageURLPath)), html.EscapeString(siteTitle))
}

// Breadcrumb links an article back to its collection index. It returns ""
// for documents at the root.
func Breadcrumb(doc *document.Document) string {
	folder, _, found := strings.Cut(doc.URLPath, "/")
	if !found {
		return ""
	}
	res := urlpath.ForURLPath(doc.URLPath)
	return fmt.Sprintf(`<nav class="breadcrumb"><a href="%s">%s</a> <span class="sep">/</span> <span>%s</span></nav>`,
		html.EscapeString(res.Resolve(CollectionIndexPath(folder))),
		html.EscapeString(CollectionName(folder)),
		html.EscapeString(doc.DisplayTitle))
}

// LatestSidebar shows the newest collection entry, linked relative to the
// page at currentURL. entries must already be sorted newest first.
func LatestSidebar(entries []*document.Document, currentURL string) string {
	if len(entries) == 0 {
		return ""
	}
	latest := entries[0]
	res := urlpath.ForURLPath(currentURL)
	var b strings.Builder
	b.WriteString(`<section class="latest"><h2>Latest</h2>`)
	fmt.Fprintf(&b, `<a href="%s">%s</a>`,
		html.EscapeString(res.Resolve(latest.URLPath)), html.EscapeString(latest.DisplayTitle))
	if latest.HasDate() {
		fmt.Fprintf(&b, ` <time datetime="%s">%s</time>`,
			html.EscapeString(latest.Date), html.EscapeString(latest.FormattedDate()))
	}
	b.WriteString(`</section>`)
	return b.String()
}

// TopicsInline lists every topic with a link to its topic page. topics
// must be sorted and free of duplicates.
func TopicsInline(topics []string, currentURL string) string {
	if len(topics) == 0 {
		return ""
	}
	res := urlpath.ForURLPath(currentURL)
	var b strings.Builder
	b.WriteString(`<section class="topics"><h2>Topics</h2><ul>`)
	for _, t := range topics {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`,
			html.EscapeString(res.Resolve(TopicPath(t))), html.EscapeString(t))
	}
	b.WriteString(`</ul></section>`)
	return b.String()
}

// ArticleList renders "date — title" rows for docs in the order given,
// linked relative to the page at currentURL.
func ArticleList(docs []*document.Document, currentURL string) string {
	res := urlpath.ForURLPath(currentURL)
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(`      <li>`)
		if d.HasDate() {
			fmt.Fprintf(&b, `<time datetime="%s">%s</time> &mdash; `,
				html.EscapeString(d.Date), html.EscapeString(d.FormattedDate()))
		}
		fmt.Fprintf(&b, `<a href="%s">%s</a></li>`+"\n",
			html.EscapeString(res.Resolve(d.URLPath)), html.EscapeString(d.DisplayTitle))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ArticleMeta renders the date, reading time, topics and GitHub link line.
func ArticleMeta(doc *document.Document) string {
	res := urlpath.ForURLPath(doc.URLPath)
	parts := make([]string, 0, 4)
	if doc.HasDate() {
		parts = append(parts, fmt.Sprintf(`<time datetime="%s">%s</time>`,
			html.EscapeString(doc.Date), html.EscapeString(doc.FormattedDate())))
	}
	parts = append(parts, fmt.Sprintf("%d min read", doc.ReadingTime))
	if len(doc.Topics) > 0 {
		links := make([]string, 0, len(doc.Topics))
		for _, t := range doc.Topics {
			links = append(links, fmt.Sprintf(`<a class="topic" href="%s">%s</a>`,
				html.EscapeString(res.Resolve(TopicPath(t))), html.EscapeString(t)))
		}
		parts = append(parts, strings.Join(links, " "))
	}
	if doc.GitHubURL != "" {
		parts = append(parts, fmt.Sprintf(`<a class="github" href="%s">View on GitHub</a>`,
			html.EscapeString(doc.GitHubURL)))
	}
	return `<p class="meta">` + strings.Join(parts, " &middot; ") + `</p>`
}

// Feed renders collection entries for the homepage, each with its title,
// date and excerpt. entries must already be sorted newest first.
func Feed(entries []*document.Document) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<section class="feed">` + "\n")
	for _, d := range entries {
		href := html.EscapeString(d.URLPath)
		b.WriteString(`<article class="feed-entry">`)
		fmt.Fprintf(&b, `<h2><a href="%s">%s</a></h2>`, href, html.EscapeString(d.DisplayTitle))
		if d.HasDate() {
			fmt.Fprintf(&b, `<p class="meta"><time datetime="%s">%s</time> &middot; %d min read</p>`,
				html.EscapeString(d.Date), html.EscapeString(d.FormattedDate()), d.ReadingTime)
		}
		if d.Excerpt != "" {
			fmt.Fprintf(&b, `<p>%s</p>`, d.Excerpt)
		}
		fmt.Fprintf(&b, `<a class="read-more" href="%s">Read more</a>`, href)
		b.WriteString("</article>\n")
	}
	b.WriteString(`</section>`)
	return b.String()
}

// FaviconLink renders the icon link, or "" when the site has no favicon.
func FaviconLink(present bool, currentURL string) string {
	if !present {
		return ""
	}
	return fmt.Sprintf(`<link rel="icon" type="image/svg+xml" href="%s">`,
		html.EscapeString(urlpath.ForURLPath(currentURL).FaviconPath()))
}

// Footer renders the site footer with an optional source link.
func Footer(sourceURL string) string {
	if sourceURL == "" {
		return `<footer class="site-footer"><p>Built with moss</p></footer>`
	}
	return fmt.Sprintf(`<footer class="site-footer"><p>Built with moss &middot; <a href="%s">Source</a></p></footer>`,
		html.EscapeString(sourceURL))
}
