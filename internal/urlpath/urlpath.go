// Package urlpath resolves asset and page links relative to a generated
// page's location in the output tree. Depth is always derived from the
// page's url_path, never stored.
package urlpath

import "strings"

// Asset names shared by every page.
const (
	Stylesheet = "style.css"
	Script     = "js/theme.js"
	Favicon    = "assets/favicon.svg"
)

// Depth counts the directory separators in an output-relative url path.
func Depth(urlPath string) int {
	return strings.Count(urlPath, "/")
}

// Resolver builds links for a page at a fixed depth below the site root.
type Resolver struct {
	depth int
}

// NewResolver returns a resolver for pages depth directories deep.
func NewResolver(depth int) Resolver {
	if depth < 0 {
		depth = 0
	}
	return Resolver{depth: depth}
}

// ForURLPath returns the resolver for the page written at urlPath.
func ForURLPath(urlPath string) Resolver {
	return NewResolver(Depth(urlPath))
}

// Depth returns the resolver's depth.
func (r Resolver) Depth() int { return r.depth }

// Prefix is the relative path from the page back to the site root:
// "" at depth 0, "../" per level otherwise.
func (r Resolver) Prefix() string {
	return strings.Repeat("../", r.depth)
}

// Resolve makes a root-relative target relative to the page.
func (r Resolver) Resolve(target string) string {
	return r.Prefix() + strings.TrimPrefix(target, "/")
}

func (r Resolver) CSSPath() string     { return r.Resolve(Stylesheet) }
func (r Resolver) JSPath() string      { return r.Resolve(Script) }
func (r Resolver) FaviconPath() string { return r.Resolve(Favicon) }

// GeneratePermalink returns "/" + urlPath at depth 0 and
// "/" + "../"*depth + urlPath below it.
func (r Resolver) GeneratePermalink(urlPath string) string {
	return "/" + r.Prefix() + urlPath
}
