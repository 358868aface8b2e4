package markdown

import "strings"

var externalPrefixes = []string{"http://", "https://", "//", "mailto:"}

var markdownSuffixes = []string{".markdown", ".md"}

// TransformMarkdownLink maps a link to a Markdown source onto the generated
// HTML page. Any #fragment or ?query is preserved. External links and links
// to anything other than .md/.markdown are returned unchanged.
func TransformMarkdownLink(dest string) string {
	lower := strings.ToLower(dest)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return dest
		}
	}

	cut := len(dest)
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		cut = i
	}
	target, suffix := dest[:cut], dest[cut:]

	lowerTarget := strings.ToLower(target)
	for _, ext := range markdownSuffixes {
		if strings.HasSuffix(lowerTarget, ext) && len(target) > len(ext) {
			return target[:len(target)-len(ext)] + ".html" + suffix
		}
	}
	return dest
}
