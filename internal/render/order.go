package render

import (
	"cmp"
	"slices"
	"strings"

	"git.home.luguber.info/inful/moss/internal/document"
)

// SortForListing orders documents for topic, collection and index lists:
// dated documents first, newest first, then undated ones alphabetically by
// display title. The input is not modified.
func SortForListing(docs []*document.Document) []*document.Document {
	out := slices.Clone(docs)
	slices.SortStableFunc(out, func(a, b *document.Document) int {
		at, aok := document.ParseDate(a.Date)
		bt, bok := document.ParseDate(b.Date)
		switch {
		case aok && bok:
			if c := bt.Compare(at); c != 0 {
				return c
			}
			return strings.Compare(b.URLPath, a.URLPath)
		case aok:
			return -1
		case bok:
			return 1
		}
		if c := cmp.Compare(strings.ToLower(a.DisplayTitle), strings.ToLower(b.DisplayTitle)); c != 0 {
			return c
		}
		return strings.Compare(a.URLPath, b.URLPath)
	})
	return out
}

// SortNewestFirst orders collection entries by descending url path. Entries
// are expected to carry a YYYY-MM-DD filename prefix.
func SortNewestFirst(docs []*document.Document) []*document.Document {
	out := slices.Clone(docs)
	slices.SortFunc(out, func(a, b *document.Document) int {
		return strings.Compare(b.URLPath, a.URLPath)
	})
	return out
}

// SortForNavigation orders pages with a weight first, lightest first, then
// the rest by display title.
func SortForNavigation(docs []*document.Document) []*document.Document {
	out := slices.Clone(docs)
	slices.SortStableFunc(out, func(a, b *document.Document) int {
		switch {
		case a.Weight != nil && b.Weight != nil:
			if c := cmp.Compare(*a.Weight, *b.Weight); c != 0 {
				return c
			}
		case a.Weight != nil:
			return -1
		case b.Weight != nil:
			return 1
		}
		return cmp.Compare(strings.ToLower(a.DisplayTitle), strings.ToLower(b.DisplayTitle))
	})
	return out
}
