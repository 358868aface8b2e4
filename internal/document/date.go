package document

import (
	"regexp"
	"strings"
	"time"
)

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "January 2, 2006"
)

var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// ParseDate reads a YYYY-MM-DD date, optionally followed by a time part.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(isoDateLayout) {
		switch s[len(isoDateLayout)] {
		case 'T', ' ':
			s = s[:len(isoDateLayout)]
		default:
			return time.Time{}, false
		}
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a YYYY-MM-DD date as "September 2, 2025". Input that
// does not parse is returned unchanged.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(displayDateLayout)
}

// dateFromFilename returns the leading YYYY-MM-DD of a file stem when it is
// a real calendar date.
func dateFromFilename(stem string) string {
	m := datePrefix.FindString(stem)
	if m == "" {
		return ""
	}
	if _, err := time.Parse(isoDateLayout, m); err != nil {
		return ""
	}
	return m
}
