package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength caps generated slugs.
const MaxSlugLength = 100

const untitledSlug = "untitled"

var slugWords = strings.NewReplacer(
	"&", "-and-",
	"@", "-at-",
	"+", "-plus-",
	"#", "-hash-",
	"%", "-percent-",
)

// GenerateSlug derives a URL-safe identifier from s: lowercase letters and
// digits of any script, dots and single hyphens, at most MaxSlugLength
// characters, never empty and never starting or ending with a hyphen.
// Accents are stripped, so Latin letters fold to their base letter.
func GenerateSlug(s string) string {
	s = slugWords.Replace(strings.ToLower(s))
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppresses leading hyphens
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	// recompose what survived, e.g. Hangul syllables split into jamo
	slug := []rune(norm.NFC.String(strings.TrimRight(b.String(), "-")))
	if len(slug) > MaxSlugLength {
		slug = slug[:MaxSlugLength]
	}
	if out := strings.TrimRight(string(slug), "-"); out != "" {
		return out
	}
	return untitledSlug
}
