package site

import (
	"embed"
	"fmt"

	"git.home.luguber.info/inful/moss/internal/urlpath"
)

//go:embed static/style.css static/js/theme.js
var static embed.FS

// staticAssets maps bundled files to their site paths.
var staticAssets = map[string]string{
	"static/style.css":   urlpath.Stylesheet,
	"static/js/theme.js": urlpath.Script,
}

// isBundledPath reports whether a bundled asset is written at rel.
func isBundledPath(rel string) bool {
	for _, dst := range staticAssets {
		if dst == rel {
			return true
		}
	}
	return false
}

// DefaultStylesheet returns the bundled stylesheet.
func DefaultStylesheet() []byte { return mustRead("static/style.css") }

// DefaultScript returns the bundled theme script.
func DefaultScript() []byte { return mustRead("static/js/theme.js") }

func mustRead(name string) []byte {
	data, err := static.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("site: missing bundled asset %s: %v", name, err))
	}
	return data
}
