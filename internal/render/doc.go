// Package render assembles generated pages. Each page is a fixed HTML
// skeleton whose {{name}} placeholders are filled with fragments built
// here; the skeletons contain no logic of their own.
package render
