package scanner

import (
	"path"
	"strings"
	"time"
)

// FileType is the bucket a scanned file is sorted into by extension.
type FileType int

const (
	TypeOther FileType = iota
	TypeMarkdown
	TypeHTML
	TypeImage
)

func (t FileType) String() string {
	switch t {
	case TypeMarkdown:
		return "markdown"
	case TypeHTML:
		return "html"
	case TypeImage:
		return "image"
	default:
		return "other"
	}
}

var extensionTypes = map[string]FileType{
	"md":       TypeMarkdown,
	"markdown": TypeMarkdown,
	"mdown":    TypeMarkdown,
	"mkd":      TypeMarkdown,
	"html":     TypeHTML,
	"htm":      TypeHTML,
	"jpg":      TypeImage,
	"jpeg":     TypeImage,
	"png":      TypeImage,
	"gif":      TypeImage,
	"svg":      TypeImage,
	"webp":     TypeImage,
}

// TypeForExtension buckets a lowercased extension (without the dot).
func TypeForExtension(ext string) FileType {
	if t, ok := extensionTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return TypeOther
}

// FileRecord describes one regular file found under the scan root.
// RelativePath always uses forward slashes. A zero Modified means the
// modification time was not available.
type FileRecord struct {
	RelativePath string
	Extension    string
	SizeBytes    uint64
	Modified     time.Time
}

// NewFileRecord builds a record for a slash-separated relative path.
func NewFileRecord(relPath string, size uint64, modified time.Time) FileRecord {
	return FileRecord{
		RelativePath: relPath,
		Extension:    extensionOf(relPath),
		SizeBytes:    size,
		Modified:     modified,
	}
}

// Type returns the bucket for the record's extension.
func (r FileRecord) Type() FileType { return TypeForExtension(r.Extension) }

// Name returns the final path element.
func (r FileRecord) Name() string { return path.Base(r.RelativePath) }

// IsRoot reports whether the file sits directly in the scan root.
func (r FileRecord) IsRoot() bool { return !strings.Contains(r.RelativePath, "/") }

// TopLevelDir returns the first path segment, or "" for root-level files.
func (r FileRecord) TopLevelDir() string {
	dir, _, found := strings.Cut(r.RelativePath, "/")
	if !found {
		return ""
	}
	return dir
}

func extensionOf(relPath string) string {
	ext := path.Ext(relPath)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
