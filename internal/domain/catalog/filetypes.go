package catalog

import "strings"

// DefaultFallbackLabel is used when a table does not define its own fallback
const DefaultFallbackLabel = "File"

// FileTypes maps a file extension to a display label
type FileTypes struct {
	labels   map[string]string
	fallback string
}

type fileTypesFile struct {
	Fallback string            `json:"fallback" yaml:"fallback" toml:"fallback"`
	Labels   map[string]string `json:"labels" yaml:"labels" toml:"labels"`
}

// NewFileTypes creates a table. Extensions are matched case-insensitively
// and may be given with or without a leading dot.
func NewFileTypes(labels map[string]string, fallback string) *FileTypes {
	if fallback == "" {
		fallback = DefaultFallbackLabel
	}
	normalized := make(map[string]string, len(labels))
	for ext, label := range labels {
		normalized[normalizeExt(ext)] = label
	}
	return &FileTypes{labels: normalized, fallback: fallback}
}

// Label returns the label for ext, or the fallback label
func (f *FileTypes) Label(ext string) string {
	if label, ok := f.labels[normalizeExt(ext)]; ok {
		return label
	}
	return f.fallback
}

// Fallback returns the label used for unknown extensions
func (f *FileTypes) Fallback() string {
	return f.fallback
}

// ExtOf returns the extension of a file name without the dot. Names like
// ".gitignore" have no extension.
func ExtOf(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
