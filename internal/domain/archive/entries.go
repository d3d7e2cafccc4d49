package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

// MaxMetadataSize bounds the info.json entry that will be decoded
const MaxMetadataSize = 16 << 20

// Entry is one physical zip entry
type Entry struct {
	Path     string    `json:"path"`
	IsDir    bool      `json:"isDir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// entryKey normalizes a zip entry name to a logical path
func entryKey(name string) string {
	return strings.Trim(name, "/")
}

func isDirEntry(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
}

func toEntry(f *zip.File) Entry {
	return Entry{
		Path:     entryKey(f.Name),
		IsDir:    isDirEntry(f),
		Size:     int64(f.UncompressedSize64),
		Modified: f.Modified,
	}
}

// snapshot is an open archive with its decoded manifest. entries keeps the
// first entry for each logical path; later entries normalizing to the same
// path are listed in dups.
type snapshot struct {
	rc      *zip.ReadCloser
	meta    *zip.File
	entries map[string]*zip.File
	dups    []string
	closed  bool
}

func openSnapshot(path string) (*snapshot, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, path)
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	s := &snapshot{rc: rc, entries: make(map[string]*zip.File, len(rc.File))}
	for _, f := range rc.File {
		key := entryKey(f.Name)
		if key == manifest.MetadataEntry && !isDirEntry(f) {
			if s.meta == nil {
				s.meta = f
			} else {
				s.dups = append(s.dups, key)
			}
			continue
		}
		if key == "" {
			continue
		}
		if _, dup := s.entries[key]; dup {
			s.dups = append(s.dups, key)
			continue
		}
		s.entries[key] = f
	}
	return s, nil
}

func (s *snapshot) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rc.Close()
}

// document decodes the info.json entry
func (s *snapshot) document() (*manifest.Document, error) {
	if s.meta == nil {
		return nil, ErrMissingMetadata
	}

	r, err := s.meta.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxMetadataSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	if len(data) > MaxMetadataSize {
		return nil, fmt.Errorf("%w: info.json exceeds %d bytes", ErrCorruptMetadata, MaxMetadataSize)
	}

	doc, err := manifest.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptMetadata, err)
	}
	return doc, nil
}

// physical returns every entry except info.json, sorted by path
func (s *snapshot) physical() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, f := range s.entries {
		out = append(out, toEntry(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Report is the result of comparing a tree with the archive entries
type Report struct {
	Project  string   `json:"project"`
	Nodes    int      `json:"nodes"`
	Entries  int      `json:"entries"`
	Missing  []string `json:"missing"`
	Extra    []string `json:"extra"`
	Mismatch []string `json:"mismatch"`
}

// Consistent reports whether the tree and the entries agree
func (r *Report) Consistent() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Mismatch) == 0
}

func (r *Report) err() error {
	if r.Consistent() {
		return nil
	}
	return fmt.Errorf("%w: %s: %d missing, %d extra, %d mismatched",
		ErrInconsistentArchive, r.Project, len(r.Missing), len(r.Extra), len(r.Mismatch))
}

// compare joins the tree with the entries in both directions. Paths held
// by more than one entry are reported as mismatched.
func compare(project string, tree *structure.Tree, snap *snapshot) *Report {
	entries := snap.entries
	report := &Report{
		Project:  project,
		Entries:  len(entries),
		Missing:  []string{},
		Extra:    []string{},
		Mismatch: []string{},
	}

	seen := make(map[string]bool, len(entries))
	for _, p := range tree.Paths() {
		report.Nodes++
		f, ok := entries[p.Path]
		if !ok {
			report.Missing = append(report.Missing, p.Path)
			continue
		}
		seen[p.Path] = true
		if isDirEntry(f) != (p.Kind == structure.KindFolder) {
			report.Mismatch = append(report.Mismatch, p.Path)
		}
	}

	for key := range entries {
		if !seen[key] {
			report.Extra = append(report.Extra, key)
		}
	}
	sort.Strings(report.Extra)

	for _, key := range snap.dups {
		if !slices.Contains(report.Mismatch, key) {
			report.Mismatch = append(report.Mismatch, key)
		}
	}
	sort.Strings(report.Mismatch)
	return report
}
