package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/PackStudio/internal/domain/catalog"
	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/PackStudio/internal/shared/paths"
	"github.com/GriffinCanCode/PackStudio/internal/shared/utils"
)

// DefaultExt is appended to a project name to form its archive file name
const DefaultExt = ".project"

// Config wires a Mirror to its collaborators. Root and Catalog are
// required. A nil Breaker gets DefaultBreaker.
type Config struct {
	Root     *paths.Root
	Catalog  *catalog.Catalog
	Ext      string
	Logger   *logging.Logger
	Recorder Recorder
	Breaker  *resilience.Breaker
}

// DefaultBreaker suspends writes for 30s after five consecutive write
// failures. Validation errors do not count.
func DefaultBreaker(logger *logging.Logger) *resilience.Breaker {
	return resilience.New("archive-writes", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: func(err error) bool {
			return errors.Is(err, ErrWriteFailed)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("write breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})
}

// Mirror reads and rewrites project archives in one directory
type Mirror struct {
	root     *paths.Root
	catalog  *catalog.Catalog
	ext      string
	log      *logging.Logger
	recorder Recorder
	breaker  *resilience.Breaker
	locks    *keyedLocks
}

// New creates a mirror
func New(cfg Config) (*Mirror, error) {
	if cfg.Root == nil {
		return nil, fmt.Errorf("archive: root is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("archive: catalog is required")
	}

	m := &Mirror{
		root:     cfg.Root,
		catalog:  cfg.Catalog,
		ext:      cfg.Ext,
		log:      cfg.Logger,
		recorder: cfg.Recorder,
		breaker:  cfg.Breaker,
		locks:    newKeyedLocks(),
	}
	if m.ext == "" {
		m.ext = DefaultExt
	}
	if !strings.HasPrefix(m.ext, ".") {
		m.ext = "." + m.ext
	}
	if m.log == nil {
		m.log = logging.Nop()
	}
	m.log = m.log.Named("archive")
	if m.recorder == nil {
		m.recorder = nopRecorder{}
	}
	if m.breaker == nil {
		m.breaker = DefaultBreaker(m.log)
	}
	return m, nil
}

// Ext returns the archive file extension, including the dot
func (m *Mirror) Ext() string {
	return m.ext
}

// Root returns the managed directory
func (m *Mirror) Root() *paths.Root {
	return m.root
}

// NameOf returns the project name for an archive file name
func (m *Mirror) NameOf(file string) (string, bool) {
	if strings.HasPrefix(file, ".") || !strings.HasSuffix(file, m.ext) {
		return "", false
	}
	name := strings.TrimSuffix(file, m.ext)
	return name, name != ""
}

// Path returns the archive path for a project name, checked against the
// root
func (m *Mirror) Path(name string) (string, error) {
	if err := paths.ValidateName(name); err != nil {
		return "", err
	}
	return m.root.Resolve(name + m.ext)
}

// Exists reports whether an archive exists for name
func (m *Mirror) Exists(name string) (bool, error) {
	path, err := m.Path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

func (m *Mirror) open(name string) (*snapshot, error) {
	path, err := m.Path(name)
	if err != nil {
		return nil, err
	}
	return openSnapshot(path)
}

// ListedNode is one child in a directory listing, joined with its entry
type ListedNode struct {
	Name     string         `json:"name"`
	Type     structure.Kind `json:"type"`
	Alias    string         `json:"alias"`
	Size     int64          `json:"size"`
	Modified time.Time      `json:"modified"`
	FileType string         `json:"fileType,omitempty"`
	MIME     string         `json:"mime,omitempty"`
}

// ReadMetadata returns the manifest of a project
func (m *Mirror) ReadMetadata(ctx context.Context, name string) (*manifest.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := m.locks.RLock(name)
	defer unlock()

	snap, err := m.open(name)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	return snap.document()
}

// ListDirectory lists the children of the folder at path. Every child
// must have a matching entry of the same kind.
func (m *Mirror) ListDirectory(ctx context.Context, name, path string) ([]ListedNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := m.locks.RLock(name)
	defer unlock()

	snap, err := m.open(name)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	doc, err := snap.document()
	if err != nil {
		return nil, err
	}

	children, err := doc.Structure.ListChildren(path)
	if err != nil {
		return nil, err
	}

	labels := m.catalog.FileTypes()
	listed := make([]ListedNode, 0, len(children))
	for _, child := range children {
		full := structure.Join(path, child.Name)
		f, ok := snap.entries[full]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no entry for %s", ErrInconsistentArchive, name, full)
		}
		if isDirEntry(f) != (child.Kind == structure.KindFolder) || slices.Contains(snap.dups, full) {
			return nil, fmt.Errorf("%w: %s entry for %s is not a %s", ErrInconsistentArchive, name, full, child.Kind)
		}

		node := ListedNode{
			Name:     child.Name,
			Type:     child.Kind,
			Alias:    child.Alias,
			Size:     int64(f.UncompressedSize64),
			Modified: f.Modified,
		}
		if child.Kind == structure.KindFile {
			node.FileType = labels.Label(catalog.ExtOf(child.Name))
			node.MIME = m.sniff(f)
		}
		listed = append(listed, node)
	}
	return listed, nil
}

// sniff detects the content type from the first bytes of a file entry
func (m *Mirror) sniff(f *zip.File) string {
	if f.UncompressedSize64 == 0 {
		return ""
	}
	r, err := f.Open()
	if err != nil {
		m.log.Debug("sniff failed", zap.String("entry", f.Name), zap.Error(err))
		return ""
	}
	defer r.Close()

	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return ""
	}
	return mime.String()
}

// Entries returns the physical entries of a project, without info.json
func (m *Mirror) Entries(ctx context.Context, name string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := m.locks.RLock(name)
	defer unlock()

	snap, err := m.open(name)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	return snap.physical(), nil
}

// Verify compares the whole tree with the entries. The report is returned
// in every case where both could be read; an inconsistent archive also
// yields an error wrapping ErrInconsistentArchive.
func (m *Mirror) Verify(ctx context.Context, name string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := m.locks.RLock(name)
	defer unlock()

	snap, err := m.open(name)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	doc, err := snap.document()
	if err != nil {
		return nil, err
	}

	report := compare(name, doc.Structure, snap)
	return report, report.err()
}

// Download is a distributable copy of a project. Checksum is the hex
// sha256 of Data.
type Download struct {
	Filename    string
	ContentType string
	Checksum    string
	Data        []byte
}

// Export copies every entry except info.json into a new zip held in
// memory. Entries keep their compression and timestamps.
func (m *Mirror) Export(ctx context.Context, name string) (dl *Download, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := m.locks.RLock(name)
	defer unlock()

	start := time.Now()
	defer func() {
		var n int64
		if dl != nil {
			n = int64(len(dl.Data))
		}
		m.recorder.RecordRewrite(OpExport, n, time.Since(start), err)
	}()

	snap, err := m.open(name)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range snap.rc.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entryKey(f.Name) == manifest.MetadataEntry {
			continue
		}
		if err := zw.Copy(f); err != nil {
			return nil, fmt.Errorf("%w: copy %s: %v", ErrWriteFailed, f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return &Download{
		Filename:    name + ".zip",
		ContentType: "application/zip",
		Checksum:    utils.DefaultHasher().Hash(buf.Bytes()),
		Data:        buf.Bytes(),
	}, nil
}
