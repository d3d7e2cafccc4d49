package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/PackStudio/internal/shared/id"
)

// MaxContentSize bounds the content of a file added through AddNode
const MaxContentSize = 1 << 20

// AddRequest describes a node to add to a project
type AddRequest struct {
	Path    string
	Name    string
	Kind    structure.Kind
	Alias   string
	Content []byte
}

// newEntry is an entry written from scratch rather than copied
type newEntry struct {
	path    string
	dir     bool
	content []byte
}

// Create writes a new archive for doc. The version is resolved against the
// catalog to stamp pack.mcmeta. The archive appears under its final name
// only once it is complete; an existing archive is never replaced.
func (m *Mirror) Create(ctx context.Context, doc *manifest.Document) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := m.Path(doc.Name)
	if err != nil {
		return err
	}

	formats, err := m.catalog.Lookup(doc.Version)
	if err != nil {
		return err
	}
	marker, err := manifest.EncodePackMeta(doc.Description, formats.Data)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrWriteFailed, manifest.MarkerEntry, err)
	}

	doc.Structure = doc.Structure.Clone()
	if _, err := doc.Structure.Resolve(manifest.MarkerEntry); errors.Is(err, structure.ErrPathNotFound) {
		if err := doc.Structure.InsertFile("", manifest.MarkerEntry, ""); err != nil {
			return err
		}
	}

	unlock := m.locks.Lock(doc.Name)
	defer unlock()

	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, doc.Name)
	}

	var extra []newEntry
	for _, p := range doc.Structure.Paths() {
		e := newEntry{path: p.Path, dir: p.Kind == structure.KindFolder}
		if p.Path == manifest.MarkerEntry {
			e.content = marker
		}
		extra = append(extra, e)
	}

	start := time.Now()
	var size int64
	defer func() {
		m.recorder.RecordRewrite(OpCreate, size, time.Since(start), err)
	}()

	err = m.guard(func() error {
		tmp, n, err := m.writeTemp(ctx, doc, nil, nil, extra)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)
		size = n

		if err := os.Link(tmp, target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrAlreadyExists, doc.Name)
			}
			return fmt.Errorf("%w: link %s: %v", ErrWriteFailed, doc.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.log.Info("archive created",
		zap.String("project", doc.Name),
		zap.String("version", doc.Version),
		zap.Int("pack_format", formats.Data),
		zap.Int64("bytes", size))
	return nil
}

// Delete removes the archive file for name. A symlinked archive loses the
// link, not its target.
func (m *Mirror) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := m.Path(name); err != nil {
		return err
	}

	unlock := m.locks.Lock(name)
	defer unlock()

	if err := os.Remove(filepath.Join(m.root.Dir(), name+m.ext)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArchiveNotFound, name)
		}
		return err
	}

	m.log.Info("archive deleted", zap.String("project", name))
	return nil
}

// AddNode inserts a folder or file and rewrites the archive. Missing
// folders along the path are created too.
func (m *Mirror) AddNode(ctx context.Context, name string, req AddRequest) error {
	if !req.Kind.Valid() {
		return fmt.Errorf("%w: unknown node type %q", structure.ErrInvalidPath, req.Kind)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: node name is required", structure.ErrInvalidPath)
	}
	if req.Kind == structure.KindFolder && len(req.Content) > 0 {
		return fmt.Errorf("%w: folders have no content", structure.ErrInvalidPath)
	}
	if len(req.Content) > MaxContentSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrContentTooLarge, len(req.Content), MaxContentSize)
	}

	return m.mutate(ctx, name, OpAdd, func(tree *structure.Tree) (func(string) bool, []newEntry, error) {
		before := make(map[string]bool)
		for _, p := range tree.Paths() {
			before[p.Path] = true
		}

		var err error
		if req.Kind == structure.KindFolder {
			err = tree.InsertFolder(req.Path, req.Name, req.Alias)
		} else {
			err = tree.InsertFile(req.Path, req.Name, req.Alias)
		}
		if err != nil {
			return nil, nil, err
		}

		target := structure.Join(req.Path, req.Name)
		var extra []newEntry
		for _, p := range tree.Paths() {
			if before[p.Path] {
				continue
			}
			e := newEntry{path: p.Path, dir: p.Kind == structure.KindFolder}
			if p.Path == target {
				e.content = req.Content
			}
			extra = append(extra, e)
		}
		return nil, extra, nil
	})
}

// RemoveNode removes the node at path, and its subtree for a folder, then
// rewrites the archive without the matching entries.
func (m *Mirror) RemoveNode(ctx context.Context, name, path string) error {
	return m.mutate(ctx, name, OpRemove, func(tree *structure.Tree) (func(string) bool, []newEntry, error) {
		if _, err := tree.Remove(path); err != nil {
			return nil, nil, err
		}

		prefix := structure.Join(path)
		drop := func(key string) bool {
			return key == prefix || strings.HasPrefix(key, prefix+"/")
		}
		return drop, nil, nil
	})
}

// change edits a working copy of the tree. It returns which existing
// entries to drop and which new entries to write.
type change func(tree *structure.Tree) (drop func(string) bool, extra []newEntry, err error)

// mutate runs a change under the archive's write lock. The archive must be
// consistent before the change; the change is applied to a clone, so a
// failed change leaves both the tree and the file untouched.
func (m *Mirror) mutate(ctx context.Context, name, op string, fn change) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := m.Path(name)
	if err != nil {
		return err
	}

	unlock := m.locks.Lock(name)
	defer unlock()

	snap, err := openSnapshot(target)
	if err != nil {
		return err
	}
	defer snap.Close()

	doc, err := snap.document()
	if err != nil {
		return err
	}
	if err := compare(name, doc.Structure, snap).err(); err != nil {
		return err
	}

	working := doc.Structure.Clone()
	drop, extra, err := fn(working)
	if err != nil {
		return err
	}
	doc.Structure = working

	start := time.Now()
	var size int64
	defer func() {
		m.recorder.RecordRewrite(op, size, time.Since(start), err)
	}()

	err = m.guard(func() error {
		tmp, n, err := m.writeTemp(ctx, doc, snap, drop, extra)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)
		size = n

		// The original must be closed before it is replaced.
		if err := snap.Close(); err != nil {
			m.log.Warn("close archive", zap.String("project", name), zap.Error(err))
		}
		if err := os.Rename(tmp, target); err != nil {
			return fmt.Errorf("%w: replace %s: %v", ErrWriteFailed, name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.log.Info("archive rewritten",
		zap.String("project", name),
		zap.String("op", op),
		zap.Int64("bytes", size),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// guard runs a write through the breaker. While it is open writes fail
// with ErrStorageUnavailable before touching the disk.
func (m *Mirror) guard(write func() error) error {
	err := m.breaker.Do(write)
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}

// writeTemp writes a complete archive to a hidden temp file in the root:
// info.json first, then every entry of src not dropped, then extra. It
// returns the temp path and its size. On error the temp file is removed.
func (m *Mirror) writeTemp(ctx context.Context, doc *manifest.Document, src *snapshot, drop func(string) bool, extra []newEntry) (path string, size int64, err error) {
	meta, err := manifest.Encode(doc)
	if err != nil {
		return "", 0, fmt.Errorf("%w: encode %s: %v", ErrWriteFailed, manifest.MetadataEntry, err)
	}

	path = filepath.Join(m.root.Dir(), id.TempName(doc.Name+m.ext))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, fmt.Errorf("%w: create temp: %v", ErrWriteFailed, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	now := time.Now()
	zw := zip.NewWriter(f)
	if err := writeEntry(zw, newEntry{path: manifest.MetadataEntry, content: meta}, now); err != nil {
		return "", 0, err
	}

	if src != nil {
		for _, zf := range src.rc.File {
			if err := ctx.Err(); err != nil {
				return "", 0, err
			}
			key := entryKey(zf.Name)
			if key == manifest.MetadataEntry || (drop != nil && drop(key)) {
				continue
			}
			if err := zw.Copy(zf); err != nil {
				return "", 0, fmt.Errorf("%w: copy %s: %v", ErrWriteFailed, zf.Name, err)
			}
		}
	}

	for _, e := range extra {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		if err := writeEntry(zw, e, now); err != nil {
			return "", 0, err
		}
	}

	if err := zw.Close(); err != nil {
		return "", 0, fmt.Errorf("%w: finish: %v", ErrWriteFailed, err)
	}
	if err := f.Sync(); err != nil {
		return "", 0, fmt.Errorf("%w: sync: %v", ErrWriteFailed, err)
	}
	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("%w: stat: %v", ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("%w: close: %v", ErrWriteFailed, err)
	}
	return path, info.Size(), nil
}

func writeEntry(zw *zip.Writer, e newEntry, modified time.Time) error {
	header := &zip.FileHeader{Name: e.path, Method: zip.Deflate, Modified: modified}
	header.SetMode(0644)
	if e.dir {
		header.Name = e.path + "/"
		header.Method = zip.Store
		header.SetMode(fs.ModeDir | 0755)
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("%w: add %s: %v", ErrWriteFailed, header.Name, err)
	}
	if len(e.content) > 0 {
		if _, err := w.Write(e.content); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrWriteFailed, header.Name, err)
		}
	}
	return nil
}
