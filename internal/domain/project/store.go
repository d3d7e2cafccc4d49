package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/catalog"
	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PackStudio/internal/shared/paths"
)

// Recorder receives store level measurements
type Recorder interface {
	RecordOperation(op, status string, duration time.Duration)
	SetProjects(count int)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string, time.Duration) {}
func (nopRecorder) SetProjects(int)                               {}

// Config wires a Store. Mirror and Catalog are required.
type Config struct {
	Mirror   *archive.Mirror
	Catalog  *catalog.Catalog
	Logger   *logging.Logger
	Recorder Recorder
}

// Store manages the projects in one directory
type Store struct {
	mirror   *archive.Mirror
	catalog  *catalog.Catalog
	log      *logging.Logger
	recorder Recorder
}

// NewStore creates a store
func NewStore(cfg Config) (*Store, error) {
	if cfg.Mirror == nil {
		return nil, fmt.Errorf("project: mirror is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("project: catalog is required")
	}

	s := &Store{
		mirror:   cfg.Mirror,
		catalog:  cfg.Catalog,
		log:      cfg.Logger,
		recorder: cfg.Recorder,
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	s.log = s.log.Named("project")
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	return s, nil
}

// track starts timing op. The returned func records the outcome:
//
//	defer s.track("create")(&err)
func (s *Store) track(op string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		status := "ok"
		if *errp != nil {
			status = "error"
		}
		s.recorder.RecordOperation(op, status, time.Since(start))
	}
}

// Create validates spec and writes a new project with the standard layout
func (s *Store) Create(ctx context.Context, spec manifest.Spec) (doc *manifest.Document, err error) {
	defer s.track("create")(&err)

	if err := s.checkName(strings.TrimSpace(spec.Name)); err != nil {
		return nil, err
	}
	doc, err = manifest.Build(spec)
	if err != nil {
		return nil, translate(err)
	}

	exists, err := s.mirror.Exists(doc.Name)
	if err != nil {
		return nil, translate(err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, doc.Name)
	}

	if err := s.mirror.Create(ctx, doc); err != nil {
		return nil, translate(err)
	}

	s.log.Info("project created",
		zap.String("project", doc.Name),
		zap.String("namespace", doc.Namespace),
		zap.String("type", string(doc.Type)))
	return doc, nil
}

// List returns every readable project sorted by name. Archives that fail
// to open are logged and skipped.
func (s *Store) List(ctx context.Context) (summaries []manifest.Summary, err error) {
	defer s.track("list")(&err)

	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}

	summaries = make([]manifest.Summary, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := s.mirror.ReadMetadata(ctx, name)
		if err != nil {
			s.log.Warn("skipping unreadable project", zap.String("project", name), zap.Error(err))
			continue
		}
		summary := doc.Summary()
		// The file name is authoritative; info.json may have been edited.
		summary.Name = name
		summaries = append(summaries, summary)
	}

	s.recorder.SetProjects(len(summaries))
	return summaries, nil
}

// names enumerates archive files at the top of the managed directory
func (s *Store) names(ctx context.Context) ([]string, error) {
	dir := s.mirror.Root().Dir()

	var (
		mu    sync.Mutex
		names []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			return filepath.SkipDir
		}

		name, ok := s.mirror.NameOf(filepath.Base(path))
		if !ok {
			return nil
		}
		mu.Lock()
		names = append(names, name)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	sort.Strings(names)
	return names, nil
}

// Metadata returns the full manifest of a project
func (s *Store) Metadata(ctx context.Context, name string) (doc *manifest.Document, err error) {
	defer s.track("metadata")(&err)

	if err := s.checkName(name); err != nil {
		return nil, err
	}
	doc, err = s.mirror.ReadMetadata(ctx, name)
	if err != nil {
		return nil, translate(err)
	}
	return doc, nil
}

// Delete removes a project archive
func (s *Store) Delete(ctx context.Context, name string) (err error) {
	defer s.track("delete")(&err)

	if err := s.checkName(name); err != nil {
		return err
	}

	err = s.mirror.Delete(ctx, name)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, archive.ErrArchiveNotFound),
		errors.Is(err, paths.ErrInvalidName),
		errors.Is(err, paths.ErrOutsideRoot):
		return translate(err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrDeleteFailed, name, err)
	}

	s.log.Info("project deleted", zap.String("project", name))
	return nil
}

// Download returns a distributable copy of a project without info.json
func (s *Store) Download(ctx context.Context, name string) (dl *archive.Download, err error) {
	defer s.track("download")(&err)

	if err := s.checkName(name); err != nil {
		return nil, err
	}
	dl, err = s.mirror.Export(ctx, name)
	if err != nil {
		return nil, translate(err)
	}
	return dl, nil
}

// Versions lists the releases a project can target, newest first
func (s *Store) Versions() []string {
	return s.catalog.Supported()
}

// checkName rejects names that cannot address an archive in the root. It
// runs before any filesystem access.
func (s *Store) checkName(name string) error {
	if err := paths.ValidateName(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return nil
}

// translate maps lower level errors onto this package's kinds. Errors
// without a mapping pass through unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, paths.ErrInvalidName), errors.Is(err, paths.ErrOutsideRoot):
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	case errors.Is(err, archive.ErrArchiveNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, archive.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrDuplicateProject, err)
	case errors.Is(err, manifest.ErrInvalidDocument):
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	return err
}
