package http

import (
	"context"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

// ProjectService is the part of project.Store the handlers use
type ProjectService interface {
	Create(ctx context.Context, spec manifest.Spec) (*manifest.Document, error)
	List(ctx context.Context) ([]manifest.Summary, error)
	Metadata(ctx context.Context, name string) (*manifest.Document, error)
	Delete(ctx context.Context, name string) error
	Download(ctx context.Context, name string) (*archive.Download, error)
	Versions() []string

	ListDirectory(ctx context.Context, name, path string) ([]archive.ListedNode, error)
	AddNode(ctx context.Context, name string, req project.NodeRequest) error
	RemoveNode(ctx context.Context, name, path string) error
	Find(ctx context.Context, name, pattern string) ([]structure.Path, error)
	Verify(ctx context.Context, name string) (*archive.Report, error)
}

var _ ProjectService = (*project.Store)(nil)
