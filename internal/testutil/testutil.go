// Package testutil provides mocks shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/project"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

// MockProjectService is a mock implementation of the HTTP layer's
// project service.
type MockProjectService struct {
	mock.Mock
}

// NewMockProjectService creates a mock that asserts its expectations when
// the test ends.
func NewMockProjectService(t *testing.T) *MockProjectService {
	t.Helper()
	m := new(MockProjectService)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockProjectService) Create(ctx context.Context, spec manifest.Spec) (*manifest.Document, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Document), args.Error(1)
}

// List mocks the List method.
func (m *MockProjectService) List(ctx context.Context) ([]manifest.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]manifest.Summary), args.Error(1)
}

// Metadata mocks the Metadata method.
func (m *MockProjectService) Metadata(ctx context.Context, name string) (*manifest.Document, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Document), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockProjectService) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// Download mocks the Download method.
func (m *MockProjectService) Download(ctx context.Context, name string) (*archive.Download, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Download), args.Error(1)
}

// Versions mocks the Versions method.
func (m *MockProjectService) Versions() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// ListDirectory mocks the ListDirectory method.
func (m *MockProjectService) ListDirectory(ctx context.Context, name, path string) ([]archive.ListedNode, error) {
	args := m.Called(ctx, name, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]archive.ListedNode), args.Error(1)
}

// AddNode mocks the AddNode method.
func (m *MockProjectService) AddNode(ctx context.Context, name string, req project.NodeRequest) error {
	return m.Called(ctx, name, req).Error(0)
}

// RemoveNode mocks the RemoveNode method.
func (m *MockProjectService) RemoveNode(ctx context.Context, name, path string) error {
	return m.Called(ctx, name, path).Error(0)
}

// Find mocks the Find method.
func (m *MockProjectService) Find(ctx context.Context, name, pattern string) ([]structure.Path, error) {
	args := m.Called(ctx, name, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]structure.Path), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockProjectService) Verify(ctx context.Context, name string) (*archive.Report, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Report), args.Error(1)
}
