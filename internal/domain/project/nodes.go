package project

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/PackStudio/internal/domain/archive"
	"github.com/GriffinCanCode/PackStudio/internal/domain/manifest"
	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

// NodeRequest describes a folder or file to add under Path
type NodeRequest struct {
	Path    string         `json:"path"`
	Name    string         `json:"name"`
	Type    structure.Kind `json:"type"`
	Alias   string         `json:"alias"`
	Content string         `json:"content,omitempty"`
}

// ListDirectory lists the folder at path joined with its archive entries
func (s *Store) ListDirectory(ctx context.Context, name, path string) (nodes []archive.ListedNode, err error) {
	defer s.track("list_directory")(&err)

	if err := s.checkName(name); err != nil {
		return nil, err
	}
	nodes, err = s.mirror.ListDirectory(ctx, name, path)
	if err != nil {
		return nil, translate(err)
	}
	return nodes, nil
}

// AddNode adds a folder or file to a project
func (s *Store) AddNode(ctx context.Context, name string, req NodeRequest) (err error) {
	defer s.track("add_node")(&err)

	if err := s.checkName(name); err != nil {
		return err
	}
	if req.Type == "" {
		req.Type = structure.KindFile
	}

	err = s.mirror.AddNode(ctx, name, archive.AddRequest{
		Path:    req.Path,
		Name:    req.Name,
		Kind:    req.Type,
		Alias:   manifest.SanitizeAlias(req.Alias),
		Content: []byte(req.Content),
	})
	if err != nil {
		return translate(err)
	}

	s.log.Debug("node added",
		zap.String("project", name),
		zap.String("path", structure.Join(req.Path, req.Name)),
		zap.String("type", string(req.Type)))
	return nil
}

// RemoveNode removes a node, and its subtree for a folder
func (s *Store) RemoveNode(ctx context.Context, name, path string) (err error) {
	defer s.track("remove_node")(&err)

	if err := s.checkName(name); err != nil {
		return err
	}
	if err := s.mirror.RemoveNode(ctx, name, path); err != nil {
		return translate(err)
	}

	s.log.Debug("node removed", zap.String("project", name), zap.String("path", structure.Join(path)))
	return nil
}

// Find returns the nodes of a project whose path matches a glob
func (s *Store) Find(ctx context.Context, name, pattern string) (matches []structure.Path, err error) {
	defer s.track("find")(&err)

	doc, err := s.Metadata(ctx, name)
	if err != nil {
		return nil, err
	}
	matches, err = doc.Structure.Find(pattern)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []structure.Path{}
	}
	return matches, nil
}

// Verify compares a project's tree with its archive entries. An
// inconsistent project returns the report together with an error.
func (s *Store) Verify(ctx context.Context, name string) (report *archive.Report, err error) {
	defer s.track("verify")(&err)

	if err := s.checkName(name); err != nil {
		return nil, err
	}
	report, err = s.mirror.Verify(ctx, name)
	if err != nil {
		return report, translate(err)
	}
	return report, nil
}

// Entries returns the physical entries of a project
func (s *Store) Entries(ctx context.Context, name string) (entries []archive.Entry, err error) {
	defer s.track("entries")(&err)

	if err := s.checkName(name); err != nil {
		return nil, err
	}
	entries, err = s.mirror.Entries(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("entries of %s: %w", name, translate(err))
	}
	return entries, nil
}
