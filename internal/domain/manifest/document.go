package manifest

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

// Reserved archive entries
const (
	MetadataEntry = structure.ReservedName
	MarkerEntry   = "pack.mcmeta"
)

// Field limits
const (
	MaxNameLength        = 128
	MaxDescriptionLength = 2048
	MaxAliasLength       = 128
)

// NamespacePattern matches the identifiers allowed as a pack namespace
var NamespacePattern = regexp.MustCompile(`^[a-z0-9_.-]+$`)

// Document is the info.json entry of a project archive
type Document struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Version     string          `json:"version"`
	Namespace   string          `json:"namespace"`
	Type        Type            `json:"type"`
	Icon        string          `json:"icon"`
	Structure   *structure.Tree `json:"structure"`
}

// Spec is the caller input for a new project
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Namespace   string `json:"namespace"`
	Type        string `json:"type"`
	Icon        string `json:"icon"`
}

// Summary is a Document without its structure, as shown in listings
type Summary struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Namespace   string `json:"namespace"`
	Type        Type   `json:"type"`
	Icon        string `json:"icon"`
}

// Summary drops the structure tree
func (d *Document) Summary() Summary {
	return Summary{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Version:     d.Version,
		Namespace:   d.Namespace,
		Type:        d.Type,
		Icon:        d.Icon,
	}
}

// Build validates spec and returns a new document with the seed layout
func Build(spec Spec) (*Document, error) {
	spec = Sanitize(spec)
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	typ, err := ParseType(spec.Type)
	if err != nil {
		return nil, err
	}

	tree, err := SeedTree(spec.Namespace)
	if err != nil {
		return nil, err
	}

	return &Document{
		ID:          uuid.NewString(),
		Name:        spec.Name,
		Description: spec.Description,
		Version:     spec.Version,
		Namespace:   spec.Namespace,
		Type:        typ,
		Icon:        spec.Icon,
		Structure:   tree,
	}, nil
}

// ValidateSpec checks every field of spec. The project name is checked
// only for shape here; containment is the storage root's concern.
func ValidateSpec(spec Spec) error {
	switch {
	case spec.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidDocument)
	case utf8.RuneCountInString(spec.Name) > MaxNameLength:
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidDocument, MaxNameLength)
	case !structure.ValidName(spec.Name):
		return fmt.Errorf("%w: name %q contains path characters", ErrInvalidDocument, spec.Name)
	case spec.Version == "":
		return fmt.Errorf("%w: version is required", ErrInvalidDocument)
	case !NamespacePattern.MatchString(spec.Namespace):
		return fmt.Errorf("%w: namespace %q must match %s", ErrInvalidDocument, spec.Namespace, NamespacePattern)
	case utf8.RuneCountInString(spec.Description) > MaxDescriptionLength:
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDocument, MaxDescriptionLength)
	}
	return nil
}

// Encode serializes d as indented JSON
func Encode(d *Document) ([]byte, error) {
	if d.Structure == nil {
		d.Structure = structure.New()
	}
	return sonic.ConfigStd.MarshalIndent(d, "", "  ")
}

// Decode parses an info.json document. Documents written by older releases
// may use enum names for the type field; types that match nothing are kept
// verbatim.
func Decode(data []byte) (*Document, error) {
	var raw struct {
		Document
		Type string `json:"type"`
	}
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	doc := raw.Document
	if raw.Type != "" {
		doc.Type = Type(raw.Type)
		if typ, err := ParseType(raw.Type); err == nil {
			doc.Type = typ
		}
	}
	if doc.Structure == nil {
		return nil, fmt.Errorf("%w: missing structure", ErrMalformed)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("%w: missing name", ErrMalformed)
	}
	return &doc, nil
}
