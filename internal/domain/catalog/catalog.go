package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

//go:embed defaults/pack_format.json defaults/file_types.yaml
var defaults embed.FS

const (
	defaultPackFormatFile = "defaults/pack_format.json"
	defaultFileTypesFile  = "defaults/file_types.yaml"
)

// Options points the catalog at override files. Empty paths use the
// embedded tables.
type Options struct {
	PackFormatFile string
	FileTypesFile  string
}

// Catalog serves both lookup tables and supports reloading them
type Catalog struct {
	opts Options

	mu        sync.RWMutex
	versions  *VersionTable
	fileTypes *FileTypes
}

// New loads the tables described by opts
func New(opts Options) (*Catalog, error) {
	c := &Catalog{opts: opts}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns a catalog backed by the embedded tables only
func Default() *Catalog {
	c, err := New(Options{})
	if err != nil {
		// The embedded tables are part of the build.
		panic(fmt.Sprintf("catalog: embedded defaults: %v", err))
	}
	return c
}

// Reload re-reads both tables. On error the current tables stay in place.
func (c *Catalog) Reload() error {
	versions, err := loadVersions(c.opts.PackFormatFile)
	if err != nil {
		return err
	}
	fileTypes, err := loadFileTypes(c.opts.FileTypesFile)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.versions = versions
	c.fileTypes = fileTypes
	c.mu.Unlock()
	return nil
}

// Versions returns the current release table
func (c *Catalog) Versions() *VersionTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions
}

// FileTypes returns the current file type table
func (c *Catalog) FileTypes() *FileTypes {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fileTypes
}

// Lookup returns the pack formats for a release
func (c *Catalog) Lookup(version string) (Formats, error) {
	return c.Versions().Lookup(version)
}

// Label returns the display label for a file extension
func (c *Catalog) Label(ext string) string {
	return c.FileTypes().Label(ext)
}

// Supported returns the releases a project can target, newest first
func (c *Catalog) Supported() []string {
	return c.Versions().Supported()
}

func loadVersions(path string) (*VersionTable, error) {
	var file versionFile
	if err := readTable(path, defaultPackFormatFile, &file); err != nil {
		return nil, fmt.Errorf("load pack formats: %w", err)
	}
	if len(file.StartReleases) == 0 {
		return nil, fmt.Errorf("load pack formats: no releases in %s", describe(path, defaultPackFormatFile))
	}
	return NewVersionTable(file.StartReleases), nil
}

func loadFileTypes(path string) (*FileTypes, error) {
	var file fileTypesFile
	if err := readTable(path, defaultFileTypesFile, &file); err != nil {
		return nil, fmt.Errorf("load file types: %w", err)
	}
	return NewFileTypes(file.Labels, file.Fallback), nil
}

// readTable decodes path, or the embedded fallback when path is empty
func readTable(path, fallback string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = defaults.ReadFile(fallback)
		path = fallback
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	return decode(path, data, v)
}

func decode(path string, data []byte, v interface{}) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return sonic.ConfigStd.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".toml":
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported table format %q", ext)
	}
}

func describe(path, fallback string) string {
	if path == "" {
		return "embedded " + fallback
	}
	return path
}
