package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnsupportedVersion indicates a release missing from the table or one
// without both pack formats
var ErrUnsupportedVersion = errors.New("unsupported version")

// Revision is one row of the release table. A nil field means the release
// has no pack format of that kind.
type Revision struct {
	Data     *int `json:"data" yaml:"data" toml:"data"`
	Resource *int `json:"resource" yaml:"resource" toml:"resource"`
}

// Formats are the pack format numbers stamped into a new project
type Formats struct {
	Data     int
	Resource int
}

// VersionTable maps a release identifier to its pack formats
type VersionTable struct {
	releases map[string]Revision
}

type versionFile struct {
	StartReleases map[string]Revision `json:"start_releases" yaml:"start_releases" toml:"start_releases"`
}

// NewVersionTable creates a table from release rows
func NewVersionTable(releases map[string]Revision) *VersionTable {
	copied := make(map[string]Revision, len(releases))
	for k, v := range releases {
		copied[k] = v
	}
	return &VersionTable{releases: copied}
}

// Lookup returns the pack formats for a release
func (v *VersionTable) Lookup(version string) (Formats, error) {
	rev, ok := v.releases[version]
	if !ok {
		return Formats{}, fmt.Errorf("%w: %q is not a known release", ErrUnsupportedVersion, version)
	}
	if rev.Data == nil || rev.Resource == nil {
		return Formats{}, fmt.Errorf("%w: %q has no data pack format", ErrUnsupportedVersion, version)
	}
	return Formats{Data: *rev.Data, Resource: *rev.Resource}, nil
}

// Supported returns every release with both formats set, newest first
func (v *VersionTable) Supported() []string {
	versions := make([]string, 0, len(v.releases))
	for version, rev := range v.releases {
		if rev.Data != nil && rev.Resource != nil {
			versions = append(versions, version)
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) > 0
	})
	return versions
}

// compareVersions orders dotted release identifiers numerically. Segments
// that are not numbers compare as strings.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		switch {
		case aerr == nil && berr == nil && an != bn:
			if an < bn {
				return -1
			}
			return 1
		case (aerr != nil || berr != nil) && as[i] != bs[i]:
			return strings.Compare(as[i], bs[i])
		}
	}
	return 0
}
