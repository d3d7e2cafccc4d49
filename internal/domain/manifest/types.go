package manifest

import (
	"fmt"
	"strings"
)

// Type is the kind of content a project packages
type Type string

const (
	TypeDataPack     Type = "datapack"
	TypeResourcePack Type = "resourcepack"
	TypeMod          Type = "mod"
	TypePlugin       Type = "plugin"
	TypeServer       Type = "server"
)

var typeLabels = map[Type]string{
	TypeDataPack:     "Data Pack",
	TypeResourcePack: "Resource Pack",
	TypeMod:          "Mod",
	TypePlugin:       "Plugin",
	TypeServer:       "Server",
}

// legacyNames are the type values written by the first releases of the
// editor
var legacyNames = map[string]Type{
	"数据包": TypeDataPack,
	"资源包": TypeResourcePack,
	"模组":  TypeMod,
	"插件":  TypePlugin,
	"服务端": TypeServer,
}

// Types returns every project type in display order
func Types() []Type {
	return []Type{TypeDataPack, TypeResourcePack, TypeMod, TypePlugin, TypeServer}
}

// Valid reports whether t is a known type
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the display name of t
func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseType accepts a type key, its display label, the enum name used by
// older documents ("DataPack") or a legacy value ("数据包"). Matching
// ignores case and spaces.
func ParseType(s string) (Type, error) {
	if t, ok := legacyNames[strings.TrimSpace(s)]; ok {
		return t, nil
	}
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for t, label := range typeLabels {
		if key == string(t) || key == strings.ToLower(strings.ReplaceAll(label, " ", "")) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown project type %q", ErrInvalidDocument, s)
}
