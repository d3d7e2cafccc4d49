package manifest

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/PackStudio/internal/domain/structure"
)

func demoSpec() Spec {
	return Spec{
		Name:        "Demo",
		Description: "A demo pack",
		Version:     "1.20",
		Namespace:   "demo",
		Type:        "datapack",
	}
}

func TestBuildSeedsNamespace(t *testing.T) {
	doc, err := Build(demoSpec())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, TypeDataPack, doc.Type)

	children, err := doc.Structure.ListChildren("data/demo")
	require.NoError(t, err)
	require.Len(t, children, len(SeedFolders))
	for _, c := range children {
		assert.Equal(t, structure.KindFolder, c.Kind)
		folder, err := doc.Structure.Resolve("data/demo/" + c.Name)
		require.NoError(t, err)
		assert.Empty(t, folder.(*structure.Folder).Children)
	}

	marker, err := doc.Structure.Resolve(MarkerEntry)
	require.NoError(t, err)
	assert.Equal(t, structure.KindFile, marker.Kind())
}

func TestBuildRejectsInvalidSpec(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"empty name", func(s *Spec) { s.Name = "  " }},
		{"traversal name", func(s *Spec) { s.Name = "../etc" }},
		{"dot name", func(s *Spec) { s.Name = ".." }},
		{"missing version", func(s *Spec) { s.Version = "" }},
		{"uppercase namespace", func(s *Spec) { s.Namespace = "Demo" }},
		{"empty namespace", func(s *Spec) { s.Namespace = "" }},
		{"unknown type", func(s *Spec) { s.Type = "modpack" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := demoSpec()
			tt.mutate(&spec)

			_, err := Build(spec)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestSanitize(t *testing.T) {
	spec := demoSpec()
	spec.Description = `<script>alert(1)</script><b>Hello</b> world`

	doc, err := Build(spec)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", doc.Description)

	assert.Equal(t, "Main", SanitizeAlias(" <i>Main</i> "))
}

func TestSanitizeKeepsPlainText(t *testing.T) {
	spec := demoSpec()
	spec.Description = `Tom's pack & more "quoted"`

	doc, err := Build(spec)
	require.NoError(t, err)
	assert.Equal(t, `Tom's pack & more "quoted"`, doc.Description)

	marker, err := EncodePackMeta(doc.Description, 15)
	require.NoError(t, err)
	assert.NotContains(t, string(marker), "&#39;")
	assert.NotContains(t, string(marker), "&amp;")

	assert.Equal(t, "Rock & Roll's", SanitizeAlias("<b>Rock & Roll's</b>"))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"datapack", TypeDataPack},
		{"DataPack", TypeDataPack},
		{"Resource Pack", TypeResourcePack},
		{"server", TypeServer},
		{"数据包", TypeDataPack},
		{"资源包", TypeResourcePack},
		{"模组", TypeMod},
		{"插件", TypePlugin},
		{" 服务端 ", TypeServer},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	doc, err := Build(demoSpec())
	require.NoError(t, err)
	require.NoError(t, doc.Structure.InsertFile("data/demo/function", "main.mcfunction", "Main"))

	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestDecodeLegacyDocument(t *testing.T) {
	data := []byte(`{
		"name": "Old",
		"description": "",
		"version": "1.19",
		"namespace": "old",
		"type": "ResourcePack",
		"icon": "",
		"structure": {"data": {"alias": "", "children": {}}}
	}`)

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeResourcePack, doc.Type)
	assert.Empty(t, doc.ID)

	node, err := doc.Structure.Resolve("data")
	require.NoError(t, err)
	assert.Equal(t, structure.KindFolder, node.Kind())
}

func TestDecodeNormalizesLegacyTypeValue(t *testing.T) {
	data := []byte(`{"name": "Old", "version": "1.19", "namespace": "old", "type": "模组", "structure": {}}`)

	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeMod, doc.Type)

	spec := demoSpec()
	spec.Type = "插件"
	built, err := Build(spec)
	require.NoError(t, err)
	assert.Equal(t, TypePlugin, built.Type)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"name":`},
		{"missing structure", `{"name": "x"}`},
		{"bad node", `{"name": "x", "structure": {"a": {"type": "link", "alias": ""}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncodePackMeta(t *testing.T) {
	data, err := EncodePackMeta("A demo pack", 15)
	require.NoError(t, err)

	var meta PackMeta
	require.NoError(t, sonic.ConfigStd.Unmarshal(data, &meta))
	assert.Equal(t, 15, meta.Pack.PackFormat)
	assert.Equal(t, "A demo pack", meta.Pack.Description)
}
