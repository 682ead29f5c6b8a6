package matjson

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"material-manager/core/material"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExport_Format tests the exact output layout: tab indentation,
// fixed field order, and integral scale values as bare integers.
func TestExport_Format(t *testing.T) {
	s0 := material.NewSampler("C_Test__snp_Texture2D_0_AlbedoMap", `N:\tex\a.tif`)
	s0.Unk10 = 1
	s0.Unk11 = true
	s1 := material.NewSampler("C_Test__snp_Texture2D_1_NormalMap", "")
	s1.Scale = material.Vec2{X: 2.5, Y: 0.5}
	m := material.NewMaterial("C_Test", `N:\mtd\test.matxml`, []material.Sampler{s0, s1}, 0, 4)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []material.Material{m}, ExportOptions{}))

	want := strings.Join([]string{
		"[",
		"\t{",
		"\t\t\"Name\": \"C_Test\",",
		"\t\t\"MTD\": \"N:\\\\mtd\\\\test.matxml\",",
		"\t\t\"Textures\": [",
		"\t\t\t{",
		"\t\t\t\t\"Type\": \"C_Test__snp_Texture2D_0_AlbedoMap\",",
		"\t\t\t\t\"Path\": \"N:\\\\tex\\\\a.tif\",",
		"\t\t\t\t\"Scale\": {",
		"\t\t\t\t\t\"X\": 1,",
		"\t\t\t\t\t\"Y\": 1",
		"\t\t\t\t},",
		"\t\t\t\t\"Unk10\": 1,",
		"\t\t\t\t\"Unk11\": true,",
		"\t\t\t\t\"Unk14\": 0,",
		"\t\t\t\t\"Unk18\": 0,",
		"\t\t\t\t\"Unk1C\": 0",
		"\t\t\t},",
		"\t\t\t{",
		"\t\t\t\t\"Type\": \"C_Test__snp_Texture2D_1_NormalMap\",",
		"\t\t\t\t\"Path\": \"\",",
		"\t\t\t\t\"Scale\": {",
		"\t\t\t\t\t\"X\": 2.5,",
		"\t\t\t\t\t\"Y\": 0.5",
		"\t\t\t\t},",
		"\t\t\t\t\"Unk10\": 0,",
		"\t\t\t\t\"Unk11\": false,",
		"\t\t\t\t\"Unk14\": 0,",
		"\t\t\t\t\"Unk18\": 0,",
		"\t\t\t\t\"Unk1C\": 0",
		"\t\t\t}",
		"\t\t],",
		"\t\t\"GXIndex\": 0,",
		"\t\t\"Index\": 4",
		"\t}",
		"]",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// TestExport_EmptyLibrary tests that an empty library renders as a
// bare array.
func TestExport_EmptyLibrary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil, ExportOptions{}))
	assert.Equal(t, "[]", buf.String())
}

// TestExport_EmptyTextures tests the layout of a material without
// samplers.
func TestExport_EmptyTextures(t *testing.T) {
	m := material.NewMaterial("A", "", nil, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []material.Material{m}, ExportOptions{}))

	want := strings.Join([]string{
		"[",
		"\t{",
		"\t\t\"Name\": \"A\",",
		"\t\t\"MTD\": \"\",",
		"\t\t\"Textures\": [],",
		"\t\t\"GXIndex\": 0,",
		"\t\t\"Index\": 0",
		"\t}",
		"]",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

// TestExport_RoundTrip tests that a library survives export and
// re-import unchanged, including fractional scales.
func TestExport_RoundTrip(t *testing.T) {
	s0 := material.NewSampler("C_RT__snp_Texture2D_3_AlbedoMap", `N:\tex\rt_a.tif`)
	s0.Scale = material.Vec2{X: 0.25, Y: 2.5}
	s0.Unk10 = 7
	s0.Unk11 = true
	s0.Unk14 = -1
	s0.Unk18 = 256
	s0.Unk1C = 3
	s1 := material.NewSampler("g_DiffuseTexture", `N:\tex\legacy_d.tga`)
	mats := []material.Material{
		material.NewMaterial("C_RT", `N:\mtd\rt.matxml`, []material.Sampler{s0, s1}, 2, 9),
		material.NewMaterial("C_Empty", "", nil, 0, 0),
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, mats, ExportOptions{}))

	reparsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, mats, reparsed)
}

// TestExport_SimplifyPaths tests the optional reduction of MTD and
// texture paths to their final components.
func TestExport_SimplifyPaths(t *testing.T) {
	s := material.NewSampler("C_S__snp_Texture2D_0_AlbedoMap", `N:\deep\tex\a.tif`)
	m := material.NewMaterial("C_S", `N:\deep\mtd\s.matxml`, []material.Sampler{s}, 0, 0)

	var buf bytes.Buffer
	opts := ExportOptions{SimplifyTexturePath: true, SimplifyMaterialPath: true}
	require.NoError(t, Export(&buf, []material.Material{m}, opts))

	out := buf.String()
	assert.Contains(t, out, "\"MTD\": \"s.matxml\",")
	assert.Contains(t, out, "\"Path\": \"a.tif\",")

	// The input material is not mutated.
	assert.Equal(t, `N:\deep\mtd\s.matxml`, m.MTDPath)
	assert.Equal(t, `N:\deep\tex\a.tif`, m.Samplers[0].Path)
}

// TestSimplifyPath tests final-component reduction across separator
// styles.
func TestSimplifyPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"backslashes", `N:\a\b.tif`, "b.tif"},
		{"forward slashes", "a/b/c.tga", "c.tga"},
		{"doubled backslashes", `N:\\dbl\\x.tif`, "x.tif"},
		{"bare name", "plain.tga", "plain.tga"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SimplifyPath(tt.path))
		})
	}
}

// TestExport_NoHTMLEscaping tests that names survive without the
// HTML-safe substitutions of the default JSON encoder.
func TestExport_NoHTMLEscaping(t *testing.T) {
	m := material.NewMaterial("A&B<C>", "", nil, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, []material.Material{m}, ExportOptions{}))
	assert.Contains(t, buf.String(), "\"Name\": \"A&B<C>\",")
}

// TestExportFile tests the on-disk round trip and that no trailing
// newline is appended.
func TestExportFile(t *testing.T) {
	s := material.NewSampler("C_F__snp_Texture2D_2_MetallicMap", `N:\tex\f_m.tif`)
	mats := []material.Material{
		material.NewMaterial("C_F", `N:\mtd\f.matxml`, []material.Sampler{s}, 1, 2),
	}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ExportFile(path, mats, ExportOptions{}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasSuffix(raw, []byte("\n")))

	reparsed, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, mats, reparsed)
}
