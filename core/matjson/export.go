package matjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"material-manager/core/material"
)

// ExportOptions control optional path rewriting on export.
type ExportOptions struct {
	// SimplifyTexturePath reduces every sampler path to its final
	// component.
	SimplifyTexturePath bool

	// SimplifyMaterialPath reduces every MTD path to its final
	// component.
	SimplifyMaterialPath bool
}

// Export writes materials to w in the library format.
func Export(w io.Writer, materials []material.Material, opts ExportOptions) error {
	if _, err := w.Write(encode(materials, opts)); err != nil {
		return fmt.Errorf("failed to write material JSON: %w", err)
	}
	return nil
}

// ExportFile writes materials to path, replacing any existing file.
func ExportFile(path string, materials []material.Material, opts ExportOptions) error {
	if err := os.WriteFile(path, encode(materials, opts), 0o644); err != nil {
		return fmt.Errorf("failed to write material file: %w", err)
	}
	return nil
}

// SimplifyPath reduces a path to its final component.
func SimplifyPath(path string) string {
	norm := NormalizePath(path)
	if i := strings.LastIndexByte(norm, '\\'); i >= 0 {
		return norm[i+1:]
	}
	return norm
}

// encode renders the library the way the game's own exporter formats
// it: tab indentation, fixed field order, "Key": value lines, and no
// trailing newline.
func encode(materials []material.Material, opts ExportOptions) []byte {
	var buf bytes.Buffer
	if len(materials) == 0 {
		buf.WriteString("[]")
		return buf.Bytes()
	}

	buf.WriteString("[\n")
	for i, m := range materials {
		writeMaterial(&buf, m, opts)
		if i < len(materials)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func writeMaterial(buf *bytes.Buffer, m material.Material, opts ExportOptions) {
	mtd := m.MTDPath
	if opts.SimplifyMaterialPath {
		mtd = SimplifyPath(mtd)
	}

	buf.WriteString("\t{\n")
	fmt.Fprintf(buf, "\t\t\"Name\": %s,\n", encodeString(m.Name))
	fmt.Fprintf(buf, "\t\t\"MTD\": %s,\n", encodeString(mtd))
	writeTextures(buf, m.Samplers, opts)
	fmt.Fprintf(buf, "\t\t\"GXIndex\": %d,\n", m.GXIndex)
	fmt.Fprintf(buf, "\t\t\"Index\": %d\n", m.Index)
	buf.WriteString("\t}")
}

func writeTextures(buf *bytes.Buffer, samplers []material.Sampler, opts ExportOptions) {
	if len(samplers) == 0 {
		buf.WriteString("\t\t\"Textures\": [],\n")
		return
	}

	buf.WriteString("\t\t\"Textures\": [\n")
	for i, s := range samplers {
		writeSampler(buf, s, opts)
		if i < len(samplers)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("\t\t],\n")
}

func writeSampler(buf *bytes.Buffer, s material.Sampler, opts ExportOptions) {
	path := s.Path
	if opts.SimplifyTexturePath {
		path = SimplifyPath(path)
	}

	buf.WriteString("\t\t\t{\n")
	fmt.Fprintf(buf, "\t\t\t\t\"Type\": %s,\n", encodeString(s.TypeName))
	fmt.Fprintf(buf, "\t\t\t\t\"Path\": %s,\n", encodeString(path))
	buf.WriteString("\t\t\t\t\"Scale\": {\n")
	fmt.Fprintf(buf, "\t\t\t\t\t\"X\": %s,\n", formatScale(s.Scale.X))
	fmt.Fprintf(buf, "\t\t\t\t\t\"Y\": %s\n", formatScale(s.Scale.Y))
	buf.WriteString("\t\t\t\t},\n")
	fmt.Fprintf(buf, "\t\t\t\t\"Unk10\": %d,\n", s.Unk10)
	fmt.Fprintf(buf, "\t\t\t\t\"Unk11\": %t,\n", s.Unk11)
	fmt.Fprintf(buf, "\t\t\t\t\"Unk14\": %d,\n", s.Unk14)
	fmt.Fprintf(buf, "\t\t\t\t\"Unk18\": %d,\n", s.Unk18)
	fmt.Fprintf(buf, "\t\t\t\t\"Unk1C\": %d\n", s.Unk1C)
	buf.WriteString("\t\t\t}")
}

// formatScale renders a scale component. Integral values render as
// bare integers (1, not 1.0), matching the game's own files.
func formatScale(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// encodeString escapes s as a JSON string without the HTML-safe
// replacements json.Marshal applies to <, > and &.
func encodeString(s string) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // encoding a plain string cannot fail
	return strings.TrimSuffix(sb.String(), "\n")
}
