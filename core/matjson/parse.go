package matjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"material-manager/core/material"
	"material-manager/core/utils"
)

// ErrNotArray reports a library whose top-level JSON value is not an
// array.
var ErrNotArray = errors.New("top-level JSON value must be an array")

// ErrMaterialNotFound reports a name lookup that matched nothing.
var ErrMaterialNotFound = errors.New("material not found")

// NormalizePath collapses path separators to single backslashes. Both
// doubled backslashes and forward slashes appear in library files in
// the wild.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, `\\`, `\`)
	return strings.ReplaceAll(path, `/`, `\`)
}

// ParseFile reads and parses the material library at path.
func ParseFile(path string) ([]material.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material file: %w", err)
	}
	defer f.Close()

	materials, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return materials, nil
}

// Parse decodes a material library from r. Numbers are decoded through
// json.Number so integer and float renderings of the same value are
// interchangeable.
func Parse(r io.Reader) ([]material.Material, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	items, ok := root.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	materials := make([]material.Material, 0, len(items))
	for i, item := range items {
		m, err := parseMaterial(item, i)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, nil
}

// FindByName selects a material from a parsed library. An empty name
// selects the only material of a single-material library.
func FindByName(materials []material.Material, name string) (material.Material, error) {
	if name == "" {
		if len(materials) == 1 {
			return materials[0], nil
		}
		return material.Material{}, fmt.Errorf("%w: name required, file holds %d materials", ErrMaterialNotFound, len(materials))
	}
	for _, m := range materials {
		if m.Name == name {
			return m, nil
		}
	}
	return material.Material{}, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
}

func parseMaterial(raw any, idx int) (material.Material, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return material.Material{}, fmt.Errorf("material entry #%d must be an object", idx)
	}
	for _, field := range []string{"Name", "MTD", "Textures", "GXIndex", "Index"} {
		if _, present := obj[field]; !present {
			return material.Material{}, fmt.Errorf("material entry #%d missing required field: %s", idx, field)
		}
	}

	texturesRaw, ok := obj["Textures"].([]any)
	if !ok {
		return material.Material{}, fmt.Errorf("material entry #%d: Textures must be an array", idx)
	}
	samplers := make([]material.Sampler, 0, len(texturesRaw))
	for j, t := range texturesRaw {
		s, err := parseSampler(t, idx, j)
		if err != nil {
			return material.Material{}, err
		}
		samplers = append(samplers, s)
	}

	return material.NewMaterial(
		utils.ToString(obj["Name"]),
		NormalizePath(utils.ToString(obj["MTD"])),
		samplers,
		int32(utils.ToInt64(obj["GXIndex"])),
		int32(utils.ToInt64(obj["Index"])),
	), nil
}

func parseSampler(raw any, matIdx, samplerIdx int) (material.Sampler, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return material.Sampler{}, fmt.Errorf("material #%d sampler #%d must be an object", matIdx, samplerIdx)
	}
	for _, field := range []string{"Type", "Path", "Scale"} {
		if _, present := obj[field]; !present {
			return material.Sampler{}, fmt.Errorf("material #%d sampler #%d missing required field: %s", matIdx, samplerIdx, field)
		}
	}
	scaleObj, ok := obj["Scale"].(map[string]any)
	if !ok {
		return material.Sampler{}, fmt.Errorf("material #%d sampler #%d: Scale must be an object", matIdx, samplerIdx)
	}

	s := material.NewSampler(utils.ToString(obj["Type"]), NormalizePath(utils.ToString(obj["Path"])))
	s.Scale = parseScale(scaleObj)

	// Absent opaque fields coerce from nil to their zero values.
	s.Unk10 = utils.ToInt64(obj["Unk10"])
	s.Unk11 = utils.ToBool(obj["Unk11"])
	s.Unk14 = utils.ToInt64(obj["Unk14"])
	s.Unk18 = utils.ToInt64(obj["Unk18"])
	s.Unk1C = utils.ToInt64(obj["Unk1C"])
	return s, nil
}

// parseScale reads a Scale object. Absent components default to 1.
func parseScale(obj map[string]any) material.Vec2 {
	scale := material.Vec2{X: 1, Y: 1}
	if v, ok := obj["X"]; ok {
		scale.X = utils.ToFloat64(v)
	}
	if v, ok := obj["Y"]; ok {
		scale.Y = utils.ToFloat64(v)
	}
	return scale
}
