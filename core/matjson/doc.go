// Package matjson reads and writes the material library JSON format.
//
// A library file is a top-level JSON array of material objects. Field
// order within each object is fixed (Name, MTD, Textures, GXIndex,
// Index; textures carry Type, Path, Scale, Unk10, Unk11, Unk14, Unk18,
// Unk1C) and the exporter reproduces the game files' own formatting:
// tab indentation, integral scale values rendered as bare integers,
// strings escaped without the HTML-safe replacements. Import collapses
// doubled backslashes and forward slashes in MTD and Path values to
// single backslashes.
//
// Parsing is strict about structure (a missing required field aborts
// with the offending element's position) but tolerant about value
// rendering: integers and floats are accepted interchangeably, since
// integral scale values round-trip through the bare-integer form.
package matjson
