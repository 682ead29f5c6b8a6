// Package material defines the value types flowing through the
// conversion pipeline: samplers, materials, and conversion options.
//
// All types are plain values. A material fixes each sampler's decoded
// type information and original list position at construction time;
// nothing in this package mutates a constructed value afterwards, so
// materials can be shared freely across goroutines.
package material
