// Package utils provides common utility functions for the material-manager application.
// It includes tolerant scalar coercion helpers for walking loosely typed JSON
// documents and other shared logic that doesn't fit into domain-specific packages.
package utils
