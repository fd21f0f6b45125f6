// Package types holds the value types shared between the manifest parser and
// the sync engine, plus the filesystem interface the engine mutates through.
package types
