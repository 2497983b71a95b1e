// Package fileio is the thin file-system boundary spec.md §1 deliberately
// keeps out of the smf package: ReadFile/WriteFile wrapping os, nothing
// more.
//
// Grounded on the teacher's pkg/vm/audio/fileutil.go, trimmed down: the
// case-insensitive search and embed.FS support that file adds (for FILLY's
// Windows-3.1-era title packages) has no SPEC_FULL.md component to serve —
// this module's callers always know the exact path of the .mid/.sf2 file
// they want — so only the plain os.ReadFile/os.WriteFile wrapping survives.
package fileio

import "os"

// ReadFile reads the entire contents of path.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating it with mode 0644 if it does
// not exist and truncating it if it does.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
