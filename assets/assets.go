// Package assets provides byte-asset sources for drivers that load fixed
// binary blobs (font tables, calibration images) by name. Sources satisfy
// the consuming driver's lookup interface structurally; nothing here imports
// driver packages.
package assets

import (
	"errors"
	"io/fs"
)

// ErrNotFound is returned when a named asset is absent from a source.
var ErrNotFound = errors.New("assets: not found")

// Map serves assets from memory. Useful on hosts and in tests.
type Map map[string][]byte

func (m Map) FindAsset(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// FS serves assets from any fs.FS, typically an embed.FS carrying the
// binary blobs next to the program that flashes them.
type FS struct {
	fsys fs.FS
}

func NewFS(fsys fs.FS) FS { return FS{fsys: fsys} }

func (f FS) FindAsset(name string) ([]byte, error) {
	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}
