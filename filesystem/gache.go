package filesystem

import (
	"io"
	"os"
	"path/filepath"
)

// GacheFs adapts the active backend to the gache file store used by the
// query history, anilist ids and version check caches.
type GacheFs struct{}

// OpenFile creates missing parent directories when flag asks for creation.
func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if flag&os.O_CREATE != 0 {
		if err := API().MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
			return nil, err
		}
	}
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
