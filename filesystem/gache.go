package filesystem

import (
	"fmt"
	"io"
	"os"
)

// GacheFs persists gache entries through the active backend, so the
// release and history caches follow SetMemMapFs in tests.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	file, err := API().OpenFile(name, flag, perm)
	if err != nil {
		return nil, fmt.Errorf("cache file: %w", err)
	}

	return file, nil
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
