package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"keystone/internal/domain"
)

const (
	indexFilename = "index.json"
	sealedExt     = ".enc"

	// indexVersion is the newest index layout this package writes.
	indexVersion = 1

	// fileMode applies to every file in the store; the index holds no secrets
	// but does list which identities exist.
	fileMode os.FileMode = 0o600
	dirMode  os.FileMode = 0o700
)

// indexFile is the on-disk form of index.
type indexFile struct {
	V int `json:"v"`
	index
}

// loadIndex reads the index under dir. A store that has never been written
// to has an empty index.
func loadIndex(dir string) (*index, error) {
	b, err := os.ReadFile(filepath.Join(dir, indexFilename))
	if errors.Is(err, os.ErrNotExist) {
		return &index{}, nil
	}
	if err != nil {
		return nil, err
	}

	var f indexFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", indexFilename, err)
	}
	if f.V > indexVersion {
		return nil, fmt.Errorf("%s: unsupported version %d", indexFilename, f.V)
	}
	return &f.index, nil
}

// saveIndex replaces the index under dir.
func saveIndex(dir string, ix *index) error {
	b, err := json.MarshalIndent(indexFile{V: indexVersion, index: *ix}, "", "  ")
	if err != nil {
		return err
	}
	return replaceFile(dir, indexFilename, b)
}

// loadSealed returns the sealed secrets of fp.
func loadSealed(dir string, fp domain.Fingerprint) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(dir, sealedName(fp)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIdentityNotFound, fp)
	}
	return b, err
}

// saveSealed replaces the sealed secrets of fp.
func saveSealed(dir string, fp domain.Fingerprint, blob []byte) error {
	return replaceFile(dir, sealedName(fp), blob)
}

func sealedName(fp domain.Fingerprint) string { return string(fp) + sealedExt }

// replaceFile writes b next to dir/name and renames it into place, so a crash
// leaves either the old or the new contents. The directory is synced after
// the rename.
func replaceFile(dir, name string, b []byte) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(fileMode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		return err
	}
	return syncDir(dir)
}

// syncDir flushes the directory entry. Some platforms cannot sync a
// directory; that is not treated as a failure.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	_ = d.Sync()
	return nil
}
