// Package storage is the binary object boundary for listing photos.
// Objects live under "{ownerID}/{propertyID}/{filename}"; the owner
// segment is the write grant: an actor may only write below their own
// identity. Thumb and medium paths are derived names reserved for the
// external resizing pipeline.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/policy"
)

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// ObjectPath builds the namespaced path for an upload. The filename is
// reduced to its base name so a crafted name cannot escape the
// property directory.
func ObjectPath(ownerID, propertyID, filename string) (string, error) {
	filename = filepath.Base(filename)
	if ownerID == "" || propertyID == "" || filename == "" || filename == "." || filename == ".." {
		return "", apperr.Validation("invalid photo path")
	}
	return fmt.Sprintf("%s/%s/%s", ownerID, propertyID, filename), nil
}

// OwnerOf returns the identity segment of an object path.
func OwnerOf(path string) string {
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return ""
}

// CanWrite grants write access to a path only when its owner segment
// equals the actor's identity.
func CanWrite(a policy.Actor, path string) error {
	if a.IsAnonymous() || OwnerOf(path) != a.ID {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// DerivedPaths returns the thumb and medium names the resizing
// pipeline will write next to the original. Only the names are
// recorded here; the files appear later.
func DerivedPaths(path string) (thumb, med string) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "_thumb" + ext, base + "_med" + ext
}

// Save writes the object after the ownership check and returns its
// path.
func (s *Store) Save(a policy.Actor, path string, r io.Reader) (string, error) {
	if err := CanWrite(a, path); err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", err
	}
	return path, nil
}

// Remove deletes the object and any derived files. Missing files are
// not an error; the resizing pipeline may never have produced them.
func (s *Store) Remove(path string) error {
	thumb, med := DerivedPaths(path)
	for _, p := range []string{path, thumb, med} {
		full := filepath.Join(s.root, filepath.FromSlash(p))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
