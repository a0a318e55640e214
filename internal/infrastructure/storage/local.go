package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"onboarding-service/pkg/id"
)

const (
	stagingPrefix = ".staging-"
	backupPrefix  = ".backup-"
	placeAttempts = 5
)

var ErrInvalidName = errors.New("invalid stored file name")

// LocalStorage keeps uploaded photos as flat files in one directory.
//
// Writes are two-phase: Stage copies the bytes to a hidden temp file and
// Place moves it under its final name. With noClobber set, Place never
// replaces an existing file and appends a short random suffix instead.
// Without it, a replaced file is kept aside until Commit or Rollback.
type LocalStorage struct {
	dir       string
	noClobber bool
}

func NewLocalStorage(dir string, noClobber bool) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, noClobber: noClobber}, nil
}

func (s *LocalStorage) Dir() string { return s.dir }

// Staged is an uploaded file that has not been given its final name yet.
type Staged struct {
	path   string
	Size   int64
	placed string
	backup string
}

func (s *LocalStorage) Stage(src io.Reader) (*Staged, error) {
	path := filepath.Join(s.dir, stagingPrefix+id.NewID32()+".tmp")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write upload: %w", err)
	}
	return &Staged{path: path, Size: n}, nil
}

// Place moves st to name inside the upload dir and returns the name used.
func (s *LocalStorage) Place(st *Staged, name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if !s.noClobber {
		return s.replace(st, name)
	}

	candidate := name
	for i := 0; i < placeAttempts; i++ {
		// Reserve the name first so concurrent submitters cannot both take it.
		f, err := os.OpenFile(s.path(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_ = f.Close()
			if err := os.Rename(st.path, s.path(candidate)); err != nil {
				_ = os.Remove(s.path(candidate))
				return "", fmt.Errorf("place upload %s: %w", candidate, err)
			}
			st.placed = candidate
			return candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("reserve %s: %w", candidate, err)
		}
		candidate = withSuffix(name, id.Short(8))
	}
	return "", fmt.Errorf("place upload %s: no free name after %d attempts", name, placeAttempts)
}

// replace moves st over name, keeping any previous file under a backup name.
func (s *LocalStorage) replace(st *Staged, name string) (string, error) {
	backup := filepath.Join(s.dir, backupPrefix+id.NewID32()+".tmp")
	switch err := os.Rename(s.path(name), backup); {
	case err == nil:
		st.backup = backup
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("back up %s: %w", name, err)
	}
	if err := os.Rename(st.path, s.path(name)); err != nil {
		if st.backup != "" {
			_ = os.Rename(st.backup, s.path(name))
			st.backup = ""
		}
		return "", fmt.Errorf("place upload %s: %w", name, err)
	}
	st.placed = name
	return name, nil
}

// Commit finalises a placed file by dropping the copy it replaced, if any.
func (s *LocalStorage) Commit(st *Staged) error {
	if st == nil {
		return nil
	}
	st.placed = ""
	if st.backup == "" {
		return nil
	}
	if err := removeIfExists(st.backup); err != nil {
		return err
	}
	st.backup = ""
	return nil
}

// Rollback undoes Stage and Place: the placed file is removed and a replaced
// file is put back under its name. Safe to call more than once.
func (s *LocalStorage) Rollback(st *Staged) error {
	if st == nil {
		return nil
	}
	var errs []error
	if err := removeIfExists(st.path); err != nil {
		errs = append(errs, err)
	}
	if st.placed != "" {
		if st.backup != "" {
			if err := os.Rename(st.backup, s.path(st.placed)); err != nil {
				errs = append(errs, fmt.Errorf("restore %s: %w", st.placed, err))
			} else {
				st.backup = ""
			}
		} else if err := removeIfExists(s.path(st.placed)); err != nil {
			errs = append(errs, err)
		}
		st.placed = ""
	}
	return errors.Join(errs...)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStorage) path(name string) string { return filepath.Join(s.dir, name) }

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func withSuffix(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}
