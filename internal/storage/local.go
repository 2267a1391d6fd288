package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// StaticURLPrefix is where the HTTP layer serves local storage areas from.
const StaticURLPrefix = "/static"

// localStorage implements FileStorage on a filesystem rooted at one directory.
type localStorage struct {
	fs afero.Fs
}

// NewLocalStorage creates a FileStorage rooted at root on the OS filesystem and
// makes sure both storage areas exist.
func NewLocalStorage(root string) (FileStorage, error) {
	return NewFsStorage(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// NewFsStorage creates a FileStorage on an arbitrary afero filesystem.
func NewFsStorage(fs afero.Fs) (FileStorage, error) {
	for _, area := range []string{AreaPlayers, AreaDrills} {
		if err := fs.MkdirAll(area, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create storage area %s", area)
		}
	}
	return &localStorage{fs: fs}, nil
}

func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", errors.Newf("invalid storage key %q", key)
	}
	return cleaned, nil
}

func (s *localStorage) Save(_ context.Context, key string, content io.Reader, _ int64, _ string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", key)
	}
	if err := afero.WriteReader(s.fs, key, content); err != nil {
		return errors.Wrapf(err, "write %s", key)
	}
	return nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}

func (s *localStorage) List(_ context.Context, area string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, area)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, "list %s", area)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !visible(info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *localStorage) URL(_ context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return StaticURLPrefix + "/" + key, nil
}

// HTTPFileSystem exposes one storage area for static serving. It returns false
// when the storage is not filesystem-backed.
func HTTPFileSystem(fs FileStorage, area string) (http.FileSystem, bool) {
	local, ok := fs.(*localStorage)
	if !ok {
		return nil, false
	}
	return filesOnly{afero.NewHttpFs(local.fs).Dir(area)}, true
}

// filesOnly hides directories so areas cannot be listed over HTTP.
type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil || info.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
