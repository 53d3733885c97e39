package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"food-delivery/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrInvalidImage  = errors.New("only jpeg, png, gif and webp images are allowed")
	ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore keeps profile images on an afero filesystem and hands out
// references under the public path.
type ImageStore struct {
	fs         afero.Fs
	dir        string
	publicPath string
	maxBytes   int64
}

func NewImageStore(fsys afero.Fs, config utils.UploadConfig) (*ImageStore, error) {
	if err := fsys.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", config.Dir, err)
	}

	return &ImageStore{
		fs:         fsys,
		dir:        config.Dir,
		publicPath: "/" + strings.Trim(config.PublicPath, "/"),
		maxBytes:   config.MaxBytes,
	}, nil
}

// Save stores the image read from r and returns its public reference.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	ext, ok := allowedImageTypes[http.DetectContentType(data)]
	if !ok {
		return "", ErrInvalidImage
	}

	name := uuid.NewString() + ext
	if err := afero.WriteReader(s.fs, path.Join(s.dir, name), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}

	return s.publicPath + "/" + name, nil
}

// Remove deletes an image previously returned by Save. References outside
// the store and missing files are ignored.
func (s *ImageStore) Remove(ref string) error {
	prefix := s.publicPath + "/"
	if !strings.HasPrefix(ref, prefix) {
		return nil
	}

	name := path.Base(strings.TrimPrefix(ref, prefix))
	if name == "." || name == "/" || name == ".." {
		return nil
	}

	if err := s.fs.Remove(path.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}

func (s *ImageStore) PublicPath() string {
	return s.publicPath
}

// Handler serves stored images; mount it under PublicPath.
func (s *ImageStore) Handler() http.Handler {
	return http.StripPrefix(s.publicPath, http.FileServer(afero.NewHttpFs(s.fs).Dir(s.dir)))
}
