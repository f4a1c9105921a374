package utils

import (
	"bytes"
	"crypto/rand"
	"errors"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/oklog/ulid/v2"
	_ "golang.org/x/image/webp"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadFileBytes(file multipart.File) ([]byte, error)
	CheckImageDecodable(imageData []byte) error
}

type utils struct {
	maxFileSize  int64
	minDimension int
	maxDimension int
}

var (
	ErrNoFile            = errors.New("no file uploaded")
	ErrEmptyFilename     = errors.New("empty filename")
	ErrFileTooLarge      = errors.New("file size exceeds limit")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNotAnImage        = errors.New("uploaded file is not an image")
	ErrUndecodable       = errors.New("cannot decode image")
	ErrBadDimensions     = errors.New("image dimensions out of accepted range")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func New() IUtils {
	return &utils{
		maxFileSize:  16 * 1024 * 1024,
		minDimension: 8,
		maxDimension: 10000,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Filename == "" {
		return ErrEmptyFilename
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return ErrUnsupportedFormat
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}

	return nil
}

func (u *utils) ReadFileBytes(file multipart.File) ([]byte, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return fileBytes, nil
}

// CheckImageDecodable verifies the payload decodes as JPEG, PNG or WEBP and
// that its dimensions are inside the accepted range, without decoding the
// full pixel data.
func (u *utils) CheckImageDecodable(imageData []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return ErrUndecodable
	}

	if cfg.Width < u.minDimension || cfg.Height < u.minDimension {
		return ErrBadDimensions
	}

	if cfg.Width > u.maxDimension || cfg.Height > u.maxDimension {
		return ErrBadDimensions
	}

	return nil
}
