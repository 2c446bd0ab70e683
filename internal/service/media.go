package service

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"pixelgram/internal/model"
)

// MediaService normalizes image uploads and stores them on the local
// filesystem under the upload directory. Stored files are served
// statically from /uploads.
type MediaService struct {
	uploadDir string
}

func NewMediaService(uploadDir string) (*MediaService, error) {
	for _, folder := range []string{model.PostImageFolder, model.AvatarImageFolder, model.StoryImageFolder} {
		if err := os.MkdirAll(filepath.Join(uploadDir, folder), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir: %w", err)
		}
	}
	return &MediaService{uploadDir: uploadDir}, nil
}

// SavePostImage validates the upload, fits it inside 1080x1080 and writes
// it as JPEG. Returns the public URL path.
func (s *MediaService) SavePostImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := readAndValidateImage(file, header, model.MaxPostImageSize)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > model.PostImageMaxSide || bounds.Dy() > model.PostImageMaxSide {
		img = imaging.Fit(img, model.PostImageMaxSide, model.PostImageMaxSide, imaging.Lanczos)
	}

	return s.saveJPEG(img, model.PostImageFolder, model.PostImageQuality)
}

// SaveAvatar validates the upload, center-crops to a 300x300 square and
// writes it as JPEG.
func (s *MediaService) SaveAvatar(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := readAndValidateImage(file, header, model.MaxAvatarSize)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = imaging.Fill(img, model.AvatarSide, model.AvatarSide, imaging.Center, imaging.Lanczos)

	return s.saveJPEG(img, model.AvatarImageFolder, model.AvatarQuality)
}

// SaveStoryImage stores a story frame with the same treatment as posts.
func (s *MediaService) SaveStoryImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := readAndValidateImage(file, header, model.MaxPostImageSize)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > model.PostImageMaxSide || bounds.Dy() > model.PostImageMaxSide {
		img = imaging.Fit(img, model.PostImageMaxSide, model.PostImageMaxSide, imaging.Lanczos)
	}

	return s.saveJPEG(img, model.StoryImageFolder, model.PostImageQuality)
}

// Delete removes a stored image by its public URL path. Unknown or
// default paths are ignored.
func (s *MediaService) Delete(imageURL string) error {
	rel, ok := strings.CutPrefix(imageURL, "/uploads/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.uploadDir, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (s *MediaService) saveJPEG(img image.Image, folder string, quality int) (string, error) {
	name := newImageName()
	path := filepath.Join(s.uploadDir, folder, name)

	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "/uploads/" + folder + "/" + name, nil
}

func readAndValidateImage(file multipart.File, header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if header.Size > maxSize {
		return nil, model.ErrFileTooLarge
	}

	limited := io.LimitReader(file, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, model.ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" && len(data) > 0 {
		n := len(data)
		if n > 512 {
			n = 512
		}
		contentType = http.DetectContentType(data[:n])
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if !model.IsAllowedImageType(contentType) {
		return nil, model.ErrInvalidImageType
	}

	return data, nil
}

func newImageName() string {
	return uuid.NewString() + ".jpg"
}
