package model

import "errors"

// Upload constraints
const (
	MaxAvatarSize = 5 * 1024 * 1024 // 5MB
	AvatarSide    = 300
	AvatarQuality = 80

	PostImageFolder   = "posts"
	AvatarImageFolder = "avatars"
	StoryImageFolder  = "stories"
)

// allowedImageTypes are the content types accepted for uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// IsAllowedImageType reports whether the content type may be uploaded.
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}

var (
	// ErrFileTooLarge is returned when an upload exceeds the size cap.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidImageType is returned for non-image uploads.
	ErrInvalidImageType = errors.New("only image files are allowed")
)
