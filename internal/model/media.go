package model

import "errors"

const (
	MaxUploadSizeBytes = 10 * 1024 * 1024 // per object
	MediaFolder        = "media"
	PresignTTLSeconds  = 600
)

// Supported content types for presigned uploads.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
	ContentTypeMP4  = "video/mp4"
)

var allowedUploadTypes = map[string]string{
	ContentTypeJPEG: ".jpg",
	ContentTypePNG:  ".png",
	ContentTypeGIF:  ".gif",
	ContentTypeWebP: ".webp",
	ContentTypeMP4:  ".mp4",
}

// UploadExtension returns the object-key extension for a content type and
// whether the type is allowed at all.
func UploadExtension(contentType string) (string, bool) {
	ext, ok := allowedUploadTypes[contentType]
	return ext, ok
}

// PresignUploadRequest asks for one presigned PUT URL. The client uploads
// bytes directly to UploadURL and then references PublicURL when creating
// a post or story; media bytes never pass through this server.
type PresignUploadRequest struct {
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
}

// PresignUploadResponse returns the upload target and the eventual public URL.
type PresignUploadResponse struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// PresignUploadBatchRequest asks for several presigned URLs in one call.
type PresignUploadBatchRequest struct {
	Items []PresignUploadRequest `json:"items"`
}

// PresignUploadBatchResponse returns one entry per requested item.
type PresignUploadBatchResponse struct {
	Items []PresignUploadResponse `json:"items"`
}

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrBadContentType  = errors.New("unsupported content type")
	ErrTooManyPresigns = errors.New("too many items in batch")
)
