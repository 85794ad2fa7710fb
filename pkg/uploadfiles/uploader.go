package uploadfiles

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"account_service/pkg/storage"
)

const maxFileSize = 3 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Uploader stores profile images in object storage and hands back public URLs.
type Uploader struct {
	store storage.Storage
}

func NewUploader(store storage.Storage) *Uploader {
	return &Uploader{store: store}
}

func (u *Uploader) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	if header.Size > maxFileSize {
		return "", fmt.Errorf("file size exceeds 3MB limit")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	objectKey := fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), ext)

	publicURL, err := u.store.Upload(ctx, objectKey, file, header.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return publicURL, nil
}

// Delete removes a previously uploaded file given its public URL.
func (u *Uploader) Delete(ctx context.Context, fileURL string) error {
	parts := strings.Split(fileURL, "/")
	if len(parts) < 2 {
		return fmt.Errorf("invalid file URL")
	}

	key := strings.Join(parts[len(parts)-2:], "/")

	if err := u.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
