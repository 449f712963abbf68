package service

import (
	"context"
	"io"
)

// FileUploadService stores taxonomy images in blob storage.
type FileUploadService interface {
	// UploadFile stores the object and returns its durable public URL.
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
