package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrDocumentNotFound   = errors.New("invoice document not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyText          = errors.New("document text is empty")
	ErrTextTooLarge       = errors.New("document text exceeds maximum allowed size")
	ErrUploadFailed       = errors.New("object upload to storage failed")
	ErrDownloadFailed     = errors.New("object download from storage failed")
)
