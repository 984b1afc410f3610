package gallery

import "errors"

var (
	ErrImageNotFound = errors.New("gallery image not found")
)

var (
	ErrUploadsDisabled = errors.New("gallery uploads are not configured")
	ErrInvalidImage    = errors.New("file is not a readable image")
)
