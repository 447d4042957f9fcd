package asset

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty                = errors.New("asset: empty payload")
	ErrUnsupportedMediaType = errors.New("asset: unsupported media type")
)

// Blob is a user-supplied binary asset. It is held only for the duration of
// one issuance run and never persisted locally.
type Blob struct {
	Bytes        []byte
	MediaType    string
	OriginalName string
}

var imageMediaTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

var videoMediaTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
}

// ValidateImage checks the blob against the image allow-list.
func (b Blob) ValidateImage() error {
	return b.validate(imageMediaTypes)
}

// ValidateVideo checks the blob against the video allow-list.
func (b Blob) ValidateVideo() error {
	return b.validate(videoMediaTypes)
}

func (b Blob) validate(allowed map[string]bool) error {
	if len(b.Bytes) == 0 {
		return ErrEmpty
	}
	if !allowed[b.MediaType] {
		return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, b.MediaType)
	}
	return nil
}
