package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tokendom "videotoken/internal/domain/token"
)

// MetadataBuilder assembles the token metadata document and uploads it via
// the storage client's JSON variant, returning the metadata locator.
type MetadataBuilder struct {
	uploader AssetUploader
}

func NewMetadataBuilder(uploader AssetUploader) *MetadataBuilder {
	return &MetadataBuilder{uploader: uploader}
}

// metadataDocument is the canonical JSON shape referenced by the mint.
type metadataDocument struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Video       string `json:"video,omitempty"`
}

// Assemble builds and uploads the metadata document. Every locator passed in
// must come from an already-confirmed upload; an empty image locator is a
// programming error and is rejected before anything is uploaded.
func (b *MetadataBuilder) Assemble(
	ctx context.Context,
	spec tokendom.Spec,
	imageURI string,
	videoURI string,
) (string, error) {
	if b == nil || b.uploader == nil {
		return "", fmt.Errorf("metadata builder is not initialized (missing uploader)")
	}

	imageURI = strings.TrimSpace(imageURI)
	if imageURI == "" {
		return "", fmt.Errorf("image locator is empty")
	}

	doc := metadataDocument{
		Name:        strings.TrimSpace(spec.Name),
		Symbol:      strings.TrimSpace(spec.Symbol),
		Description: strings.TrimSpace(spec.Description),
		Image:       imageURI,
		Video:       strings.TrimSpace(videoURI),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	uri, err := b.uploader.UploadJSON(ctx, data)
	if err != nil {
		return "", fmt.Errorf("upload metadata: %w", err)
	}
	return uri, nil
}
