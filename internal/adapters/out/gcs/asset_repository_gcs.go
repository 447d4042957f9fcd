package gcs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"

	assetdom "videotoken/internal/domain/asset"
)

// AssetRepositoryGCS implements usecase.AssetUploader against a GCS bucket.
// Used for local/dev issuance when the Irys uploader is not reachable.
// Object names are derived from the content hash, so the returned URL is
// stable for identical bytes — the same content-addressing contract the
// Arweave path gives us.
type AssetRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

const defaultAssetBucket = "videotoken_assets"

func NewAssetRepositoryGCS(client *storage.Client, bucket string) *AssetRepositoryGCS {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = defaultAssetBucket
	}
	return &AssetRepositoryGCS{
		Client: client,
		Bucket: b,
	}
}

func (r *AssetRepositoryGCS) bucket() string {
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return defaultAssetBucket
	}
	return b
}

func (r *AssetRepositoryGCS) UploadFile(ctx context.Context, blob assetdom.Blob) (string, error) {
	if len(blob.Bytes) == 0 {
		return "", fmt.Errorf("asset payload is empty")
	}

	meta := map[string]string{}
	if name := strings.TrimSpace(blob.OriginalName); name != "" {
		meta["originalName"] = name
	}

	name := objectName(blob.Bytes, extForMediaType(blob.MediaType))
	return r.write(ctx, name, blob.Bytes, blob.MediaType, meta)
}

func (r *AssetRepositoryGCS) UploadJSON(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("json payload is empty")
	}

	name := objectName(data, ".json")
	return r.write(ctx, name, data, "application/json", nil)
}

func (r *AssetRepositoryGCS) write(
	ctx context.Context,
	object string,
	data []byte,
	contentType string,
	meta map[string]string,
) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("storage client is nil")
	}

	bucket := r.bucket()
	w := r.Client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if len(meta) > 0 {
		w.Metadata = meta
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", object, err)
	}

	url := publicURL(bucket, object)
	log.Printf("[gcs] upload OK bucket=%s object=%s", bucket, object)
	return url, nil
}

func objectName(data []byte, ext string) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + ext
}

func extForMediaType(mediaType string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/ogg":
		return ".ogv"
	case "application/json":
		return ".json"
	default:
		return ".bin"
	}
}

func publicURL(bucket, object string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + object
}
