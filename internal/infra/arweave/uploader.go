package arweave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	assetdom "videotoken/internal/domain/asset"
)

// HTTPUploader talks to the Irys uploader service (Cloud Run) that fronts
// the Arweave network. Returned URIs are content-addressed: the same bytes
// resolve at the same gateway URL forever.
type HTTPUploader struct {
	client  *http.Client
	baseURL string // e.g. "https://videotoken-irys-uploader-xxxx.asia-northeast1.run.app"
	apiKey  string // optional bearer auth
}

func NewHTTPUploader(baseURL, apiKey string) *HTTPUploader {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")

	return &HTTPUploader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// UploadFile uploads one binary asset and returns its locator.
// Each call consumes upload quota; there is no retry here — a failure aborts
// the caller's run before any metadata or on-chain action happens.
func (u *HTTPUploader) UploadFile(ctx context.Context, blob assetdom.Blob) (string, error) {
	if len(blob.Bytes) == 0 {
		return "", fmt.Errorf("asset payload is empty")
	}

	headers := map[string]string{
		"Content-Type": blob.MediaType,
	}
	if name := strings.TrimSpace(blob.OriginalName); name != "" {
		headers["X-File-Name"] = name
	}

	log.Printf("[arweave] UploadFile start name=%s type=%s len=%d",
		blob.OriginalName, blob.MediaType, len(blob.Bytes))
	return u.post(ctx, "/upload", blob.Bytes, headers)
}

// UploadJSON uploads a JSON document (the metadata) and returns its locator.
// The caller passes an already-encoded payload.
func (u *HTTPUploader) UploadJSON(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("json payload is empty")
	}

	log.Printf("[arweave] UploadJSON start len=%d", len(data))
	return u.post(ctx, "/upload/json", data, map[string]string{
		"Content-Type": "application/json",
	})
}

func (u *HTTPUploader) post(ctx context.Context, path string, body []byte, headers map[string]string) (string, error) {
	if u == nil || u.baseURL == "" {
		return "", fmt.Errorf("baseURL is empty; uploader endpoint not configured")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		u.baseURL+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if u.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+u.apiKey)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[arweave] http request FAILED path=%s err=%v", path, err)
		return "", fmt.Errorf("upload to arweave: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[arweave] upload FAILED path=%s status=%d body=%s",
			path, resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("upload failed: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var res struct {
		URI string `json:"uri"` // e.g. "https://gateway.irys.xyz/xxxx"
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if res.URI == "" {
		return "", fmt.Errorf("upload response has empty uri")
	}

	log.Printf("[arweave] upload OK path=%s uri=%s", path, res.URI)
	return res.URI, nil
}
