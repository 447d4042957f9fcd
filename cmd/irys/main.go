package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"videotoken/internal/infra/arweave"
)

// Debug entrypoint: checks connectivity with the Irys uploader service.
func main() {
	baseURL := os.Getenv("ARWEAVE_BASE_URL")
	if baseURL == "" {
		log.Fatal("ARWEAVE_BASE_URL is empty")
	}

	u := arweave.NewHTTPUploader(baseURL, os.Getenv("ARWEAVE_API_KEY"))

	payload := map[string]any{
		"hello": "from videotoken debug",
		"ts":    time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("marshal json: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Printf("[debug-irys] UploadJSON to %s ...", baseURL)
	uri, err := u.UploadJSON(ctx, data)
	if err != nil {
		log.Fatalf("UploadJSON failed: %v", err)
	}

	log.Printf("[debug-irys] OK uri=%s", uri)
}
