package token

import (
	"context"
	"strings"
	"time"
)

// IssuanceRecord links a confirmed mint to the uploaded video.
// Created exactly once per successful pipeline run; immutable afterwards.
type IssuanceRecord struct {
	Mint      string    // base58 mint address
	Amount    string    // human-readable supply, as submitted
	VideoURI  string    // locator of the uploaded video
	CreatedAt time.Time
}

// Validate checks that all required fields are present.
func (r IssuanceRecord) Validate() error {
	if strings.TrimSpace(r.Mint) == "" {
		return &ValidationError{Field: "mint", Reason: "required"}
	}
	if strings.TrimSpace(r.Amount) == "" {
		return &ValidationError{Field: "amount", Reason: "required"}
	}
	if strings.TrimSpace(r.VideoURI) == "" {
		return &ValidationError{Field: "videoUri", Reason: "required"}
	}
	return nil
}

// IssuanceRecordStore persists issuance records.
// Insert-only in this flow; there is no update or delete.
type IssuanceRecordStore interface {
	Create(ctx context.Context, rec IssuanceRecord) error
}
