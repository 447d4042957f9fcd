package firestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	tokendom "videotoken/internal/domain/token"
)

// IssuanceRecordRepositoryFS implements token.IssuanceRecordStore using
// Firestore. One document per confirmed mint, insert-only.
type IssuanceRecordRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

const defaultIssuanceCollection = "tokens"

var _ tokendom.IssuanceRecordStore = (*IssuanceRecordRepositoryFS)(nil)

func NewIssuanceRecordRepositoryFS(client *firestore.Client, collection string) *IssuanceRecordRepositoryFS {
	c := strings.TrimSpace(collection)
	if c == "" {
		c = defaultIssuanceCollection
	}
	return &IssuanceRecordRepositoryFS{
		Client:     client,
		Collection: c,
	}
}

func (r *IssuanceRecordRepositoryFS) collection() string {
	c := strings.TrimSpace(r.Collection)
	if c == "" {
		return defaultIssuanceCollection
	}
	return c
}

func (r *IssuanceRecordRepositoryFS) Create(ctx context.Context, rec tokendom.IssuanceRecord) error {
	if r == nil || r.Client == nil {
		return errors.New("firestore client is nil")
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	// Explicit mapping so domain fields are never dropped.
	data := map[string]interface{}{
		"mint":      rec.Mint,
		"amount":    rec.Amount,
		"videoUri":  rec.VideoURI,
		"createdAt": rec.CreatedAt,
	}

	docRef, _, err := r.Client.Collection(r.collection()).Add(ctx, data)
	if err != nil {
		return fmt.Errorf("insert issuance record: %w", err)
	}

	log.Printf("[record] firestore insert OK collection=%s doc=%s mint=%s",
		r.collection(), docRef.ID, rec.Mint)
	return nil
}
