package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	tokendom "videotoken/internal/domain/token"
)

// IssuanceRecordRepositoryPG implements token.IssuanceRecordStore using
// PostgreSQL.
//
// Schema:
//
//	CREATE TABLE issuance_records (
//	  id         BIGSERIAL PRIMARY KEY,
//	  mint       TEXT        NOT NULL,
//	  amount     TEXT        NOT NULL,
//	  video_uri  TEXT        NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type IssuanceRecordRepositoryPG struct {
	DB *sql.DB
}

var _ tokendom.IssuanceRecordStore = (*IssuanceRecordRepositoryPG)(nil)

func NewIssuanceRecordRepositoryPG(db *sql.DB) *IssuanceRecordRepositoryPG {
	return &IssuanceRecordRepositoryPG{DB: db}
}

func (r *IssuanceRecordRepositoryPG) Create(ctx context.Context, rec tokendom.IssuanceRecord) error {
	if r == nil || r.DB == nil {
		return errors.New("db handle is nil")
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	const q = `
INSERT INTO issuance_records (
  mint,
  amount,
  video_uri,
  created_at
) VALUES ($1, $2, $3, $4)
`
	if _, err := r.DB.ExecContext(ctx, q, rec.Mint, rec.Amount, rec.VideoURI, rec.CreatedAt); err != nil {
		return fmt.Errorf("insert issuance record: %w", err)
	}
	return nil
}
