package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssuanceRecordValidate(t *testing.T) {
	rec := IssuanceRecord{
		Mint:      "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		Amount:    "50",
		VideoURI:  "https://gateway.irys.xyz/abc",
		CreatedAt: time.Now().UTC(),
	}
	assert.NoError(t, rec.Validate())

	missing := rec
	missing.Mint = " "
	assert.Error(t, missing.Validate())

	missing = rec
	missing.Amount = ""
	assert.Error(t, missing.Validate())

	missing = rec
	missing.VideoURI = ""
	assert.Error(t, missing.Validate())
}
