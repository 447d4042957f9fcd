package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "videotoken/internal/domain/token"
)

type stubRecordStore struct {
	err     error
	records []tokendom.IssuanceRecord
}

func (s *stubRecordStore) Create(_ context.Context, rec tokendom.IssuanceRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func postSaveToken(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/save-token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSaveTokenSuccess(t *testing.T) {
	store := &stubRecordStore{}
	h := NewSaveTokenHandler(store)

	rr := postSaveToken(t, h,
		`{"mint":"9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin","amount":"50","videoUri":"https://gateway.irys.xyz/vid"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]bool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp["success"])

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", rec.Mint)
	assert.Equal(t, "50", rec.Amount)
	assert.Equal(t, "https://gateway.irys.xyz/vid", rec.VideoURI)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestSaveTokenMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no mint", `{"amount":"50","videoUri":"https://x/y"}`},
		{"no amount", `{"mint":"abc","videoUri":"https://x/y"}`},
		{"no videoUri", `{"mint":"abc","amount":"50"}`},
		{"whitespace only", `{"mint":" ","amount":"50","videoUri":"https://x/y"}`},
		{"invalid json", `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubRecordStore{}
			rr := postSaveToken(t, NewSaveTokenHandler(store), tc.body)

			require.Equal(t, http.StatusBadRequest, rr.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Missing required fields", resp["error"])
			assert.Empty(t, store.records) // store untouched
		})
	}
}

func TestSaveTokenStoreFailure(t *testing.T) {
	store := &stubRecordStore{err: errors.New("firestore unavailable")}
	rr := postSaveToken(t, NewSaveTokenHandler(store),
		`{"mint":"abc","amount":"50","videoUri":"https://x/y"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSaveTokenMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/save-token", nil)
	rr := httptest.NewRecorder()
	NewSaveTokenHandler(&stubRecordStore{}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
