package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	tokendom "videotoken/internal/domain/token"
)

// SaveTokenHandler serves POST /save-token: the record store's own endpoint,
// used by external callers that ran the wallet-mode pipeline themselves and
// only need the issuance record persisted.
type SaveTokenHandler struct {
	store tokendom.IssuanceRecordStore
}

type saveTokenRequest struct {
	Mint     string `json:"mint"`
	Amount   string `json:"amount"`
	VideoURI string `json:"videoUri"`
}

func NewSaveTokenHandler(store tokendom.IssuanceRecordStore) http.Handler {
	return &SaveTokenHandler{store: store}
}

func (h *SaveTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req saveTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req.Mint = strings.TrimSpace(req.Mint)
	req.Amount = strings.TrimSpace(req.Amount)
	req.VideoURI = strings.TrimSpace(req.VideoURI)
	if req.Mint == "" || req.Amount == "" || req.VideoURI == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	rec := tokendom.IssuanceRecord{
		Mint:      req.Mint,
		Amount:    req.Amount,
		VideoURI:  req.VideoURI,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.Create(r.Context(), rec); err != nil {
		log.Printf("[record] save-token insert failed mint=%s: %v", rec.Mint, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
