package handlers

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	usecase "videotoken/internal/application/usecase"
	assetdom "videotoken/internal/domain/asset"
	tokendom "videotoken/internal/domain/token"
)

// IssuanceRunner is what this handler needs from the application layer.
type IssuanceRunner interface {
	Issue(ctx context.Context, in usecase.IssuanceInput) (*usecase.IssuanceResult, error)
}

// CreateTokenHandler serves POST /create-token: the multipart issuance form
// (name, symbol, description, decimals, supply + image and video files).
type CreateTokenHandler struct {
	uc      IssuanceRunner
	cluster string
}

// Multipart memory budget; larger file parts spill to temp files.
const maxFormMemory = 32 << 20

func NewCreateTokenHandler(uc IssuanceRunner, cluster string) http.Handler {
	return &CreateTokenHandler{uc: uc, cluster: cluster}
}

func (h *CreateTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusInternalServerError, "invalid multipart form: "+err.Error())
		return
	}

	decimals, err := strconv.Atoi(strings.TrimSpace(r.FormValue("decimals")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "decimals must be an integer")
		return
	}

	spec := tokendom.Spec{
		Name:        r.FormValue("name"),
		Symbol:      r.FormValue("symbol"),
		Description: r.FormValue("description"),
		Decimals:    decimals,
		Supply:      r.FormValue("supply"),
	}

	image, err := readFilePart(r, "image")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "image: "+err.Error())
		return
	}
	video, err := readFilePart(r, "video")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "video: "+err.Error())
		return
	}

	// Once building begins there is no cancellation: a client disconnect
	// must not abort an in-flight ledger submission.
	ctx := context.WithoutCancel(r.Context())

	res, err := h.uc.Issue(ctx, usecase.IssuanceInput{
		Spec:  spec,
		Image: image,
		Video: video,
		Mode:  usecase.SignerModeServer,
	})
	if err != nil {
		log.Printf("[issuance] create-token failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"txUrl":   explorerTxURL(h.cluster, res.Signature),
		"mintUrl": explorerMintURL(h.cluster, res.MintAddress),
	})
}

// readFilePart loads one uploaded file into an asset blob. The media type
// comes from the part header, falling back to content sniffing.
func readFilePart(r *http.Request, field string) (assetdom.Blob, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return assetdom.Blob{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return assetdom.Blob{}, err
	}

	return assetdom.Blob{
		Bytes:        data,
		MediaType:    partMediaType(header, data),
		OriginalName: header.Filename,
	}, nil
}

func partMediaType(header *multipart.FileHeader, data []byte) string {
	if ct := strings.TrimSpace(header.Header.Get("Content-Type")); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return http.DetectContentType(data)
}
