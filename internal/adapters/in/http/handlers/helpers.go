package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// Explorer links, matching what the frontend shows the end user.
// The mainnet explorer takes no cluster query.

func explorerTxURL(cluster, signature string) string {
	return explorerURL(cluster, "tx", signature)
}

func explorerMintURL(cluster, mint string) string {
	return explorerURL(cluster, "address", mint)
}

func explorerURL(cluster, kind, id string) string {
	u := fmt.Sprintf("https://explorer.solana.com/%s/%s", kind, id)
	if cluster != "" && cluster != "mainnet-beta" {
		u += "?cluster=" + cluster
	}
	return u
}
