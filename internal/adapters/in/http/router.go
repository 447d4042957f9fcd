package httpin

import (
	"net/http"

	"videotoken/internal/adapters/in/http/handlers"

	tokendom "videotoken/internal/domain/token"
)

// RouterDeps collects the dependencies injected from main.go.
type RouterDeps struct {
	Issuance handlers.IssuanceRunner
	Records  tokendom.IssuanceRecordStore

	// Explorer link cluster, e.g. "devnet"
	SolanaCluster string
}

// NewRouter wires the app routes.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/create-token", handlers.NewCreateTokenHandler(deps.Issuance, deps.SolanaCluster))
	mux.Handle("/save-token", handlers.NewSaveTokenHandler(deps.Records))

	return mux
}
