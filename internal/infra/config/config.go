package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port string

	// Issuance record store: "firestore" (default) or "postgres"
	RecordStore              string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	DatabaseURL              string

	// Asset storage: "irys" (default) or "gcs" for local/dev
	AssetStorage   string
	ArweaveBaseURL string
	ArweaveAPIKey  string
	GCSBucket      string
	GCPCreds       string

	// Solana
	SolanaRPCEndpoint   string
	SolanaCluster       string
	SolanaMintKeySecret string // Secret Manager version path for the mint authority

	// Operator notification (optional)
	SendGridAPIKey   string
	OperatorMailFrom string
	OperatorMailTo   string

	CORSAllowOrigin string
}

// Load reads the environment and returns the Config.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		RecordStore:              getenvDefault("RECORD_STORE", "firestore"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),

		AssetStorage:   getenvDefault("ASSET_STORAGE", "irys"),
		ArweaveBaseURL: os.Getenv("ARWEAVE_BASE_URL"),
		ArweaveAPIKey:  os.Getenv("ARWEAVE_API_KEY"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		GCPCreds:       os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		SolanaRPCEndpoint:   getenvDefault("SOLANA_RPC_ENDPOINT", "https://api.devnet.solana.com"),
		SolanaCluster:       getenvDefault("SOLANA_CLUSTER", "devnet"),
		SolanaMintKeySecret: os.Getenv("SOLANA_MINT_KEY_SECRET"),

		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		OperatorMailFrom: os.Getenv("OPERATOR_MAIL_FROM"),
		OperatorMailTo:   os.Getenv("OPERATOR_MAIL_TO"),

		CORSAllowOrigin: getenvDefault("CORS_ALLOW_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
