package di

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"github.com/blocto/solana-go-sdk/client"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	httpin "videotoken/internal/adapters/in/http"
	pgrepo "videotoken/internal/adapters/out/db"
	fsrepo "videotoken/internal/adapters/out/firestore"
	gcsrepo "videotoken/internal/adapters/out/gcs"
	mailout "videotoken/internal/adapters/out/mail"
	usecase "videotoken/internal/application/usecase"
	tokendom "videotoken/internal/domain/token"
	"videotoken/internal/infra/arweave"
	"videotoken/internal/infra/config"
	solanainfra "videotoken/internal/infra/solana"
)

// Container is the bundle of dependencies main.go needs. Its purpose is to
// keep main.go as thin as possible.
type Container struct {
	Config   *config.Config
	Issuance *usecase.IssuanceUsecase
	Records  tokendom.IssuanceRecordStore
	Wallet   *solanainfra.WalletSession

	db        *sql.DB
	fsClient  *firestore.Client
	gcsClient *storage.Client
}

// NewContainer reads config, connects external clients and wires the
// issuance pipeline.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := config.Load()

	c := &Container{Config: cfg}

	// ------------------------------------------------------------
	// Issuance record store: firestore (default) or postgres
	// ------------------------------------------------------------
	switch cfg.RecordStore {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("RECORD_STORE=postgres but DATABASE_URL is empty")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if pingErr := db.PingContext(ctx); pingErr != nil {
			log.Printf("[di] WARN: db ping failed: %v", pingErr)
		}
		c.db = db
		c.Records = pgrepo.NewIssuanceRecordRepositoryPG(db)

	default:
		if cfg.FirestoreProjectID == "" {
			return nil, fmt.Errorf("FIRESTORE_PROJECT_ID is empty")
		}
		var opts []option.ClientOption
		if cfg.FirestoreCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
		}
		fsClient, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("firestore.NewClient: %w", err)
		}
		c.fsClient = fsClient
		c.Records = fsrepo.NewIssuanceRecordRepositoryFS(fsClient, "")
	}

	// ------------------------------------------------------------
	// Asset storage: irys (default) or gcs for local/dev
	// ------------------------------------------------------------
	var uploader usecase.AssetUploader
	switch cfg.AssetStorage {
	case "gcs":
		gcsClient, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage.NewClient: %w", err)
		}
		c.gcsClient = gcsClient
		uploader = gcsrepo.NewAssetRepositoryGCS(gcsClient, cfg.GCSBucket)

	default:
		uploader = arweave.NewHTTPUploader(cfg.ArweaveBaseURL, cfg.ArweaveAPIKey)
	}

	// ------------------------------------------------------------
	// Signer: mint authority from Secret Manager + wallet session
	// ------------------------------------------------------------
	var authority *solanainfra.MintAuthority
	if cfg.SolanaMintKeySecret != "" {
		a, err := solanainfra.LoadMintAuthority(ctx, cfg.SolanaMintKeySecret)
		if err != nil {
			return nil, fmt.Errorf("load mint authority: %w", err)
		}
		authority = a
	} else {
		log.Printf("[di] WARN: SOLANA_MINT_KEY_SECRET not set; server-mode issuance cannot resolve a signer")
	}

	c.Wallet = solanainfra.NewWalletSession()
	resolver := solanainfra.NewResolver(authority, c.Wallet)

	// ------------------------------------------------------------
	// Pipeline
	// ------------------------------------------------------------
	rpcClient := client.NewClient(cfg.SolanaRPCEndpoint)

	c.Issuance = usecase.NewIssuanceUsecase(
		uploader,
		usecase.NewMetadataBuilder(uploader),
		resolver,
		solanainfra.NewBuilder(),
		solanainfra.NewSubmitter(rpcClient),
		c.Records,
		mailout.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.OperatorMailFrom, cfg.OperatorMailTo),
	)

	return c, nil
}

// Close releases external resources; call on shutdown.
func (c *Container) Close() {
	if c.db != nil {
		_ = c.db.Close()
	}
	if c.fsClient != nil {
		_ = c.fsClient.Close()
	}
	if c.gcsClient != nil {
		_ = c.gcsClient.Close()
	}
}

// RouterDeps adapts the container for the HTTP router.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		Issuance:      c.Issuance,
		Records:       c.Records,
		SolanaCluster: c.Config.SolanaCluster,
	}
}
