package usecase

import (
	"context"

	assetdom "videotoken/internal/domain/asset"
	tokendom "videotoken/internal/domain/token"
)

// AssetUploader is the storage-network boundary. On success the returned
// locator is publicly resolvable and content-immutable.
type AssetUploader interface {
	UploadFile(ctx context.Context, blob assetdom.Blob) (string, error)
	UploadJSON(ctx context.Context, data []byte) (string, error)
}

// SignerMode selects how the signing capability is provisioned.
type SignerMode string

const (
	SignerModeServer SignerMode = "server" // service-held mint authority
	SignerModeWallet SignerMode = "wallet" // externally connected wallet
)

// Signer is an authority able to sign transactions. Concrete implementations
// live in infra/solana; the coordinator only passes it through.
type Signer interface {
	PublicKey() string // base58
}

// SignerResolver produces the signing capability for one run.
// It performs no network I/O.
type SignerResolver interface {
	Resolve(ctx context.Context, mode SignerMode) (Signer, error)
}

// TransactionPlan is the built instruction set plus the fresh mint identity.
// Opaque to the coordinator; the submitter understands the concrete type.
type TransactionPlan interface {
	MintAddress() string // base58
}

// TransactionBuilder constructs the ordered issuance instructions.
// Pure computation apart from the randomly generated mint identity.
type TransactionBuilder interface {
	Build(spec tokendom.Spec, metadataURI string, authority Signer) (TransactionPlan, error)
}

// TransactionSubmitter dispatches the plan as one atomic transaction and
// blocks until the ledger confirms it, returning the signature.
type TransactionSubmitter interface {
	Submit(ctx context.Context, plan TransactionPlan, authority Signer) (string, error)
}

// OperatorNotifier surfaces the on-chain-confirmed / record-pending gap to a
// human. Best effort: implementations must never fail the run.
type OperatorNotifier interface {
	NotifyRecordPending(ctx context.Context, rec tokendom.IssuanceRecord, cause error)
}
