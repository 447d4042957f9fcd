package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
)

// MintAuthority is the single service-held wallet allowed to pay fees and
// create mints in the server flow. The secret never appears as a literal;
// it is fetched from Secret Manager at process start.
type MintAuthority struct {
	Account types.Account
}

// LoadMintAuthority restores the mint authority keypair from the given
// Secret Manager secret version, e.g.
//
//	"projects/<PROJECT_ID>/secrets/<SECRET_ID>/versions/latest"
func LoadMintAuthority(ctx context.Context, secretName string) (*MintAuthority, error) {
	secretName = strings.TrimSpace(secretName)
	if secretName == "" {
		return nil, fmt.Errorf("mint key secret name is empty")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return nil, fmt.Errorf("AccessSecretVersion: %w", err)
	}

	acc, err := ParseKeypair(resp.Payload.Data)
	if err != nil {
		return nil, err
	}

	log.Printf(
		"[solana] loaded mint authority: secret=%s pubkey=%s",
		secretName,
		acc.PublicKey.ToBase58(),
	)

	return &MintAuthority{Account: acc}, nil
}

// ParseKeypair accepts the keypair formats seen in the wild:
// - solana-keygen JSON array ([int,...], 64 entries)
// - a base58-encoded 64-byte secret key
func ParseKeypair(data []byte) (types.Account, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err == nil {
		if len(ints) != ed25519.PrivateKeySize {
			return types.Account{}, fmt.Errorf(
				"unexpected secret key length: got %d, want %d",
				len(ints), ed25519.PrivateKeySize,
			)
		}
		b := make([]byte, len(ints))
		for i, v := range ints {
			b[i] = byte(v)
		}
		acc, err := types.AccountFromBytes(b)
		if err != nil {
			return types.Account{}, fmt.Errorf("AccountFromBytes: %w", err)
		}
		return acc, nil
	}

	s := strings.TrimSpace(string(data))
	if s == "" {
		return types.Account{}, fmt.Errorf("keypair secret is empty")
	}
	acc, err := types.AccountFromBase58(s)
	if err != nil {
		return types.Account{}, fmt.Errorf("AccountFromBase58: %w", err)
	}
	return acc, nil
}
