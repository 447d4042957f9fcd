package solana

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/types"

	usecase "videotoken/internal/application/usecase"
)

var ErrNoWalletConnected = errors.New("solana: no wallet connected")

// Signer wraps a keypair as the capability the transaction builder and
// submitter expect. Lifetime is one issuance run; never persisted.
type Signer struct {
	account types.Account
}

var _ usecase.Signer = (*Signer)(nil)

func NewSigner(account types.Account) *Signer {
	return &Signer{account: account}
}

// PublicKey returns the base58 address of the signing authority.
func (s *Signer) PublicKey() string {
	return s.account.PublicKey.ToBase58()
}

// Account exposes the underlying keypair to the solana infra only.
func (s *Signer) Account() types.Account {
	return s.account
}

// Resolver hands out the signing capability for a run. Server mode uses the
// service-held mint authority; wallet mode adapts an externally connected
// wallet. The resolver itself performs no network I/O.
type Resolver struct {
	Authority *MintAuthority
	Wallet    *WalletSession
}

var _ usecase.SignerResolver = (*Resolver)(nil)

func NewResolver(authority *MintAuthority, wallet *WalletSession) *Resolver {
	return &Resolver{Authority: authority, Wallet: wallet}
}

func (r *Resolver) Resolve(ctx context.Context, mode usecase.SignerMode) (usecase.Signer, error) {
	_ = ctx

	switch mode {
	case usecase.SignerModeServer:
		if r == nil || r.Authority == nil {
			return nil, fmt.Errorf("mint authority is not configured")
		}
		return NewSigner(r.Authority.Account), nil

	case usecase.SignerModeWallet:
		if r == nil || r.Wallet == nil {
			return nil, ErrNoWalletConnected
		}
		acc, ok := r.Wallet.Connected()
		if !ok {
			return nil, ErrNoWalletConnected
		}
		return NewSigner(acc), nil

	default:
		return nil, fmt.Errorf("unknown signer mode %q", mode)
	}
}

// WalletSession holds the account delegated by an externally connected
// wallet. It is injected explicitly into the pipeline invocation instead of
// being read from process-global state.
type WalletSession struct {
	mu      sync.RWMutex
	account *types.Account
}

func NewWalletSession() *WalletSession {
	return &WalletSession{}
}

func (s *WalletSession) Connect(account types.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = &account
}

func (s *WalletSession) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = nil
}

func (s *WalletSession) Connected() (types.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return types.Account{}, false
	}
	return *s.account, true
}
