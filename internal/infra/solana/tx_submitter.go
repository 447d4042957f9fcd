package solana

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"

	usecase "videotoken/internal/application/usecase"
)

var ErrConfirmationTimeout = errors.New("solana: confirmation timeout")

const (
	defaultConfirmTimeout = 60 * time.Second
	defaultPollInterval   = 2 * time.Second
)

// rpcAPI is the slice of the RPC client the submitter needs.
// *client.Client satisfies it.
type rpcAPI interface {
	GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
	GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	GetSignatureStatus(ctx context.Context, sig string) (*rpc.SignatureStatus, error)
}

// Submitter packages a plan into one atomic transaction, dispatches it and
// blocks until the ledger reports the configured commitment. Atomicity is
// the ledger's; this component only guarantees it never reports success on
// partial application.
type Submitter struct {
	client         rpcAPI
	commitment     rpc.Commitment
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

var _ usecase.TransactionSubmitter = (*Submitter)(nil)

func NewSubmitter(c *client.Client) *Submitter {
	return &Submitter{
		client:         c,
		commitment:     rpc.CommitmentConfirmed,
		confirmTimeout: defaultConfirmTimeout,
		pollInterval:   defaultPollInterval,
	}
}

func (s *Submitter) Submit(
	ctx context.Context,
	plan usecase.TransactionPlan,
	authority usecase.Signer,
) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("submitter is not initialized (missing rpc client)")
	}
	p, ok := plan.(*TransactionPlan)
	if !ok || p == nil {
		return "", fmt.Errorf("unsupported transaction plan %T", plan)
	}
	signer, ok := authority.(*Signer)
	if !ok || signer == nil {
		return "", fmt.Errorf("unsupported signer capability %T", authority)
	}

	mintRent, err := s.client.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return "", fmt.Errorf("GetMinimumBalanceForRentExemption: %w", err)
	}

	recent, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("GetLatestBlockhash: %w", err)
	}

	// The mint identity self-signs its own creation; the authority signs as
	// fee payer and owner.
	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{p.Mint, signer.Account()},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        signer.Account().PublicKey,
			RecentBlockhash: recent.Blockhash,
			Instructions:    p.Instructions(mintRent),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("NewTransaction: %w", err)
	}

	sig, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("SendTransaction: %w", err)
	}

	log.Printf("[solana] submitted mint=%s signature=%s", p.MintAddress(), sig)

	if err := s.awaitConfirmation(ctx, sig); err != nil {
		return "", err
	}
	return sig, nil
}

// awaitConfirmation polls the signature status until the configured
// commitment is observed or the bounded wait elapses.
func (s *Submitter) awaitConfirmation(ctx context.Context, sig string) error {
	deadline := time.Now().Add(s.confirmTimeout)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		st, err := s.client.GetSignatureStatus(ctx, sig)
		switch {
		case err != nil:
			// transient RPC failure; keep polling until the deadline
			log.Printf("[solana] signature status poll failed signature=%s: %v", sig, err)
		case st != nil && st.Err != nil:
			return fmt.Errorf("transaction failed on chain: %v", st.Err)
		case st != nil && st.ConfirmationStatus != nil &&
			commitmentReached(*st.ConfirmationStatus, s.commitment):
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: signature=%s commitment=%s", ErrConfirmationTimeout, sig, s.commitment)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func commitmentReached(got, want rpc.Commitment) bool {
	rank := map[rpc.Commitment]int{
		rpc.CommitmentProcessed: 0,
		rpc.CommitmentConfirmed: 1,
		rpc.CommitmentFinalized: 2,
	}
	return rank[got] >= rank[want]
}
