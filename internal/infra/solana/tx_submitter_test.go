package solana

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRPC struct {
	rentErr      error
	blockhashErr error
	sendErr      error
	statusErr    error
	status       *rpc.SignatureStatus

	sentTxs []types.Transaction
	polls   int
}

func (f *fakeRPC) GetMinimumBalanceForRentExemption(_ context.Context, _ uint64) (uint64, error) {
	if f.rentErr != nil {
		return 0, f.rentErr
	}
	return 1_461_600, nil
}

func (f *fakeRPC) GetLatestBlockhash(_ context.Context) (rpc.GetLatestBlockhashValue, error) {
	if f.blockhashErr != nil {
		return rpc.GetLatestBlockhashValue{}, f.blockhashErr
	}
	return rpc.GetLatestBlockhashValue{
		Blockhash: types.NewAccount().PublicKey.ToBase58(),
	}, nil
}

func (f *fakeRPC) SendTransaction(_ context.Context, tx types.Transaction) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sentTxs = append(f.sentTxs, tx)
	return "sig-test", nil
}

func (f *fakeRPC) GetSignatureStatus(_ context.Context, _ string) (*rpc.SignatureStatus, error) {
	f.polls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.status, nil
}

func confirmedStatus() *rpc.SignatureStatus {
	c := rpc.CommitmentConfirmed
	return &rpc.SignatureStatus{ConfirmationStatus: &c}
}

func newTestSubmitter(f *fakeRPC) *Submitter {
	return &Submitter{
		client:         f,
		commitment:     rpc.CommitmentConfirmed,
		confirmTimeout: 50 * time.Millisecond,
		pollInterval:   time.Millisecond,
	}
}

func TestSubmitConfirmed(t *testing.T) {
	f := &fakeRPC{status: confirmedStatus()}
	s := newTestSubmitter(f)

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	sig, err := s.Submit(context.Background(), plan, signer)
	require.NoError(t, err)
	assert.Equal(t, "sig-test", sig)
	require.Len(t, f.sentTxs, 1)

	// transaction carries both required signatures: mint identity + authority
	assert.Len(t, f.sentTxs[0].Signatures, 2)
}

func TestSubmitFinalizedAlsoSatisfiesConfirmed(t *testing.T) {
	c := rpc.CommitmentFinalized
	f := &fakeRPC{status: &rpc.SignatureStatus{ConfirmationStatus: &c}}
	s := newTestSubmitter(f)

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), plan, signer)
	require.NoError(t, err)
}

func TestSubmitOnChainFailure(t *testing.T) {
	c := rpc.CommitmentConfirmed
	f := &fakeRPC{status: &rpc.SignatureStatus{
		ConfirmationStatus: &c,
		Err:                map[string]any{"InstructionError": []any{}},
	}}
	s := newTestSubmitter(f)

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), plan, signer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed on chain")
}

func TestSubmitConfirmationTimeout(t *testing.T) {
	// processed never reaches confirmed commitment
	c := rpc.CommitmentProcessed
	f := &fakeRPC{status: &rpc.SignatureStatus{ConfirmationStatus: &c}}
	s := newTestSubmitter(f)

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), plan, signer)
	assert.ErrorIs(t, err, ErrConfirmationTimeout)
	assert.Greater(t, f.polls, 1)
}

func TestSubmitSurvivesTransientStatusErrors(t *testing.T) {
	// status polling errors are tolerated until the deadline
	f := &fakeRPC{statusErr: errors.New("rpc hiccup")}
	s := newTestSubmitter(f)

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), plan, signer)
	assert.ErrorIs(t, err, ErrConfirmationTimeout)
}

func TestSubmitSendFailure(t *testing.T) {
	f := &fakeRPC{sendErr: errors.New("blockhash expired")}
	s := newTestSubmitter(f)

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), plan, signer)
	require.Error(t, err)
	assert.Zero(t, f.polls)
}

func TestSubmitRejectsForeignPlan(t *testing.T) {
	s := newTestSubmitter(&fakeRPC{})
	signer := NewSigner(types.NewAccount())

	_, err := s.Submit(context.Background(), nil, signer)
	require.Error(t, err)
}

func TestCommitmentRanking(t *testing.T) {
	assert.True(t, commitmentReached(rpc.CommitmentConfirmed, rpc.CommitmentConfirmed))
	assert.True(t, commitmentReached(rpc.CommitmentFinalized, rpc.CommitmentConfirmed))
	assert.False(t, commitmentReached(rpc.CommitmentProcessed, rpc.CommitmentConfirmed))
}
