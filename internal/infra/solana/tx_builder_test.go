package solana

import (
	"encoding/binary"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "videotoken/internal/domain/token"
)

func testSpec() tokendom.Spec {
	return tokendom.Spec{
		Name:        "Demo",
		Symbol:      "DMO",
		Description: "a demo token",
		Decimals:    2,
		Supply:      "50",
	}
}

func buildPlan(t *testing.T) *TransactionPlan {
	t.Helper()

	signer := NewSigner(types.NewAccount())
	plan, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", signer)
	require.NoError(t, err)

	p, ok := plan.(*TransactionPlan)
	require.True(t, ok)
	return p
}

func TestBuildPlanFields(t *testing.T) {
	p := buildPlan(t)

	assert.Equal(t, "Demo", p.Name)
	assert.Equal(t, "DMO", p.Symbol)
	assert.Equal(t, "https://gateway.test/meta", p.MetadataURI)
	assert.Equal(t, uint8(2), p.Decimals)
	assert.Equal(t, uint64(5000), p.BaseUnits)
	assert.Equal(t, p.Mint.PublicKey.ToBase58(), p.MintAddress())

	// derived addresses match the canonical derivations
	ata, _, err := common.FindAssociatedTokenAddress(p.Authority, p.Mint.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, ata, p.ATA)
}

func TestBuildGeneratesFreshMint(t *testing.T) {
	first := buildPlan(t)
	second := buildPlan(t)
	assert.NotEqual(t, first.MintAddress(), second.MintAddress())
}

func TestBuildRejectsEmptyMetadataURI(t *testing.T) {
	signer := NewSigner(types.NewAccount())
	_, err := NewBuilder().Build(testSpec(), "   ", signer)
	require.Error(t, err)
}

func TestBuildRejectsForeignSigner(t *testing.T) {
	_, err := NewBuilder().Build(testSpec(), "https://gateway.test/meta", nil)
	require.Error(t, err)
}

func TestBuildPropagatesBaseUnitOverflow(t *testing.T) {
	spec := testSpec()
	spec.Supply = "18446744073709551615"
	spec.Decimals = 9

	signer := NewSigner(types.NewAccount())
	_, err := NewBuilder().Build(spec, "https://gateway.test/meta", signer)
	require.Error(t, err)

	var verr *tokendom.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestInstructionOrder(t *testing.T) {
	p := buildPlan(t)
	ixs := p.Instructions(1_461_600)
	require.Len(t, ixs, 5)

	// create mint account → initialize mint → attach metadata →
	// create holding account → mint supply
	want := []common.PublicKey{
		common.SystemProgramID,
		common.TokenProgramID,
		common.MetaplexTokenMetaProgramID,
		common.SPLAssociatedTokenAccountProgramID,
		common.TokenProgramID,
	}
	for i, ix := range ixs {
		assert.Equal(t, want[i], ix.ProgramID, "instruction %d", i)
	}
}

func TestInitializeMintCarriesDecimals(t *testing.T) {
	p := buildPlan(t)
	init := p.Instructions(1)[1]

	require.GreaterOrEqual(t, len(init.Data), 2)
	assert.Equal(t, byte(0), init.Data[0]) // InitializeMint tag
	assert.Equal(t, byte(2), init.Data[1])
}

func TestHoldingInstructionIsIdempotentVariant(t *testing.T) {
	p := buildPlan(t)
	holding := p.Instructions(1)[3]

	// CreateIdempotent discriminator: re-running the transaction against an
	// existing holding account is a no-op, not a failure
	assert.Equal(t, []byte{1}, holding.Data)

	// the holding account being created is the derived ATA
	var touchesATA bool
	for _, acc := range holding.Accounts {
		if acc.PubKey == p.ATA {
			touchesATA = true
		}
	}
	assert.True(t, touchesATA)
}

func TestMintSupplyAmount(t *testing.T) {
	p := buildPlan(t)
	mintTo := p.Instructions(1)[4]

	require.Len(t, mintTo.Data, 9)
	assert.Equal(t, byte(7), mintTo.Data[0]) // MintTo tag
	assert.Equal(t, uint64(5000), binary.LittleEndian.Uint64(mintTo.Data[1:9]))
}
