package solana

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	usecase "videotoken/internal/application/usecase"
	tokendom "videotoken/internal/domain/token"
)

// TransactionPlan is the ordered instruction set for one issuance plus the
// freshly generated mint identity. The mint-account rent is network-derived,
// so instruction materialization takes it as a parameter and the builder
// itself never touches the RPC endpoint.
type TransactionPlan struct {
	Mint        types.Account // fresh identity; private half signs once, at submit
	Authority   common.PublicKey
	ATA         common.PublicKey
	MetadataPDA common.PublicKey
	Name        string
	Symbol      string
	MetadataURI string
	Decimals    uint8
	BaseUnits   uint64
}

var _ usecase.TransactionPlan = (*TransactionPlan)(nil)

// MintAddress returns the base58 address the new mint will live at.
func (p *TransactionPlan) MintAddress() string {
	return p.Mint.PublicKey.ToBase58()
}

// Instructions returns the full ordered set:
//
//	1. create-mint-with-metadata
//	2. create-holding-account-if-missing
//	3. mint-initial-supply
//
// The order is a correctness requirement: the mint must exist before its
// metadata and holding account, and the holding account before minting.
func (p *TransactionPlan) Instructions(mintRent uint64) []types.Instruction {
	ixs := p.createMintInstructions(mintRent)
	ixs = append(ixs, p.createHoldingInstruction())
	ixs = append(ixs, p.mintSupplyInstruction())
	return ixs
}

// createMintInstructions registers the new mint and attaches name, symbol
// and metadata URI with zero royalty.
func (p *TransactionPlan) createMintInstructions(mintRent uint64) []types.Instruction {
	return []types.Instruction{
		system.CreateAccount(system.CreateAccountParam{
			From:     p.Authority,
			New:      p.Mint.PublicKey,
			Owner:    common.TokenProgramID,
			Lamports: mintRent,
			Space:    token.MintAccountSize,
		}),
		token.InitializeMint(token.InitializeMintParam{
			Decimals: p.Decimals,
			Mint:     p.Mint.PublicKey,
			MintAuth: p.Authority,
		}),
		token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
			Metadata:                p.MetadataPDA,
			Mint:                    p.Mint.PublicKey,
			MintAuthority:           p.Authority,
			UpdateAuthority:         p.Authority,
			Payer:                   p.Authority,
			UpdateAuthorityIsSigner: true,
			IsMutable:               true,
			Data: token_metadata.DataV2{
				Name:                 p.Name,
				Symbol:               p.Symbol,
				Uri:                  p.MetadataURI,
				SellerFeeBasisPoints: 0,
			},
		}),
	}
}

// createHoldingInstruction is always included so the transaction is
// self-contained regardless of prior state: CreateIdempotent is a no-op at
// execution time when the holding account already exists.
func (p *TransactionPlan) createHoldingInstruction() types.Instruction {
	return associated_token_account.CreateIdempotent(associated_token_account.CreateIdempotentParam{
		Funder:                 p.Authority,
		Owner:                  p.Authority,
		Mint:                   p.Mint.PublicKey,
		AssociatedTokenAccount: p.ATA,
	})
}

func (p *TransactionPlan) mintSupplyInstruction() types.Instruction {
	return token.MintTo(token.MintToParam{
		Mint:   p.Mint.PublicKey,
		To:     p.ATA,
		Auth:   p.Authority,
		Amount: p.BaseUnits,
	})
}

// Builder constructs issuance transaction plans. Deterministic given its
// inputs except for the mint identity, which comes from a cryptographically
// strong random source.
type Builder struct{}

var _ usecase.TransactionBuilder = (*Builder)(nil)

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Build(
	spec tokendom.Spec,
	metadataURI string,
	authority usecase.Signer,
) (usecase.TransactionPlan, error) {
	signer, ok := authority.(*Signer)
	if !ok || signer == nil {
		return nil, fmt.Errorf("unsupported signer capability %T", authority)
	}

	metadataURI = strings.TrimSpace(metadataURI)
	if metadataURI == "" {
		return nil, fmt.Errorf("metadata locator is empty")
	}

	baseUnits, err := spec.BaseUnits()
	if err != nil {
		return nil, err
	}

	owner := signer.Account().PublicKey
	mint := types.NewAccount()

	ata, _, err := common.FindAssociatedTokenAddress(owner, mint.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("FindAssociatedTokenAddress: %w", err)
	}

	metadataPDA, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("GetTokenMetaPubkey: %w", err)
	}

	return &TransactionPlan{
		Mint:        mint,
		Authority:   owner,
		ATA:         ata,
		MetadataPDA: metadataPDA,
		Name:        strings.TrimSpace(spec.Name),
		Symbol:      strings.TrimSpace(spec.Symbol),
		MetadataURI: metadataURI,
		Decimals:    uint8(spec.Decimals),
		BaseUnits:   baseUnits,
	}, nil
}
