package token

import (
	"fmt"
	"math/big"
	"strings"
)

// MaxDecimals is the largest decimals count we accept. SPL amounts are u64
// on chain, so anything beyond 9 makes common supplies overflow.
const MaxDecimals = 9

// Spec is the caller-supplied definition of the token to issue.
// Immutable once submitted.
type Spec struct {
	Name        string
	Symbol      string
	Description string
	Decimals    int
	Supply      string // positive integer in human units
}

// Validate checks the spec before any I/O happens.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(s.Symbol) == "" {
		return &ValidationError{Field: "symbol", Reason: "required"}
	}
	if strings.TrimSpace(s.Description) == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if s.Decimals < 0 || s.Decimals > MaxDecimals {
		return &ValidationError{
			Field:  "decimals",
			Reason: fmt.Sprintf("must be between 0 and %d", MaxDecimals),
		}
	}
	if _, err := s.supplyInt(); err != nil {
		return err
	}
	return nil
}

// BaseUnits returns supply × 10^decimals as an exact integer.
// Computed with math/big so there is no floating-point drift; the result
// must fit u64 because that is what the token program mints.
func (s Spec) BaseUnits() (uint64, error) {
	supply, err := s.supplyInt()
	if err != nil {
		return 0, err
	}
	if s.Decimals < 0 || s.Decimals > MaxDecimals {
		return 0, &ValidationError{
			Field:  "decimals",
			Reason: fmt.Sprintf("must be between 0 and %d", MaxDecimals),
		}
	}

	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.Decimals)), nil)
	amount := new(big.Int).Mul(supply, exp)
	if !amount.IsUint64() {
		return 0, &ValidationError{
			Field:  "supply",
			Reason: fmt.Sprintf("amount %s exceeds u64", amount.String()),
		}
	}
	return amount.Uint64(), nil
}

func (s Spec) supplyInt() (*big.Int, error) {
	raw := strings.TrimSpace(s.Supply)
	if raw == "" {
		return nil, &ValidationError{Field: "supply", Reason: "required"}
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, &ValidationError{Field: "supply", Reason: "must be an integer"}
	}
	if n.Sign() <= 0 {
		return nil, &ValidationError{Field: "supply", Reason: "must be positive"}
	}
	return n, nil
}
