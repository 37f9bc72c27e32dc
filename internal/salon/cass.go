package salon

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/inf.v0"
)

// Cassandra's decimal type travels through gocql as *inf.Dec. The domain uses
// shopspring decimals, so repositories convert at the column boundary. Both
// representations are exact base-10; nothing passes through a binary float.

func decToInf(d decimal.Decimal) *inf.Dec {
	return inf.NewDecBig(new(big.Int).Set(d.Coefficient()), inf.Scale(-d.Exponent()))
}

func infToDec(v *inf.Dec) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Set(v.UnscaledBig()), -int32(v.Scale()))
}

func priceToCQL(p *decimal.Decimal) *inf.Dec {
	if p == nil {
		return nil
	}
	return decToInf(*p)
}

func priceFromCQL(v *inf.Dec) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := infToDec(v)
	return &d
}

// containsFold performs a case-insensitive substring match.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// normLimit guards repository-level limits: non-positive falls back to the
// default, anything above the scan cap is clamped.
func normLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	if limit > scanCap {
		return scanCap
	}
	return limit
}
