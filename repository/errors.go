package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func NumericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	val, err := n.Value()
	if err != nil {
		return decimal.Decimal{}, err
	}
	switch v := val.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	case nil:
		return decimal.Decimal{}, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unexpected numeric driver type: %T", v)
	}
}
