package dashboard

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type CurrencyTotal struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
}

type CardDebt struct {
	CardId   ulid.ULID       `json:"cardId"`
	CardName string          `json:"cardName"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

type MonthFlow struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

type Repository interface {
	GetAccountTotals(ctx context.Context, userID ulid.ULID) ([]*CurrencyTotal, error)
	GetCardDebts(ctx context.Context, userID ulid.ULID) ([]*CardDebt, error)
	GetMonthFlow(ctx context.Context, userID ulid.ULID, from, to time.Time, currency string) (*MonthFlow, error)
	CountTransactions(ctx context.Context, userID ulid.ULID) (int64, error)
}
