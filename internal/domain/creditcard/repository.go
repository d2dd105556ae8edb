package creditcard

import (
	"context"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateCreditCard(ctx context.Context, card *CreditCard) error
	UpdateCreditCard(ctx context.Context, card *CreditCard) error
	DeleteCreditCard(ctx context.Context, cardID, userID ulid.ULID) error
	GetCreditCardById(ctx context.Context, cardID, userID ulid.ULID) (*CreditCard, error)
	GetCreditCardsByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error)

	GetBalances(ctx context.Context, cardID ulid.ULID) ([]*CardBalance, error)
	GetBalance(ctx context.Context, cardID ulid.ULID, currency string) (*CardBalance, error)
	SetCreditLimit(ctx context.Context, cardID ulid.ULID, currency string, limit decimal.Decimal) error

	// EnsureBalanceWithTx cria a linha de saldo (cartão, moeda) com limite
	// zero caso ainda não exista, dentro da transação de banco do chamador.
	EnsureBalanceWithTx(ctx context.Context, tx interface{}, cardID ulid.ULID, currency string) error

	// ApplyBalanceDeltaWithTx soma delta ao saldo devedor da linha
	// (cartão, moeda) com um incremento atômico.
	ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, cardID ulid.ULID, currency string, delta decimal.Decimal) error
}
