package account

import (
	"context"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, accountID, userID ulid.ULID) error
	GetById(ctx context.Context, accountID, userID ulid.ULID) (*Account, error)
	GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Account, int64, error)

	// ApplyBalanceDeltaWithTx soma delta ao saldo da conta com um incremento
	// atômico, dentro da transação de banco fornecida pelo chamador.
	ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, delta decimal.Decimal) error
}
