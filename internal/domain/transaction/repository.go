package transaction

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type TransactionFilters struct {
	Kind     *Kind
	Category *string
	DateFrom *time.Time
	DateTo   *time.Time
	Search   *string
}

type Repository interface {
	BeginTx(ctx context.Context) (interface{}, error)
	CommitTx(tx interface{}) error
	RollbackTx(tx interface{}) error

	CreateWithTx(ctx context.Context, tx interface{}, t *Transaction) error
	UpdateWithTx(ctx context.Context, tx interface{}, t *Transaction) error
	DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error

	GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	GetAll(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, filters *TransactionFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error)
}
