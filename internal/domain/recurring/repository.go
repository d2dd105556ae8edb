package recurring

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, recurring *RecurringTransaction) error
	Update(ctx context.Context, recurring *RecurringTransaction) error
	Delete(ctx context.Context, recurringID, userID ulid.ULID) error
	GetById(ctx context.Context, recurringID, userID ulid.ULID) (*RecurringTransaction, error)
	GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*RecurringTransaction, int64, error)
	GetDueByUserId(ctx context.Context, userID ulid.ULID, asOf time.Time) ([]*RecurringTransaction, error)
	SetActive(ctx context.Context, recurringID, userID ulid.ULID, active bool) error

	// AdvanceScheduleWithTx grava o novo estado de agenda da definição com um
	// compare-and-swap sobre next_due, dentro da transação de banco do
	// chamador. Retorna false quando o next_due armazenado já não é o
	// esperado: outra invocação concorrente gerou o lote primeiro.
	AdvanceScheduleWithTx(ctx context.Context, tx interface{}, recurringID ulid.ULID, expectedNextDue, lastGenerated, nextDue time.Time, isActive bool) (bool, error)
}
