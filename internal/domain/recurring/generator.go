package recurring

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/logger"

	"github.com/oklog/ulid/v2"
)

// GeneratePending materializa as transações vencidas de todas as
// recorrências ativas do usuário. Cada recorrência é processada em sua
// própria transação de banco: uma falha isolada não bloqueia as demais.
func (s *Service) GeneratePending(ctx context.Context, userID ulid.ULID) (int, error) {
	asOf := time.Now()

	due, err := s.Repository.GetDueByUserId(ctx, userID, asOf)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	generated := 0
	for _, recurring := range due {
		count, err := s.generateForDefinition(ctx, recurring, asOf)
		if err != nil {
			logger.Error().
				Err(err).
				Str("recurring_id", recurring.Id.String()).
				Str("user_id", userID.String()).
				Msg("falha ao gerar transações da recorrência")
			continue
		}
		generated += count
	}

	return generated, nil
}

func (s *Service) generateForDefinition(ctx context.Context, recurring *RecurringTransaction, asOf time.Time) (int, error) {
	dates, truncated := DueDates(recurring.Frequency, recurring.StartDate, recurring.ScheduleStatus(), recurring.EndDate, asOf)
	if truncated {
		logger.Warn().
			Str("recurring_id", recurring.Id.String()).
			Int("batch_size", len(dates)).
			Msg("recorrência muito atrasada, gerando lote parcial")
	}

	if len(dates) == 0 {
		return 0, nil
	}

	template := recurring.Template()
	if err := s.TransactionService.ValidateTemplate(ctx, template); err != nil {
		return 0, err
	}

	tx, err := s.TransactionService.BeginTx(ctx)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	for _, date := range dates {
		t := recurring.Template()
		t.Date = date
		transaction.TransactionCreateStruct(t)

		if err := s.TransactionService.MaterializeWithTx(ctx, tx, t); err != nil {
			s.TransactionService.RollbackTx(tx)
			return 0, err
		}
	}

	lastGenerated := dates[len(dates)-1]
	nextDue := NextOccurrence(recurring.Frequency, lastGenerated)
	isActive := recurring.IsActive
	if recurring.EndDate != nil && nextDue.After(*recurring.EndDate) {
		isActive = false
	}

	advanced, err := s.Repository.AdvanceScheduleWithTx(ctx, tx, recurring.Id, recurring.NextDue, lastGenerated, nextDue, isActive)
	if err != nil {
		s.TransactionService.RollbackTx(tx)
		return 0, appErrors.NewDatabaseError(err)
	}
	if !advanced {
		// corrida: outra invocação já processou esta recorrência
		s.TransactionService.RollbackTx(tx)
		return 0, nil
	}

	if err := s.TransactionService.CommitTx(tx); err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	return len(dates), nil
}
