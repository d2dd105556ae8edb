package dashboard

import (
	"context"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/logger"

	"github.com/oklog/ulid/v2"
)

type Summary struct {
	AccountTotals       []*CurrencyTotal `json:"accountTotals"`
	CardDebts           []*CardDebt      `json:"cardDebts"`
	CurrentMonth        *MonthFlow       `json:"currentMonth"`
	TransactionCount    int64            `json:"transactionCount"`
	RecurringsGenerated int              `json:"recurringsGenerated"`
}

type Service struct {
	Repository Repository
	Generator  shared.PendingGenerator
	shared.BaseService
}

func NewService(repo Repository, generator shared.PendingGenerator, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		Generator:  generator,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

// GetSummary materializa as recorrências vencidas antes de consultar os
// saldos, para que o painel nunca mostre totais defasados.
func (s *Service) GetSummary(ctx context.Context, userID ulid.ULID, currency string) (*Summary, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	generated, err := s.Generator.GeneratePending(ctx, userID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Msg("falha ao gerar recorrências pendentes para o painel")
	}

	accountTotals, err := s.Repository.GetAccountTotals(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	cardDebts, err := s.Repository.GetCardDebts(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	currency = shared.NormalizeCurrency(currency)
	monthFlow, err := s.Repository.GetMonthFlow(ctx, userID, monthStart, monthEnd, currency)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	count, err := s.Repository.CountTransactions(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &Summary{
		AccountTotals:       accountTotals,
		CardDebts:           cardDebts,
		CurrentMonth:        monthFlow,
		TransactionCount:    count,
		RecurringsGenerated: generated,
	}, nil
}
