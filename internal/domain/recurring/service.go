package recurring

import (
	"context"
	"strings"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository         Repository
	TransactionService *transaction.Service
	shared.BaseService
}

func NewService(repo Repository, transactionSvc *transaction.Service, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:         repo,
		TransactionService: transactionSvc,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) CreateRecurring(ctx context.Context, req *CreateRecurringRequest) (*RecurringTransaction, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if !req.Frequency.IsValid() {
		return nil, appErrors.NewValidationError("frequency", "frequência inválida")
	}

	if req.StartDate.IsZero() {
		return nil, appErrors.NewValidationError("start_date", "é obrigatória")
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
	}

	now := time.Now()
	recurring := &RecurringTransaction{
		Id:            pkg.GenerateULIDObject(),
		UserId:        req.UserId,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Currency:      shared.NormalizeCurrency(req.Currency),
		Category:      strings.TrimSpace(req.Category),
		Description:   strings.TrimSpace(req.Description),
		AccountId:     req.AccountId,
		CreditCardId:  req.CreditCardId,
		IsCardPayment: req.IsCardPayment,
		TargetCardId:  req.TargetCardId,
		Frequency:     req.Frequency,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		NextDue:       req.StartDate,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.TransactionService.ValidateTemplate(ctx, recurring.Template()); err != nil {
		return nil, err
	}

	if err := s.Repository.Create(ctx, recurring); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return recurring, nil
}

func (s *Service) UpdateRecurring(ctx context.Context, recurringID, userID ulid.ULID, req *UpdateRecurringRequest) (*RecurringTransaction, error) {
	recurring, err := s.GetRecurringByID(ctx, recurringID, userID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		recurring.Amount = *req.Amount
	}

	if req.Category != nil {
		recurring.Category = strings.TrimSpace(*req.Category)
	}

	if req.Description != nil {
		recurring.Description = strings.TrimSpace(*req.Description)
	}

	if req.EndDate != nil {
		if req.EndDate.Before(recurring.StartDate) {
			return nil, appErrors.NewValidationError("end_date", "deve ser posterior à data de início")
		}
		recurring.EndDate = req.EndDate
	}

	if req.Frequency != nil {
		if !req.Frequency.IsValid() {
			return nil, appErrors.NewValidationError("frequency", "frequência inválida")
		}
		recurring.Frequency = *req.Frequency
		// invariante: next_due deriva da última geração (ou da data de início)
		if through, ok := recurring.ScheduleStatus().Generated(); ok {
			recurring.NextDue = NextOccurrence(recurring.Frequency, through)
		} else {
			recurring.NextDue = recurring.StartDate
		}
	}

	if err := s.TransactionService.ValidateTemplate(ctx, recurring.Template()); err != nil {
		return nil, err
	}

	recurring.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, recurring); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return recurring, nil
}

func (s *Service) DeleteRecurring(ctx context.Context, recurringID, userID ulid.ULID) error {
	if _, err := s.GetRecurringByID(ctx, recurringID, userID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, recurringID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) ToggleActive(ctx context.Context, recurringID, userID ulid.ULID, active bool) error {
	if _, err := s.GetRecurringByID(ctx, recurringID, userID); err != nil {
		return err
	}

	if err := s.Repository.SetActive(ctx, recurringID, userID, active); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) GetRecurringByID(ctx context.Context, recurringID, userID ulid.ULID) (*RecurringTransaction, error) {
	recurring, err := s.Repository.GetById(ctx, recurringID, userID)
	if err != nil {
		return nil, appErrors.ErrRecurringNotFound.WithError(err)
	}

	if recurring.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return recurring, nil
}

func (s *Service) ListRecurring(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*RecurringTransaction, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	recurrings, total, err := s.Repository.GetByUserId(ctx, userID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return recurrings, total, nil
}

type CreateRecurringRequest struct {
	UserId        ulid.ULID
	Kind          transaction.Kind
	Amount        decimal.Decimal
	Currency      string
	Category      string
	Description   string
	AccountId     *ulid.ULID
	CreditCardId  *ulid.ULID
	IsCardPayment bool
	TargetCardId  *ulid.ULID
	Frequency     FrequencyType
	StartDate     time.Time
	EndDate       *time.Time
}

type UpdateRecurringRequest struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	EndDate     *time.Time
	Frequency   *FrequencyType
}
