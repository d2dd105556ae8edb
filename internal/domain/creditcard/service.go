package creditcard

import (
	"context"
	"strings"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

func (s *Service) CreateCreditCard(ctx context.Context, req *CreateCreditCardRequest) (*CreditCard, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	if req.LastFourDigits != "" && len(req.LastFourDigits) != 4 {
		return nil, appErrors.NewValidationError("last_four_digits", "deve ter exatamente 4 dígitos")
	}

	now := time.Now()
	card := &CreditCard{
		Id:             pkg.GenerateULIDObject(),
		UserId:         req.UserId,
		Name:           name,
		LastFourDigits: req.LastFourDigits,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repository.CreateCreditCard(ctx, card); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return card, nil
}

func (s *Service) UpdateCreditCard(ctx context.Context, cardID, userID ulid.ULID, req *UpdateCreditCardRequest) error {
	card, err := s.GetCreditCardById(ctx, cardID, userID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		card.Name = name
	}

	if req.LastFourDigits != nil {
		if *req.LastFourDigits != "" && len(*req.LastFourDigits) != 4 {
			return appErrors.NewValidationError("last_four_digits", "deve ter exatamente 4 dígitos")
		}
		card.LastFourDigits = *req.LastFourDigits
	}

	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	card.UpdatedAt = time.Now()

	if err := s.Repository.UpdateCreditCard(ctx, card); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) DeleteCreditCard(ctx context.Context, cardID, userID ulid.ULID) error {
	_, err := s.GetCreditCardById(ctx, cardID, userID)
	if err != nil {
		return err
	}

	balances, err := s.Repository.GetBalances(ctx, cardID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	for _, balance := range balances {
		if !balance.Balance.IsZero() {
			return appErrors.NewValidationError("card", "cartão possui saldo devedor, não pode ser removido")
		}
	}

	if err := s.Repository.DeleteCreditCard(ctx, cardID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) GetCreditCardById(ctx context.Context, cardID, userID ulid.ULID) (*CreditCard, error) {
	card, err := s.Repository.GetCreditCardById(ctx, cardID, userID)
	if err != nil {
		return nil, appErrors.ErrCreditCardNotFound.WithError(err)
	}

	if card.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return card, nil
}

func (s *Service) ListCreditCards(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	cards, total, err := s.Repository.GetCreditCardsByUserId(ctx, userID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return cards, total, nil
}

func (s *Service) ListBalances(ctx context.Context, cardID, userID ulid.ULID) ([]*CardBalance, error) {
	if _, err := s.GetCreditCardById(ctx, cardID, userID); err != nil {
		return nil, err
	}

	balances, err := s.Repository.GetBalances(ctx, cardID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return balances, nil
}

func (s *Service) SetCreditLimit(ctx context.Context, cardID, userID ulid.ULID, currency string, limit decimal.Decimal) error {
	if _, err := s.GetCreditCardById(ctx, cardID, userID); err != nil {
		return err
	}

	currency = shared.NormalizeCurrency(currency)
	if len(currency) != 3 {
		return appErrors.NewValidationError("currency", "deve ser um código de 3 letras")
	}

	if limit.IsNegative() {
		return appErrors.NewValidationError("credit_limit", "deve ser maior ou igual a zero")
	}

	if err := s.Repository.SetCreditLimit(ctx, cardID, currency, limit); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

type CreateCreditCardRequest struct {
	UserId         ulid.ULID
	Name           string
	LastFourDigits string
}

type UpdateCreditCardRequest struct {
	Name           *string
	LastFourDigits *string
	IsActive       *bool
}
