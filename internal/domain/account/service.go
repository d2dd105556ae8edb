package account

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

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	currency := shared.NormalizeCurrency(req.Currency)
	if len(currency) != 3 {
		return nil, appErrors.NewValidationError("currency", "deve ser um código de 3 letras")
	}

	now := time.Now()
	accountEntity := &Account{
		Id:        pkg.GenerateULIDObject(),
		UserId:    req.UserId,
		Name:      name,
		Currency:  currency,
		Balance:   req.InitialBalance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, accountEntity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return accountEntity, nil
}

func (s *Service) UpdateAccount(ctx context.Context, accountID, userID ulid.ULID, req *UpdateAccountRequest) error {
	accountEntity, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		accountEntity.Name = name
	}

	if req.IsActive != nil {
		accountEntity.IsActive = *req.IsActive
	}

	accountEntity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, accountEntity); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, accountID, userID ulid.ULID) error {
	accountEntity, err := s.GetAccountByID(ctx, accountID, userID)
	if err != nil {
		return err
	}

	if !accountEntity.Balance.IsZero() {
		return appErrors.NewValidationError("account", "conta possui saldo, não pode ser removida")
	}

	if err := s.Repository.Delete(ctx, accountID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) GetAccountByID(ctx context.Context, accountID, userID ulid.ULID) (*Account, error) {
	accountEntity, err := s.Repository.GetById(ctx, accountID, userID)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}

	if accountEntity.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return accountEntity, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Account, int64, error) {
	if err := s.EnsureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	accounts, total, err := s.Repository.GetByUserId(ctx, userID, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return accounts, total, nil
}

type CreateAccountRequest struct {
	UserId         ulid.ULID
	Name           string
	Currency       string
	InitialBalance decimal.Decimal
}

type UpdateAccountRequest struct {
	Name     *string
	IsActive *bool
}
