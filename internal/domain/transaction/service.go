package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/creditcard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository        Repository
	AccountRepository account.Repository
	CardRepository    creditcard.Repository
	AccountService    *account.Service
	CardService       *creditcard.Service
	shared.BaseService
}

func NewService(
	repo Repository,
	accountRepo account.Repository,
	cardRepo creditcard.Repository,
	accountSvc *account.Service,
	cardSvc *creditcard.Service,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:        repo,
		AccountRepository: accountRepo,
		CardRepository:    cardRepo,
		AccountService:    accountSvc,
		CardService:       cardSvc,
		BaseService: shared.BaseService{
			UserChecker: userChecker,
		},
	}
}

// CreateTransaction insere a transação e aplica todos os seus efeitos de
// saldo em uma única transação de banco. Qualquer falha desfaz tudo; nenhuma
// mutação parcial de saldo fica visível.
func (s *Service) CreateTransaction(ctx context.Context, t *Transaction) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	if err := s.ValidateTemplate(ctx, t); err != nil {
		return err
	}

	TransactionCreateStruct(t)

	tx, err := s.Repository.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	if err := s.applyEffects(ctx, tx, ResolveEffects(t)); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return err
	}

	if err := s.Repository.CommitTx(tx); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

// UpdateTransaction reverte os efeitos calculados a partir dos valores
// armazenados antes da edição, grava os novos campos e aplica os novos
// efeitos, tudo na mesma transação de banco. A reversão nunca é recalculada a
// partir dos valores novos.
func (s *Service) UpdateTransaction(ctx context.Context, t *Transaction) error {
	if err := s.EnsureUserExists(ctx, t.UserId); err != nil {
		return err
	}

	stored, err := s.GetTransactionByID(ctx, t.Id, t.UserId)
	if err != nil {
		return err
	}

	if err := s.ValidateTemplate(ctx, t); err != nil {
		return err
	}

	oldEffects := ResolveEffects(stored)

	stored.Kind = t.Kind
	stored.Amount = t.Amount
	stored.Currency = t.Currency
	stored.Category = t.Category
	stored.Description = t.Description
	stored.AccountId = t.AccountId
	stored.CreditCardId = t.CreditCardId
	stored.IsCardPayment = t.IsCardPayment
	stored.TargetCardId = t.TargetCardId
	if !t.Date.IsZero() {
		stored.Date = t.Date
	}
	stored.UpdatedAt = time.Now()

	tx, err := s.Repository.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.applyEffects(ctx, tx, ReverseEffects(oldEffects)); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return err
	}

	if err := s.Repository.UpdateWithTx(ctx, tx, stored); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	if err := s.applyEffects(ctx, tx, ResolveEffects(stored)); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return err
	}

	if err := s.Repository.CommitTx(tx); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

// DeleteTransaction reverte os efeitos da transação e remove a linha na mesma
// transação de banco.
func (s *Service) DeleteTransaction(ctx context.Context, transactionID, userID ulid.ULID) error {
	stored, err := s.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	tx, err := s.Repository.BeginTx(ctx)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.applyEffects(ctx, tx, ReverseEffects(ResolveEffects(stored))); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return err
	}

	if err := s.Repository.DeleteWithTx(ctx, tx, transactionID); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Repository.CommitTx(tx); err != nil {
		_ = s.Repository.RollbackTx(tx)
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) GetTransactionByID(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	t, err := s.Repository.GetByIDAndUser(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return t, nil
}

func (s *Service) GetAllTransactions(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, filters *TransactionFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	transactions, total, err := s.Repository.GetAll(ctx, userID, accountID, filters, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transactions, total, nil
}

func (s *Service) GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	count, err := s.Repository.GetNumberOfTransactions(ctx, userID)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

// ValidateTemplate valida os campos financeiros de uma transação e resolve a
// propriedade de cada conta/cartão referenciado. Também é usado pelo motor de
// recorrência antes de materializar um lote.
func (s *Service) ValidateTemplate(ctx context.Context, t *Transaction) error {
	if !t.Kind.IsValid() {
		return appErrors.NewValidationError("kind", "tipo inválido")
	}

	if !t.Amount.IsPositive() {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	t.Currency = shared.NormalizeCurrency(t.Currency)
	if len(t.Currency) != 3 {
		return appErrors.NewValidationError("currency", "deve ser um código de 3 letras")
	}

	t.Category = strings.TrimSpace(t.Category)
	if t.Category == "" {
		return appErrors.NewValidationError("category", "é obrigatória")
	}

	if t.AccountId != nil && t.CreditCardId != nil {
		return appErrors.NewValidationError("account_id", "conta e cartão são mutuamente exclusivos")
	}

	if t.IsCardPayment {
		if t.AccountId == nil {
			return appErrors.NewValidationError("account_id", "pagamento de fatura exige conta bancária de origem")
		}
		if t.TargetCardId == nil {
			return appErrors.NewValidationError("target_card_id", "pagamento de fatura exige cartão de destino")
		}
	} else if t.TargetCardId != nil {
		return appErrors.NewValidationError("target_card_id", "só pode ser informado em pagamento de fatura")
	}

	if t.AccountId != nil {
		accountEntity, err := s.AccountService.GetAccountByID(ctx, *t.AccountId, t.UserId)
		if err != nil {
			return err
		}
		if accountEntity.Currency != t.Currency {
			return appErrors.NewValidationError("currency", "moeda diferente da moeda da conta")
		}
	}

	if t.CreditCardId != nil {
		if _, err := s.CardService.GetCreditCardById(ctx, *t.CreditCardId, t.UserId); err != nil {
			return err
		}
	}

	if t.TargetCardId != nil {
		if _, err := s.CardService.GetCreditCardById(ctx, *t.TargetCardId, t.UserId); err != nil {
			return err
		}
	}

	return nil
}

// MaterializeWithTx insere uma transação e aplica seus efeitos dentro da
// transação de banco do chamador. O chamador é responsável por validar o
// modelo (ValidateTemplate) antes do lote e por commit/rollback.
func (s *Service) MaterializeWithTx(ctx context.Context, tx interface{}, t *Transaction) error {
	if err := s.Repository.CreateWithTx(ctx, tx, t); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return s.applyEffects(ctx, tx, ResolveEffects(t))
}

// BeginTx expõe a unidade atômica do repositório para orquestradores que
// materializam lotes (motor de recorrência).
func (s *Service) BeginTx(ctx context.Context) (interface{}, error) {
	return s.Repository.BeginTx(ctx)
}

func (s *Service) CommitTx(tx interface{}) error {
	return s.Repository.CommitTx(tx)
}

func (s *Service) RollbackTx(tx interface{}) error {
	return s.Repository.RollbackTx(tx)
}

func (s *Service) applyEffects(ctx context.Context, tx interface{}, effects []Effect) error {
	for _, effect := range effects {
		switch effect.Target {
		case EffectAccount:
			if err := s.AccountRepository.ApplyBalanceDeltaWithTx(ctx, tx, effect.AccountId, effect.Delta); err != nil {
				return appErrors.NewDatabaseError(err)
			}
		case EffectCard:
			if err := s.CardRepository.EnsureBalanceWithTx(ctx, tx, effect.CardId, effect.Currency); err != nil {
				return appErrors.NewDatabaseError(err)
			}
			if err := s.CardRepository.ApplyBalanceDeltaWithTx(ctx, tx, effect.CardId, effect.Currency, effect.Delta); err != nil {
				return appErrors.NewDatabaseError(err)
			}
		}
	}
	return nil
}
