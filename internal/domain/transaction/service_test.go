package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/creditcard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeUserChecker struct{}

func (fakeUserChecker) Exists(ctx context.Context, userID ulid.ULID) error { return nil }

type fakeTxToken struct{}

// fakeTransactionRepository simula a unidade atômica: escritas vão para uma
// área de staging e só ficam visíveis depois do commit.
type fakeTransactionRepository struct {
	committed map[ulid.ULID]*transaction.Transaction
	staged    []func()

	beginCalls    int
	commitCalls   int
	rollbackCalls int
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{
		committed: make(map[ulid.ULID]*transaction.Transaction),
	}
}

func (f *fakeTransactionRepository) BeginTx(ctx context.Context) (interface{}, error) {
	f.beginCalls++
	f.staged = nil
	return &fakeTxToken{}, nil
}

func (f *fakeTransactionRepository) CommitTx(tx interface{}) error {
	f.commitCalls++
	for _, apply := range f.staged {
		apply()
	}
	f.staged = nil
	return nil
}

func (f *fakeTransactionRepository) RollbackTx(tx interface{}) error {
	f.rollbackCalls++
	f.staged = nil
	return nil
}

func (f *fakeTransactionRepository) CreateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	clone := *t
	f.staged = append(f.staged, func() { f.committed[clone.Id] = &clone })
	return nil
}

func (f *fakeTransactionRepository) UpdateWithTx(ctx context.Context, tx interface{}, t *transaction.Transaction) error {
	clone := *t
	f.staged = append(f.staged, func() { f.committed[clone.Id] = &clone })
	return nil
}

func (f *fakeTransactionRepository) DeleteWithTx(ctx context.Context, tx interface{}, transactionID ulid.ULID) error {
	f.staged = append(f.staged, func() { delete(f.committed, transactionID) })
	return nil
}

func (f *fakeTransactionRepository) GetByIDAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	t, ok := f.committed[transactionID]
	if !ok || t.UserId != userID {
		return nil, errors.New("record not found")
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTransactionRepository) GetAll(ctx context.Context, userID ulid.ULID, accountID *ulid.ULID, filters *transaction.TransactionFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return nil, 0, nil
}

func (f *fakeTransactionRepository) GetNumberOfTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	return int64(len(f.committed)), nil
}

type fakeAccountRepository struct {
	accounts map[ulid.ULID]*account.Account
	deltas   map[ulid.ULID]decimal.Decimal

	applyDeltaErr error
}

func newFakeAccountRepository(accounts ...*account.Account) *fakeAccountRepository {
	f := &fakeAccountRepository{
		accounts: make(map[ulid.ULID]*account.Account),
		deltas:   make(map[ulid.ULID]decimal.Decimal),
	}
	for _, a := range accounts {
		f.accounts[a.Id] = a
	}
	return f
}

func (f *fakeAccountRepository) Create(ctx context.Context, a *account.Account) error { return nil }
func (f *fakeAccountRepository) Update(ctx context.Context, a *account.Account) error { return nil }
func (f *fakeAccountRepository) Delete(ctx context.Context, accountID, userID ulid.ULID) error {
	return nil
}

func (f *fakeAccountRepository) GetById(ctx context.Context, accountID, userID ulid.ULID) (*account.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return a, nil
}

func (f *fakeAccountRepository) GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	return nil, 0, nil
}

func (f *fakeAccountRepository) ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, accountID ulid.ULID, delta decimal.Decimal) error {
	if f.applyDeltaErr != nil {
		return f.applyDeltaErr
	}
	f.deltas[accountID] = f.deltas[accountID].Add(delta)
	return nil
}

type fakeCardRepository struct {
	cards   map[ulid.ULID]*creditcard.CreditCard
	deltas  map[string]decimal.Decimal
	ensured map[string]bool
}

func cardKey(cardID ulid.ULID, currency string) string {
	return cardID.String() + "/" + currency
}

func newFakeCardRepository(cards ...*creditcard.CreditCard) *fakeCardRepository {
	f := &fakeCardRepository{
		cards:   make(map[ulid.ULID]*creditcard.CreditCard),
		deltas:  make(map[string]decimal.Decimal),
		ensured: make(map[string]bool),
	}
	for _, c := range cards {
		f.cards[c.Id] = c
	}
	return f
}

func (f *fakeCardRepository) CreateCreditCard(ctx context.Context, c *creditcard.CreditCard) error {
	return nil
}
func (f *fakeCardRepository) UpdateCreditCard(ctx context.Context, c *creditcard.CreditCard) error {
	return nil
}
func (f *fakeCardRepository) DeleteCreditCard(ctx context.Context, cardID, userID ulid.ULID) error {
	return nil
}

func (f *fakeCardRepository) GetCreditCardById(ctx context.Context, cardID, userID ulid.ULID) (*creditcard.CreditCard, error) {
	c, ok := f.cards[cardID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (f *fakeCardRepository) GetCreditCardsByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	return nil, 0, nil
}

func (f *fakeCardRepository) GetBalances(ctx context.Context, cardID ulid.ULID) ([]*creditcard.CardBalance, error) {
	return nil, nil
}

func (f *fakeCardRepository) GetBalance(ctx context.Context, cardID ulid.ULID, currency string) (*creditcard.CardBalance, error) {
	return nil, errors.New("record not found")
}

func (f *fakeCardRepository) SetCreditLimit(ctx context.Context, cardID ulid.ULID, currency string, limit decimal.Decimal) error {
	return nil
}

func (f *fakeCardRepository) EnsureBalanceWithTx(ctx context.Context, tx interface{}, cardID ulid.ULID, currency string) error {
	f.ensured[cardKey(cardID, currency)] = true
	return nil
}

func (f *fakeCardRepository) ApplyBalanceDeltaWithTx(ctx context.Context, tx interface{}, cardID ulid.ULID, currency string, delta decimal.Decimal) error {
	key := cardKey(cardID, currency)
	f.deltas[key] = f.deltas[key].Add(delta)
	return nil
}

func newTestService(repo *fakeTransactionRepository, accountRepo *fakeAccountRepository, cardRepo *fakeCardRepository) *transaction.Service {
	userChecker := shared.NewUserCheckerService(fakeUserChecker{})
	accountSvc := account.NewService(accountRepo, userChecker)
	cardSvc := creditcard.NewService(cardRepo, userChecker)
	return transaction.NewService(repo, accountRepo, cardRepo, accountSvc, cardSvc, userChecker)
}

func TestCreateTransactionAppliesAccountEffect(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}

	repo := newFakeTransactionRepository()
	accountRepo := newFakeAccountRepository(acc)
	svc := newTestService(repo, accountRepo, newFakeCardRepository())

	tx := &transaction.Transaction{
		UserId:    userID,
		Kind:      transaction.Income,
		Amount:    decimal.RequireFromString("250.75"),
		Currency:  "BRL",
		Category:  "salario",
		Date:      time.Now(),
		AccountId: &acc.Id,
	}

	if err := svc.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.commitCalls != 1 {
		t.Fatalf("commitCalls = %d, want 1", repo.commitCalls)
	}
	if len(repo.committed) != 1 {
		t.Fatalf("len(committed) = %d, want 1", len(repo.committed))
	}
	if want := decimal.RequireFromString("250.75"); !accountRepo.deltas[acc.Id].Equal(want) {
		t.Fatalf("delta da conta = %s, want %s", accountRepo.deltas[acc.Id], want)
	}
}

func TestCreateTransactionCardPayment(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	card := &creditcard.CreditCard{Id: ulid.Make(), UserId: userID}

	repo := newFakeTransactionRepository()
	accountRepo := newFakeAccountRepository(acc)
	cardRepo := newFakeCardRepository(card)
	svc := newTestService(repo, accountRepo, cardRepo)

	tx := &transaction.Transaction{
		UserId:        userID,
		Kind:          transaction.Expense,
		Amount:        decimal.RequireFromString("800.00"),
		Currency:      "BRL",
		Category:      "fatura",
		Date:          time.Now(),
		AccountId:     &acc.Id,
		IsCardPayment: true,
		TargetCardId:  &card.Id,
	}

	if err := svc.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := decimal.RequireFromString("-800.00"); !accountRepo.deltas[acc.Id].Equal(want) {
		t.Fatalf("delta da conta = %s, want %s", accountRepo.deltas[acc.Id], want)
	}

	key := cardKey(card.Id, "BRL")
	if !cardRepo.ensured[key] {
		t.Fatal("linha de saldo do cartão não foi garantida")
	}
	if want := decimal.RequireFromString("-800.00"); !cardRepo.deltas[key].Equal(want) {
		t.Fatalf("delta do cartão = %s, want %s", cardRepo.deltas[key], want)
	}
}

func TestCreateTransactionRollsBackOnEffectFailure(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}

	repo := newFakeTransactionRepository()
	accountRepo := newFakeAccountRepository(acc)
	accountRepo.applyDeltaErr = errors.New("deadlock detected")
	svc := newTestService(repo, accountRepo, newFakeCardRepository())

	tx := &transaction.Transaction{
		UserId:    userID,
		Kind:      transaction.Expense,
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  "BRL",
		Category:  "mercado",
		Date:      time.Now(),
		AccountId: &acc.Id,
	}

	if err := svc.CreateTransaction(context.Background(), tx); err == nil {
		t.Fatal("expected error")
	}

	if repo.rollbackCalls != 1 {
		t.Fatalf("rollbackCalls = %d, want 1", repo.rollbackCalls)
	}
	if len(repo.committed) != 0 {
		t.Fatalf("len(committed) = %d, want 0", len(repo.committed))
	}
}

// Editar uma transação reverte os efeitos antigos (calculados do estado
// armazenado) e aplica os novos: o efeito líquido sobre a conta é a diferença.
func TestUpdateTransactionReversesStoredEffects(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}

	repo := newFakeTransactionRepository()
	accountRepo := newFakeAccountRepository(acc)
	svc := newTestService(repo, accountRepo, newFakeCardRepository())

	original := &transaction.Transaction{
		UserId:    userID,
		Kind:      transaction.Income,
		Amount:    decimal.RequireFromString("100.00"),
		Currency:  "BRL",
		Category:  "salario",
		Date:      time.Now(),
		AccountId: &acc.Id,
	}
	if err := svc.CreateTransaction(context.Background(), original); err != nil {
		t.Fatalf("create: %v", err)
	}

	// reset para medir apenas o efeito líquido da edição
	accountRepo.deltas = make(map[ulid.ULID]decimal.Decimal)

	edited := &transaction.Transaction{
		Id:        original.Id,
		UserId:    userID,
		Kind:      transaction.Expense,
		Amount:    decimal.RequireFromString("40.00"),
		Currency:  "BRL",
		Category:  "mercado",
		Date:      original.Date,
		AccountId: &acc.Id,
	}
	if err := svc.UpdateTransaction(context.Background(), edited); err != nil {
		t.Fatalf("update: %v", err)
	}

	// -100 (reversão da receita) + -40 (nova despesa)
	if want := decimal.RequireFromString("-140.00"); !accountRepo.deltas[acc.Id].Equal(want) {
		t.Fatalf("delta líquido = %s, want %s", accountRepo.deltas[acc.Id], want)
	}

	stored, err := repo.GetByIDAndUser(context.Background(), original.Id, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Kind != transaction.Expense || !stored.Amount.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("transação não atualizada: %+v", stored)
	}
}

func TestDeleteTransactionReversesEffects(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}

	repo := newFakeTransactionRepository()
	accountRepo := newFakeAccountRepository(acc)
	svc := newTestService(repo, accountRepo, newFakeCardRepository())

	tx := &transaction.Transaction{
		UserId:    userID,
		Kind:      transaction.Expense,
		Amount:    decimal.RequireFromString("55.00"),
		Currency:  "BRL",
		Category:  "transporte",
		Date:      time.Now(),
		AccountId: &acc.Id,
	}
	if err := svc.CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteTransaction(context.Background(), tx.Id, userID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if !accountRepo.deltas[acc.Id].IsZero() {
		t.Fatalf("delta residual = %s, want 0", accountRepo.deltas[acc.Id])
	}
	if len(repo.committed) != 0 {
		t.Fatalf("len(committed) = %d, want 0", len(repo.committed))
	}
}

func TestValidateTemplate(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	card := &creditcard.CreditCard{Id: ulid.Make(), UserId: userID}
	otherUserAccount := &account.Account{Id: ulid.Make(), UserId: ulid.Make(), Currency: "BRL"}

	repo := newFakeTransactionRepository()
	accountRepo := newFakeAccountRepository(acc, otherUserAccount)
	cardRepo := newFakeCardRepository(card)
	svc := newTestService(repo, accountRepo, cardRepo)

	valid := func() *transaction.Transaction {
		return &transaction.Transaction{
			UserId:    userID,
			Kind:      transaction.Expense,
			Amount:    decimal.RequireFromString("10.00"),
			Currency:  "BRL",
			Category:  "mercado",
			AccountId: &acc.Id,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*transaction.Transaction)
		wantErrCode string
	}{
		{
			name:   "valid account transaction",
			mutate: func(t *transaction.Transaction) {},
		},
		{
			name: "valid with no account or card",
			mutate: func(tx *transaction.Transaction) {
				tx.AccountId = nil
			},
		},
		{
			name:        "invalid kind",
			mutate:      func(tx *transaction.Transaction) { tx.Kind = "TRANSFER" },
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "zero amount",
			mutate:      func(tx *transaction.Transaction) { tx.Amount = decimal.Zero },
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "negative amount",
			mutate:      func(tx *transaction.Transaction) { tx.Amount = decimal.RequireFromString("-5") },
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "bad currency",
			mutate:      func(tx *transaction.Transaction) { tx.Currency = "REAIS" },
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "missing category",
			mutate:      func(tx *transaction.Transaction) { tx.Category = "  " },
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "account and card are mutually exclusive",
			mutate: func(tx *transaction.Transaction) {
				tx.CreditCardId = &card.Id
			},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "card payment requires source account",
			mutate: func(tx *transaction.Transaction) {
				tx.AccountId = nil
				tx.IsCardPayment = true
				tx.TargetCardId = &card.Id
			},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "card payment requires target card",
			mutate: func(tx *transaction.Transaction) {
				tx.IsCardPayment = true
			},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "target card only on card payment",
			mutate: func(tx *transaction.Transaction) {
				tx.TargetCardId = &card.Id
			},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "currency must match account currency",
			mutate: func(tx *transaction.Transaction) {
				tx.Currency = "USD"
			},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "account owned by another user",
			mutate: func(tx *transaction.Transaction) {
				tx.AccountId = &otherUserAccount.Id
			},
			wantErrCode: appErrors.ErrResourceNotOwned.Code,
		},
		{
			name: "unknown account",
			mutate: func(tx *transaction.Transaction) {
				id := ulid.Make()
				tx.AccountId = &id
			},
			wantErrCode: appErrors.ErrAccountNotFound.Code,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(tx)

			err := svc.ValidateTemplate(ctx, tx)
			if tt.wantErrCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tt.wantErrCode {
				t.Fatalf("code = %s, want %s", appErr.Code, tt.wantErrCode)
			}
		})
	}
}

func TestValidateTemplateNormalizesCurrency(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	svc := newTestService(newFakeTransactionRepository(), newFakeAccountRepository(acc), newFakeCardRepository())

	tx := &transaction.Transaction{
		UserId:    userID,
		Kind:      transaction.Income,
		Amount:    decimal.RequireFromString("1.00"),
		Currency:  " brl ",
		Category:  "outros",
		AccountId: &acc.Id,
	}

	if err := svc.ValidateTemplate(context.Background(), tx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Currency != "BRL" {
		t.Fatalf("currency = %q, want BRL", tx.Currency)
	}
}
