package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/dashboard"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeUserChecker struct{}

func (fakeUserChecker) Exists(ctx context.Context, userID ulid.ULID) error { return nil }

type fakeDashboardRepository struct {
	accountTotals []*dashboard.CurrencyTotal
	cardDebts     []*dashboard.CardDebt
	monthFlow     *dashboard.MonthFlow
	count         int64

	monthFrom     time.Time
	monthTo       time.Time
	monthCurrency string
}

func (f *fakeDashboardRepository) GetAccountTotals(ctx context.Context, userID ulid.ULID) ([]*dashboard.CurrencyTotal, error) {
	return f.accountTotals, nil
}

func (f *fakeDashboardRepository) GetCardDebts(ctx context.Context, userID ulid.ULID) ([]*dashboard.CardDebt, error) {
	return f.cardDebts, nil
}

func (f *fakeDashboardRepository) GetMonthFlow(ctx context.Context, userID ulid.ULID, from, to time.Time, currency string) (*dashboard.MonthFlow, error) {
	f.monthFrom = from
	f.monthTo = to
	f.monthCurrency = currency
	return f.monthFlow, nil
}

func (f *fakeDashboardRepository) CountTransactions(ctx context.Context, userID ulid.ULID) (int64, error) {
	return f.count, nil
}

type fakeGenerator struct {
	generated int
	err       error
	calls     int
}

func (f *fakeGenerator) GeneratePending(ctx context.Context, userID ulid.ULID) (int, error) {
	f.calls++
	return f.generated, f.err
}

func newDashboardService(repo *fakeDashboardRepository, gen *fakeGenerator) *dashboard.Service {
	return dashboard.NewService(repo, gen, shared.NewUserCheckerService(fakeUserChecker{}))
}

func TestGetSummaryGeneratesBeforeReading(t *testing.T) {
	t.Parallel()

	repo := &fakeDashboardRepository{
		accountTotals: []*dashboard.CurrencyTotal{
			{Currency: "BRL", Total: decimal.RequireFromString("1200.50")},
			{Currency: "USD", Total: decimal.RequireFromString("300.00")},
		},
		cardDebts: []*dashboard.CardDebt{
			{CardId: ulid.Make(), CardName: "Visa", Currency: "BRL", Balance: decimal.RequireFromString("450.00")},
		},
		monthFlow: &dashboard.MonthFlow{
			Income:  decimal.RequireFromString("5000.00"),
			Expense: decimal.RequireFromString("3200.00"),
		},
		count: 42,
	}
	gen := &fakeGenerator{generated: 3}
	svc := newDashboardService(repo, gen)

	summary, err := svc.GetSummary(context.Background(), ulid.Make(), "brl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if summary.RecurringsGenerated != 3 {
		t.Fatalf("RecurringsGenerated = %d, want 3", summary.RecurringsGenerated)
	}
	if len(summary.AccountTotals) != 2 {
		t.Fatalf("len(AccountTotals) = %d, want 2", len(summary.AccountTotals))
	}
	if summary.TransactionCount != 42 {
		t.Fatalf("TransactionCount = %d, want 42", summary.TransactionCount)
	}
	if repo.monthCurrency != "BRL" {
		t.Fatalf("currency = %q, want BRL", repo.monthCurrency)
	}

	now := time.Now()
	wantFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if !repo.monthFrom.Equal(wantFrom) {
		t.Fatalf("from = %s, want %s", repo.monthFrom, wantFrom)
	}
	if !repo.monthTo.After(repo.monthFrom) || repo.monthTo.After(wantFrom.AddDate(0, 1, 0)) {
		t.Fatalf("to = %s fora da janela do mês", repo.monthTo)
	}
}

// O painel não pode ficar indisponível porque o gerador falhou; os saldos
// já consistentes continuam sendo exibidos.
func TestGetSummarySurvivesGeneratorFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeDashboardRepository{
		monthFlow: &dashboard.MonthFlow{},
		count:     7,
	}
	gen := &fakeGenerator{err: errors.New("db down")}
	svc := newDashboardService(repo, gen)

	summary, err := svc.GetSummary(context.Background(), ulid.Make(), "BRL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.RecurringsGenerated != 0 {
		t.Fatalf("RecurringsGenerated = %d, want 0", summary.RecurringsGenerated)
	}
	if summary.TransactionCount != 7 {
		t.Fatalf("TransactionCount = %d, want 7", summary.TransactionCount)
	}
}
