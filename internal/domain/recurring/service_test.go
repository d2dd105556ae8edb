package recurring_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func TestCreateRecurringStartsAtStartDate(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	svc, _, txRepo, _ := newGeneratorFixture(acc)

	start := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateRecurring(context.Background(), &recurring.CreateRecurringRequest{
		UserId:    userID,
		Kind:      transaction.Expense,
		Amount:    decimal.RequireFromString("49.90"),
		Currency:  "brl",
		Category:  "assinatura",
		AccountId: &acc.Id,
		Frequency: recurring.FrequencyMonthly,
		StartDate: start,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !created.NextDue.Equal(start) {
		t.Fatalf("NextDue = %s, want %s", created.NextDue, start)
	}
	if !created.IsActive {
		t.Fatal("definição deveria nascer ativa")
	}
	if created.Currency != "BRL" {
		t.Fatalf("Currency = %q, want BRL", created.Currency)
	}
	if created.LastGenerated != nil {
		t.Fatal("LastGenerated deveria ser nulo na criação")
	}
	// criar não materializa nada
	if len(txRepo.committed) != 0 {
		t.Fatalf("len(committed) = %d, want 0", len(txRepo.committed))
	}
}

func TestCreateRecurringRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	svc, _, _, _ := newGeneratorFixture(acc)

	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	endBefore := start.AddDate(0, 0, -1)

	valid := func() *recurring.CreateRecurringRequest {
		return &recurring.CreateRecurringRequest{
			UserId:    userID,
			Kind:      transaction.Expense,
			Amount:    decimal.RequireFromString("10.00"),
			Currency:  "BRL",
			Category:  "assinatura",
			AccountId: &acc.Id,
			Frequency: recurring.FrequencyMonthly,
			StartDate: start,
		}
	}

	tests := []struct {
		name   string
		mutate func(*recurring.CreateRecurringRequest)
	}{
		{"frequência inválida", func(r *recurring.CreateRecurringRequest) { r.Frequency = "HOURLY" }},
		{"sem data de início", func(r *recurring.CreateRecurringRequest) { r.StartDate = time.Time{} }},
		{"fim antes do início", func(r *recurring.CreateRecurringRequest) { r.EndDate = &endBefore }},
		{"valor zero", func(r *recurring.CreateRecurringRequest) { r.Amount = decimal.Zero }},
		{"sem categoria", func(r *recurring.CreateRecurringRequest) { r.Category = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := valid()
			tt.mutate(req)
			if _, err := svc.CreateRecurring(context.Background(), req); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestUpdateRecurringFrequencyRecomputesNextDue(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	svc, recRepo, _, _ := newGeneratorFixture(acc)

	start := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	lastGenerated := time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)
	rec := newDailyRecurring(userID, acc.Id, start)
	rec.Frequency = recurring.FrequencyMonthly
	rec.LastGenerated = &lastGenerated
	rec.NextDue = time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC)
	recRepo.records[rec.Id] = rec

	weekly := recurring.FrequencyWeekly
	updated, err := svc.UpdateRecurring(context.Background(), rec.Id, userID, &recurring.UpdateRecurringRequest{
		Frequency: &weekly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := lastGenerated.AddDate(0, 0, 7)
	if !updated.NextDue.Equal(want) {
		t.Fatalf("NextDue = %s, want %s", updated.NextDue, want)
	}
}

func TestUpdateRecurringFrequencyBeforeFirstGeneration(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	svc, recRepo, _, _ := newGeneratorFixture(acc)

	start := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	rec := newDailyRecurring(userID, acc.Id, start)
	recRepo.records[rec.Id] = rec

	yearly := recurring.FrequencyYearly
	updated, err := svc.UpdateRecurring(context.Background(), rec.Id, userID, &recurring.UpdateRecurringRequest{
		Frequency: &yearly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// nada gerado ainda: a primeira ocorrência continua sendo a data de início
	if !updated.NextDue.Equal(start) {
		t.Fatalf("NextDue = %s, want %s", updated.NextDue, start)
	}
}

func TestToggleActive(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: userID, Currency: "BRL"}
	svc, recRepo, _, _ := newGeneratorFixture(acc)

	rec := newDailyRecurring(userID, acc.Id, time.Now().AddDate(0, 1, 0))
	recRepo.records[rec.Id] = rec

	if err := svc.ToggleActive(context.Background(), rec.Id, userID, false); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if recRepo.records[rec.Id].IsActive {
		t.Fatal("definição deveria estar pausada")
	}

	if err := svc.ToggleActive(context.Background(), rec.Id, userID, true); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !recRepo.records[rec.Id].IsActive {
		t.Fatal("definição deveria estar ativa")
	}
}

func TestGetRecurringOwnership(t *testing.T) {
	t.Parallel()

	owner := ulid.Make()
	intruder := ulid.Make()
	acc := &account.Account{Id: ulid.Make(), UserId: owner, Currency: "BRL"}
	svc, recRepo, _, _ := newGeneratorFixture(acc)

	rec := newDailyRecurring(owner, acc.Id, time.Now())
	recRepo.records[rec.Id] = rec

	if _, err := svc.GetRecurringByID(context.Background(), rec.Id, intruder); err == nil {
		t.Fatal("expected error for foreign user, got nil")
	} else if appErr, ok := appErrors.AsAppError(err); !ok || appErr.Code != appErrors.ErrResourceNotOwned.Code {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetRecurringByID(context.Background(), ulid.Make(), owner); err == nil {
		t.Fatal("expected error for unknown id, got nil")
	} else if appErr, ok := appErrors.AsAppError(err); !ok || appErr.Code != appErrors.ErrRecurringNotFound.Code {
		t.Fatalf("unexpected error: %v", err)
	}
}
