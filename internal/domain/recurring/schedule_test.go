package recurring_test

import (
	"testing"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frequency recurring.FrequencyType
		from      time.Time
		want      time.Time
	}{
		{
			name:      "daily",
			frequency: recurring.FrequencyDaily,
			from:      date(2026, time.March, 15),
			want:      date(2026, time.March, 16),
		},
		{
			name:      "weekly",
			frequency: recurring.FrequencyWeekly,
			from:      date(2026, time.March, 15),
			want:      date(2026, time.March, 22),
		},
		{
			name:      "biweekly",
			frequency: recurring.FrequencyBiweekly,
			from:      date(2026, time.March, 15),
			want:      date(2026, time.March, 29),
		},
		{
			name:      "monthly preserves day",
			frequency: recurring.FrequencyMonthly,
			from:      date(2026, time.March, 15),
			want:      date(2026, time.April, 15),
		},
		{
			name:      "monthly clamps january 31 to february 28",
			frequency: recurring.FrequencyMonthly,
			from:      date(2026, time.January, 31),
			want:      date(2026, time.February, 28),
		},
		{
			name:      "monthly clamps to february 29 in leap year",
			frequency: recurring.FrequencyMonthly,
			from:      date(2024, time.January, 31),
			want:      date(2024, time.February, 29),
		},
		{
			name:      "monthly across year boundary",
			frequency: recurring.FrequencyMonthly,
			from:      date(2026, time.December, 31),
			want:      date(2027, time.January, 31),
		},
		{
			name:      "yearly",
			frequency: recurring.FrequencyYearly,
			from:      date(2026, time.June, 10),
			want:      date(2027, time.June, 10),
		},
		{
			name:      "yearly february 29 clamps to 28",
			frequency: recurring.FrequencyYearly,
			from:      date(2024, time.February, 29),
			want:      date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := recurring.NextOccurrence(tt.frequency, tt.from)
			if !got.Equal(tt.want) {
				t.Fatalf("NextOccurrence(%s, %s) = %s, want %s", tt.frequency, tt.from, got, tt.want)
			}
		})
	}
}

// O clamp não é "auto-corretivo": depois de cair no dia 28, a série mensal
// segue a partir do 28, sem voltar para o dia 31 original.
func TestNextOccurrenceMonthlyClampChain(t *testing.T) {
	t.Parallel()

	first := recurring.NextOccurrence(recurring.FrequencyMonthly, date(2026, time.January, 31))
	if want := date(2026, time.February, 28); !first.Equal(want) {
		t.Fatalf("first = %s, want %s", first, want)
	}

	second := recurring.NextOccurrence(recurring.FrequencyMonthly, first)
	if want := date(2026, time.March, 28); !second.Equal(want) {
		t.Fatalf("second = %s, want %s", second, want)
	}
}

func TestNextOccurrenceAlwaysAdvances(t *testing.T) {
	t.Parallel()

	frequencies := []recurring.FrequencyType{
		recurring.FrequencyDaily,
		recurring.FrequencyWeekly,
		recurring.FrequencyBiweekly,
		recurring.FrequencyMonthly,
		recurring.FrequencyYearly,
	}

	from := date(2026, time.January, 31)
	for _, freq := range frequencies {
		current := from
		for i := 0; i < 50; i++ {
			next := recurring.NextOccurrence(freq, current)
			if !next.After(current) {
				t.Fatalf("%s: %s não avançou a partir de %s", freq, next, current)
			}
			current = next
		}
	}
}

func TestDueDatesNeverGeneratedStartsAtStartDate(t *testing.T) {
	t.Parallel()

	start := date(2026, time.August, 1)
	asOf := date(2026, time.August, 10)

	due, truncated := recurring.DueDates(recurring.FrequencyDaily, start, recurring.NeverGenerated(), nil, asOf)
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(due) != 10 {
		t.Fatalf("len(due) = %d, want 10", len(due))
	}
	if !due[0].Equal(start) {
		t.Fatalf("due[0] = %s, want %s", due[0], start)
	}
	for i := 1; i < len(due); i++ {
		if !due[i].After(due[i-1]) {
			t.Fatalf("datas fora de ordem: due[%d]=%s, due[%d]=%s", i-1, due[i-1], i, due[i])
		}
	}
}

func TestDueDatesResumesAfterLastGenerated(t *testing.T) {
	t.Parallel()

	start := date(2026, time.January, 5)
	status := recurring.GeneratedThrough(date(2026, time.June, 5))
	asOf := date(2026, time.August, 20)

	due, truncated := recurring.DueDates(recurring.FrequencyMonthly, start, status, nil, asOf)
	if truncated {
		t.Fatal("unexpected truncation")
	}

	want := []time.Time{
		date(2026, time.July, 5),
		date(2026, time.August, 5),
	}
	if len(due) != len(want) {
		t.Fatalf("len(due) = %d, want %d", len(due), len(want))
	}
	for i := range want {
		if !due[i].Equal(want[i]) {
			t.Fatalf("due[%d] = %s, want %s", i, due[i], want[i])
		}
	}
}

func TestDueDatesEndDateIsInclusive(t *testing.T) {
	t.Parallel()

	start := date(2026, time.August, 1)
	end := date(2026, time.August, 5)
	asOf := date(2026, time.August, 31)

	due, truncated := recurring.DueDates(recurring.FrequencyDaily, start, recurring.NeverGenerated(), &end, asOf)
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(due) != 5 {
		t.Fatalf("len(due) = %d, want 5", len(due))
	}
	if !due[len(due)-1].Equal(end) {
		t.Fatalf("última ocorrência = %s, want %s", due[len(due)-1], end)
	}
}

func TestDueDatesNothingDue(t *testing.T) {
	t.Parallel()

	start := date(2026, time.September, 1)
	asOf := date(2026, time.August, 31)

	due, truncated := recurring.DueDates(recurring.FrequencyDaily, start, recurring.NeverGenerated(), nil, asOf)
	if truncated {
		t.Fatal("unexpected truncation")
	}
	if len(due) != 0 {
		t.Fatalf("len(due) = %d, want 0", len(due))
	}
}

func TestDueDatesTruncatesLongCatchUp(t *testing.T) {
	t.Parallel()

	start := date(2024, time.January, 1)
	asOf := date(2026, time.August, 31)

	due, truncated := recurring.DueDates(recurring.FrequencyDaily, start, recurring.NeverGenerated(), nil, asOf)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if len(due) != 365 {
		t.Fatalf("len(due) = %d, want 365", len(due))
	}
	if !due[0].Equal(start) {
		t.Fatalf("due[0] = %s, want %s", due[0], start)
	}
}

func TestScheduleStatus(t *testing.T) {
	t.Parallel()

	if _, ok := recurring.NeverGenerated().Generated(); ok {
		t.Fatal("NeverGenerated não deveria reportar geração")
	}

	through := date(2026, time.May, 10)
	got, ok := recurring.GeneratedThrough(through).Generated()
	if !ok {
		t.Fatal("GeneratedThrough deveria reportar geração")
	}
	if !got.Equal(through) {
		t.Fatalf("through = %s, want %s", got, through)
	}
}
