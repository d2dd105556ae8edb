package recurring

import (
	"time"
)

// maxCatchUp limita o trabalho de recuperação de uma definição por invocação.
// Um lote truncado é processado mesmo assim; a próxima invocação continua de
// onde parou.
const maxCatchUp = 365

// NextOccurrence calcula a próxima ocorrência a partir de uma data. Função
// pura e total: sempre retorna uma data válida estritamente posterior.
// Mensal avança um mês preservando o dia, com clamp para o último dia do mês
// de destino quando o dia não existe (31 de janeiro -> 28 de fevereiro).
// Anual avança um ano; 29 de fevereiro vira 28 em ano não bissexto.
func NextOccurrence(frequency FrequencyType, from time.Time) time.Time {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return addMonthsClamped(from, 1)
	case FrequencyYearly:
		return addYearsClamped(from, 1)
	default:
		return addMonthsClamped(from, 1)
	}
}

func addMonthsClamped(from time.Time, months int) time.Time {
	year, month, day := from.Date()
	hour, minute, second := from.Clock()

	target := time.Date(year, month+time.Month(months), 1, hour, minute, second, 0, from.Location())
	if last := lastDayOfMonth(target); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, minute, second, 0, from.Location())
}

func addYearsClamped(from time.Time, years int) time.Time {
	year, month, day := from.Date()
	hour, minute, second := from.Clock()

	target := time.Date(year+years, month, 1, hour, minute, second, 0, from.Location())
	if last := lastDayOfMonth(target); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, minute, second, 0, from.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// DueDates enumera, em ordem crescente, as ocorrências devidas até
// min(endDate, asOf) e ainda não geradas. Se nada foi gerado, a primeira
// candidata é a própria startDate; caso contrário é a ocorrência seguinte à
// última gerada. endDate é inclusivo: uma ocorrência que cai exatamente em
// endDate é devida. O segundo retorno indica que o limite de recuperação foi
// atingido e o lote está truncado. Lista vazia não é erro.
func DueDates(frequency FrequencyType, startDate time.Time, status ScheduleStatus, endDate *time.Time, asOf time.Time) ([]time.Time, bool) {
	limit := asOf
	if endDate != nil && endDate.Before(limit) {
		limit = *endDate
	}

	var candidate time.Time
	if through, ok := status.Generated(); ok {
		candidate = NextOccurrence(frequency, through)
	} else {
		candidate = startDate
	}

	var due []time.Time
	for !candidate.After(limit) {
		if len(due) == maxCatchUp {
			return due, true
		}
		due = append(due, candidate)
		candidate = NextOccurrence(frequency, candidate)
	}

	return due, false
}
