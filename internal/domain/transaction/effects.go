package transaction

import (
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type EffectTarget string

const (
	EffectAccount EffectTarget = "ACCOUNT"
	EffectCard    EffectTarget = "CARD"
)

// Effect é um delta assinado sobre exatamente um agregado persistido: o saldo
// de uma conta bancária ou a linha de saldo (cartão, moeda) de um cartão.
type Effect struct {
	Target    EffectTarget
	AccountId ulid.ULID
	CardId    ulid.ULID
	Currency  string
	Delta     decimal.Decimal
}

// ResolveEffects calcula os deltas de saldo implicados por uma transação.
// Conta bancária: +valor para receita, -valor para despesa. Cartão: +valor
// para despesa (a dívida cresce), -valor para receita. Um pagamento de fatura
// soma um delta extra de -valor na linha do cartão de destino, na moeda da
// transação.
func ResolveEffects(t *Transaction) []Effect {
	var effects []Effect

	if t.AccountId != nil {
		delta := t.Amount
		if t.Kind == Expense {
			delta = t.Amount.Neg()
		}
		effects = append(effects, Effect{
			Target:    EffectAccount,
			AccountId: *t.AccountId,
			Currency:  t.Currency,
			Delta:     delta,
		})
	}

	if t.CreditCardId != nil {
		delta := t.Amount
		if t.Kind == Income {
			delta = t.Amount.Neg()
		}
		effects = append(effects, Effect{
			Target:   EffectCard,
			CardId:   *t.CreditCardId,
			Currency: t.Currency,
			Delta:    delta,
		})
	}

	if t.IsCardPayment && t.TargetCardId != nil {
		effects = append(effects, Effect{
			Target:   EffectCard,
			CardId:   *t.TargetCardId,
			Currency: t.Currency,
			Delta:    t.Amount.Neg(),
		})
	}

	return effects
}

// ReverseEffects inverte o sinal de cada delta. Aplicar os efeitos e depois a
// reversão devolve todos os agregados exatamente ao valor anterior.
func ReverseEffects(effects []Effect) []Effect {
	reversed := make([]Effect, len(effects))
	for i, effect := range effects {
		reversed[i] = effect
		reversed[i].Delta = effect.Delta.Neg()
	}
	return reversed
}
