package contracts

import (
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"

	"github.com/shopspring/decimal"
)

type RecurringCreateRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	Category      string          `json:"category" binding:"required,max=100"`
	Description   string          `json:"description" binding:"omitempty,max=255"`
	AccountId     string          `json:"account_id" binding:"omitempty"`
	CreditCardId  string          `json:"credit_card_id" binding:"omitempty"`
	IsCardPayment bool            `json:"is_card_payment" binding:"omitempty"`
	TargetCardId  string          `json:"target_card_id" binding:"omitempty"`
	Frequency     string          `json:"frequency" binding:"required,oneof=DAILY WEEKLY BIWEEKLY MONTHLY YEARLY"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       *time.Time      `json:"end_date" binding:"omitempty"`
}

type RecurringUpdateRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	EndDate     *time.Time       `json:"end_date" binding:"omitempty"`
	Frequency   *string          `json:"frequency" binding:"omitempty,oneof=DAILY WEEKLY BIWEEKLY MONTHLY YEARLY"`
}

type RecurringCreateResponse struct {
	Message   string                          `json:"message"`
	Recurring *recurring.RecurringTransaction `json:"recurring"`
}

type RecurringSingleResponse struct {
	Recurring *recurring.RecurringTransaction `json:"recurring"`
}

type RecurringGenerateResponse struct {
	Message   string `json:"message"`
	Generated int    `json:"generated"`
}
