package contracts

import (
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

type TransactionCreateRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	Category      string          `json:"category" binding:"required,max=100"`
	Description   string          `json:"description" binding:"omitempty,max=255"`
	Date          time.Time       `json:"date" binding:"required"`
	AccountId     string          `json:"account_id" binding:"omitempty"`
	CreditCardId  string          `json:"credit_card_id" binding:"omitempty"`
	IsCardPayment bool            `json:"is_card_payment" binding:"omitempty"`
	TargetCardId  string          `json:"target_card_id" binding:"omitempty"`
}

type TransactionUpdateRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	Category      string          `json:"category" binding:"required,max=100"`
	Description   string          `json:"description" binding:"omitempty,max=255"`
	Date          time.Time       `json:"date" binding:"required"`
	AccountId     string          `json:"account_id" binding:"omitempty"`
	CreditCardId  string          `json:"credit_card_id" binding:"omitempty"`
	IsCardPayment bool            `json:"is_card_payment" binding:"omitempty"`
	TargetCardId  string          `json:"target_card_id" binding:"omitempty"`
}

type TransactionCreateResponse struct {
	Message     string                   `json:"message"`
	Transaction *transaction.Transaction `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction *transaction.Transaction `json:"transaction"`
}
