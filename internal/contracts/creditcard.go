package contracts

import (
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/creditcard"

	"github.com/shopspring/decimal"
)

type CreditCardCreateRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	LastFourDigits string `json:"last_four_digits" binding:"omitempty,len=4,numeric"`
}

type CreditCardUpdateRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	LastFourDigits *string `json:"last_four_digits" binding:"omitempty,len=4,numeric"`
	IsActive       *bool   `json:"is_active" binding:"omitempty"`
}

type CreditLimitRequest struct {
	Currency string          `json:"currency" binding:"required,len=3"`
	Limit    decimal.Decimal `json:"limit" binding:"required"`
}

type CreditCardCreateResponse struct {
	Message    string                 `json:"message"`
	CreditCard *creditcard.CreditCard `json:"credit_card"`
}

type CreditCardSingleResponse struct {
	CreditCard *creditcard.CreditCard    `json:"credit_card"`
	Balances   []*creditcard.CardBalance `json:"balances"`
}

type CardBalancesResponse struct {
	Balances []*creditcard.CardBalance `json:"balances"`
}
