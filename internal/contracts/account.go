package contracts

import (
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/account"

	"github.com/shopspring/decimal"
)

type AccountCreateRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	InitialBalance decimal.Decimal `json:"initial_balance" binding:"omitempty"`
}

type AccountUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	IsActive *bool   `json:"is_active" binding:"omitempty"`
}

type AccountCreateResponse struct {
	Message string           `json:"message"`
	Account *account.Account `json:"account"`
}

type AccountSingleResponse struct {
	Account *account.Account `json:"account"`
}
