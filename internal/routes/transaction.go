package routes

import (
	"net/http"
	"time"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/contracts"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func buildTransaction(userID ulid.ULID, body *contracts.TransactionCreateRequest) (*transaction.Transaction, error) {
	accountID, err := pkg.ParseULIDPtr(&body.AccountId)
	if err != nil {
		return nil, appErrors.NewValidationError("account_id", "formato invalido")
	}
	cardID, err := pkg.ParseULIDPtr(&body.CreditCardId)
	if err != nil {
		return nil, appErrors.NewValidationError("credit_card_id", "formato invalido")
	}
	targetCardID, err := pkg.ParseULIDPtr(&body.TargetCardId)
	if err != nil {
		return nil, appErrors.NewValidationError("target_card_id", "formato invalido")
	}

	return &transaction.Transaction{
		UserId:        userID,
		Kind:          transaction.Kind(body.Kind),
		Amount:        body.Amount,
		Currency:      body.Currency,
		Category:      body.Category,
		Description:   body.Description,
		Date:          body.Date,
		AccountId:     accountID,
		CreditCardId:  cardID,
		IsCardPayment: body.IsCardPayment,
		TargetCardId:  targetCardID,
	}, nil
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	t, err := buildTransaction(userID, &body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.CreateTransaction(ctx, t); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação criada com sucesso",
		Transaction: t,
	})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	filters := parseTransactionFilters(c)

	var accountID *ulid.ULID
	if raw := c.Query("account_id"); raw != "" {
		parsed, err := pkg.ParseULID(raw)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("account_id", "formato invalido"))
			return
		}
		accountID = &parsed
	}

	ctx := c.Request.Context()
	transactions, total, err := h.TransactionService.GetAllTransactions(ctx, userID, accountID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func parseTransactionFilters(c *gin.Context) *transaction.TransactionFilters {
	filters := &transaction.TransactionFilters{}

	if raw := c.Query("kind"); raw != "" {
		kind := transaction.Kind(raw)
		filters.Kind = &kind
	}

	if raw := c.Query("category"); raw != "" {
		filters.Category = &raw
	}

	if raw := c.Query("search"); raw != "" {
		filters.Search = &raw
	}

	if raw := c.Query("date_from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filters.DateFrom = &parsed
		}
	}

	if raw := c.Query("date_to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			filters.DateTo = &parsed
		}
	}

	return filters
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	t, err := h.TransactionService.GetTransactionByID(ctx, transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: t})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.TransactionUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	t, err := buildTransaction(userID, (*contracts.TransactionCreateRequest)(&body))
	if err != nil {
		h.respondError(c, err)
		return
	}
	t.Id = transactionID

	ctx := c.Request.Context()
	if err := h.TransactionService.UpdateTransaction(ctx, t); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação atualizada com sucesso"})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.DeleteTransaction(ctx, transactionID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação removida com sucesso"})
}
