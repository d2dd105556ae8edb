package routes

import (
	"net/http"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/contracts"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/recurring"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/transaction"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateRecurring(c *gin.Context) {
	var body contracts.RecurringCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	accountID, err := pkg.ParseULIDPtr(&body.AccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("account_id", "formato invalido"))
		return
	}
	cardID, err := pkg.ParseULIDPtr(&body.CreditCardId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("credit_card_id", "formato invalido"))
		return
	}
	targetCardID, err := pkg.ParseULIDPtr(&body.TargetCardId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("target_card_id", "formato invalido"))
		return
	}

	req := &recurring.CreateRecurringRequest{
		UserId:        userID,
		Kind:          transaction.Kind(body.Kind),
		Amount:        body.Amount,
		Currency:      body.Currency,
		Category:      body.Category,
		Description:   body.Description,
		AccountId:     accountID,
		CreditCardId:  cardID,
		IsCardPayment: body.IsCardPayment,
		TargetCardId:  targetCardID,
		Frequency:     recurring.FrequencyType(body.Frequency),
		StartDate:     body.StartDate,
		EndDate:       body.EndDate,
	}

	ctx := c.Request.Context()
	rec, err := h.RecurringService.CreateRecurring(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.RecurringCreateResponse{
		Message:   "Transação recorrente criada com sucesso",
		Recurring: rec,
	})
}

func (h *Handler) ListRecurrings(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	recurrings, total, err := h.RecurringService.ListRecurring(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(recurrings, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetRecurring(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
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
	rec, err := h.RecurringService.GetRecurringByID(ctx, recurringID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringSingleResponse{Recurring: rec})
}

func (h *Handler) UpdateRecurring(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato invalido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.RecurringUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	req := &recurring.UpdateRecurringRequest{
		Amount:      body.Amount,
		Category:    body.Category,
		Description: body.Description,
		EndDate:     body.EndDate,
	}
	if body.Frequency != nil {
		freq := recurring.FrequencyType(*body.Frequency)
		req.Frequency = &freq
	}

	ctx := c.Request.Context()
	if _, err := h.RecurringService.UpdateRecurring(ctx, recurringID, userID, req); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação recorrente atualizada com sucesso"})
}

func (h *Handler) DeleteRecurring(c *gin.Context) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.RecurringService.DeleteRecurring(ctx, recurringID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação recorrente removida com sucesso"})
}

func (h *Handler) PauseRecurring(c *gin.Context) {
	h.setRecurringActive(c, false, "Transação recorrente pausada com sucesso")
}

func (h *Handler) ResumeRecurring(c *gin.Context) {
	h.setRecurringActive(c, true, "Transação recorrente reativada com sucesso")
}

func (h *Handler) setRecurringActive(c *gin.Context, active bool, message string) {
	recurringID, err := pkg.ParseULID(c.Param("id"))
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
	if err := h.RecurringService.ToggleActive(ctx, recurringID, userID, active); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: message})
}

func (h *Handler) GenerateRecurring(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	generated, err := h.RecurringService.GeneratePending(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.RecurringGenerateResponse{
		Message:   "Transações recorrentes geradas com sucesso",
		Generated: generated,
	})
}
