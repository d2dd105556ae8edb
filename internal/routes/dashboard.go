package routes

import (
	"net/http"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	currency := c.DefaultQuery("currency", "BRL")

	ctx := c.Request.Context()
	summary, err := h.DashboardService.GetSummary(ctx, userID, currency)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.DashboardResponse{Summary: summary})
}
