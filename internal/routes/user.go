package routes

import (
	"net/http"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/contracts"
	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterUser(c *gin.Context) {
	var body contracts.UserRegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	u, err := h.UserService.Register(ctx, body.Name, body.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// o token só é exibido no registro
	c.JSON(http.StatusCreated, contracts.UserRegisterResponse{
		Message:  "Usuário criado com sucesso",
		User:     u,
		ApiToken: u.ApiToken,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	u, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserSingleResponse{User: u})
}
