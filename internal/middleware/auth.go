package middleware

import (
	"net/http"
	"strings"

	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/shared"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware valida o token de API enviado no header Authorization e
// injeta o user_id resolvido no contexto da requisição.
func AuthMiddleware(verifier shared.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "Token de autenticação não informado",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "Formato do token inválido, use Bearer <token>",
			})
			c.Abort()
			return
		}

		userID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug().Err(err).Msg("token de API rejeitado")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "Token de autenticação inválido",
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID.String())
		c.Next()
	}
}
