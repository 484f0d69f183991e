package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/restobook/restaurant-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Context keys under which verified identity claims are stored.
const (
	CtxUserID    = "sub"
	CtxUserEmail = "email"
	CtxUserRole  = "role"
)

// Authorize гейтит мутирующие операции: проверяет заголовок Authorization,
// валидирует токен и кладет claims в контекст запроса. Каждый отказ
// обрывает цепочку, до хендлера управление не доходит.
func Authorize(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing"})
			return
		}

		// Строго два токена, схема ровно Bearer.
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format"})
			return
		}

		claims, err := tm.ParseValidate(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(CtxUserID, claims.Sub)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}
