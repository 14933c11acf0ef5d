package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hibiscus/pkg/utils"
)

// PasswordVersionSource reports the stored admin passwordVersion. It returns
// utils.ErrAdminNotFound when no admin record exists.
type PasswordVersionSource interface {
	CurrentPasswordVersion(ctx context.Context) (int, error)
}

// AdminGuard requires a bearer token issued at login whose passwordVersion is
// still the stored one. A reset therefore revokes every outstanding token.
func AdminGuard(secret []byte, versions PasswordVersionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateAdminToken(secret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		current, err := versions.CurrentPasswordVersion(c.Request.Context())
		switch {
		case errors.Is(err, utils.ErrAdminNotFound):
			utils.RespondError(c, http.StatusUnauthorized, "No admin found")
			c.Abort()
			return
		case err != nil:
			zap.L().Error("admin guard version lookup failed", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}

		if claims.PasswordVersion != current {
			utils.RespondError(c, http.StatusUnauthorized, "Session expired - password was changed")
			c.Abort()
			return
		}

		c.Set("admin_username", claims.Username)
		c.Set("password_version", claims.PasswordVersion)
		c.Next()
	}
}
