package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	// SessionTokenContextKey holds the token the request was authenticated with.
	SessionTokenContextKey = "sessionToken"
	// SessionHeader carries the session token issued at login.
	SessionHeader = "X-Session-Id"
)

// SessionAuthorizer resolves a session token to a user id.
type SessionAuthorizer interface {
	Authorize(ctx context.Context, token string) (string, error)
}

// AuthRequired ensures the request carries a live session before reaching the handler.
func AuthRequired(authorizer SessionAuthorizer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := authorizer.Authorize(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthorized) {
				abortWithError(c, http.StatusUnauthorized, "Unauthorized")
				return
			}
			logger.Error("session lookup failed", slog.String("error", err.Error()))
			abortWithError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Set(SessionTokenContextKey, token)
		c.Next()
	}
}

// ExtractToken reads the session token from X-Session-Id or a bearer Authorization header.
func ExtractToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(SessionHeader)); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Success: false, Error: message})
}
