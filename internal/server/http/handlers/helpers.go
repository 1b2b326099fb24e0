package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/server/http/dto"
	"github.com/polkiloo/salonbook/internal/server/http/middleware"
)

const invalidBody = "Invalid request body"

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDContextKey)
}

// errorMessages names the client-facing text for errors whose wording depends on the endpoint.
type errorMessages struct {
	notFound     string
	conflict     string
	unauthorized string
	internal     string
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Success: false, Error: message})
}

func respondError(c *gin.Context, logger *slog.Logger, err error, msgs errorMessages) {
	var validationErr *domainErrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		fail(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domainErrors.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, orDefault(msgs.unauthorized, "Unauthorized"))
	case errors.Is(err, domainErrors.ErrForbidden):
		fail(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, domainErrors.ErrNotFound):
		fail(c, http.StatusNotFound, orDefault(msgs.notFound, "Not found"))
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		fail(c, http.StatusConflict, orDefault(msgs.conflict, "Already exists"))
	default:
		logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		fail(c, http.StatusInternalServerError, orDefault(msgs.internal, "Internal server error"))
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
