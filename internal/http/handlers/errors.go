package handlers

import (
	"context"
	"errors"
	"net/http"

	"devcamper/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

const serverError = "Server Error"

// Translate maps any failure to a status code and the value of the envelope's
// error field. The first matching category wins:
// cast, duplicate, validation, domain-raised, unclassified.
func Translate(err error) (int, any) {
	var (
		castErr   domain.CastError
		dupErr    domain.DuplicateError
		valErr    domain.ValidationError
		fieldErrs validator.ValidationErrors
		notFound  domain.NotFoundError
		statusErr domain.StatusError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError, serverError
	case errors.As(err, &castErr):
		return http.StatusNotFound, castErr.Error()
	case errors.As(err, &dupErr), mongo.IsDuplicateKeyError(err):
		return http.StatusBadRequest, domain.DuplicateError{}.Error()
	case errors.As(err, &valErr):
		if len(valErr.Messages) == 0 {
			return http.StatusBadRequest, []string{valErr.Error()}
		}
		return http.StatusBadRequest, valErr.Messages
	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, validationMessages(fieldErrs)
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &statusErr):
		status := statusErr.Status
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		return status, statusErr.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	default:
		msg := err.Error()
		if msg == "" {
			msg = serverError
		}
		return http.StatusInternalServerError, msg
	}
}

// ErrorHandler is the single place where failures recorded with c.Error are
// logged and turned into the error envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := Translate(err)

		log := zerolog.Ctx(c.Request.Context())
		ev := log.Warn()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Int("status", status).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")

		c.JSON(status, Envelope{Success: false, Error: body})
	}
}

// Recovery turns a panic into a 500 envelope. The panic value is only logged.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Success: false, Error: serverError})
	})
}
