package api

import (
	"errors"
	"net/http"

	ierr "go-feedback-triage/internal/errors"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondDomainError maps the error taxonomy onto status codes.
func respondDomainError(c *gin.Context, err error) {
	var persistence *ierr.PersistenceFailure
	var generation *ierr.GenerationError

	switch {
	case errors.Is(err, ierr.NotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ierr.InvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.As(err, &persistence):
		// storage details stay in the logs
		RespondError(c, http.StatusServiceUnavailable, "persistence_failure", errors.New("please try again"))
	case errors.As(err, &generation):
		RespondError(c, http.StatusBadGateway, generation.Reason, errors.New("reply generation failed"))
	default:
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}
