package v1

import (
	"errors"
	"net/http"

	"github.com/workload-planner/backend/internal/models"
	"github.com/workload-planner/backend/internal/session"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, session.ErrSessionNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
