package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-ems/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error maps to its own status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "Already exists", http.StatusConflict)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
		assert.Equal(t, "Already exists", httpErr.Message)
	})

	t.Run("wrapped app error is still found", func(t *testing.T) {
		inner := apperror.New(apperror.CodeNotFound, "Missing", http.StatusNotFound)
		err := apperror.Wrap(inner, apperror.CodeNotFound, "Missing", http.StatusNotFound)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown error collapses into a generic 500", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "connection refused")
	})
}

func TestWithDetails(t *testing.T) {
	sentinel := apperror.New(apperror.CodeInvalidInput, "Bad data", http.StatusBadRequest)

	detailed := sentinel.WithDetails([]string{"first_name is required"})

	t.Run("sentinel is not mutated", func(t *testing.T) {
		assert.Nil(t, sentinel.Details)
		assert.NotNil(t, detailed.Details)
	})

	t.Run("detailed copy still matches the sentinel", func(t *testing.T) {
		assert.ErrorIs(t, detailed, sentinel)
	})
}
