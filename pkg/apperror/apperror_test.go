package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("skill", "42"), http.StatusNotFound},
		{"invalid input", NewInvalidInput("name is required", nil), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("bad password", nil), http.StatusUnauthorized},
		{"permission", NewPermissionDenied("nope"), http.StatusForbidden},
		{"conflict", NewConflict("skill", "id", "1"), http.StatusConflict},
		{"unavailable", NewUnavailable("uploads disabled"), http.StatusServiceUnavailable},
		{"wrapped not found", fmt.Errorf("load: %w", NewNotFound("project", "x")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestWithMessageKeepsBase(t *testing.T) {
	err := WithMessage(NewNotFound("skill", "1"), "Failed to fetch skills")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Failed to fetch skills", err.Message)

	plain := WithMessage(errors.New("connection refused"), "Failed to save skill")
	assert.ErrorIs(t, plain, ErrInternal)
	assert.Equal(t, "Failed to save skill", plain.ToJSON()["message"])
	assert.NotContains(t, plain.ToJSON(), "details")
}

func TestToJSONOnlyExposesValidationDetails(t *testing.T) {
	invalid := NewInvalidInput("name is required", nil).ToJSON()
	assert.Equal(t, "name is required", invalid["details"])

	internal := NewInternal("pg: relation does not exist", nil).ToJSON()
	assert.NotContains(t, internal, "details")
}
