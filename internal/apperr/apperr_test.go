package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(Invalid("Invalid amount")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("Child not found")))
	assert.Equal(t, http.StatusConflict, StatusOf(Duplicate("This schedule already exists")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("unique violation")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthorized("Password is incorrect")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create schedule: %w", NotFound("Babysitter not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Babysitter not found", MessageOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestInternal_Cause(t *testing.T) {
	root := errors.New("connection refused")
	err := Internal(root, "failed to list schedules")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, root, Cause(err))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "internal", KindInternal.String())
}
