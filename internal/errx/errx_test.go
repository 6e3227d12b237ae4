package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cause := errors.New("connection refused")

	status, msg := StatusOf(fmt.Errorf("add item: %w", Upstream(cause, "cart unavailable")))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "cart unavailable", msg)

	status, msg = StatusOf(cause)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, SystemErrorMessage, msg)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := NotFound(cause, "product not found")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "product not found: no rows", err.Error())
	assert.Equal(t, "bad quantity", BadRequest("bad quantity").Error())
}
