package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"foodshare-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 400, StatusFor(fmt.Errorf("%w: missing food_type", domain.ErrValidation)))
	assert.Equal(t, 401, StatusFor(domain.ErrInvalidCredentials))
	assert.Equal(t, 403, StatusFor(domain.ErrUnauthorizedAction))
	assert.Equal(t, 404, StatusFor(domain.ErrNotFound))
	assert.Equal(t, 409, StatusFor(fmt.Errorf("%w: cannot claim", domain.ErrInvalidTransition)))
	assert.Equal(t, 409, StatusFor(domain.ErrListingExpired))
	assert.Equal(t, 0, StatusFor(errors.New("disk on fire")))
}

func TestDomainError_HidesUnknownErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/known", func(c *fiber.Ctx) error { return DomainError(c, domain.ErrNotFound) })
	app.Get("/unknown", func(c *fiber.Ctx) error { return DomainError(c, errors.New("pq: connection refused")) })

	resp, err := app.Test(httptest.NewRequest("GET", "/known", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	var out ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "error", out.Status)
	assert.Equal(t, "Listing not found", out.Error.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Internal Server Error", out.Error.Message)
}
