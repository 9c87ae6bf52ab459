package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ServesHealthOverNetHTTP(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("EXPIRY_REMINDER_SCHEDULE", "")

	app, cfg, err := New()
	require.NoError(t, err)
	defer app.Close()
	assert.False(t, cfg.SeedDemoData)

	rec := httptest.NewRecorder()
	HTTPHandler(app).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, float64(0), out.Data["total_listings"])
}
