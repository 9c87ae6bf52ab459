package listings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	listsvc "foodshare-backend/internal/application/listings"
	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/infrastructure/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC)

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	organizer map[string]interface{}
	ngo       map[string]interface{}
	otherNGO  map[string]interface{}
}

func sessionUser(t *testing.T, db *gorm.DB, name, orgName string, role domain.Role) map[string]interface{} {
	org := &domain.Org{OrgName: orgName, Kind: role}
	require.NoError(t, db.Create(org).Error)
	u := &domain.User{Fullname: name, Email: uuid.NewString() + "@example.org", PasswordHash: "x", Role: role, OrgID: org.OrgID}
	require.NoError(t, db.Create(u).Error)
	return map[string]interface{}{
		"user_id":  u.UserID.String(),
		"fullname": name,
		"role":     string(role),
		"org_id":   org.OrgID.String(),
		"org_name": orgName,
	}
}

func setupListingsTest(t *testing.T) *testEnv {
	db, err := database.Open("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{db: db}
	env.organizer = sessionUser(t, db, "Sarah Johnson", "Tech Conference Group", domain.RoleOrganizer)
	env.ngo = sessionUser(t, db, "David Martinez", "City Food Bank", domain.RoleNGO)
	env.otherNGO = sessionUser(t, db, "Ana Lopez", "Harbor Shelter", domain.RoleNGO)

	h := &Handlers{
		Service:  &listsvc.Service{DB: db, Now: func() time.Time { return testNow }},
		Location: time.UTC,
	}
	users := map[string]map[string]interface{}{"organizer": env.organizer, "ngo": env.ngo, "other": env.otherNGO}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if u, ok := users[c.Get("X-Test-User")]; ok {
			c.Locals("user", u)
		}
		return c.Next()
	})
	app.Post("/create-listing", h.CreateListing)
	app.Get("/get-all-listings", h.GetAllListings)
	app.Get("/get-listing/:listing_id", h.GetListingByID)
	app.Get("/get-my-listings", h.GetMyListings)
	app.Get("/get-available-listings", h.GetAvailableListings)
	app.Get("/get-claimed-listings", h.GetClaimedListings)
	app.Post("/claim-listing", h.ClaimListing)
	app.Post("/collect-listing", h.CollectListing)
	app.Get("/stats", h.GetStats)
	env.app = app
	return env
}

func (e *testEnv) do(t *testing.T, method, path, user string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var req = httptest.NewRequest(method, path, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func listingBody() map[string]interface{} {
	return map[string]interface{}{
		"event_name":    "Tech Meetup",
		"food_type":     "Pizza",
		"quantity":      "20 slices",
		"location":      "Innovation Hub",
		"address":       "1 Dev Way",
		"contact_phone": "+1 (555) 000-1111",
		"contact_email": "sarah@techconf.com",
		"expiry_time":   "2024-01-15T18:00",
		"description":   "Leftover pizza.",
	}
}

func errorMessage(out map[string]interface{}) string {
	e, _ := out["error"].(map[string]interface{})
	s, _ := e["message"].(string)
	return s
}

func dataList(out map[string]interface{}) []interface{} {
	l, _ := out["data"].([]interface{})
	return l
}

func TestCreateListing(t *testing.T) {
	env := setupListingsTest(t)

	status, out := env.do(t, "POST", "/create-listing", "organizer", listingBody())
	require.Equal(t, fiber.StatusCreated, status)
	data, _ := out["data"].(map[string]interface{})
	assert.Equal(t, "available", data["status"])
	assert.Equal(t, "Sarah Johnson", data["organizer_name"])
	assert.Equal(t, "1h 30m left", data["time_left"])
	assert.Equal(t, "now", data["posted_ago"])

	status, out = env.do(t, "GET", "/get-my-listings", "organizer", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, dataList(out), 1)

	status, out = env.do(t, "GET", "/get-available-listings", "ngo", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Len(t, dataList(out), 1)
}

func TestCreateListing_Rejections(t *testing.T) {
	env := setupListingsTest(t)

	body := listingBody()
	delete(body, "food_type")
	status, out := env.do(t, "POST", "/create-listing", "organizer", body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, errorMessage(out), "Missing required field: food_type")

	body = listingBody()
	body["expiry_time"] = "tomorrow evening"
	status, _ = env.do(t, "POST", "/create-listing", "organizer", body)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, "POST", "/create-listing", "ngo", listingBody())
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, "POST", "/create-listing", "", listingBody())
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestClaimAndCollect(t *testing.T) {
	env := setupListingsTest(t)

	_, out := env.do(t, "POST", "/create-listing", "organizer", listingBody())
	data, _ := out["data"].(map[string]interface{})
	id, _ := data["listing_id"].(string)
	require.NotEmpty(t, id)

	status, out := env.do(t, "POST", "/claim-listing", "ngo", map[string]string{"listing_id": id})
	require.Equal(t, fiber.StatusOK, status)
	data, _ = out["data"].(map[string]interface{})
	assert.Equal(t, "claimed", data["status"])
	assert.Equal(t, "City Food Bank", data["claimed_by"])

	status, out = env.do(t, "POST", "/claim-listing", "other", map[string]string{"listing_id": id})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, errorMessage(out), "Invalid status transition")

	_, out = env.do(t, "GET", "/get-available-listings", "ngo", nil)
	assert.Empty(t, dataList(out))
	_, out = env.do(t, "GET", "/get-claimed-listings", "ngo", nil)
	assert.Len(t, dataList(out), 1)

	status, _ = env.do(t, "POST", "/collect-listing", "other", map[string]string{"listing_id": id})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, out = env.do(t, "POST", "/collect-listing", "ngo", map[string]string{"listing_id": id})
	require.Equal(t, fiber.StatusOK, status)
	data, _ = out["data"].(map[string]interface{})
	assert.Equal(t, "collected", data["status"])

	status, _ = env.do(t, "POST", "/collect-listing", "ngo", map[string]string{"listing_id": id})
	assert.Equal(t, fiber.StatusConflict, status)

	_, out = env.do(t, "GET", "/get-claimed-listings", "ngo", nil)
	assert.Len(t, dataList(out), 1)

	status, out = env.do(t, "GET", "/stats", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	data, _ = out["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["collected"])
}

func TestClaimListing_BadRequests(t *testing.T) {
	env := setupListingsTest(t)

	status, _ := env.do(t, "POST", "/claim-listing", "ngo", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, "POST", "/claim-listing", "ngo", map[string]string{"listing_id": "not-a-uuid"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, out := env.do(t, "POST", "/claim-listing", "ngo", map[string]string{"listing_id": uuid.NewString()})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Listing not found", errorMessage(out))
}

func TestGetListingByID(t *testing.T) {
	env := setupListingsTest(t)

	status, _ := env.do(t, "GET", "/get-listing/not-a-uuid", "ngo", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, "GET", "/get-listing/"+uuid.NewString(), "ngo", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	_, out := env.do(t, "POST", "/create-listing", "organizer", listingBody())
	data, _ := out["data"].(map[string]interface{})
	status, out = env.do(t, "GET", "/get-listing/"+data["listing_id"].(string), "ngo", nil)
	assert.Equal(t, fiber.StatusOK, status)
	data, _ = out["data"].(map[string]interface{})
	assert.Equal(t, "Pizza", data["food_type"])

	status, out = env.do(t, "GET", "/get-all-listings", "ngo", nil)
	assert.Equal(t, fiber.StatusOK, status)
	meta, _ := out["metadata"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["count"])
}
