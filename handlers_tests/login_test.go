package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"net/http"
	"testing"

	"banquet-admin/auth"
	"banquet-admin/config"
	"banquet-admin/database"
	"banquet-admin/handlers"
	"banquet-admin/menu"
	"banquet-admin/model"
	"banquet-admin/preview"
	"banquet-admin/router"
	"banquet-admin/session"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	weddingId = "65f1a2b3c4d5e6f708192a3b"
	offsiteId = "65f1a2b3c4d5e6f708192a3c"
	missingId = "65f1a2b3c4d5e6f708192aff"
)

const bookingsFixture = `[
	{
		"_id": "65f1a2b3c4d5e6f708192a3b",
		"name": "Sharma Wedding",
		"startDate": "2025-03-07T00:00:00Z",
		"time": "19:30",
		"pax": 250,
		"foodType": "Veg",
		"ratePlan": "Platinum",
		"hall": "Grand Ballroom",
		"customerRef": "BQ-1042",
		"categorizedMenu": {"_id": "m1", "Welcome_Drinks": ["Jaljeera"], "Main_Course": ["Paneer Tikka", "Naan"]}
	},
	{
		"_id": "65f1a2b3c4d5e6f708192a3c",
		"name": "Tech Offsite",
		"customerRef": "BQ-2002"
	}
]`

type Test struct {
	description   string
	method        string
	route         string
	token         string
	bodyinput     []byte
	expectedError bool
	expectedCode  int
	expectedBody  string
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// gateFetcher holds every fetch until release is closed.
type gateFetcher struct {
	release chan struct{}
}

func (f *gateFetcher) Name() string {
	return "gate"
}

func (f *gateFetcher) Fetch(ctx context.Context, _ *model.Booking, _ string) (bson.Raw, error) {
	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return bson.Marshal(bson.D{{Key: "categories", Value: bson.D{{Key: "Desserts", Value: bson.A{"Kheer"}}}}})
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func setupApp(t *testing.T, fetchers ...menu.Fetcher) *fiber.App {
	t.Helper()
	app, _ := setupHandler(t, session.NewStore(time.Hour), fetchers...)
	return app
}

func setupHandler(t *testing.T, sessions *session.Store, fetchers ...menu.Fetcher) (*fiber.App, *handlers.Handler) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookings.json")
	require.NoError(t, os.WriteFile(path, []byte(bookingsFixture), 0644))

	users := database.NewMemoryUserStore(
		model.UserData{Login: "admin@hotel.test", Name: "Asha", HashedPassword: hashed(t, "admin"), Role: model.RoleAdmin, IsActive: true},
		model.UserData{Login: "staff@hotel.test", Name: "Ravi", HashedPassword: hashed(t, "staff"), Role: model.RoleStaff, IsActive: true},
		model.UserData{Login: "former@hotel.test", Name: "Old", HashedPassword: hashed(t, "former"), Role: model.RoleStaff, IsActive: false},
		model.UserData{Login: "guest@hotel.test", Name: "Guest", HashedPassword: hashed(t, "guest"), Role: "Guest", IsActive: true},
	)

	previews := preview.NewManager(menu.NewResolver(zerolog.Nop(), fetchers...), 5*time.Second, time.Hour, zerolog.Nop())
	t.Cleanup(previews.Close)

	h := handlers.New(handlers.Deps{
		Config:   &config.Config{Sign: "test-sign", TokenTTL: time.Hour},
		Log:      zerolog.Nop(),
		Verifier: auth.NewStoreVerifier(users),
		Sessions: sessions,
		Bookings: database.NewLocalBookingStore(path),
		Previews: previews,
	})

	app := fiber.New()
	router.SetupRoutes(app, h)
	return app, h
}

func call(t *testing.T, app *fiber.App, method, route, token string, body []byte) (*http.Response, response) {
	t.Helper()

	req, _ := http.NewRequest(method, route, bytes.NewBuffer(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var parsed response
	if strings.HasPrefix(res.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	} else {
		parsed.Data = raw
	}
	return res, parsed
}

func login(t *testing.T, app *fiber.App, user, password string) string {
	t.Helper()

	res, body := call(t, app, "POST", "/login", "", []byte(`{"login":"`+user+`","password":"`+password+`"}`))
	require.Equal(t, fiber.StatusOK, res.StatusCode, body.Message)

	var data struct {
		Token    string `json:"token"`
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotEmpty(t, data.Token)
	assert.Equal(t, "/banquet/list-booking", data.Redirect)
	return data.Token
}

func TestLogin(t *testing.T) {
	tests := []Test{
		{
			description:   "login anonymous",
			route:         "/login",
			bodyinput:     nil,
			expectedError: true,
			expectedCode:  400,
		},
		{
			description:   "blank password",
			route:         "/login",
			bodyinput:     []byte("{\"login\":\"staff@hotel.test\",\"password\":\"   \"}"),
			expectedError: true,
			expectedCode:  400,
		},
		{
			description:   "user login",
			route:         "/login",
			bodyinput:     []byte("{\"login\":\" staff@hotel.test \",\"password\":\"staff\"}"),
			expectedError: false,
			expectedCode:  200,
			expectedBody:  "Welcome Ravi!",
		},
		{
			description:   "unknown user",
			route:         "/login",
			bodyinput:     []byte("{\"login\":\"nobody@hotel.test\",\"password\":\"staff\"}"),
			expectedError: true,
			expectedCode:  401,
			expectedBody:  "User not found!",
		},
		{
			description:   "wrong password",
			route:         "/login",
			bodyinput:     []byte("{\"login\":\"staff@hotel.test\",\"password\":\"admin\"}"),
			expectedError: true,
			expectedCode:  401,
			expectedBody:  "Incorrect password!",
		},
		{
			description:   "inactive account",
			route:         "/login",
			bodyinput:     []byte("{\"login\":\"former@hotel.test\",\"password\":\"former\"}"),
			expectedError: true,
			expectedCode:  403,
			expectedBody:  "This account is inactive!",
		}}

	app := setupApp(t)

	for _, test := range tests {
		res, body := call(t, app, "POST", test.route, "", test.bodyinput)

		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		if test.expectedError {
			assert.Equalf(t, "error", body.Status, test.description)
		} else {
			assert.Equalf(t, "success", body.Status, test.description)
		}
		if test.expectedBody != "" {
			assert.Equalf(t, test.expectedBody, body.Message, test.description)
		}
	}
}

func TestSecuredRoutes(t *testing.T) {
	app := setupApp(t)
	staff := login(t, app, "staff@hotel.test", "staff")
	guest := login(t, app, "guest@hotel.test", "guest")

	tests := []Test{
		{description: "health is public", method: "GET", route: "/health", expectedCode: 200},
		{description: "no token", method: "GET", route: "/bookings", expectedError: true, expectedCode: 400},
		{description: "garbage token", method: "GET", route: "/bookings", token: "not-a-jwt", expectedError: true, expectedCode: 401},
		{description: "role without access", method: "GET", route: "/bookings", token: guest, expectedError: true, expectedCode: 401},
		{description: "list bookings", method: "GET", route: "/bookings", token: staff, expectedCode: 200},
		{description: "get booking", method: "GET", route: "/bookings/" + weddingId, token: staff, expectedCode: 200, expectedBody: "Sharma Wedding"},
		{description: "missing booking", method: "GET", route: "/bookings/" + missingId, token: staff, expectedError: true, expectedCode: 404},
		{description: "preview of missing booking", method: "POST", route: "/bookings/" + missingId + "/chef-preview", token: staff, expectedError: true, expectedCode: 404},
		{description: "missing preview", method: "GET", route: "/previews/unknown", token: staff, expectedError: true, expectedCode: 404},
		{description: "preview list is admin only", method: "GET", route: "/previews", token: staff, expectedError: true, expectedCode: 401},
	}

	for _, test := range tests {
		res, body := call(t, app, test.method, test.route, test.token, test.bodyinput)

		assert.Equalf(t, test.expectedCode, res.StatusCode, test.description)
		if test.expectedError {
			assert.Equalf(t, "error", body.Status, test.description)
		}
		if test.expectedBody != "" {
			assert.Containsf(t, string(body.Data), test.expectedBody, test.description)
		}
	}
}

func TestGetBookingsReturnsAll(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "staff@hotel.test", "staff")

	res, body := call(t, app, "GET", "/bookings", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	var bookings []model.Booking
	require.NoError(t, json.Unmarshal(body.Data, &bookings))
	require.Len(t, bookings, 2)
	assert.Equal(t, "BQ-1042", bookings[0].CustomerRef)
	assert.Equal(t, 3, bookings[0].CategorizedMenu.Len())
}

type previewData struct {
	Id     string `json:"id"`
	Status string `json:"status"`
	Menu   struct {
		Kind   string `json:"kind"`
		Source string `json:"source"`
	} `json:"menu"`
	Sheet *struct {
		Title string `json:"title"`
	} `json:"sheet"`
}

func openPreview(t *testing.T, app *fiber.App, token, bookingId string) previewData {
	t.Helper()

	res, body := call(t, app, "POST", "/bookings/"+bookingId+"/chef-preview", token, nil)
	require.Equal(t, fiber.StatusAccepted, res.StatusCode, body.Message)

	var p previewData
	require.NoError(t, json.Unmarshal(body.Data, &p))
	require.NotEmpty(t, p.Id)
	return p
}

func awaitReady(t *testing.T, app *fiber.App, token, previewId string) previewData {
	t.Helper()

	var p previewData
	require.Eventually(t, func() bool {
		res, body := call(t, app, "GET", "/previews/"+previewId, token, nil)
		if res.StatusCode != fiber.StatusOK {
			return false
		}
		p = previewData{}
		return json.Unmarshal(body.Data, &p) == nil && p.Status == string(preview.StatusReady)
	}, 2*time.Second, 10*time.Millisecond)
	return p
}

func TestChefPreviewPrintAndDismiss(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "staff@hotel.test", "staff")

	opened := openPreview(t, app, token, weddingId)
	ready := awaitReady(t, app, token, opened.Id)

	assert.Equal(t, string(model.MenuCategorized), ready.Menu.Kind)
	assert.Equal(t, menu.SourceBooking, ready.Menu.Source)
	require.NotNil(t, ready.Sheet)
	assert.True(t, strings.HasPrefix(ready.Sheet.Title, "Chef_Instructions_BQ-1042_"))

	res, body := call(t, app, "GET", "/previews/"+opened.Id+"/print", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get(fiber.HeaderContentDisposition), "Chef_Instructions_BQ-1042_")
	text := string(body.Data)
	assert.Contains(t, text, "BUDDHA - CHEF INSTRUCTIONS")
	assert.Contains(t, text, "WELCOME DRINKS")
	assert.Contains(t, text, "MAIN COURSE")
	assert.Contains(t, text, "Paneer Tikka")
	assert.NotContains(t, text, "m1")

	res, _ = call(t, app, "DELETE", "/previews/"+opened.Id, token, nil)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, _ = call(t, app, "GET", "/previews/"+opened.Id, token, nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestChefPreviewEmptyMenu(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "staff@hotel.test", "staff")

	opened := openPreview(t, app, token, offsiteId)
	ready := awaitReady(t, app, token, opened.Id)
	assert.Equal(t, string(model.MenuEmpty), ready.Menu.Kind)

	res, body := call(t, app, "GET", "/previews/"+opened.Id+"/print", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Contains(t, string(body.Data), "No menu items selected")
}

func TestPrintWhileLoadingConflicts(t *testing.T) {
	gate := &gateFetcher{release: make(chan struct{})}
	app := setupApp(t, gate)
	token := login(t, app, "staff@hotel.test", "staff")

	opened := openPreview(t, app, token, offsiteId)
	assert.Equal(t, string(preview.StatusLoading), opened.Status)

	res, body := call(t, app, "GET", "/previews/"+opened.Id+"/print", token, nil)
	assert.Equal(t, fiber.StatusConflict, res.StatusCode)
	assert.Equal(t, "error", body.Status)

	close(gate.release)
	ready := awaitReady(t, app, token, opened.Id)
	assert.Equal(t, string(model.MenuCategorized), ready.Menu.Kind)
	assert.Equal(t, "gate:categories", ready.Menu.Source)
}

func TestPreviewOwnership(t *testing.T) {
	app := setupApp(t)
	owner := login(t, app, "staff@hotel.test", "staff")
	other := login(t, app, "staff@hotel.test", "staff")
	admin := login(t, app, "admin@hotel.test", "admin")

	opened := openPreview(t, app, owner, weddingId)

	res, _ := call(t, app, "GET", "/previews/"+opened.Id, other, nil)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	res, _ = call(t, app, "DELETE", "/previews/"+opened.Id, other, nil)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)

	res, _ = call(t, app, "GET", "/previews/"+opened.Id, admin, nil)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	res, body := call(t, app, "GET", "/previews", admin, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	var listed []previewData
	require.NoError(t, json.Unmarshal(body.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, opened.Id, listed[0].Id)
}

func TestLogoutEndsSession(t *testing.T) {
	app := setupApp(t)
	token := login(t, app, "staff@hotel.test", "staff")
	admin := login(t, app, "admin@hotel.test", "admin")
	opened := openPreview(t, app, token, weddingId)

	res, _ := call(t, app, "POST", "/logout", token, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	res, body := call(t, app, "GET", "/bookings", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "error", body.Status)

	res, _ = call(t, app, "GET", "/previews/"+opened.Id, admin, nil)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestSweepEndsExpiredSessions(t *testing.T) {
	app, h := setupHandler(t, session.NewStore(50*time.Millisecond))
	token := login(t, app, "staff@hotel.test", "staff")

	sess := h.Sessions.Start(model.UserData{Login: "staff@hotel.test", Role: model.RoleStaff})
	booking, err := h.Bookings.GetBooking(context.Background(), weddingId)
	require.NoError(t, err)
	h.Previews.Open(booking, sess.Id, token)
	h.Previews.Wait()
	require.Len(t, h.Previews.List(), 1)

	time.Sleep(100 * time.Millisecond)

	res, _ := call(t, app, "GET", "/bookings", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	h.Sweep()
	assert.Zero(t, h.Sessions.Len())
	assert.Empty(t, h.Previews.List())
}
