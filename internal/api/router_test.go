package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hibiscus/internal/api/apitest"
)

type stubLimiter struct{ allowed bool }

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allowed, nil }

func newServer(t *testing.T, opts apitest.Options) *apitest.Server {
	t.Helper()
	srv, err := apitest.New(opts)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *apitest.Server, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthAndFallbacks(t *testing.T) {
	srv := newServer(t, apitest.Options{})

	w := do(t, srv, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Server is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = do(t, srv, http.MethodPut, "/api/tours", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	var body map[string]interface{}
	decode(t, w, &body)
	assert.Equal(t, "Method not allowed", body["error"])

	w = do(t, srv, http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToursEndpoints(t *testing.T) {
	srv := newServer(t, apitest.Options{})

	w := do(t, srv, http.MethodGet, "/api/tours", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var seeded []map[string]interface{}
	decode(t, w, &seeded)
	require.Len(t, seeded, 9)
	for _, tour := range seeded {
		assert.NotEmpty(t, tour["id"])
		assert.NotContains(t, tour, "_id")
	}

	w = do(t, srv, http.MethodPost, "/api/tours", map[string]interface{}{
		"id":         "goa-escape",
		"title":      "Goa Escape",
		"days":       3,
		"price":      15999,
		"category":   "Relaxation",
		"highlights": []string{"Beaches", "Forts"},
		"itinerary": []map[string]interface{}{
			{"day": 1, "title": "Arrive", "description": "Check in"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	assert.Equal(t, "goa-escape", created["id"])
	assert.NotEmpty(t, created["createdAt"])

	w = do(t, srv, http.MethodPost, "/api/tours", map[string]interface{}{"id": "goa-escape", "title": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, srv, http.MethodPost, "/api/tours", map[string]interface{}{"title": "Bad", "category": "Shopping"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/tours/goa-escape", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched map[string]interface{}
	decode(t, w, &fetched)
	assert.Equal(t, []interface{}{"Beaches", "Forts"}, fetched["highlights"])

	w = do(t, srv, http.MethodPatch, "/api/tours/goa-escape", map[string]interface{}{"showInPopup": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(t, srv, http.MethodGet, "/api/tours/goa-escape", nil)
	decode(t, w, &fetched)
	assert.Equal(t, true, fetched["showInPopup"])
	assert.Equal(t, "Goa Escape", fetched["title"])

	w = do(t, srv, http.MethodGet, "/api/tours/unknown-tour", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var notFound map[string]interface{}
	decode(t, w, &notFound)
	assert.Equal(t, "Tour not found", notFound["error"])

	w = do(t, srv, http.MethodPatch, "/api/tours/unknown-tour", map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodDelete, "/api/tours/goa-escape", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, srv, http.MethodDelete, "/api/tours/goa-escape", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInquiryEndpoints(t *testing.T) {
	srv := newServer(t, apitest.Options{})

	w := do(t, srv, http.MethodPost, "/api/inquiries", map[string]string{
		"name":         "Asha",
		"email":        "asha@example.com",
		"phone":        "",
		"tripLocation": "Kerala",
		"message":      "Honeymoon",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	decode(t, w, &created)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "new", created["status"])
	assert.NotEmpty(t, created["date"])

	w = do(t, srv, http.MethodPatch, "/api/inquiries/"+id, map[string]string{"status": "read"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, srv, http.MethodPatch, "/api/inquiries/"+id, map[string]string{"status": "read"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, srv, http.MethodPatch, "/api/inquiries/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPatch, "/api/inquiries/"+id, map[string]string{"status": "new"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/inquiries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "read", list[0]["status"])

	w = do(t, srv, http.MethodPatch, "/api/inquiries/garbage", map[string]string{"status": "read"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, srv, http.MethodDelete, "/api/inquiries/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodDelete, "/api/inquiries/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInquiryRateLimited(t *testing.T) {
	srv := newServer(t, apitest.Options{Limiter: stubLimiter{allowed: false}})

	w := do(t, srv, http.MethodPost, "/api/inquiries", map[string]string{"name": "Spam"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Malformed bodies are rejected before the limiter is consulted.
	w = do(t, srv, http.MethodPost, "/api/inquiries", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInquiryBodySurvivesRateLimit(t *testing.T) {
	srv := newServer(t, apitest.Options{Limiter: stubLimiter{allowed: true}})

	w := do(t, srv, http.MethodPost, "/api/inquiries", map[string]string{"name": "Asha", "tripLocation": "Goa"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	decode(t, w, &created)
	assert.Equal(t, "Asha", created["name"])
	assert.Equal(t, "Goa", created["tripLocation"])
}

func TestAdminProtocol(t *testing.T) {
	srv := newServer(t, apitest.Options{})

	w := do(t, srv, http.MethodGet, "/api/admin/check", nil)
	assert.JSONEq(t, `{"exists":true}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "hibiscus2025"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Login successful","passwordVersion":1}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/admin/verify", map[string]interface{}{"passwordVersion": 1})
	assert.JSONEq(t, `{"valid":true,"passwordVersion":1}`, w.Body.String())
	w = do(t, srv, http.MethodPost, "/api/admin/verify", map[string]interface{}{"passwordVersion": "1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPost, "/api/admin/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reset map[string]interface{}
	decode(t, w, &reset)
	assert.Equal(t, true, reset["success"])
	assert.EqualValues(t, 2, reset["passwordVersion"])

	w = do(t, srv, http.MethodPost, "/api/admin/verify", map[string]interface{}{"passwordVersion": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"valid":false,"message":"Session expired - password was changed"}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/admin/verify", map[string]interface{}{"passwordVersion": 2})
	assert.JSONEq(t, `{"valid":true,"passwordVersion":2}`, w.Body.String())

	w = do(t, srv, http.MethodGet, "/api/admin/login", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAdminEmptyBodiesAreUnauthorized(t *testing.T) {
	srv := newServer(t, apitest.Options{})

	w := do(t, srv, http.MethodPost, "/api/admin/login", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/admin/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"valid":false,"message":"Session expired - password was changed"}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/admin/verify", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminGuardedRoutes(t *testing.T) {
	srv := newServer(t, apitest.Options{Guard: true})

	w := do(t, srv, http.MethodGet, "/api/inquiries", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, srv, http.MethodGet, "/api/tours", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "hibiscus2025"})
	require.Equal(t, http.StatusOK, w.Code)
	var login map[string]interface{}
	decode(t, w, &login)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	w = do(t, srv, http.MethodGet, "/api/inquiries", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPost, "/api/admin/reset", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodGet, "/api/inquiries", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImageEndpoints(t *testing.T) {
	srv := newServer(t, apitest.Options{})

	raw := make([]byte, 128)
	copy(raw, "\x89PNG\r\n\x1a\n")
	w := do(t, srv, http.MethodPost, "/api/upload/image", map[string]string{
		"imageData": "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw),
		"filename":  "cover.png",
		"mimetype":  "image/png",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var uploaded map[string]interface{}
	decode(t, w, &uploaded)
	assert.Equal(t, true, uploaded["success"])
	id, _ := uploaded["id"].(string)
	assert.Equal(t, "/api/images/"+id, uploaded["imagePath"])
	assert.Regexp(t, `^tour-\d+-\d+\.png$`, uploaded["filename"])

	w = do(t, srv, http.MethodGet, "/api/images/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
	assert.Equal(t, raw, w.Body.Bytes())

	w = do(t, srv, http.MethodGet, "/api/images/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, srv, http.MethodGet, "/api/images/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/api/upload/image", map[string]string{"imageData": "data:text/plain;base64,aGk="})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid image format"}`, w.Body.String())

	w = do(t, srv, http.MethodPost, "/api/upload/image", map[string]string{})
	assert.JSONEq(t, `{"success":false,"error":"No image data provided"}`, w.Body.String())
}
