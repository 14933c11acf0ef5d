package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hibiscus/internal/api/apitest"
)

func newTestClient(t *testing.T, opts apitest.Options) (*Client, *apitest.Server) {
	t.Helper()
	srv, err := apitest.New(opts)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)

	return New(ts.URL, NewMemorySessionStore()), srv
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestLoginAndVerify(t *testing.T) {
	client, _ := newTestClient(t, apitest.Options{})
	ctx := context.Background()

	_, err := client.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err := client.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, 1, session.PasswordVersion)
	assert.False(t, session.Offline)

	outcome, err := client.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyValid, outcome)
}

func TestResetInvalidatesOtherSessions(t *testing.T) {
	client, _ := newTestClient(t, apitest.Options{})
	other := New(client.BaseURL, NewMemorySessionStore())
	ctx := context.Background()

	_, err := client.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)
	_, err = other.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)

	version, err := client.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	outcome, err := other.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, VerifyInvalidated, outcome)

	_, err = other.Session()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	session, err := other.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)
	assert.Equal(t, 2, session.PasswordVersion)
}

func TestGuardedCallsCarryToken(t *testing.T) {
	client, _ := newTestClient(t, apitest.Options{Guard: true})
	ctx := context.Background()

	_, err := client.ListInquiries(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	session, err := client.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	inquiries, err := client.ListInquiries(ctx)
	require.NoError(t, err)
	assert.Empty(t, inquiries)
}

func TestVerifyWithoutSession(t *testing.T) {
	client, _ := newTestClient(t, apitest.Options{})

	outcome, err := client.Verify(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, VerifyUnknown, outcome)
}

func TestVerifyServerErrorKeepsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"valid":false,"message":"Verification failed"}`))
	}))
	defer ts.Close()

	sessions := NewMemorySessionStore()
	require.NoError(t, sessions.Save(&Session{Authenticated: true, Username: "admin", PasswordVersion: 3}))
	client := New(ts.URL, sessions)

	outcome, err := client.Verify(context.Background())
	assert.Error(t, err)
	assert.Equal(t, VerifyUnknown, outcome)

	session, err := client.Session()
	require.NoError(t, err)
	assert.Equal(t, 3, session.PasswordVersion)
}

func TestLoginOfflineFallback(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := New(url, NewMemorySessionStore())
	ctx := context.Background()

	session, err := client.Login(ctx, DefaultUsername, DefaultPassword)
	require.NoError(t, err)
	assert.True(t, session.Offline)
	assert.Equal(t, 1, session.PasswordVersion)

	_, err = client.Login(ctx, "admin", "something-else")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	outcome, err := client.Verify(ctx)
	assert.Error(t, err)
	assert.Equal(t, VerifyUnknown, outcome)
}

func TestWatchStopsOnInvalidation(t *testing.T) {
	client, srv := newTestClient(t, apitest.Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)

	_, err = srv.Admin.Reset(ctx)
	require.NoError(t, err)

	called := false
	err = client.Watch(ctx, 10*time.Millisecond, func() { called = true })
	assert.ErrorIs(t, err, ErrSessionInvalidated)
	assert.True(t, called)
}

func TestWatchReturnsOnCancel(t *testing.T) {
	client, _ := newTestClient(t, apitest.Options{})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := client.Login(ctx, "admin", "hibiscus2025")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- client.Watch(ctx, 10*time.Millisecond, nil) }()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestSetPopupTour(t *testing.T) {
	client, _ := newTestClient(t, apitest.Options{})
	ctx := context.Background()

	tours, err := client.ListTours(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tours)

	target := tours[len(tours)-1].ID
	require.NoError(t, client.SetPopupTour(ctx, target))

	tours, err = client.ListTours(ctx)
	require.NoError(t, err)
	for _, tour := range tours {
		assert.Equal(t, tour.ID == target, tour.ShowInPopup, tour.ID)
	}

	err = client.SetPopupTour(ctx, "no-such-tour")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestInquiryLifecycle(t *testing.T) {
	client, srv := newTestClient(t, apitest.Options{})
	ctx := context.Background()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries",
		jsonBody(t, map[string]string{"name": "Asha", "email": "asha@example.com", "message": "Goa in May?"}))
	req.Header.Set("Content-Type", "application/json")
	srv.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	inquiries, err := client.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "new", inquiries[0].Status)

	require.NoError(t, client.MarkInquiryRead(ctx, inquiries[0].ID))
	inquiries, err = client.ListInquiries(ctx)
	require.NoError(t, err)
	assert.Equal(t, "read", inquiries[0].Status)

	require.NoError(t, client.DeleteInquiry(ctx, inquiries[0].ID))
	err = client.DeleteInquiry(ctx, inquiries[0].ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestFileSessionStore(t *testing.T) {
	store := NewFileSessionStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, store.Save(&Session{Authenticated: true, Username: "admin", PasswordVersion: 4, Token: "tok"}))
	session, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, &Session{Authenticated: true, Username: "admin", PasswordVersion: 4, Token: "tok"}, session)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	session, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)
}
