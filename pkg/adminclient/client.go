// Package adminclient talks to the admin API and keeps the admin session
// valid for as long as the server's passwordVersion matches the one seen at
// login.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"hibiscus/internal/models/response_models"
)

const (
	DefaultVerifyInterval = 30 * time.Second
	DefaultUsername       = "admin"
	DefaultPassword       = "hibiscus2025"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrSessionInvalidated = errors.New("your session was invalidated, please log in again")
)

// VerifyOutcome is the result of one session check.
type VerifyOutcome int

const (
	// VerifyUnknown means the server could not answer; the session is kept.
	VerifyUnknown VerifyOutcome = iota
	VerifyValid
	VerifyInvalidated
)

func (o VerifyOutcome) String() string {
	switch o {
	case VerifyValid:
		return "valid"
	case VerifyInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Sessions SessionStore
	Logger   *zap.Logger

	fallbackUsername string
	fallbackPassword string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTP = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.Logger = logger }
}

// WithFallbackCredentials sets the pair accepted offline when the server is
// unreachable at login.
func WithFallbackCredentials(username, password string) Option {
	return func(c *Client) {
		c.fallbackUsername = username
		c.fallbackPassword = password
	}
}

func New(baseURL string, sessions SessionStore, opts ...Option) *Client {
	c := &Client{
		BaseURL:          strings.TrimRight(baseURL, "/"),
		HTTP:             &http.Client{Timeout: 15 * time.Second},
		Sessions:         sessions,
		Logger:           zap.NewNop(),
		fallbackUsername: DefaultUsername,
		fallbackPassword: DefaultPassword,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the stored session, or ErrNotAuthenticated.
func (c *Client) Session() (*Session, error) {
	session, err := c.Sessions.Load()
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Authenticated {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// Login authenticates against the server. If the server cannot be reached and
// the credentials equal the fallback pair, the session is granted locally at
// passwordVersion 1.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var body response_models.LoginResponse
	status, err := c.call(ctx, http.MethodPost, "/api/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, &body)
	if err != nil {
		if username == c.fallbackUsername && password == c.fallbackPassword {
			c.Logger.Warn("login server unreachable, using offline fallback", zap.Error(err))
			session := &Session{Authenticated: true, Username: username, PasswordVersion: 1, Offline: true}
			return session, c.Sessions.Save(session)
		}
		return nil, errors.Wrap(err, "login")
	}

	switch {
	case status == http.StatusUnauthorized:
		_ = c.Sessions.Clear()
		return nil, ErrInvalidCredentials
	case status != http.StatusOK || !body.Success:
		return nil, &APIError{Status: status, Message: body.Message}
	}

	session := &Session{
		Authenticated:   true,
		Username:        username,
		PasswordVersion: body.PasswordVersion,
		Token:           body.Token,
	}
	if err := c.Sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *Client) Logout() error {
	return c.Sessions.Clear()
}

// Verify checks the stored passwordVersion with the server. Only an explicit
// 401 ends the session; transport failures and other statuses report
// VerifyUnknown with the cause.
func (c *Client) Verify(ctx context.Context) (VerifyOutcome, error) {
	session, err := c.Session()
	if err != nil {
		return VerifyUnknown, err
	}

	var body response_models.VerifyResponse
	status, err := c.call(ctx, http.MethodPost, "/api/admin/verify", map[string]int{
		"passwordVersion": session.PasswordVersion,
	}, &body)
	if err != nil {
		return VerifyUnknown, err
	}

	switch {
	case status == http.StatusUnauthorized:
		if err := c.Sessions.Clear(); err != nil {
			return VerifyInvalidated, err
		}
		return VerifyInvalidated, nil
	case status == http.StatusOK && body.Valid:
		if session.Offline {
			session.Offline = false
			_ = c.Sessions.Save(session)
		}
		return VerifyValid, nil
	default:
		return VerifyUnknown, &APIError{Status: status, Message: body.Message}
	}
}

// Watch verifies the session at once and then every interval until ctx is
// done or the server invalidates the session, in which case onInvalidated is
// called and ErrSessionInvalidated returned.
func (c *Client) Watch(ctx context.Context, interval time.Duration, onInvalidated func()) error {
	if interval <= 0 {
		interval = DefaultVerifyInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		outcome, err := c.Verify(ctx)
		switch {
		case outcome == VerifyInvalidated:
			if onInvalidated != nil {
				onInvalidated()
			}
			return ErrSessionInvalidated
		case errors.Is(err, ErrNotAuthenticated):
			return err
		case err != nil:
			c.Logger.Warn("session check failed, keeping session", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Reset restores the default credentials on the server and returns the new
// passwordVersion. Every existing session, this one included, stops verifying.
func (c *Client) Reset(ctx context.Context) (int, error) {
	var body response_models.ResetResponse
	if err := c.expect(ctx, http.MethodPost, "/api/admin/reset", nil, &body, http.StatusOK); err != nil {
		return 0, err
	}
	return body.PasswordVersion, nil
}

func (c *Client) ListTours(ctx context.Context) ([]response_models.TourResponse, error) {
	var tours []response_models.TourResponse
	err := c.expect(ctx, http.MethodGet, "/api/tours", nil, &tours, http.StatusOK)
	return tours, err
}

func (c *Client) GetTour(ctx context.Context, id string) (*response_models.TourResponse, error) {
	var tour response_models.TourResponse
	if err := c.expect(ctx, http.MethodGet, "/api/tours/"+url.PathEscape(id), nil, &tour, http.StatusOK); err != nil {
		return nil, err
	}
	return &tour, nil
}

// PatchTour sends only the given fields.
func (c *Client) PatchTour(ctx context.Context, id string, fields map[string]interface{}) error {
	return c.expect(ctx, http.MethodPatch, "/api/tours/"+url.PathEscape(id), fields, nil, http.StatusOK)
}

// SetPopupTour makes id the only tour shown in the site popup by clearing the
// flag on every other tour first.
func (c *Client) SetPopupTour(ctx context.Context, id string) error {
	tours, err := c.ListTours(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, t := range tours {
		if t.ID == id {
			found = true
			continue
		}
		if t.ShowInPopup {
			if err := c.PatchTour(ctx, t.ID, map[string]interface{}{"showInPopup": false}); err != nil {
				return errors.Wrapf(err, "clear popup on %s", t.ID)
			}
		}
	}
	if !found {
		return &APIError{Status: http.StatusNotFound, Message: "Tour not found"}
	}
	return c.PatchTour(ctx, id, map[string]interface{}{"showInPopup": true})
}

func (c *Client) ListInquiries(ctx context.Context) ([]response_models.InquiryResponse, error) {
	var inquiries []response_models.InquiryResponse
	err := c.expect(ctx, http.MethodGet, "/api/inquiries", nil, &inquiries, http.StatusOK)
	return inquiries, err
}

func (c *Client) MarkInquiryRead(ctx context.Context, id string) error {
	return c.expect(ctx, http.MethodPatch, "/api/inquiries/"+url.PathEscape(id), map[string]string{"status": "read"}, nil, http.StatusOK)
}

func (c *Client) DeleteInquiry(ctx context.Context, id string) error {
	return c.expect(ctx, http.MethodDelete, "/api/inquiries/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// expect performs the call and turns any status other than want into an
// *APIError.
func (c *Client) expect(ctx context.Context, method, path string, in, out interface{}, want int) error {
	raw := json.RawMessage{}
	status, err := c.call(ctx, method, path, in, &raw)
	if err != nil {
		return err
	}
	if status != want {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &body)
		msg := body.Error
		if msg == "" {
			msg = body.Message
		}
		return &APIError{Status: status, Message: msg}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(raw, out), "decode response")
}

// call returns a non-nil error only for transport or decoding failures.
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) (int, error) {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if session, _ := c.Sessions.Load(); session != nil && session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil && resp.StatusCode < 500 {
			return resp.StatusCode, errors.Wrap(err, "decode response")
		}
	}
	return resp.StatusCode, nil
}
