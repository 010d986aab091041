// auth_flow_test.go contains handler integration tests for the Auth handler
// methods: Login, Logout, TwoFASetup, TwoFAVerify, and Me. Tests exercise
// real database and Valkey connections; they are skipped when those
// services are unavailable.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"

	"atelier/internal/models"
	"atelier/internal/session"
)

// newAuthUser creates a throwaway user for auth flow tests.
func newAuthUser(t *testing.T, env *testEnv, password string) *models.User {
	t.Helper()
	email := "auth-" + uuid.New().String()[:8] + "@test.local"
	t.Cleanup(func() { cleanUsers(t, env.DB, email) })
	user, err := env.Users.Create(email, password, "Auth Test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// loggedInRequest creates a live session for the user and returns a
// request carrying both the session cookie and the context data the
// LoadSession middleware would have attached.
func loggedInRequest(t *testing.T, env *testEnv, method, target string, body any, user *models.User, twoFADone bool) *http.Request {
	t.Helper()

	data := &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   twoFADone,
	}

	rec := httptest.NewRecorder()
	if _, err := env.Sessions.Create(context.Background(), rec, data); err != nil {
		t.Fatalf("create session: %v", err)
	}

	var req *http.Request
	if body != nil {
		req = jsonRequest(t, method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req.WithContext(ctxWithSession(req.Context(), data))
}

func TestLogin_ValidCredentials_NeedsSetup(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	req := jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    user.Email,
		"password": "correct-horse-battery",
	})
	rec := httptest.NewRecorder()
	env.Auth.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Login: got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// No TOTP enrolled yet, so the client is told to run setup.
	var body map[string]string
	decodeResponse(t, rec, &body)
	if body["two_fa"] != "setup" {
		t.Errorf("Login: two_fa = %q, want setup", body["two_fa"])
	}

	// A session cookie should have been set.
	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s cookie to be set after successful login", session.CookieName)
	}
}

func TestLogin_TOTPEnabled_NeedsVerify(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	if err := env.Users.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}
	if err := env.Users.EnableTOTP(user.ID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}

	req := jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    user.Email,
		"password": "correct-horse-battery",
	})
	rec := httptest.NewRecorder()
	env.Auth.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Login: got status %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]string
	decodeResponse(t, rec, &body)
	if body["two_fa"] != "verify" {
		t.Errorf("Login: two_fa = %q, want verify", body["two_fa"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	req := jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    user.Email,
		"password": "incorrect-horse",
	})
	rec := httptest.NewRecorder()
	env.Auth.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Login wrong password: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    "nobody-" + uuid.New().String()[:8] + "@test.local",
		"password": "whatever-password",
	})
	rec := httptest.NewRecorder()
	env.Auth.Login(rec, req)

	// Same message as a wrong password so the endpoint does not leak
	// which emails exist.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Login unknown email: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTwoFASetup_ReturnsSecretAndQR(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	req := loggedInRequest(t, env, http.MethodPost, "/admin/2fa/setup", nil, user, false)
	rec := httptest.NewRecorder()
	env.Auth.TwoFASetup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("TwoFASetup: got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var body map[string]string
	decodeResponse(t, rec, &body)
	if body["secret"] == "" {
		t.Error("TwoFASetup: missing secret")
	}
	if body["qr_code"] == "" {
		t.Error("TwoFASetup: missing qr_code")
	}

	// The secret must be persisted for the verify step.
	stored, err := env.Users.FindByID(user.ID)
	if err != nil || stored == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.TOTPSecret == nil || *stored.TOTPSecret != body["secret"] {
		t.Error("TwoFASetup: secret not persisted")
	}
}

func TestTwoFASetup_NoSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/2fa/setup", nil)
	rec := httptest.NewRecorder()
	env.Auth.TwoFASetup(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("TwoFASetup no session: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTwoFAVerify_ValidCode(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	const secret = "JBSWY3DPEHPK3PXP"
	if err := env.Users.SetTOTPSecret(user.ID, secret); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}

	req := loggedInRequest(t, env, http.MethodPost, "/admin/2fa/verify", map[string]string{"code": code}, user, false)
	rec := httptest.NewRecorder()
	env.Auth.TwoFAVerify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("TwoFAVerify: got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// First successful verify enables TOTP on the account.
	stored, err := env.Users.FindByID(user.ID)
	if err != nil || stored == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !stored.TOTPEnabled {
		t.Error("TwoFAVerify: TOTP not enabled after first verify")
	}

	// The live session is marked complete.
	sess, err := env.Sessions.Get(context.Background(), req)
	if err != nil || sess == nil {
		t.Fatalf("session get: %v", err)
	}
	if !sess.TwoFADone {
		t.Error("TwoFAVerify: session not marked two_fa_done")
	}
}

func TestTwoFAVerify_InvalidCode(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	if err := env.Users.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set totp secret: %v", err)
	}

	req := loggedInRequest(t, env, http.MethodPost, "/admin/2fa/verify", map[string]string{"code": "000000"}, user, false)
	rec := httptest.NewRecorder()
	env.Auth.TwoFAVerify(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("TwoFAVerify invalid code: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestTwoFAVerify_SetupNotStarted(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	req := loggedInRequest(t, env, http.MethodPost, "/admin/2fa/verify", map[string]string{"code": "123456"}, user, false)
	rec := httptest.NewRecorder()
	env.Auth.TwoFAVerify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("TwoFAVerify without setup: got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	user := newAuthUser(t, env, "correct-horse-battery")

	req := loggedInRequest(t, env, http.MethodPost, "/admin/logout", nil, user, true)
	rec := httptest.NewRecorder()
	env.Auth.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Logout: got status %d, want %d", rec.Code, http.StatusOK)
	}

	// The session must be gone from Valkey.
	sess, err := env.Sessions.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("session get: %v", err)
	}
	if sess != nil {
		t.Error("Logout: session still resolvable after logout")
	}
}

func TestMe_ReturnsIdentity(t *testing.T) {
	env := newTestEnv(t)

	sess := testSession(uuid.New(), "me@test.local", "editor", true)
	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	env.Auth.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Me: got status %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	decodeResponse(t, rec, &body)
	if body["email"] != "me@test.local" || body["role"] != "editor" {
		t.Errorf("Me: body = %v", body)
	}
}

func TestMe_NoSession(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	rec := httptest.NewRecorder()
	env.Auth.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Me no session: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
