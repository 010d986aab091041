// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// CSRFCookieName holds the token the admin frontend reads and echoes
	// back. It is intentionally not HttpOnly for that reason.
	CSRFCookieName = "at_csrf"

	// CSRFHeaderName is the header state-changing requests must carry.
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRF is double-submit cookie protection for the admin API. GET, HEAD
// and OPTIONS pass through (and get a token cookie if missing); POST,
// PUT, PATCH and DELETE must echo the cookie value in X-CSRF-Token.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil || cookie.Value == "" {
				token := make([]byte, 32)
				if _, err := rand.Read(token); err != nil {
					reject(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				value := hex.EncodeToString(token)
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    value,
					Path:     "/",
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
				cookie = &http.Cookie{Value: value}
			}

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
				reject(w, http.StatusForbidden, "CSRF token mismatch")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
