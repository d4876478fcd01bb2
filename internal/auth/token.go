// Package auth carries the authenticated caller through request contexts.
package auth

import (
	"net/http"
	"strings"
)

const (
	// AccessTokenCookie is consulted before the Authorization header.
	AccessTokenCookie = "access_token"
	// DeviceIDHeader identifies an anonymous storefront install.
	DeviceIDHeader = "X-Device-ID"

	maxDeviceIDLen = 64
)

// ExtractAccessToken returns the bearer token from the access cookie or,
// failing that, the Authorization header. It returns "" when neither is set.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// DeviceID returns the trimmed X-Device-ID header. Values longer than 64
// bytes or containing anything but letters, digits, '-' and '_' are ignored.
func DeviceID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(DeviceIDHeader))
	if id == "" || len(id) > maxDeviceIDLen {
		return ""
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ""
		}
	}
	return id
}
