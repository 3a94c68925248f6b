package auth

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// ExtractAccessToken returns the token from an "Authorization: Bearer <token>" header.
func ExtractAccessToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
}
