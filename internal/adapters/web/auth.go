package web

import (
	"net/http"
	"strings"

	"go.trai.ch/remotex/internal/core/domain"
)

const bearerPrefix = "Bearer "

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
// A missing or empty header, or one using another scheme, yields nil.
func bearerToken(r *http.Request) *string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return nil
	}
	return &token
}

func bearerCredential(r *http.Request) domain.Credential {
	return domain.TokenFromOptional(bearerToken(r))
}
