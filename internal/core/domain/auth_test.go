package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/remotex/internal/core/domain"
)

func strPtr(s string) *string { return &s }

// everyCredential covers each credential variant including absent values.
func everyCredential() map[string]domain.Credential {
	return map[string]domain.Credential{
		"nil":              nil,
		"empty":            domain.EmptyCredential{},
		"empty token":      domain.EmptyToken(),
		"nil optional":     domain.TokenFromOptional(nil),
		"random token":     domain.NewTokenCredential("Token"),
		"empty string":     domain.NewTokenCredential(""),
		"password":         domain.PasswordCredential{Username: "alice", Password: "pw1"},
		"empty password":   domain.PasswordCredential{},
		"optional present": domain.TokenFromOptional(strPtr("secret-a")),
	}
}

func TestAuthorization_Disabled_PermitsEverything(t *testing.T) {
	auth := domain.Authorization{Enabled: false}

	for name, cred := range everyCredential() {
		t.Run(name, func(t *testing.T) {
			assert.True(t, auth.Permits(cred))
		})
	}
}

func TestAuthorization_Disabled_ShortCircuitsWithSecrets(t *testing.T) {
	auth := domain.Authorization{
		Enabled: false,
		Tokens:  []domain.Token{{Name: "t1", Value: "secret-a"}},
	}

	assert.True(t, auth.Permits(domain.NewTokenCredential("wrong")))
	assert.True(t, auth.Permits(domain.EmptyCredential{}))
}

func TestAuthorization_EnabledWithoutSecrets_RejectsEverything(t *testing.T) {
	auth := domain.Authorization{Enabled: true}

	for name, cred := range everyCredential() {
		t.Run(name, func(t *testing.T) {
			assert.False(t, auth.Permits(cred))
		})
	}
}

func TestAuthorization_Tokens(t *testing.T) {
	auth := domain.Authorization{
		Enabled: true,
		Tokens:  []domain.Token{{Name: "t1", Value: "secret-a"}},
	}

	tests := []struct {
		name string
		cred domain.Credential
		want bool
	}{
		{name: "exact match", cred: domain.NewTokenCredential("secret-a"), want: true},
		{name: "optional match", cred: domain.TokenFromOptional(strPtr("secret-a")), want: true},
		{name: "case differs", cred: domain.NewTokenCredential("secret-A"), want: false},
		{name: "prefix", cred: domain.NewTokenCredential("secret"), want: false},
		{name: "longer", cred: domain.NewTokenCredential("secret-aa"), want: false},
		{name: "absent", cred: domain.TokenFromOptional(nil), want: false},
		{name: "empty credential", cred: domain.EmptyCredential{}, want: false},
		{name: "password does not match tokens", cred: domain.PasswordCredential{Username: "t1", Password: "secret-a"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Permits(tt.cred))
		})
	}
}

func TestAuthorization_MultipleTokens(t *testing.T) {
	auth := domain.Authorization{
		Enabled: true,
		Tokens: []domain.Token{
			{Name: "ci", Value: "tok-1"},
			{Name: "deploy", Value: "tok-2"},
		},
	}

	assert.True(t, auth.Permits(domain.NewTokenCredential("tok-1")))
	assert.True(t, auth.Permits(domain.NewTokenCredential("tok-2")))
	assert.False(t, auth.Permits(domain.NewTokenCredential("tok-3")))

	tok, ok := auth.FindToken("tok-2")
	assert.True(t, ok)
	assert.Equal(t, "deploy", tok.Name)
}

func TestAuthorization_Passwords(t *testing.T) {
	auth := domain.Authorization{
		Enabled:   true,
		Passwords: []domain.UsernamePassword{{Username: "alice", Password: "pw1"}},
	}

	tests := []struct {
		name string
		cred domain.Credential
		want bool
	}{
		{name: "valid pair", cred: domain.PasswordCredential{Username: "alice", Password: "pw1"}, want: true},
		{name: "wrong password", cred: domain.PasswordCredential{Username: "alice", Password: "wrong"}, want: false},
		{name: "wrong username", cred: domain.PasswordCredential{Username: "bob", Password: "pw1"}, want: false},
		{name: "token with password value", cred: domain.NewTokenCredential("pw1"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Permits(tt.cred))
		})
	}
}

func TestTokenCredential_Present(t *testing.T) {
	assert.False(t, domain.EmptyToken().Present())
	assert.False(t, domain.TokenFromOptional(nil).Present())
	assert.True(t, domain.NewTokenCredential("").Present())
}
