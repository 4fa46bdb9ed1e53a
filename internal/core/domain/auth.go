package domain

import "crypto/subtle"

// Authorization is the access policy owned by a single project.
// It gates the execute operation and is never mutated after load.
type Authorization struct {
	// Enabled turns the policy on. A disabled policy permits every credential.
	Enabled   bool
	Tokens    []Token
	Passwords []UsernamePassword
}

// Token is a named bearer-token secret. Name is for humans, Value is the comparand.
type Token struct {
	Name  string
	Value string
}

// UsernamePassword is a single username/password pair accepted by a policy.
type UsernamePassword struct {
	Username string
	Password string
}

// Permits reports whether the credential satisfies the policy.
// A disabled policy short-circuits before any credential comparison.
func (a Authorization) Permits(cred Credential) bool {
	if !a.Enabled {
		return true
	}
	if cred == nil {
		cred = EmptyCredential{}
	}
	return cred.IsValid(a)
}

// FindToken returns the configured token whose value equals value.
func (a Authorization) FindToken(value string) (Token, bool) {
	for _, t := range a.Tokens {
		if secretEqual(t.Value, value) {
			return t, true
		}
	}
	return Token{}, false
}

// Credential is caller-supplied proof of identity.
// The set of implementations is closed to this package.
type Credential interface {
	// IsValid reports whether the credential matches the secrets of auth.
	// It ignores auth.Enabled; use Authorization.Permits for the full check.
	IsValid(auth Authorization) bool
	credential()
}

// EmptyCredential is presented when the caller offered nothing.
type EmptyCredential struct{}

// IsValid always returns false.
func (EmptyCredential) IsValid(Authorization) bool { return false }

func (EmptyCredential) credential() {}

// TokenCredential carries an optional bearer token.
type TokenCredential struct {
	value   string
	present bool
}

// NewTokenCredential returns a credential carrying value.
func NewTokenCredential(value string) TokenCredential {
	return TokenCredential{value: value, present: true}
}

// EmptyToken returns a token credential that carries no value and never matches.
func EmptyToken() TokenCredential {
	return TokenCredential{}
}

// TokenFromOptional builds a token credential from an optional raw value.
// A nil value yields EmptyToken; absence is unauthorized, not an error.
func TokenFromOptional(value *string) TokenCredential {
	if value == nil {
		return EmptyToken()
	}
	return NewTokenCredential(*value)
}

// Present reports whether the credential carries a value.
func (c TokenCredential) Present() bool {
	return c.present
}

// IsValid reports whether a configured token has exactly the carried value.
func (c TokenCredential) IsValid(auth Authorization) bool {
	if !c.present {
		return false
	}
	_, ok := auth.FindToken(c.value)
	return ok
}

func (TokenCredential) credential() {}

// PasswordCredential is a username/password pair offered by a caller.
type PasswordCredential struct {
	Username string
	Password string
}

// IsValid reports whether some configured pair matches both fields.
func (c PasswordCredential) IsValid(auth Authorization) bool {
	for _, p := range auth.Passwords {
		// Both fields are always compared.
		userOK := secretEqual(p.Username, c.Username)
		passOK := secretEqual(p.Password, c.Password)
		if userOK && passOK {
			return true
		}
	}
	return false
}

func (PasswordCredential) credential() {}

// secretEqual is a byte-exact comparison that does not leak the position of a mismatch.
func secretEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
