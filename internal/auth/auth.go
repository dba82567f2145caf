// Package auth turns a request credential into a user id and issues the
// credential handed back at login.
package auth

import (
	"errors"
	"strings"

	"backoffice/internal/domain"
)

// ErrInvalidCredential means the credential could not be mapped to a user id.
var ErrInvalidCredential = errors.New("invalid credential")

type Authenticator interface {
	// Identify returns the user id the credential names.
	Identify(credential string) (int, error)
	// Issue returns the credential a client presents on later requests.
	Issue(u domain.User) (string, error)
}

// stripBearer accepts both "<credential>" and "Bearer <credential>".
func stripBearer(credential string) string {
	credential = strings.TrimSpace(credential)
	if len(credential) > 7 && strings.EqualFold(credential[:7], "bearer ") {
		return strings.TrimSpace(credential[7:])
	}
	return credential
}
