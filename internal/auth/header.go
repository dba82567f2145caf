package auth

import (
	"strconv"

	"backoffice/internal/domain"
)

// HeaderAuthenticator treats the Authorization header value as the user id
// itself. It is a placeholder identity scheme, not a credential: anyone who
// knows an admin id can act as that admin.
type HeaderAuthenticator struct{}

func (HeaderAuthenticator) Identify(credential string) (int, error) {
	id, err := strconv.Atoi(stripBearer(credential))
	if err != nil || id < 1 {
		return 0, ErrInvalidCredential
	}
	return id, nil
}

func (HeaderAuthenticator) Issue(u domain.User) (string, error) {
	return strconv.Itoa(u.ID), nil
}
