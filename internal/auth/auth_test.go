package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
)

func TestHeaderAuthenticator(t *testing.T) {
	var a HeaderAuthenticator

	for _, in := range []string{"7", " 7 ", "Bearer 7", "bearer 7"} {
		id, err := a.Identify(in)
		require.NoError(t, err, in)
		assert.Equal(t, 7, id, in)
	}
	for _, in := range []string{"", "abc", "0", "-3", "Bearer", "Bearer x"} {
		_, err := a.Identify(in)
		assert.ErrorIs(t, err, ErrInvalidCredential, in)
	}

	tok, err := a.Issue(domain.User{ID: 12})
	require.NoError(t, err)
	assert.Equal(t, "12", tok)
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a, err := NewJWTAuthenticator("test-secret", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue(domain.User{ID: 3, Role: domain.RoleAdmin})
	require.NoError(t, err)

	id, err := a.Identify("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	a, err := NewJWTAuthenticator("test-secret", time.Minute)
	require.NoError(t, err)
	other, err := NewJWTAuthenticator("other-secret", time.Minute)
	require.NoError(t, err)

	tok, err := other.Issue(domain.User{ID: 3})
	require.NoError(t, err)
	_, err = a.Identify(tok)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	tok, err = a.Issue(domain.User{ID: 3})
	require.NoError(t, err)
	a.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = a.Identify(tok)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = a.Identify("3")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestNewJWTAuthenticator_RequiresSecret(t *testing.T) {
	_, err := NewJWTAuthenticator("", time.Hour)
	assert.Error(t, err)
}
