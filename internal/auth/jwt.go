package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"backoffice/internal/domain"
)

const issuer = "backoffice"

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthenticator issues HS256 tokens whose subject is the user id.
type JWTAuthenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTAuthenticator(secret string, ttl time.Duration) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &JWTAuthenticator{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (a *JWTAuthenticator) Issue(u domain.User) (string, error) {
	now := a.now()
	c := claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
}

func (a *JWTAuthenticator) Identify(credential string) (int, error) {
	tok, err := jwt.ParseWithClaims(stripBearer(credential), &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(a.now))
	if err != nil || !tok.Valid {
		return 0, ErrInvalidCredential
	}
	c, ok := tok.Claims.(*claims)
	if !ok {
		return 0, ErrInvalidCredential
	}
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id < 1 {
		return 0, ErrInvalidCredential
	}
	return id, nil
}
