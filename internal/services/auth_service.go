package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/auth"
	"backoffice/internal/domain"
	"backoffice/internal/repos"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrInactive       = errors.New("account is not active")
)

type AuthService struct {
	Users *repos.UserRepo
	Auth  auth.Authenticator
}

func NewAuthService(users *repos.UserRepo, a auth.Authenticator) *AuthService {
	return &AuthService{Users: users, Auth: a}
}

// Authorize resolves a request credential to an active admin.
func (s *AuthService) Authorize(ctx context.Context, credential string) (domain.Principal, error) {
	if strings.TrimSpace(credential) == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	id, err := s.Auth.Identify(credential)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	u, err := s.Users.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Principal{}, err
	}
	if !u.ActiveAdmin() {
		return domain.Principal{}, domain.ErrForbidden
	}
	return domain.PrincipalOf(u), nil
}

type Session struct {
	User  domain.Principal
	Token string
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, domain.Invalid("email", "Email and password are required")
	}
	u, err := s.Users.Credentials(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return Session{}, ErrBadCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrBadCredentials
	}
	if u.Status != domain.UserActive {
		return Session{}, ErrInactive
	}
	if u, err = s.Users.RecordLogin(ctx, u.ID); err != nil {
		return Session{}, err
	}
	token, err := s.Auth.Issue(u)
	if err != nil {
		return Session{}, err
	}
	return Session{User: domain.PrincipalOf(u), Token: token}, nil
}
