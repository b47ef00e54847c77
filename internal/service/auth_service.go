package service

import (
	"context"
	"errors"
	"time"

	"github.com/formdesk/server/internal/auth"
	"github.com/formdesk/server/internal/models"
	"github.com/formdesk/server/internal/repository"
)

var (
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the login response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users     UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Enroll hashes the password and creates the user. Hashing is an explicit
// step here, not a hidden hook on the model.
func (s *AuthService) Enroll(ctx context.Context, email, password string, pi models.PersonalInformation) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if pi.Position == "" {
		pi.Position = models.PositionEmployee
	}
	user := &models.User{
		Email:               email,
		PasswordHash:        hash,
		CreatedAt:           time.Now().UTC(),
		PersonalInformation: pi,
		BankInformation:     []map[string]any{},
		Forms:               []models.Form{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index catches races the FindByEmail check missed.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(s.jwtSecret, s.tokenTTL, user)
}
