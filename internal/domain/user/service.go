package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type Service struct {
	repo       Repository
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository, sessionTTL time.Duration, bcryptCost int) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, *Session, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	count, err := s.repo.CountByEmail(ctx, email, "")
	if err != nil {
		return nil, nil, err
	}
	if count > 0 {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	account := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(input.Name),
	}

	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	return &account, session, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, *Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	account, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, account.ID)
	if err != nil {
		return nil, nil, err
	}

	return account, session, nil
}

// Authenticate resolves a session token to its user. Expired sessions are
// removed on sight.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if !session.ExpiresAt.After(s.now()) {
		_ = s.repo.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	return s.repo.GetByID(ctx, session.UserID)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*User, error) {
	account, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		email, err := normalizeEmail(input.Email)
		if err != nil {
			return nil, err
		}
		count, err := s.repo.CountByEmail(ctx, email, account.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		account.Email = email
	}
	if input.Name != "" {
		account.Name = strings.TrimSpace(input.Name)
	}
	account.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := validatePassword(next); err != nil {
		return err
	}

	account, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return err
	}

	account.PasswordHash = string(hash)
	account.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, account)
}

func (s *Service) createSession(ctx context.Context, userID string) (*Session, error) {
	session := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("invalid email")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
