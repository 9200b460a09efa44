package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type ProfileInput struct {
	Email string
	Name  string
}

func (s *Service) SaveProfile(ctx context.Context, userID string, in ProfileInput) (User, error) {
	userID = strings.TrimSpace(userID)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if userID == "" || email == "" {
		return User{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidInput
	}

	now := s.now()
	return s.repo.Upsert(ctx, User{
		ID:        userID,
		Email:     email,
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, userID)
}
