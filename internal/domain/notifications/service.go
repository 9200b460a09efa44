package notifications

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidType  = errors.New("invalid notification type")
	ErrInvalidTime  = errors.New("times must be HH:MM")
)

type Service struct {
	repo  Repository
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
	}
}

type SettingInput struct {
	Type    Type
	Enabled bool
	Times   []string
}

func (s *Service) List(ctx context.Context, userID string) ([]Setting, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// Replace reemplaza el conjunto completo de settings del usuario (no hace merge).
// Una lista vacía deja al usuario sin settings.
func (s *Service) Replace(ctx context.Context, userID string, in []SettingInput) ([]Setting, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	out := make([]Setting, 0, len(in))
	for _, item := range in {
		typ := Type(strings.ToLower(strings.TrimSpace(string(item.Type))))
		if !typ.Valid() {
			return nil, ErrInvalidType
		}
		times, err := NormalizeTimes(item.Times)
		if err != nil {
			return nil, err
		}
		out = append(out, Setting{
			ID:      s.newID(),
			UserID:  userID,
			Type:    typ,
			Enabled: item.Enabled,
			Times:   times,
		})
	}

	if err := s.repo.ReplaceForUser(ctx, userID, out); err != nil {
		return nil, err
	}
	return out, nil
}
