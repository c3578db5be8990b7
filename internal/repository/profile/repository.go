package profile

import (
	"context"

	"tailorcart/internal/domain"
)

// Repository persists the profile root document.
type Repository interface {
	Load(ctx context.Context, userID string) (*domain.Profile, error)
	Save(ctx context.Context, p domain.Profile) error
}
