package user

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// UserServiceAdapter expõe o Service através das interfaces compartilhadas,
// evitando importação cíclica entre os domínios.
type UserServiceAdapter struct {
	service *Service
}

func NewUserServiceAdapter(service *Service) *UserServiceAdapter {
	return &UserServiceAdapter{service: service}
}

func (a *UserServiceAdapter) Exists(ctx context.Context, userID ulid.ULID) error {
	return a.service.Exists(ctx, userID)
}

func (a *UserServiceAdapter) Verify(ctx context.Context, token string) (ulid.ULID, error) {
	return a.service.VerifyToken(ctx, token)
}
