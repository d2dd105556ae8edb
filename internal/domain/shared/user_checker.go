package shared

import (
	"context"

	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"

	"github.com/oklog/ulid/v2"
)

type UserCheckerService struct {
	userChecker UserChecker
}

func NewUserCheckerService(userChecker UserChecker) *UserCheckerService {
	return &UserCheckerService{userChecker: userChecker}
}

func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s.userChecker == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.userChecker.Exists(ctx, userID); err != nil {
		return appErrors.ErrUserNotFound.WithError(err)
	}

	return nil
}

type BaseService struct {
	UserChecker *UserCheckerService
}

func (b *BaseService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if b.UserChecker == nil {
		return appErrors.ErrInternalServer
	}
	return b.UserChecker.EnsureUserExists(ctx, userID)
}
