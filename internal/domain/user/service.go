package user

import (
	"context"
	"errors"
	"strings"
	"time"

	appErrors "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/errors"
	"github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Register(ctx context.Context, name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, appErrors.NewValidationError("email", "é obrigatório")
	}

	existing, err := s.Repository.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.NewDatabaseError(err)
	}
	if existing != nil {
		return nil, appErrors.NewConflictError("email")
	}

	now := time.Now()
	u := &User{
		Id:        pkg.GenerateULIDObject(),
		Name:      name,
		Email:     email,
		ApiToken:  pkg.GenerateULID() + pkg.GenerateULID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, u); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, userID ulid.ULID) (*User, error) {
	u, err := s.Repository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return u, nil
}

func (s *Service) Exists(ctx context.Context, userID ulid.ULID) error {
	_, err := s.GetByID(ctx, userID)
	return err
}

func (s *Service) VerifyToken(ctx context.Context, token string) (ulid.ULID, error) {
	if token == "" {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	u, err := s.Repository.GetByApiToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ulid.ULID{}, appErrors.ErrUnauthorized
		}
		return ulid.ULID{}, appErrors.NewDatabaseError(err)
	}

	return u.Id, nil
}
