package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (ulid.ULID, error)
}

type PendingGenerator interface {
	GeneratePending(ctx context.Context, userID ulid.ULID) (int, error)
}
