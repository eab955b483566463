package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jvorcak/este/internal/domain"
	"github.com/jvorcak/este/internal/store"
)

// UserPersistence writes a signed-in user's record to the store. The public
// profile and the private email land in two distinct locations through one
// atomic multi-location write, so neither can exist without the other.
type UserPersistence struct {
	store  store.Store
	paths  Paths
	logger *zap.Logger
}

// NewUserPersistence creates a new user persistence service
func NewUserPersistence(st store.Store, paths Paths, logger *zap.Logger) *UserPersistence {
	return &UserPersistence{
		store:  st,
		paths:  paths,
		logger: logger,
	}
}

// SaveUser persists identity. The email field goes exclusively to the
// private per-user path; everything else to the public profile path.
func (s *UserPersistence) SaveUser(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return &domain.ValidationError{Message: "cannot save a signed-out identity"}
	}

	profile := identity.Public()
	writes := map[string]any{
		s.paths.Profile(identity.ID): map[string]any{
			"id":          profile.ID,
			"displayName": profile.DisplayName,
			"photoURL":    profile.PhotoURL,
		},
		s.paths.Email(identity.ID): map[string]any{
			"email": identity.Email,
		},
	}

	if err := s.store.AtomicMultiWrite(ctx, writes); err != nil {
		return fmt.Errorf("save user %s: %w", identity.ID, err)
	}

	s.logger.Debug("user saved", zap.String("user_id", identity.ID))
	return nil
}
