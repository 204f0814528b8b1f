package service

import (
	"context"

	"github.com/caffeinepub/streamhub-2/internal/model"
	"github.com/caffeinepub/streamhub-2/internal/repository"
)

// ProfileService wraps profile persistence. Profiles are not moderation
// state, but they feed the totalUsers aggregate and the admin user search.
type ProfileService struct {
	repo *repository.ProfileRepo
}

func NewProfileService(repo *repository.ProfileRepo) *ProfileService {
	return &ProfileService{repo: repo}
}

// Save upserts the caller's profile.
func (s *ProfileService) Save(ctx context.Context, caller model.Principal, p model.UserProfile) (*model.UserProfile, error) {
	if caller.IsZero() {
		return nil, model.ErrNotAuthorized
	}
	p.Principal = caller
	return s.repo.Save(ctx, p)
}

// Lookup returns a profile by principal.
func (s *ProfileService) Lookup(ctx context.Context, principal model.Principal) (*model.UserProfile, error) {
	return s.repo.Get(ctx, principal)
}

// Search matches profiles by username or email substring.
func (s *ProfileService) Search(ctx context.Context, term string) ([]model.UserProfile, error) {
	return s.repo.Search(ctx, term)
}
