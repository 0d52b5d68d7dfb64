package service

import (
	"context"

	"github.com/avnerell/dayweave/internal/domain"
	"github.com/avnerell/dayweave/internal/repository"
)

type profileService struct {
	profiles repository.UserProfileRepo
}

func NewProfileService(profiles repository.UserProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx, userID)
}

func (s *profileService) Set(ctx context.Context, p *domain.UserProfile) error {
	return s.profiles.Upsert(ctx, p)
}
