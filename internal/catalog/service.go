package catalog

import (
	"context"

	"github.com/voyago/tripengine/internal/domain"
)

type CatalogUseCase interface {
	Cities(ctx context.Context) ([]domain.City, error)
	Activities(ctx context.Context, cityID string) ([]domain.Activity, error)
	PackageByID(ctx context.Context, id string) (*domain.PackageTrip, error)
}

// API is the remote catalog service, consumed read-only.
type API interface {
	Cities(ctx context.Context) ([]domain.City, error)
	Activities(ctx context.Context, cityID string) ([]domain.Activity, error)
	PackageByID(ctx context.Context, id string) (*domain.PackageTrip, error)
}

type Cache interface {
	GetCities(ctx context.Context) ([]domain.City, error)
	SetCities(ctx context.Context, cities []domain.City) error
	GetActivities(ctx context.Context, cityID string) ([]domain.Activity, error)
	SetActivities(ctx context.Context, cityID string, activities []domain.Activity) error
	GetPackage(ctx context.Context, id string) (*domain.PackageTrip, error)
	SetPackage(ctx context.Context, pkg *domain.PackageTrip) error
}

// Service serves catalog reads cache-aside: cache errors degrade to direct
// API reads, they never fail the request.
type Service struct {
	api   API
	cache Cache
}

func NewService(api API, cache Cache) *Service {
	return &Service{api: api, cache: cache}
}

func (s *Service) Cities(ctx context.Context) ([]domain.City, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCities(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	cities, err := s.api.Cities(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetCities(ctx, cities)
	}
	return cities, nil
}

func (s *Service) Activities(ctx context.Context, cityID string) ([]domain.Activity, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetActivities(ctx, cityID); err == nil && cached != nil {
			return cached, nil
		}
	}

	activities, err := s.api.Activities(ctx, cityID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetActivities(ctx, cityID, activities)
	}
	return activities, nil
}

func (s *Service) PackageByID(ctx context.Context, id string) (*domain.PackageTrip, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPackage(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	pkg, err := s.api.PackageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetPackage(ctx, pkg)
	}
	return pkg, nil
}

var _ CatalogUseCase = (*Service)(nil)
