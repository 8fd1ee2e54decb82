package service

import (
	"context"
	"sync"
	"time"

	"ammarstationary/internal/domain"
	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService fronts the card, category, and service tables with a
// short-lived in-memory snapshot of the category list. Card listings are not
// cached: their filters vary per request.
type CatalogService struct {
	repo   domain.Repository
	logger *zerolog.Logger

	mu          sync.RWMutex
	categories  []*models.Category
	refreshedAt time.Time
	cacheTTL    time.Duration
}

func NewCatalogService(repo domain.Repository, cacheTTL time.Duration, logger *zerolog.Logger) *CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = models.CatalogCacheTTL * time.Second
	}
	return &CatalogService{
		repo:     repo,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

func (s *CatalogService) ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	return s.repo.ListCards(ctx, filter)
}

func (s *CatalogService) GetCard(ctx context.Context, id string) (*models.Card, error) {
	return s.repo.GetCard(ctx, id)
}

func (s *CatalogService) CreateCard(ctx context.Context, in *models.CardInsert) (*models.Card, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateCard(ctx, in)
}

func (s *CatalogService) UpdateCard(ctx context.Context, id string, in *models.CardInsert) (*models.Card, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateCard(ctx, id, in)
}

func (s *CatalogService) SetCardAvailability(ctx context.Context, id string, available bool) error {
	return s.repo.SetCardAvailability(ctx, id, available)
}

func (s *CatalogService) DeleteCard(ctx context.Context, id string) error {
	return s.repo.DeleteCard(ctx, id)
}

// ListCategories serves from the snapshot until the TTL lapses.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	s.mu.RLock()
	if s.categories != nil && time.Since(s.refreshedAt) < s.cacheTTL {
		cached := s.categories
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	return s.refreshCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in *models.CategoryInsert) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	category, err := s.repo.CreateCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	s.dropCategorySnapshot()
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in *models.CategoryInsert) (*models.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	category, err := s.repo.UpdateCategory(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.dropCategorySnapshot()
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.dropCategorySnapshot()
	return nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	return s.repo.ListServices(ctx)
}

func (s *CatalogService) CreateService(ctx context.Context, in *models.ServiceInsert) (*models.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateService(ctx, in)
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, in *models.ServiceInsert) (*models.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateService(ctx, id, in)
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	return s.repo.DeleteService(ctx, id)
}

func (s *CatalogService) ListContactSettings(ctx context.Context) ([]*models.ContactSetting, error) {
	return s.repo.ListContactSettings(ctx)
}

func (s *CatalogService) SetContactSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return &models.ValidationError{Field: "key", Reason: "is required"}
	}
	return s.repo.SetContactSetting(ctx, key, value)
}

func (s *CatalogService) refreshCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = categories
	s.refreshedAt = time.Now()
	s.mu.Unlock()
	return categories, nil
}

func (s *CatalogService) dropCategorySnapshot() {
	s.mu.Lock()
	s.categories = nil
	s.mu.Unlock()
}
