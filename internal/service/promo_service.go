package service

import (
	"context"
	"errors"
	"time"

	"ammarstationary/internal/database"
	"ammarstationary/internal/domain"
	"ammarstationary/internal/events"
	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
)

// PromoService owns the promo code lifecycle and checkout validation. Lookups
// during validation go through the promo cache; every mutation invalidates the
// cached entry so checkout never sees a stale snapshot for longer than the TTL.
type PromoService struct {
	repo     domain.Repository
	cache    domain.PromoCache
	eventBus domain.EventPublisher
	cacheTTL time.Duration
	logger   *zerolog.Logger
}

func NewPromoService(repo domain.Repository, cache domain.PromoCache, eventBus domain.EventPublisher, cacheTTL time.Duration, logger *zerolog.Logger) *PromoService {
	if cacheTTL <= 0 {
		cacheTTL = models.PromoCacheTTL * time.Second
	}
	return &PromoService{
		repo:     repo,
		cache:    cache,
		eventBus: eventBus,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Validate resolves a raw promo code for checkout. A blank code means no code
// was entered: (nil, nil). A code that is missing, inactive, expired, or over
// its limit returns ErrPromoNotUsable; callers cannot tell those apart.
// Validation never touches the usage count.
func (s *PromoService) Validate(ctx context.Context, rawCode string) (*models.PromoCode, error) {
	code := models.NormalizePromoCode(rawCode)
	if code == "" {
		return nil, nil
	}

	promo, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil || !promo.IsUsable(time.Now()) {
		return nil, database.ErrPromoNotUsable
	}

	return promo, nil
}

func (s *PromoService) lookup(ctx context.Context, code string) (*models.PromoCode, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPromo(ctx, code)
		if err != nil {
			s.logger.Warn().Err(err).Str("code", code).Msg("promo cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	promo, err := s.repo.GetPromoCodeByCode(ctx, code)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPromo(ctx, promo, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("code", code).Msg("promo cache write failed")
		}
	}

	return promo, nil
}

// Redeem consumes one use of the code. The increment and the usability check
// run in a single guarded update, so two concurrent redemptions of the last
// slot cannot both succeed.
func (s *PromoService) Redeem(ctx context.Context, promo *models.PromoCode, bookingID string) error {
	if err := s.repo.RedeemPromoCode(ctx, promo.ID, time.Now()); err != nil {
		return err
	}

	s.invalidate(ctx, promo.Code)

	if s.eventBus != nil {
		payload := events.PromoEventPayload{
			PromoID:    promo.ID,
			Code:       promo.Code,
			BookingID:  bookingID,
			UsageCount: int(promo.UsageCount) + 1,
		}
		if err := s.eventBus.PublishJSON(events.EventPromoRedeemed, payload); err != nil {
			s.logger.Error().Err(err).Str("code", promo.Code).Msg("publish event error")
		}
	}

	return nil
}

func (s *PromoService) Create(ctx context.Context, in *models.PromoCodeInsert) (*models.PromoCode, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreatePromoCode(ctx, in)
}

func (s *PromoService) Get(ctx context.Context, id string) (*models.PromoCode, error) {
	return s.repo.GetPromoCode(ctx, id)
}

func (s *PromoService) List(ctx context.Context) ([]*models.PromoCode, error) {
	return s.repo.ListPromoCodes(ctx)
}

func (s *PromoService) Update(ctx context.Context, id string, up *models.PromoCodeUpdate) (*models.PromoCode, error) {
	if err := up.Validate(); err != nil {
		return nil, err
	}

	before, err := s.repo.GetPromoCode(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdatePromoCode(ctx, id, up)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, before.Code)
	if updated.Code != before.Code {
		s.invalidate(ctx, updated.Code)
	}

	return updated, nil
}

func (s *PromoService) Toggle(ctx context.Context, id string) (*models.PromoCode, error) {
	promo, err := s.repo.TogglePromoCode(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, promo.Code)
	return promo, nil
}

func (s *PromoService) Delete(ctx context.Context, id string) error {
	promo, err := s.repo.GetPromoCode(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePromoCode(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, promo.Code)
	return nil
}

func (s *PromoService) invalidate(ctx context.Context, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePromo(ctx, code); err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("promo cache invalidation failed")
	}
}
