package service

import (
	"context"

	"ammarstationary/internal/database"
	"ammarstationary/internal/domain"
	"ammarstationary/internal/events"
	"ammarstationary/internal/metrics"
	"ammarstationary/internal/models"
	"ammarstationary/internal/pricing"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo         domain.Repository
	promos       domain.PromoService
	eventBus     domain.EventPublisher
	exportWorker domain.ExportEnqueuer
	logger       *zerolog.Logger
}

func NewBookingService(repo domain.Repository, promos domain.PromoService, eventBus domain.EventPublisher, exportWorker domain.ExportEnqueuer, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:         repo,
		promos:       promos,
		eventBus:     eventBus,
		exportWorker: exportWorker,
		logger:       logger,
	}
}

// Quote prices a prospective booking without consuming anything. A blank code
// yields an undiscounted quote; a bad code surfaces ErrPromoNotUsable so the
// caller can show it, with the base quote still filled in.
func (s *BookingService) Quote(ctx context.Context, cardPrice, quantity int64, rawCode string) (pricing.Quote, *models.PromoCode, error) {
	if quantity < 1 {
		quantity = models.DefaultQuantity
	}

	promo, err := s.promos.Validate(ctx, rawCode)
	if err != nil {
		return pricing.ComputeTotal(cardPrice, quantity, 0), nil, err
	}

	percent := 0
	if promo != nil {
		percent = promo.DiscountPercent
	}
	return pricing.ComputeTotal(cardPrice, quantity, percent), promo, nil
}

// CreateBookingRequest validates the input, applies the promo code, freezes
// the price, and persists the request as pending. The promo redemption is
// consumed before the insert; a code that lost its last use to a concurrent
// checkout fails the whole request.
func (s *BookingService) CreateBookingRequest(ctx context.Context, in *models.BookingRequestInsert, rawCode string) (*models.BookingRequest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Normalize()

	promo, err := s.promos.Validate(ctx, rawCode)
	if err != nil {
		return nil, err
	}

	percent := 0
	if promo != nil {
		percent = promo.DiscountPercent
	}
	quote := pricing.ComputeTotal(in.CardPrice, in.Quantity, percent)

	in.FinalPrice = quote.FinalPrice
	if promo != nil {
		code := promo.Code
		in.PromoCode = &code
		in.DiscountPercent = &promo.DiscountPercent

		if err := s.promos.Redeem(ctx, promo, ""); err != nil {
			return nil, err
		}
	} else {
		in.PromoCode = nil
		in.DiscountPercent = nil
	}

	booking, err := s.repo.CreateBookingRequest(ctx, in)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking, "")
	s.enqueueExport(ctx, "append_booking", booking)

	return booking, nil
}

func (s *BookingService) GetBookingRequest(ctx context.Context, id string) (*models.BookingRequest, error) {
	return s.repo.GetBookingRequest(ctx, id)
}

func (s *BookingService) ListBookingRequests(ctx context.Context, status string) ([]*models.BookingRequest, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, &models.ValidationError{Field: "status", Reason: "is not a known status"}
	}
	return s.repo.ListBookingRequests(ctx, status)
}

// ChangeStatus moves a request along the lifecycle. The transition table is
// checked here and re-checked by the guarded update, so a stale read cannot
// slip an illegal transition through.
func (s *BookingService) ChangeStatus(ctx context.Context, id, newStatus string) (*models.BookingRequest, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, &models.ValidationError{Field: "status", Reason: "is not a known status"}
	}

	booking, err := s.repo.GetBookingRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(booking.Status, newStatus) {
		return nil, database.ErrInvalidTransition
	}

	if err := s.repo.UpdateBookingRequestStatus(ctx, id, booking.Status, newStatus); err != nil {
		return nil, err
	}

	previous := booking.Status
	booking, err = s.repo.GetBookingRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingTransition(newStatus)
	s.publishEvent(events.EventBookingStatusChanged, booking, previous)
	s.enqueueExport(ctx, "update_status", booking)

	return booking, nil
}

func (s *BookingService) DeleteBookingRequest(ctx context.Context, id string) error {
	booking, err := s.repo.GetBookingRequest(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBookingRequest(ctx, id); err != nil {
		return err
	}

	s.publishEvent(events.EventBookingDeleted, booking, "")
	return nil
}

func (s *BookingService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountBookingRequestsByStatus(ctx)
}

func (s *BookingService) publishEvent(eventType string, booking *models.BookingRequest, previousStatus string) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:      booking.ID,
		CardName:       booking.CardName,
		FullName:       booking.FullName,
		Status:         booking.Status,
		PreviousStatus: previousStatus,
		FinalPrice:     booking.FinalPrice,
	}
	if booking.PromoCode != nil {
		payload.PromoCode = *booking.PromoCode
	}
	if booking.DiscountPercent != nil {
		payload.DiscountPercent = *booking.DiscountPercent
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueExport(ctx context.Context, taskType string, booking *models.BookingRequest) {
	if s.exportWorker == nil {
		return
	}

	if err := s.exportWorker.EnqueueTask(ctx, taskType, booking.ID, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID).Str("task", taskType).Msg("export enqueue error")
	}
}
