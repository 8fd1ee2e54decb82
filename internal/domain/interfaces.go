package domain

import (
	"context"
	"time"

	"ammarstationary/internal/models"
	"ammarstationary/internal/pricing"
)

type Repository interface {
	CreateCard(ctx context.Context, in *models.CardInsert) (*models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error)
	UpdateCard(ctx context.Context, id string, in *models.CardInsert) (*models.Card, error)
	SetCardAvailability(ctx context.Context, id string, available bool) error
	DeleteCard(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, in *models.CategoryInsert) (*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in *models.CategoryInsert) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateService(ctx context.Context, in *models.ServiceInsert) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]*models.Service, error)
	UpdateService(ctx context.Context, id string, in *models.ServiceInsert) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error

	CreatePromoCode(ctx context.Context, in *models.PromoCodeInsert) (*models.PromoCode, error)
	GetPromoCode(ctx context.Context, id string) (*models.PromoCode, error)
	GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error)
	ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error)
	UpdatePromoCode(ctx context.Context, id string, up *models.PromoCodeUpdate) (*models.PromoCode, error)
	TogglePromoCode(ctx context.Context, id string) (*models.PromoCode, error)
	DeletePromoCode(ctx context.Context, id string) error
	RedeemPromoCode(ctx context.Context, id string, now time.Time) error

	CreateBookingRequest(ctx context.Context, in *models.BookingRequestInsert) (*models.BookingRequest, error)
	GetBookingRequest(ctx context.Context, id string) (*models.BookingRequest, error)
	ListBookingRequests(ctx context.Context, status string) ([]*models.BookingRequest, error)
	UpdateBookingRequestStatus(ctx context.Context, id, from, to string) error
	DeleteBookingRequest(ctx context.Context, id string) error
	CountBookingRequestsByStatus(ctx context.Context) (map[string]int64, error)

	ListContactSettings(ctx context.Context) ([]*models.ContactSetting, error)
	SetContactSetting(ctx context.Context, key, value string) error
}

// PromoCache caches promo code lookups keyed by normalized code. A nil entry
// value (stored hit with no record) is not cached; only found records are.
type PromoCache interface {
	GetPromo(ctx context.Context, code string) (*models.PromoCode, error)
	SetPromo(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error
	InvalidatePromo(ctx context.Context, code string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ExportEnqueuer hands booking snapshots to the background export pipeline.
type ExportEnqueuer interface {
	EnqueueTask(ctx context.Context, taskType string, bookingID string, booking *models.BookingRequest) error
	EnqueueFullExport(ctx context.Context) error
}

type SheetsWriter interface {
	AppendBooking(ctx context.Context, booking *models.BookingRequest) error
	ReplaceBookingsSheet(ctx context.Context, bookings []*models.BookingRequest) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status string) error
}

// PromoService owns promo code lifecycle and checkout validation.
type PromoService interface {
	Validate(ctx context.Context, rawCode string) (*models.PromoCode, error)
	Redeem(ctx context.Context, promo *models.PromoCode, bookingID string) error
	Create(ctx context.Context, in *models.PromoCodeInsert) (*models.PromoCode, error)
	Get(ctx context.Context, id string) (*models.PromoCode, error)
	List(ctx context.Context) ([]*models.PromoCode, error)
	Update(ctx context.Context, id string, up *models.PromoCodeUpdate) (*models.PromoCode, error)
	Toggle(ctx context.Context, id string) (*models.PromoCode, error)
	Delete(ctx context.Context, id string) error
}

type BookingService interface {
	Quote(ctx context.Context, cardPrice, quantity int64, rawCode string) (pricing.Quote, *models.PromoCode, error)
	CreateBookingRequest(ctx context.Context, in *models.BookingRequestInsert, rawCode string) (*models.BookingRequest, error)
	GetBookingRequest(ctx context.Context, id string) (*models.BookingRequest, error)
	ListBookingRequests(ctx context.Context, status string) ([]*models.BookingRequest, error)
	ChangeStatus(ctx context.Context, id, newStatus string) (*models.BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type CatalogService interface {
	ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	CreateCard(ctx context.Context, in *models.CardInsert) (*models.Card, error)
	UpdateCard(ctx context.Context, id string, in *models.CardInsert) (*models.Card, error)
	SetCardAvailability(ctx context.Context, id string, available bool) error
	DeleteCard(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, in *models.CategoryInsert) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in *models.CategoryInsert) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListServices(ctx context.Context) ([]*models.Service, error)
	CreateService(ctx context.Context, in *models.ServiceInsert) (*models.Service, error)
	UpdateService(ctx context.Context, id string, in *models.ServiceInsert) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error
	ListContactSettings(ctx context.Context) ([]*models.ContactSetting, error)
	SetContactSetting(ctx context.Context, key, value string) error
}
