package service

import (
	"context"
	"time"

	"ammarstationary/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateCard(ctx context.Context, in *models.CardInsert) (*models.Card, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}
func (m *mockRepo) GetCard(ctx context.Context, id string) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}
func (m *mockRepo) ListCards(ctx context.Context, f models.CardFilter) ([]*models.Card, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}
func (m *mockRepo) UpdateCard(ctx context.Context, id string, in *models.CardInsert) (*models.Card, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}
func (m *mockRepo) SetCardAvailability(ctx context.Context, id string, available bool) error {
	return m.Called(ctx, id, available).Error(0)
}
func (m *mockRepo) DeleteCard(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateCategory(ctx context.Context, in *models.CategoryInsert) (*models.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *mockRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *mockRepo) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}
func (m *mockRepo) UpdateCategory(ctx context.Context, id string, in *models.CategoryInsert) (*models.Category, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *mockRepo) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateService(ctx context.Context, in *models.ServiceInsert) (*models.Service, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockRepo) ListServices(ctx context.Context) ([]*models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}
func (m *mockRepo) UpdateService(ctx context.Context, id string, in *models.ServiceInsert) (*models.Service, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}
func (m *mockRepo) DeleteService(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreatePromoCode(ctx context.Context, in *models.PromoCodeInsert) (*models.PromoCode, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockRepo) GetPromoCode(ctx context.Context, id string) (*models.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockRepo) GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockRepo) ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PromoCode), args.Error(1)
}
func (m *mockRepo) UpdatePromoCode(ctx context.Context, id string, up *models.PromoCodeUpdate) (*models.PromoCode, error) {
	args := m.Called(ctx, id, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockRepo) TogglePromoCode(ctx context.Context, id string) (*models.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockRepo) DeletePromoCode(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) RedeemPromoCode(ctx context.Context, id string, now time.Time) error {
	return m.Called(ctx, id, now).Error(0)
}

func (m *mockRepo) CreateBookingRequest(ctx context.Context, in *models.BookingRequestInsert) (*models.BookingRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRequest), args.Error(1)
}
func (m *mockRepo) GetBookingRequest(ctx context.Context, id string) (*models.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRequest), args.Error(1)
}
func (m *mockRepo) ListBookingRequests(ctx context.Context, status string) ([]*models.BookingRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingRequest), args.Error(1)
}
func (m *mockRepo) UpdateBookingRequestStatus(ctx context.Context, id, from, to string) error {
	return m.Called(ctx, id, from, to).Error(0)
}
func (m *mockRepo) DeleteBookingRequest(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) CountBookingRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockRepo) ListContactSettings(ctx context.Context) ([]*models.ContactSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactSetting), args.Error(1)
}
func (m *mockRepo) SetContactSetting(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

type mockPromoCache struct {
	mock.Mock
}

func (m *mockPromoCache) GetPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockPromoCache) SetPromo(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error {
	return m.Called(ctx, promo, ttl).Error(0)
}
func (m *mockPromoCache) InvalidatePromo(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}
func (m *mockPromoCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

type mockPromos struct {
	mock.Mock
}

func (m *mockPromos) Validate(ctx context.Context, rawCode string) (*models.PromoCode, error) {
	args := m.Called(ctx, rawCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockPromos) Redeem(ctx context.Context, promo *models.PromoCode, bookingID string) error {
	return m.Called(ctx, promo, bookingID).Error(0)
}
func (m *mockPromos) Create(ctx context.Context, in *models.PromoCodeInsert) (*models.PromoCode, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockPromos) Get(ctx context.Context, id string) (*models.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockPromos) List(ctx context.Context) ([]*models.PromoCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PromoCode), args.Error(1)
}
func (m *mockPromos) Update(ctx context.Context, id string, up *models.PromoCodeUpdate) (*models.PromoCode, error) {
	args := m.Called(ctx, id, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockPromos) Toggle(ctx context.Context, id string) (*models.PromoCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}
func (m *mockPromos) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockExportWorker struct {
	mock.Mock
}

func (m *mockExportWorker) EnqueueTask(ctx context.Context, taskType string, bookingID string, booking *models.BookingRequest) error {
	return m.Called(ctx, taskType, bookingID, booking).Error(0)
}
func (m *mockExportWorker) EnqueueFullExport(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
