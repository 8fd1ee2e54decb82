package export

import (
	"io"
	"testing"
	"time"

	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookings(t *testing.T) {
	logger := zerolog.New(io.Discard)
	wb := NewBookingWorkbook(t.TempDir(), &logger)

	code := "SAVE10"
	percent := 10
	bookings := []*models.BookingRequest{
		{
			ID:              "req-1",
			CardName:        "Charizard Holo",
			CardPrice:       45000,
			FullName:        "Ammar Hakim",
			Phone:           "+62-811",
			Email:           "ammar@example.com",
			Quantity:        2,
			PromoCode:       &code,
			DiscountPercent: &percent,
			FinalPrice:      81000,
			Status:          models.StatusConfirmed,
			CreatedAt:       time.Now(),
		},
		{
			ID:         "req-2",
			CardName:   "Pikachu Promo",
			CardPrice:  12000,
			FullName:   "Siti Rahma",
			Phone:      "+62-812",
			Email:      "siti@example.com",
			Quantity:   1,
			FinalPrice: 12000,
			Status:     models.StatusPending,
			CreatedAt:  time.Now(),
		},
	}

	path, err := wb.WriteBookings(bookings)
	require.NoError(t, err)
	require.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bookingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 bookings

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "req-1", rows[1][0])
	assert.Equal(t, "SAVE10", rows[1][7])
	assert.Equal(t, "81000", rows[1][9])
	assert.Equal(t, "req-2", rows[2][0])
	assert.Equal(t, models.StatusPending, rows[2][10])
}

func TestWriteBookingsEmpty(t *testing.T) {
	logger := zerolog.New(io.Discard)
	wb := NewBookingWorkbook(t.TempDir(), &logger)

	path, err := wb.WriteBookings(nil)
	require.NoError(t, err)
	require.FileExists(t, path)
}
