package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ammarstationary/internal/models"

	"github.com/google/uuid"
)

const bookingColumns = `id, card_id, card_name, card_price, full_name, phone, email, quantity,
       message, promo_code, discount_percent, final_price, status, created_at, updated_at`

// CreateBookingRequest persists a new request in the pending status. The
// insert struct already carries the frozen card and promo snapshots.
func (db *DB) CreateBookingRequest(ctx context.Context, in *models.BookingRequestInsert) (*models.BookingRequest, error) {
	now := time.Now()
	booking := &models.BookingRequest{
		ID:              uuid.NewString(),
		CardID:          in.CardID,
		CardName:        in.CardName,
		CardPrice:       in.CardPrice,
		FullName:        in.FullName,
		Phone:           in.Phone,
		Email:           in.Email,
		Quantity:        in.Quantity,
		Message:         in.Message,
		PromoCode:       in.PromoCode,
		DiscountPercent: in.DiscountPercent,
		FinalPrice:      in.FinalPrice,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	query := `INSERT INTO booking_requests (id, card_id, card_name, card_price, full_name, phone, email,
              quantity, message, promo_code, discount_percent, final_price, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		booking.ID, booking.CardID, booking.CardName, booking.CardPrice, booking.FullName,
		booking.Phone, booking.Email, booking.Quantity, booking.Message, booking.PromoCode,
		booking.DiscountPercent, booking.FinalPrice, booking.Status, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking request: %w", err)
	}
	return booking, nil
}

func (db *DB) GetBookingRequest(ctx context.Context, id string) (*models.BookingRequest, error) {
	booking, err := scanBookingRequest(db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM booking_requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking request: %w", err)
	}
	return booking, nil
}

// ListBookingRequests returns requests newest-created first, optionally
// filtered by exact status. Empty status is the identity filter.
func (db *DB) ListBookingRequests(ctx context.Context, status string) ([]*models.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}
	defer rows.Close()

	var bookings []*models.BookingRequest
	for rows.Next() {
		booking, err := scanBookingRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking request: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking requests: %w", err)
	}
	return bookings, nil
}

// UpdateBookingRequestStatus moves a request from one status to another. The
// expected current status guards the UPDATE so a concurrent transition
// cannot be silently overwritten.
func (db *DB) UpdateBookingRequestStatus(ctx context.Context, id, from, to string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE booking_requests SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, time.Now(), id, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read status update result: %w", err)
	}
	if affected == 0 {
		if _, err := db.GetBookingRequest(ctx, id); err != nil {
			return err
		}
		return ErrInvalidTransition
	}
	return nil
}

func (db *DB) DeleteBookingRequest(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM booking_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking request: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBookingRequestsByStatus feeds the admin dashboard tiles.
func (db *DB) CountBookingRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM booking_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count booking requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan booking count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking counts: %w", err)
	}
	return counts, nil
}

func scanBookingRequest(row rowScanner) (*models.BookingRequest, error) {
	var booking models.BookingRequest
	err := row.Scan(
		&booking.ID, &booking.CardID, &booking.CardName, &booking.CardPrice,
		&booking.FullName, &booking.Phone, &booking.Email, &booking.Quantity,
		&booking.Message, &booking.PromoCode, &booking.DiscountPercent,
		&booking.FinalPrice, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
