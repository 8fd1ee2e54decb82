package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ammarstationary/internal/models"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

const promoColumns = `id, code, discount_percent, active, usage_limit, usage_count, expires_at, created_at, updated_at`

func (db *DB) CreatePromoCode(ctx context.Context, in *models.PromoCodeInsert) (*models.PromoCode, error) {
	now := time.Now()
	promo := &models.PromoCode{
		ID:              uuid.NewString(),
		Code:            models.NormalizePromoCode(in.Code),
		DiscountPercent: in.DiscountPercent,
		Active:          in.IsActive(),
		UsageLimit:      in.UsageLimit,
		UsageCount:      0,
		ExpiresAt:       in.ExpiresAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO promo_codes (id, code, discount_percent, active, usage_limit, usage_count, expires_at, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		promo.ID, promo.Code, promo.DiscountPercent, promo.Active, promo.UsageLimit, promo.ExpiresAt, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}
	return promo, nil
}

func (db *DB) GetPromoCode(ctx context.Context, id string) (*models.PromoCode, error) {
	promo, err := scanPromoCode(db.QueryRowContext(ctx,
		`SELECT `+promoColumns+` FROM promo_codes WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return promo, nil
}

// GetPromoCodeByCode looks up by the stored (uppercase) code value.
func (db *DB) GetPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	promo, err := scanPromoCode(db.QueryRowContext(ctx,
		`SELECT `+promoColumns+` FROM promo_codes WHERE code = ?`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code by code: %w", err)
	}
	return promo, nil
}

func (db *DB) ListPromoCodes(ctx context.Context) ([]*models.PromoCode, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []*models.PromoCode
	for rows.Next() {
		promo, err := scanPromoCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read promo codes: %w", err)
	}
	return promos, nil
}

// UpdatePromoCode applies a partial update. usage_count is never writable
// through this path.
func (db *DB) UpdatePromoCode(ctx context.Context, id string, up *models.PromoCodeUpdate) (*models.PromoCode, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if up.Code != nil {
		sets = append(sets, "code = ?")
		args = append(args, models.NormalizePromoCode(*up.Code))
	}
	if up.DiscountPercent != nil {
		sets = append(sets, "discount_percent = ?")
		args = append(args, *up.DiscountPercent)
	}
	if up.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *up.Active)
	}
	switch {
	case up.ClearUsageLimit:
		sets = append(sets, "usage_limit = NULL")
	case up.UsageLimit != nil:
		sets = append(sets, "usage_limit = ?")
		args = append(args, *up.UsageLimit)
	}
	switch {
	case up.ClearExpiresAt:
		sets = append(sets, "expires_at = NULL")
	case up.ExpiresAt != nil:
		sets = append(sets, "expires_at = ?")
		args = append(args, *up.ExpiresAt)
	}

	args = append(args, id)
	query := `UPDATE promo_codes SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetPromoCode(ctx, id)
}

// TogglePromoCode flips the active flag.
func (db *DB) TogglePromoCode(ctx context.Context, id string) (*models.PromoCode, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE promo_codes SET active = NOT active, updated_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle promo code: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetPromoCode(ctx, id)
}

func (db *DB) DeletePromoCode(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM promo_codes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RedeemPromoCode consumes one usage. The increment and the usability check
// happen in a single guarded UPDATE, so two concurrent redeems of a code
// with one remaining use cannot both succeed.
func (db *DB) RedeemPromoCode(ctx context.Context, id string, now time.Time) error {
	query := `UPDATE promo_codes
              SET usage_count = usage_count + 1, updated_at = ?
              WHERE id = ?
                AND active = 1
                AND (expires_at IS NULL OR expires_at > ?)
                AND (usage_limit IS NULL OR usage_count < usage_limit)`
	result, err := db.ExecContext(ctx, query, now, id, now)
	if err != nil {
		return fmt.Errorf("failed to redeem promo code: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read redeem result: %w", err)
	}
	if affected == 0 {
		// Either the id is unknown or the code failed the usability guard.
		if _, err := db.GetPromoCode(ctx, id); err != nil {
			return err
		}
		return ErrPromoNotUsable
	}
	return nil
}

func scanPromoCode(row rowScanner) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := row.Scan(
		&promo.ID, &promo.Code, &promo.DiscountPercent, &promo.Active,
		&promo.UsageLimit, &promo.UsageCount, &promo.ExpiresAt,
		&promo.CreatedAt, &promo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
