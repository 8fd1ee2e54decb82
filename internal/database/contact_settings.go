package database

import (
	"context"
	"fmt"
	"time"

	"ammarstationary/internal/models"

	"github.com/google/uuid"
)

func (db *DB) ListContactSettings(ctx context.Context) ([]*models.ContactSetting, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, key, value, updated_at FROM contact_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact settings: %w", err)
	}
	defer rows.Close()

	var settings []*models.ContactSetting
	for rows.Next() {
		var setting models.ContactSetting
		if err := rows.Scan(&setting.ID, &setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact setting: %w", err)
		}
		settings = append(settings, &setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contact settings: %w", err)
	}
	return settings, nil
}

// SetContactSetting upserts one key/value pair.
func (db *DB) SetContactSetting(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO contact_settings (id, key, value, updated_at) VALUES (?, ?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		uuid.NewString(), key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set contact setting: %w", err)
	}
	return nil
}
