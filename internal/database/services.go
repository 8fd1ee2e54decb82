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

func (db *DB) CreateService(ctx context.Context, in *models.ServiceInsert) (*models.Service, error) {
	now := time.Now()
	svc := &models.Service{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Available:   in.IsAvailable(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO services (id, name, description, price, image, available, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		svc.ID, svc.Name, svc.Description, svc.Price, svc.Image, svc.Available, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (db *DB) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, price, image, available, created_at, updated_at
         FROM services WHERE id = ?`, id).
		Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price, &svc.Image, &svc.Available,
			&svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (db *DB) ListServices(ctx context.Context) ([]*models.Service, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, price, image, available, created_at, updated_at
         FROM services ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price, &svc.Image,
			&svc.Available, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}
	return services, nil
}

func (db *DB) UpdateService(ctx context.Context, id string, in *models.ServiceInsert) (*models.Service, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE services SET name = ?, description = ?, price = ?, image = ?, available = ?, updated_at = ?
         WHERE id = ?`,
		in.Name, in.Description, in.Price, in.Image, in.IsAvailable(), time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetService(ctx, id)
}

func (db *DB) DeleteService(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
