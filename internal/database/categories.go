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

func (db *DB) CreateCategory(ctx context.Context, in *models.CategoryInsert) (*models.Category, error) {
	category := &models.Category{
		ID:        uuid.NewString(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES (?, ?, ?)`,
		category.ID, category.Name, category.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (db *DB) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = ?`, id).
		Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (db *DB) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

func (db *DB) UpdateCategory(ctx context.Context, id string, in *models.CategoryInsert) (*models.Category, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ?`, in.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetCategory(ctx, id)
}

// DeleteCategory removes the category; cards referencing it keep existing
// with a null category (weak reference).
func (db *DB) DeleteCategory(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	_, err = db.ExecContext(ctx,
		`UPDATE cards SET category_id = NULL WHERE category_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to detach cards from category: %w", err)
	}
	return nil
}
