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
)

const cardColumns = `c.id, c.name, c.set_name, c.rarity, c.condition, c.price, c.image,
       c.category_id, c.collector_notes, c.featured, c.available, c.created_at, c.updated_at,
       cat.id, cat.name, cat.created_at`

func (db *DB) CreateCard(ctx context.Context, in *models.CardInsert) (*models.Card, error) {
	now := time.Now()
	card := &models.Card{
		ID:             uuid.NewString(),
		Name:           in.Name,
		SetName:        in.SetName,
		Rarity:         in.Rarity,
		Condition:      in.Condition,
		Price:          in.Price,
		Image:          in.Image,
		CategoryID:     in.CategoryID,
		CollectorNotes: in.CollectorNotes,
		Featured:       in.Featured,
		Available:      in.IsAvailable(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	query := `INSERT INTO cards (id, name, set_name, rarity, condition, price, image, category_id,
              collector_notes, featured, available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		card.ID, card.Name, card.SetName, card.Rarity, card.Condition, card.Price, card.Image,
		card.CategoryID, card.CollectorNotes, card.Featured, card.Available, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

func (db *DB) GetCard(ctx context.Context, id string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + `
              FROM cards c LEFT JOIN categories cat ON cat.id = c.category_id
              WHERE c.id = ?`
	card, err := scanCard(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// ListCards returns cards matching the filter, newest first.
func (db *DB) ListCards(ctx context.Context, filter models.CardFilter) ([]*models.Card, error) {
	query := `SELECT ` + cardColumns + `
              FROM cards c LEFT JOIN categories cat ON cat.id = c.category_id`

	var conds []string
	var args []interface{}
	if filter.CategoryID != "" {
		conds = append(conds, "c.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Rarity != "" {
		conds = append(conds, "c.rarity = ?")
		args = append(args, filter.Rarity)
	}
	if filter.Query != "" {
		conds = append(conds, "LOWER(c.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
	}
	if filter.Available != nil {
		conds = append(conds, "c.available = ?")
		args = append(args, *filter.Available)
	}
	if filter.Featured != nil {
		conds = append(conds, "c.featured = ?")
		args = append(args, *filter.Featured)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

func (db *DB) UpdateCard(ctx context.Context, id string, in *models.CardInsert) (*models.Card, error) {
	query := `UPDATE cards SET name = ?, set_name = ?, rarity = ?, condition = ?, price = ?,
              image = ?, category_id = ?, collector_notes = ?, featured = ?, available = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		in.Name, in.SetName, in.Rarity, in.Condition, in.Price,
		in.Image, in.CategoryID, in.CollectorNotes, in.Featured, in.IsAvailable(), time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, ErrNotFound
	}
	return db.GetCard(ctx, id)
}

// SetCardAvailability flips only the availability flag.
func (db *DB) SetCardAvailability(ctx context.Context, id string, available bool) error {
	result, err := db.ExecContext(ctx,
		`UPDATE cards SET available = ?, updated_at = ? WHERE id = ?`, available, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set card availability: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteCard(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var card models.Card
	var catID, catName sql.NullString
	var catCreated sql.NullTime
	err := row.Scan(
		&card.ID, &card.Name, &card.SetName, &card.Rarity, &card.Condition, &card.Price, &card.Image,
		&card.CategoryID, &card.CollectorNotes, &card.Featured, &card.Available, &card.CreatedAt, &card.UpdatedAt,
		&catID, &catName, &catCreated,
	)
	if err != nil {
		return nil, err
	}
	if catID.Valid {
		card.Category = &models.Category{ID: catID.String, Name: catName.String, CreatedAt: catCreated.Time}
	}
	return &card, nil
}
