package db

import (
	"context"
	"database/sql"
	"fmt"

	"quizbowl_backend/models"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name_ru, name_ky, desc_ru, desc_ky, created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var (
			c              models.Category
			descRU, descKY sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.NameRU, &c.NameKY, &descRU, &descKY, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		c.DescRU = stringPtr(descRU)
		c.DescKY = stringPtr(descKY)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c *models.Category) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name_ru, name_ky, desc_ru, desc_ky)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.NameRU, c.NameKY, nullString(c.DescRU), nullString(c.DescKY)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating category: %w", err)
	}
	return id, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name_ru = $1, name_ky = $2, desc_ru = $3, desc_ky = $4
		WHERE id = $5
	`, c.NameRU, c.NameKY, nullString(c.DescRU), nullString(c.DescKY), c.ID)
	if err != nil {
		return fmt.Errorf("error updating category: %w", err)
	}
	return expectOne(res)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}
	return nil
}
