package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/byiitians/portal-api/internal/models"
)

// ContentRepository handles persistence for section content items.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new repository instance.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = "id, section_id, title, description, content_type, content_data, display_order, is_active, created_at, updated_at"

// ListBySection returns a section's items ordered by display_order. When
// activeOnly is set, hidden items are excluded.
func (r *ContentRepository) ListBySection(ctx context.Context, sectionID string, activeOnly bool) ([]models.ContentItem, error) {
	query := fmt.Sprintf("SELECT %s FROM section_content WHERE section_id = $1", contentColumns)
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY display_order"

	var items []models.ContentItem
	if err := r.db.SelectContext(ctx, &items, query, sectionID); err != nil {
		return nil, fmt.Errorf("list section content: %w", err)
	}
	return items, nil
}

// ListAll returns every content item across sections, grouped by section then
// display order. Used by the admin export.
func (r *ContentRepository) ListAll(ctx context.Context) ([]models.ContentItem, error) {
	query := fmt.Sprintf("SELECT %s FROM section_content ORDER BY section_id, display_order", contentColumns)
	var items []models.ContentItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

// FindByID returns a content item by id.
func (r *ContentRepository) FindByID(ctx context.Context, id string) (*models.ContentItem, error) {
	query := fmt.Sprintf("SELECT %s FROM section_content WHERE id = $1", contentColumns)
	var item models.ContentItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// CountBySection returns the number of items in a section, active or not.
// Drives the append-only display_order assignment.
func (r *ContentRepository) CountBySection(ctx context.Context, sectionID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM section_content WHERE section_id = $1`, sectionID); err != nil {
		return 0, fmt.Errorf("count section content: %w", err)
	}
	return count, nil
}

// Create persists a new content item.
func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO section_content (id, section_id, title, description, content_type, content_data, display_order, is_active, created_at, updated_at)
		VALUES (:id, :section_id, :title, :description, :content_type, :content_data, :display_order, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create content item: %w", err)
	}
	return nil
}

// Delete removes one content item. Returns sql.ErrNoRows when the id does not
// exist so callers can surface NotFound instead of silently succeeding.
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM section_content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
