package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"notekeeper/internal/domain"
	"notekeeper/internal/domain/models"
	"notekeeper/internal/domain/repositories"
)

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// List returns the user's tags ordered by name
func (r *PostgresTagRepository) List(ctx context.Context, userID string) ([]models.Tag, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM tags
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		err := rows.Scan(
			&tag.ID,
			&tag.Name,
			&tag.UserID,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// GetByID retrieves a tag by id, scoped to the user
func (r *PostgresTagRepository) GetByID(ctx context.Context, id, userID string) (*models.Tag, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM tags
		WHERE id = $1 AND user_id = $2
	`

	var tag models.Tag
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&tag.ID,
		&tag.Name,
		&tag.UserID,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// Create inserts a new tag. Duplicate (user_id, name) pairs are rejected by
// the unique index and surface as a ConflictError.
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (name, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		tag.Name,
		tag.UserID,
	).Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      "The tag name already exists",
				ResourceType: "tag",
			}
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// Update renames a tag
func (r *PostgresTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := `
		UPDATE tags
		SET name = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		tag.Name,
		tag.ID,
		tag.UserID,
	).Scan(&tag.CreatedAt, &tag.UpdatedAt)

	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      "The tag name already exists",
				ResourceType: "tag",
			}
		}
		return fmt.Errorf("update tag: %w", err)
	}

	return nil
}

// Delete pulls the tag out of all of the user's notes' tag sets, then
// removes the tag. Both statements run in one transaction.
func (r *PostgresTagRepository) Delete(ctx context.Context, id, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete tag: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM note_tags nt
		USING notes n
		WHERE nt.note_id = n.id AND nt.tag_id = $1 AND n.user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("unlink tag from notes: %w", err)
	}

	result, err := tx.Exec(ctx, `
		DELETE FROM tags
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete tag: %w", err)
	}

	r.logger.Info("tag deleted", "id", id, "user_id", userID)
	return nil
}
