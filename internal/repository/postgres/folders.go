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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// List returns the user's folders ordered by name
func (r *PostgresFolderRepository) List(ctx context.Context, userID string) ([]models.Folder, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM folders
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.UserID,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// GetByID retrieves a folder by id, scoped to the user
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM folders
		WHERE id = $1 AND user_id = $2
	`

	var folder models.Folder
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.Name,
		&folder.UserID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Create inserts a new folder. Duplicate (user_id, name) pairs are rejected
// by the unique index and surface as a ConflictError.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (name, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		folder.Name,
		folder.UserID,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      "The folder name already exists",
				ResourceType: "folder",
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// Update renames a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := `
		UPDATE folders
		SET name = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		folder.Name,
		folder.ID,
		folder.UserID,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      "The folder name already exists",
				ResourceType: "folder",
			}
		}
		return fmt.Errorf("update folder: %w", err)
	}

	return nil
}

// Delete clears folder_id on the user's notes referencing the folder, then
// removes the folder. Both statements run in one transaction so a failed
// delete never leaves notes unlinked from a folder that still exists.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete folder: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE notes
		SET folder_id = NULL
		WHERE folder_id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("unlink folder from notes: %w", err)
	}

	result, err := tx.Exec(ctx, `
		DELETE FROM folders
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete folder: %w", err)
	}

	r.logger.Info("folder deleted", "id", id, "user_id", userID)
	return nil
}
