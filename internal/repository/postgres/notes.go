package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"notekeeper/internal/domain"
	"notekeeper/internal/domain/models"
	"notekeeper/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// List returns the user's notes matching the filter, newest update first,
// with tags populated.
func (r *PostgresNoteRepository) List(ctx context.Context, userID string, filter *models.NoteFilter) ([]models.Note, error) {
	clauses := []string{"user_id = $1"}
	args := []interface{}{userID}

	if filter != nil {
		if filter.SearchTerm != "" {
			args = append(args, filter.SearchTerm)
			clauses = append(clauses, fmt.Sprintf("title ~* $%d", len(args)))
		}
		if filter.FolderID != "" {
			args = append(args, filter.FolderID)
			clauses = append(clauses, fmt.Sprintf("folder_id = $%d", len(args)))
		}
		if filter.TagID != "" {
			args = append(args, filter.TagID)
			clauses = append(clauses, fmt.Sprintf("id IN (SELECT note_id FROM note_tags WHERE tag_id = $%d)", len(args)))
		}
	}

	query := fmt.Sprintf(`
		SELECT id, title, COALESCE(content, ''), folder_id, user_id, created_at, updated_at
		FROM notes
		WHERE %s
		ORDER BY updated_at DESC
	`, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if isInvalidRegex(err) {
			return nil, &domain.ValidationError{Message: "The `searchTerm` is not valid"}
		}
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.FolderID,
			&note.UserID,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		note.Tags = []models.Tag{}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		// pgx may hold server errors until iteration finishes
		if isInvalidRegex(err) {
			return nil, &domain.ValidationError{Message: "The `searchTerm` is not valid"}
		}
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	if err := r.loadTags(ctx, notes); err != nil {
		return nil, err
	}

	return notes, nil
}

// GetByID retrieves a note by id with tags populated, scoped to the user
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	query := `
		SELECT id, title, COALESCE(content, ''), folder_id, user_id, created_at, updated_at
		FROM notes
		WHERE id = $1 AND user_id = $2
	`

	var note models.Note
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.FolderID,
		&note.UserID,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	note.Tags = []models.Tag{}
	notes := []models.Note{note}
	if err := r.loadTags(ctx, notes); err != nil {
		return nil, err
	}

	return &notes[0], nil
}

// Create inserts a note and its tag links in one transaction. Tag ids are
// weak references: they are linked as given, without an existence check.
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note, tagIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create note: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO notes (title, content, folder_id, user_id)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id, created_at, updated_at
	`, note.Title, note.Content, note.FolderID, note.UserID).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO note_tags (note_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, note.ID, tagID)
		if err != nil {
			return fmt.Errorf("link note tag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create note: %w", err)
	}

	note.Tags = []models.Tag{}
	notes := []models.Note{*note}
	if err := r.loadTags(ctx, notes); err != nil {
		return err
	}
	*note = notes[0]

	return nil
}

// Update rewrites the note row and, when tagIDs is non-nil, replaces its
// tag links. A nil tagIDs leaves the existing links untouched.
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note, tagIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update note: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE notes
		SET title = $1, content = NULLIF($2, ''), folder_id = $3, updated_at = now()
		WHERE id = $4 AND user_id = $5
		RETURNING created_at, updated_at
	`, note.Title, note.Content, note.FolderID, note.ID, note.UserID).
		Scan(&note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update note: %w", err)
	}

	if tagIDs != nil {
		_, err := tx.Exec(ctx, `DELETE FROM note_tags WHERE note_id = $1`, note.ID)
		if err != nil {
			return fmt.Errorf("clear note tags: %w", err)
		}
		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx, `
				INSERT INTO note_tags (note_id, tag_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, note.ID, tagID)
			if err != nil {
				return fmt.Errorf("link note tag: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update note: %w", err)
	}

	note.Tags = []models.Tag{}
	notes := []models.Note{*note}
	if err := r.loadTags(ctx, notes); err != nil {
		return err
	}
	*note = notes[0]

	return nil
}

// Delete removes a note, scoped to the user
func (r *PostgresNoteRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}

	r.logger.Info("note deleted", "id", id, "user_id", userID)
	return nil
}

// loadTags populates Tags on each note in one query. Links whose tag id no
// longer resolves are skipped silently; they are weak references.
func (r *PostgresNoteRepository) loadTags(ctx context.Context, notes []models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	noteIDs := make([]string, len(notes))
	index := make(map[string]int, len(notes))
	for i, note := range notes {
		noteIDs[i] = note.ID
		index[note.ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT nt.note_id, t.id, t.name, t.user_id, t.created_at, t.updated_at
		FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		WHERE nt.note_id = ANY($1)
		ORDER BY t.name ASC
	`, noteIDs)
	if err != nil {
		return fmt.Errorf("load note tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteID string
		var tag models.Tag
		err := rows.Scan(
			&noteID,
			&tag.ID,
			&tag.Name,
			&tag.UserID,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan note tag: %w", err)
		}
		if i, ok := index[noteID]; ok {
			notes[i].Tags = append(notes[i].Tags, tag)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate note tags: %w", err)
	}

	return nil
}
