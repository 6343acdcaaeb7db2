package repositories

import (
	"context"

	"notekeeper/internal/domain/models"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrConflict (wrapped in a
	// ConflictError) if the username is already taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername retrieves a user by username for credential checks.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// FolderRepository defines persistence operations for folders.
// Every operation is scoped to the owning user.
type FolderRepository interface {
	// List returns the user's folders ordered by name ascending.
	List(ctx context.Context, userID string) ([]models.Folder, error)

	// GetByID retrieves a folder by id, scoped to the user.
	GetByID(ctx context.Context, id, userID string) (*models.Folder, error)

	// Create inserts a new folder. Duplicate (user_id, name) surfaces as a
	// ConflictError from the store's unique index, never from a pre-check.
	Create(ctx context.Context, folder *models.Folder) error

	// Update renames a folder. Returns ErrNotFound when no owned row matches.
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes a folder after clearing folder_id on all of the user's
	// notes that reference it. Both steps run in one transaction.
	Delete(ctx context.Context, id, userID string) error
}

// TagRepository defines persistence operations for tags.
// Every operation is scoped to the owning user.
type TagRepository interface {
	// List returns the user's tags ordered by name ascending.
	List(ctx context.Context, userID string) ([]models.Tag, error)

	// GetByID retrieves a tag by id, scoped to the user.
	GetByID(ctx context.Context, id, userID string) (*models.Tag, error)

	// Create inserts a new tag. Duplicate (user_id, name) surfaces as a
	// ConflictError from the store's unique index.
	Create(ctx context.Context, tag *models.Tag) error

	// Update renames a tag. Returns ErrNotFound when no owned row matches.
	Update(ctx context.Context, tag *models.Tag) error

	// Delete removes a tag after pulling its id out of all of the user's
	// notes' tag sets. Both steps run in one transaction.
	Delete(ctx context.Context, id, userID string) error
}

// NoteRepository defines persistence operations for notes.
// Every operation is scoped to the owning user, and reads populate tags.
type NoteRepository interface {
	// List returns the user's notes matching the filter, ordered by
	// updated_at descending, with tags populated.
	List(ctx context.Context, userID string, filter *models.NoteFilter) ([]models.Note, error)

	// GetByID retrieves a note by id with tags populated, scoped to the user.
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)

	// Create inserts a new note and its tag links in one transaction.
	Create(ctx context.Context, note *models.Note, tagIDs []string) error

	// Update rewrites the note row and, when tagIDs is non-nil, replaces its
	// tag links. Returns ErrNotFound when no owned row matches.
	Update(ctx context.Context, note *models.Note, tagIDs []string) error

	// Delete removes a note. Returns ErrNotFound when no owned row matches.
	Delete(ctx context.Context, id, userID string) error
}
