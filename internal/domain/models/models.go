package models

import (
	"time"
)

// User is an account holder. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Fullname     string    `json:"fullname,omitempty" db:"fullname"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Folder groups notes for one user. Unique on (user_id, name).
type Folder struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Tag labels notes for one user. Unique on (user_id, name).
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Note is the core entity. FolderID and the tag ids behind Tags are weak
// references: uuid-shaped but not existence-checked at write time.
// Tags carries the populated tag objects in API responses.
type Note struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content,omitempty" db:"content"`
	FolderID  *string   `json:"folderId" db:"folder_id"`
	Tags      []Tag     `json:"tags"`
	UserID    string    `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NoteFilter narrows a note list query. All matching is additive (AND) and
// every query is additionally scoped to the owning user by the repository.
type NoteFilter struct {
	SearchTerm string // case-insensitive regex match on title
	FolderID   string // exact match
	TagID      string // membership in the note's tag set
}
