package model

import "time"

// Category is a user-scoped tag attachable to notes through the
// `note_categories` join table. The name is unique per owner, enforced
// by a pre-insert lookup plus a composite unique constraint.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user ID of the category owner.
//  Name      – tag name, unique per (user, name).
//  Color     – optional hex color like #FF5733 (nil when unset).
//  NoteCount – number of tagged notes, computed on read.
//  Notes     – tagged notes, populated by detail lookups only.
//  CreatedAt – timestamp when the category was created.
//  UpdatedAt – timestamp of last update.
type Category struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	NoteCount int64     `json:"noteCount"`
	Notes     []*Note   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
