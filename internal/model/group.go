package model

import "time"

// Group is a folder of notes owned by a single user. It corresponds to a
// row in the `groups` table. Deleting a group cascades to its notes at
// the schema level.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user ID of the group owner.
//  Name      – display name of the group (no uniqueness rule).
//  NoteCount – number of notes in the group, computed on read.
//  Notes     – notes in the group, populated by detail lookups only.
//  CreatedAt – timestamp when the group was created.
//  UpdatedAt – timestamp of last update.
type Group struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	Name      string    `json:"name"`
	NoteCount int64     `json:"noteCount"`
	Notes     []*Note   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
