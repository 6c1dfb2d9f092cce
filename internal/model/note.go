package model

import "time"

// NoteStatus enumerates the lifecycle states of a note. Only ACTIVE and
// ARCHIVED are reachable through the API; TRASHED is declared in the
// schema but no exposed operation produces or consumes it.
type NoteStatus string

const (
	NoteStatusActive   NoteStatus = "ACTIVE"
	NoteStatusArchived NoteStatus = "ARCHIVED"
	NoteStatusTrashed  NoteStatus = "TRASHED"
)

// Valid reports whether s is one of the declared statuses.
func (s NoteStatus) Valid() bool {
	switch s {
	case NoteStatusActive, NoteStatusArchived, NoteStatusTrashed:
		return true
	}
	return false
}

// Note is a single note belonging to exactly one group. A note has no
// owner column of its own; its effective owner is always derived from
// the group's user_id, so every authorization check joins through the
// `groups` table.
//
// Fields:
//  ID         – primary key identifier.
//  GroupID    – group containing the note.
//  Title      – note title.
//  Content    – note body.
//  Status     – lifecycle status, ACTIVE on creation.
//  Categories – attached categories, populated by reads that load relations.
//  Group      – containing group, populated by reads that load relations.
//  CreatedAt  – timestamp when the note was created.
//  UpdatedAt  – timestamp of last update.
type Note struct {
	ID         uint64      `json:"id"`
	GroupID    uint64      `json:"groupId"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Status     NoteStatus  `json:"status"`
	Categories []*Category `json:"categories"`
	Group      *Group      `json:"group,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
