// Package queue defines message payloads exchanged over the message broker.
package queue

// NoteActivityEvent is published whenever a note is created, archived,
// unarchived or deleted. It carries enough context for downstream
// consumers to log or aggregate activity without querying the primary
// database.
type NoteActivityEvent struct {
	NoteID     uint64 `json:"note_id"`
	GroupID    uint64 `json:"group_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Action     string `json:"action"`
	OccurredAt string `json:"occurred_at"`
}
