// This file defines repository methods for groups, the folders that
// contain notes. A group belongs to a single user and the schema
// cascades group deletion to its notes and their join rows.
//
// `groups` is a reserved word in MySQL 8, so the table name is
// backtick-quoted in every statement.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RodrigoAlexander7/linespace/internal/model"
)

// GroupRepo encapsulates all database queries related to groups.
type GroupRepo struct {
	db *sql.DB
}

// NewGroupRepo constructs a GroupRepo with the provided DB handle.
func NewGroupRepo(db *sql.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// Create inserts a new group. On success the ID, CreatedAt and
// UpdatedAt fields are populated via a follow-up SELECT so callers
// receive a fully populated record. A fresh group has no notes.
func (r *GroupRepo) Create(ctx context.Context, g *model.Group) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO `groups` (user_id, name) VALUES (?, ?)",
		g.UserID, g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM `groups` WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, g.ID).Scan(&g.CreatedAt, &g.UpdatedAt); err != nil {
		return err
	}
	g.NoteCount = 0
	return nil
}

// GetByID fetches a group by id regardless of owner, with its note
// count. Returns ErrGroupNotFound when no row exists. The ownership
// decision is left to the caller so that handlers can distinguish 404
// from 403.
func (r *GroupRepo) GetByID(ctx context.Context, id uint64) (*model.Group, error) {
	const q = `SELECT g.id, g.user_id, g.name, g.created_at, g.updated_at,
	           (SELECT COUNT(*) FROM notes n WHERE n.group_id = g.id) AS note_count
	           FROM ` + "`groups`" + ` g WHERE g.id = ?`
	var g model.Group
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.NoteCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListByUser returns all groups for a user ordered by creation time
// descending, each with its note count.
func (r *GroupRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Group, error) {
	const q = `SELECT g.id, g.user_id, g.name, g.created_at, g.updated_at,
	           (SELECT COUNT(*) FROM notes n WHERE n.group_id = g.id) AS note_count
	           FROM ` + "`groups`" + ` g WHERE g.user_id = ? ORDER BY g.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Group{}
	for rows.Next() {
		g := new(model.Group)
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.NoteCount); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadNotes populates g.Notes with the group's notes ordered by
// creation time descending, each with its attached categories.
func (r *GroupRepo) LoadNotes(ctx context.Context, g *model.Group) error {
	const q = `SELECT id, group_id, title, content, status, created_at, updated_at
	           FROM notes WHERE group_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, g.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	notes := []*model.Note{}
	for rows.Next() {
		n := new(model.Note)
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Title, &n.Content, &n.Status, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := attachCategories(ctx, r.db, notes); err != nil {
		return err
	}
	g.Notes = notes
	return nil
}

// UpdateName renames a group. The caller performs the ownership gate
// before invoking this method.
func (r *GroupRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE `groups` SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		name, id)
	return err
}

// Delete removes a group. Notes and their join rows go with it via the
// schema's ON DELETE CASCADE constraints.
func (r *GroupRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM `groups` WHERE id = ?", id)
	return err
}
