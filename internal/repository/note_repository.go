// This file defines repository methods for notes, the core entity of
// the application. A note has no user_id column: its owner is always
// the owner of its group, so every ownership-sensitive query joins
// through `groups`.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RodrigoAlexander7/linespace/internal/model"
)

// NoteFilter narrows ListByUser results. Zero values mean "no filter";
// the predicates compose with logical AND.
type NoteFilter struct {
	Status     model.NoteStatus // exact status match
	GroupID    uint64           // exact group match
	CategoryID uint64           // note has a join row for this category
}

// NoteRepo encapsulates all database queries related to notes.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo constructs a NoteRepo with the provided DB handle.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Create inserts a note together with one join row per category id in
// a single transaction, so a note never becomes visible with only part
// of its tags. The caller has already verified group and category
// ownership. On success the ID, Status and timestamp fields are
// populated and Categories/Group are loaded.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note, categoryIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		"INSERT INTO notes (group_id, title, content) VALUES (?, ?, ?)",
		n.GroupID, n.Title, n.Content)
	if err != nil {
		return err
	}
	var id int64
	id, err = res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)

	for _, cid := range categoryIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO note_categories (note_id, category_id) VALUES (?, ?)",
			n.ID, cid); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	loaded, err := r.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	*n = *loaded
	return nil
}

// GetByID fetches a note with its group (including the group's owner
// for the authorization check) and attached categories. Returns
// ErrNoteNotFound when the id does not exist; the ownership decision
// is left to the caller.
func (r *NoteRepo) GetByID(ctx context.Context, id uint64) (*model.Note, error) {
	const q = `SELECT n.id, n.group_id, n.title, n.content, n.status, n.created_at, n.updated_at,
	           g.id, g.user_id, g.name, g.created_at, g.updated_at
	           FROM notes n
	           JOIN ` + "`groups`" + ` g ON g.id = n.group_id
	           WHERE n.id = ?`
	n := new(model.Note)
	g := new(model.Group)
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&n.ID, &n.GroupID, &n.Title, &n.Content, &n.Status, &n.CreatedAt, &n.UpdatedAt,
			&g.ID, &g.UserID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	n.Group = g
	if err := attachCategories(ctx, r.db, []*model.Note{n}); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByUser returns every note whose group belongs to the user,
// narrowed by the filter, ordered by last update descending. Each note
// carries its group and categories.
func (r *NoteRepo) ListByUser(ctx context.Context, userID uint64, f NoteFilter) ([]*model.Note, error) {
	q := `SELECT n.id, n.group_id, n.title, n.content, n.status, n.created_at, n.updated_at,
	      g.id, g.user_id, g.name, g.created_at, g.updated_at
	      FROM notes n
	      JOIN ` + "`groups`" + ` g ON g.id = n.group_id
	      WHERE g.user_id = ?`
	args := []any{userID}
	if f.Status != "" {
		q += " AND n.status = ?"
		args = append(args, f.Status)
	}
	if f.GroupID != 0 {
		q += " AND n.group_id = ?"
		args = append(args, f.GroupID)
	}
	if f.CategoryID != 0 {
		q += " AND EXISTS (SELECT 1 FROM note_categories nc WHERE nc.note_id = n.id AND nc.category_id = ?)"
		args = append(args, f.CategoryID)
	}
	q += " ORDER BY n.updated_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*model.Note{}
	for rows.Next() {
		n := new(model.Note)
		g := new(model.Group)
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Title, &n.Content, &n.Status, &n.CreatedAt, &n.UpdatedAt,
			&g.ID, &g.UserID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		n.Group = g
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := attachCategories(ctx, r.db, notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Update writes the note's title, content and status, and, when
// categoryIDs is non-nil, replaces the full set of join rows: delete
// everything, insert the new set. An empty slice therefore clears all
// tags, while nil leaves them untouched. Replacement and field update
// run in one transaction so a crash can never leave the note with a
// half-written tag set.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note, categoryIDs *[]uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if categoryIDs != nil {
		if _, err = tx.ExecContext(ctx,
			"DELETE FROM note_categories WHERE note_id = ?", n.ID); err != nil {
			return err
		}
		for _, cid := range *categoryIDs {
			if _, err = tx.ExecContext(ctx,
				"INSERT INTO note_categories (note_id, category_id) VALUES (?, ?)",
				n.ID, cid); err != nil {
				return err
			}
		}
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE notes SET title = ?, content = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		n.Title, n.Content, n.Status, n.ID); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	loaded, err := r.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	*n = *loaded
	return nil
}

// SetStatus overwrites the note's status unconditionally. Archiving an
// already archived note is a state no-op but still executes the write.
func (r *NoteRepo) SetStatus(ctx context.Context, id uint64, status model.NoteStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE notes SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id)
	return err
}

// Delete hard-deletes a note; join rows disappear via cascade.
func (r *NoteRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	return err
}
