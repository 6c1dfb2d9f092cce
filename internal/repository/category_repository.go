// This file defines repository methods for categories, the per-user
// tags attachable to notes. Category names are unique per owner: the
// service performs a pre-insert lookup and the schema carries a
// composite unique constraint on (user_id, name) as a backstop.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RodrigoAlexander7/linespace/internal/model"
)

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ExistsByName reports whether the user already has a category with
// this name.
func (r *CategoryRepo) ExistsByName(ctx context.Context, userID uint64, name string) (bool, error) {
	const q = "SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = ? AND name = ?)"
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, userID, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new category and populates ID plus timestamp fields.
// A duplicate (user_id, name) pair that slips past the pre-insert
// lookup is caught here via the unique constraint and mapped to
// ErrConflict.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (user_id, name, color) VALUES (?, ?, ?)",
		c.UserID, c.Name, c.Color)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM categories WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.NoteCount = 0
	return nil
}

// GetByID fetches a category by id regardless of owner, with its note
// count. Returns ErrCategoryNotFound when no row exists; the ownership
// decision is left to the caller.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	const q = `SELECT c.id, c.user_id, c.name, c.color, c.created_at, c.updated_at,
	           (SELECT COUNT(*) FROM note_categories nc WHERE nc.category_id = c.id) AS note_count
	           FROM categories c WHERE c.id = ?`
	var c model.Category
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt, &c.NoteCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByUser returns all categories for a user ordered by name
// ascending, each with its note count.
func (r *CategoryRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Category, error) {
	const q = `SELECT c.id, c.user_id, c.name, c.color, c.created_at, c.updated_at,
	           (SELECT COUNT(*) FROM note_categories nc WHERE nc.category_id = c.id) AS note_count
	           FROM categories c WHERE c.user_id = ? ORDER BY c.name ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Category{}
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt, &c.NoteCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadNotes populates c.Notes with every note tagged by this category,
// each carrying its containing group.
func (r *CategoryRepo) LoadNotes(ctx context.Context, c *model.Category) error {
	const q = `SELECT n.id, n.group_id, n.title, n.content, n.status, n.created_at, n.updated_at,
	           g.id, g.user_id, g.name, g.created_at, g.updated_at
	           FROM note_categories nc
	           JOIN notes n ON n.id = nc.note_id
	           JOIN ` + "`groups`" + ` g ON g.id = n.group_id
	           WHERE nc.category_id = ?
	           ORDER BY n.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	notes := []*model.Note{}
	for rows.Next() {
		n := new(model.Note)
		g := new(model.Group)
		if err := rows.Scan(&n.ID, &n.GroupID, &n.Title, &n.Content, &n.Status, &n.CreatedAt, &n.UpdatedAt,
			&g.ID, &g.UserID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return err
		}
		n.Group = g
		n.Categories = []*model.Category{}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	c.Notes = notes
	return nil
}

// CountOwned returns how many of the given category ids exist and
// belong to the user. A result lower than len(ids) means at least one
// id is foreign or nonexistent; callers treat both the same way.
func (r *CategoryRepo) CountOwned(ctx context.Context, userID uint64, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, userID)
	q := "SELECT COUNT(*) FROM categories WHERE id IN (" + placeholders(len(ids)) + ") AND user_id = ?"
	var n int64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update writes the name and color columns. The caller performs the
// ownership gate and the rename uniqueness check first; the unique
// constraint still backstops races and maps to ErrConflict.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, color = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		c.Name, c.Color, c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM categories WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Delete hard-deletes a category; join rows disappear via cascade.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	return err
}
