package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/RodrigoAlexander7/linespace/internal/model"
)

// attachCategories populates the Categories slice of every note in one
// round trip. Notes without tags end up with an empty (non-nil) slice so
// the JSON encoding is always an array.
func attachCategories(ctx context.Context, db *sql.DB, notes []*model.Note) error {
	byID := make(map[uint64]*model.Note, len(notes))
	args := make([]any, 0, len(notes))
	for _, n := range notes {
		n.Categories = []*model.Category{}
		byID[n.ID] = n
		args = append(args, n.ID)
	}
	if len(notes) == 0 {
		return nil
	}

	q := `SELECT nc.note_id, c.id, c.user_id, c.name, c.color, c.created_at, c.updated_at
	      FROM note_categories nc
	      JOIN categories c ON c.id = nc.category_id
	      WHERE nc.note_id IN (` + placeholders(len(args)) + `)
	      ORDER BY c.name`
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var noteID uint64
		c := new(model.Category)
		if err := rows.Scan(&noteID, &c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		if n, ok := byID[noteID]; ok {
			n.Categories = append(n.Categories, c)
		}
	}
	return rows.Err()
}

// placeholders returns a comma-separated list of n '?' markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
