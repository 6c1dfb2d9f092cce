package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/linespace/internal/model"
)

func TestGroupRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectExec("INSERT INTO").
		WithArgs(uint64(7), "Work").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewGroupRepo(db)
	g := &model.Group{UserID: 7, Name: "Work"}
	require.NoError(t, repo.Create(context.Background(), g))

	assert.Equal(t, uint64(42), g.ID)
	assert.Equal(t, now, g.CreatedAt)
	assert.Equal(t, int64(0), g.NoteCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepoGetByID(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	cols := []string{"id", "user_id", "name", "created_at", "updated_at", "note_count"}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *model.Group
		wantErr   error
	}{
		{
			name: "returns group with note count",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows(cols).AddRow(3, 7, "Work", now, now, 5))
			},
			want: &model.Group{ID: 3, UserID: 7, Name: "Work", CreatedAt: now, UpdatedAt: now, NoteCount: 5},
		},
		{
			name: "missing id maps to ErrGroupNotFound",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows(cols))
			},
			wantErr: ErrGroupNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			got, err := NewGroupRepo(db).GetByID(context.Background(), 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	cols := []string{"id", "user_id", "name", "created_at", "updated_at", "note_count"}
	mock.ExpectQuery("ORDER BY g.created_at DESC").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, 7, "Later", now, now, 0).
			AddRow(1, 7, "Earlier", now.Add(-time.Hour), now, 3))

	got, err := NewGroupRepo(db).ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Later", got[0].Name)
	assert.Equal(t, int64(3), got[1].NoteCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepoListByUserEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "user_id", "name", "created_at", "updated_at", "note_count"}
	mock.ExpectQuery("ORDER BY g.created_at DESC").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := NewGroupRepo(db).ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepoLoadNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	noteCols := []string{"id", "group_id", "title", "content", "status", "created_at", "updated_at"}
	mock.ExpectQuery("FROM notes WHERE group_id").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(11, 3, "newest", "b", "ACTIVE", now, now).
			AddRow(10, 3, "oldest", "a", "ARCHIVED", now.Add(-time.Hour), now))
	catCols := []string{"note_id", "id", "user_id", "name", "color", "created_at", "updated_at"}
	mock.ExpectQuery("FROM note_categories nc").
		WithArgs(uint64(11), uint64(10)).
		WillReturnRows(sqlmock.NewRows(catCols).AddRow(11, 5, 7, "ideas", nil, now, now))

	g := &model.Group{ID: 3, UserID: 7}
	require.NoError(t, NewGroupRepo(db).LoadNotes(context.Background(), g))

	require.Len(t, g.Notes, 2)
	assert.Equal(t, "newest", g.Notes[0].Title)
	require.Len(t, g.Notes[0].Categories, 1)
	assert.Equal(t, "ideas", g.Notes[0].Categories[0].Name)
	// untagged note still carries an empty array, not nil
	assert.NotNil(t, g.Notes[1].Categories)
	assert.Empty(t, g.Notes[1].Categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}
