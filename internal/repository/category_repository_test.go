package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/linespace/internal/model"
)

func strPtr(s string) *string { return &s }

func TestCategoryRepoCreate(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "inserts and loads timestamps",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO categories").
					WithArgs(uint64(7), "ideas", "#FF5733").
					WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectQuery("SELECT created_at, updated_at FROM categories").
					WithArgs(uint64(9)).
					WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
			},
		},
		{
			name: "duplicate name maps to ErrConflict",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO categories").
					WithArgs(uint64(7), "ideas", "#FF5733").
					WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			c := &model.Category{UserID: 7, Name: "ideas", Color: strPtr("#FF5733")}
			err = NewCategoryRepo(db).Create(context.Background(), c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint64(9), c.ID)
				assert.Equal(t, now, c.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCategoryRepoExistsByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(uint64(7), "ideas").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	got, err := NewCategoryRepo(db).ExistsByName(context.Background(), 7, "ideas")
	require.NoError(t, err)
	assert.True(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepoGetByID(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	cols := []string{"id", "user_id", "name", "color", "created_at", "updated_at", "note_count"}

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *model.Category
		wantErr   error
	}{
		{
			name: "returns category with note count",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT c.id, c.user_id, c.name").
					WithArgs(uint64(9)).
					WillReturnRows(sqlmock.NewRows(cols).AddRow(9, 7, "ideas", "#FF5733", now, now, 2))
			},
			want: &model.Category{ID: 9, UserID: 7, Name: "ideas", Color: strPtr("#FF5733"), CreatedAt: now, UpdatedAt: now, NoteCount: 2},
		},
		{
			name: "nullable color scans to nil",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT c.id, c.user_id, c.name").
					WithArgs(uint64(9)).
					WillReturnRows(sqlmock.NewRows(cols).AddRow(9, 7, "ideas", nil, now, now, 0))
			},
			want: &model.Category{ID: 9, UserID: 7, Name: "ideas", CreatedAt: now, UpdatedAt: now},
		},
		{
			name: "missing id maps to ErrCategoryNotFound",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT c.id, c.user_id, c.name").
					WithArgs(uint64(9)).
					WillReturnRows(sqlmock.NewRows(cols))
			},
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			got, err := NewCategoryRepo(db).GetByID(context.Background(), 9)
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

func TestCategoryRepoCountOwned(t *testing.T) {
	tests := []struct {
		name      string
		ids       []uint64
		setupMock func(mock sqlmock.Sqlmock)
		want      int64
	}{
		{
			name: "all ids owned",
			ids:  []uint64{1, 2, 3},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").
					WithArgs(uint64(1), uint64(2), uint64(3), uint64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
			},
			want: 3,
		},
		{
			name: "foreign id drops the count",
			ids:  []uint64{1, 99},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").
					WithArgs(uint64(1), uint64(99), uint64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			},
			want: 1,
		},
		{
			name:      "empty slice short-circuits without querying",
			ids:       nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			got, err := NewCategoryRepo(db).CountOwned(context.Background(), 7, tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCategoryRepoLoadNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	cols := []string{
		"n_id", "n_group_id", "n_title", "n_content", "n_status", "n_created", "n_updated",
		"g_id", "g_user_id", "g_name", "g_created", "g_updated",
	}
	mock.ExpectQuery("FROM note_categories nc").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(11, 3, "title", "body", "ACTIVE", now, now, 3, 7, "Work", now, now))

	c := &model.Category{ID: 9, UserID: 7}
	require.NoError(t, NewCategoryRepo(db).LoadNotes(context.Background(), c))

	require.Len(t, c.Notes, 1)
	require.NotNil(t, c.Notes[0].Group)
	assert.Equal(t, "Work", c.Notes[0].Group.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepoUpdateConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE categories SET").
		WithArgs("taken", nil, uint64(9)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	c := &model.Category{ID: 9, UserID: 7, Name: "taken"}
	err = NewCategoryRepo(db).Update(context.Background(), c)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
