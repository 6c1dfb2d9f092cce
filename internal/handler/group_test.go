package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/linespace/internal/repository"
)

var groupCols = []string{"id", "user_id", "name", "created_at", "updated_at", "note_count"}

func TestGroupHandlerCreate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(mock sqlmock.Sqlmock)
		wantCode  int
	}{
		{
			name: "creates group",
			body: `{"name":"Work"}`,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO").
					WithArgs(testUserID, "Work").
					WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectQuery("SELECT created_at, updated_at FROM").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(testTime, testTime))
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "rejects blank name",
			body:      `{"name":"   "}`,
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "rejects missing name",
			body:      `{}`,
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)
			h := NewGroupHandler(repository.NewGroupRepo(db))

			c, rec := newTestContext(t, http.MethodPost, "/v1/groups", tt.body)
			require.NoError(t, h.Create(c))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupHandlerGetGates(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantCode  int
	}{
		{
			name: "missing group returns 404",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows(groupCols))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "foreign group returns 403",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows(groupCols).
						AddRow(3, 99, "Foreign", testTime, testTime, 0))
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "owned group loads notes",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows(groupCols).
						AddRow(3, testUserID, "Work", testTime, testTime, 0))
				mock.ExpectQuery("FROM notes WHERE group_id").
					WithArgs(uint64(3)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "title", "content", "status", "created_at", "updated_at"}))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)
			h := NewGroupHandler(repository.NewGroupRepo(db))

			c, rec := newTestContext(t, http.MethodGet, "/v1/groups/3", "")
			withParamID(c, 3)
			require.NoError(t, h.Get(c))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupHandlerUpdateSkipsWriteWhenNameUnchanged(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(groupCols).
			AddRow(3, testUserID, "Work", testTime, testTime, 2))
	// no UPDATE expected

	h := NewGroupHandler(repository.NewGroupRepo(db))
	c, rec := newTestContext(t, http.MethodPatch, "/v1/groups/3", `{"name":"Work"}`)
	withParamID(c, 3)
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupHandlerDelete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT g.id, g.user_id, g.name").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(groupCols).
			AddRow(3, testUserID, "Work", testTime, testTime, 2))
	mock.ExpectExec("DELETE FROM").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := NewGroupHandler(repository.NewGroupRepo(db))
	c, rec := newTestContext(t, http.MethodDelete, "/v1/groups/3", "")
	withParamID(c, 3)
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Group deleted successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}
