package handler

import (
	"database/sql"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/linespace/internal/validation"
)

const testUserID uint64 = 1

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestContext builds an Echo context with the request validator
// installed and the JWT middleware's user_id already set, mirroring
// what a request sees after passing authentication.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	c.Set("user_id", testUserID)
	return c, rec
}

// withParamID sets the :id route parameter.
func withParamID(c echo.Context, id uint64) {
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(id, 10))
}

// newMockDB returns a sqlmock-backed database handle for handler tests.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}
