package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoAlexander7/linespace/internal/utils"
)

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	valid, err := utils.NewAccessToken(secret, 42, 15)
	require.NoError(t, err)
	foreign, err := utils.NewAccessToken("other-secret", 42, 15)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
		wantNext   bool
	}{
		{
			name:       "valid token passes and sets user_id",
			authHeader: "Bearer " + valid.Token,
			wantCode:   http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header is rejected",
			authHeader: "",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "non-bearer scheme is rejected",
			authHeader: "Basic abc123",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret is rejected",
			authHeader: "Bearer " + foreign.Token,
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "garbage token is rejected",
			authHeader: "Bearer not.a.jwt",
			wantCode:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/notes", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			nextCalled := false
			h := JWTAuth(secret)(func(c echo.Context) error {
				nextCalled = true
				// numeric claims decode to float64
				assert.Equal(t, float64(42), c.Get("user_id"))
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, h(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
