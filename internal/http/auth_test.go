package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	odysseyHttp "github.com/Jamessshhh/Expense-Odyssey/internal/http"
)

func TestRequireToken(t *testing.T) {
	const secret = "test-secret"

	handler := odysseyHttp.RequireToken(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	sign := func(key string) string {
		token, err := jwt.New(jwt.SigningMethodHS256).SignedString([]byte(key))
		require.NoError(t, err)

		return token
	}

	type testCase struct {
		name       string
		authHeader string
		wantStatus int
	}

	tests := []testCase{
		{name: "ValidToken", authHeader: "Bearer " + sign(secret), wantStatus: http.StatusOK},
		{name: "WrongSecret", authHeader: "Bearer " + sign("other"), wantStatus: http.StatusUnauthorized},
		{name: "NoHeader", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "NotBearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "Garbage", authHeader: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
