package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminToken(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
		wantCode   string
	}{
		{name: "matching token", configured: "s3cret", sent: "s3cret", wantStatus: http.StatusOK},
		{name: "missing token", configured: "s3cret", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "wrong token", configured: "s3cret", sent: "guess", wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "guard disabled", configured: "", sent: "", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/products", nil)
			if tt.sent != "" {
				req.Header.Set(AdminTokenHeader, tt.sent)
			}
			rr := httptest.NewRecorder()
			AdminToken(tt.configured, discardLogger())(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode == "" {
				return
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}
