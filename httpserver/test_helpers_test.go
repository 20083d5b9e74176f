//nolint:unused
package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	"cinehub/httpserver"
	"cinehub/pkg/config"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Port = 8080
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken(t *testing.T, userID int64, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "test@example.com",
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(1 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()

	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, data interface{}, out interface{}) {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
