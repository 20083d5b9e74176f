package httpserver_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinehub/httpserver"
)

func TestDefault(t *testing.T) {
	server := httpserver.Default(testConfig())

	assert.NotNil(t, server.Router, "Router should be initialized")
	assert.Equal(t, ":8080", server.Addr, "Default address should be :8080")
	assert.True(t, server.Origins.DevMode, "local config should enable dev origins")
}

func TestHealthCheck(t *testing.T) {
	server := httpserver.Default(testConfig())

	request := httptest.NewRequest("GET", "/healthcheck", nil)
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeAPIResponse(t, recorder)
	assert.Equal(t, "SUCCESS", resp.ID)
	assert.Equal(t, "Success", resp.Message)

	var data map[string]string
	decodeData(t, resp.Data, &data)
	assert.Equal(t, "OK", data["status"])
}

func TestUnknownRouteEnvelope(t *testing.T) {
	server := httpserver.Default(testConfig())

	request := httptest.NewRequest("GET", "/api/nope", nil)
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	resp := decodeAPIResponse(t, recorder)
	assert.Equal(t, "NOT_FOUND", resp.ID)
	assert.Equal(t, "Not found", resp.Message)
}

func TestResponseLanguage(t *testing.T) {
	server := httpserver.Default(testConfig())

	t.Run("lang query parameter wins", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/healthcheck?lang=uz", nil)
		request.Header.Set("Accept-Language", "en-US")
		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, "Muvaffaqiyatli", decodeAPIResponse(t, recorder).Message)
	})

	t.Run("Accept-Language primary subtag is used", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/healthcheck", nil)
		request.Header.Set("Accept-Language", "uz-UZ,ru;q=0.9")
		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, "Muvaffaqiyatli", decodeAPIResponse(t, recorder).Message)
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/healthcheck", nil)
		request.Header.Set("Accept-Language", "de-DE")
		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, "Success", decodeAPIResponse(t, recorder).Message)
	})

	t.Run("no language information falls back to english", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/healthcheck", nil)
		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, request)

		assert.Equal(t, "Success", decodeAPIResponse(t, recorder).Message)
	})
}

func TestServerStartAndShutdown(t *testing.T) {
	server := httpserver.Default(testConfig())
	port := allocateRandomPort(t)
	server.Addr = fmt.Sprintf(":%d", port)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()
	waitForServerReady(port)

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/healthcheck", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop in time")
	}
}

func allocateRandomPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func waitForServerReady(port int) {
	for i := 0; i < 50; i++ {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}
