//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-study/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/myenglish-study/internal/app"
	"github.com/heartmarshall/myenglish-study/internal/auth"
	"github.com/heartmarshall/myenglish-study/internal/config"
	"github.com/heartmarshall/myenglish-study/internal/transport/middleware"
	"github.com/heartmarshall/myenglish-study/internal/transport/rest"
)

const (
	testJWTSecret = "e2e-secret-at-least-32-chars-long!!"
	testJWTIssuer = "e2e-issuer"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{JWTSecret: testJWTSecret, JWTIssuer: testJWTIssuer},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
		SRS: config.SRSConfig{
			DefaultEaseFactor:      2.5,
			MinEaseFactor:          1.3,
			MaxEaseFactor:          3.5,
			MaxIntervalDays:        365,
			FirstIntervalDays:      1,
			LapseIntervalDays:      1,
			RelearnDelay:           10 * time.Minute,
			GraduationReps:         2,
			HardStreakThreshold:    3,
			RecoveryStreak:         2,
			CorrectThreshold:       4,
			VagueLow:               2,
			VagueHigh:              3,
			EasyThreshold:          7,
			LegacyCorrectThreshold: 3,
			PointsTable:            [8]int{1, 1, 3, 5, 5, 10, 12, 15},
		},
		Study: config.StudyConfig{DefaultBatchSize: 1, MaxBatchSize: 50},
	}
}

// setupTestServer bootstraps the application stack the way app.Run does,
// backed by the shared PostgreSQL container.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	cfg := testConfig()

	svc, err := app.NewStudyService(logger, cfg, pool)
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	t.Cleanup(limiter.Stop)

	handler := app.NewRouter(logger, cfg,
		auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0),
		limiter,
		rest.NewHealthHandler(pool, "test-version"),
		rest.NewStudyHandler(svc, logger),
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// tokenFor signs a short-lived access token whose subject is userID.
func tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    testJWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// do sends a JSON request and decodes the JSON response into a generic map.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}
