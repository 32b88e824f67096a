//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/mailtriage/triagem-backend/internal/adapter/postgres/email"
	"github.com/mailtriage/triagem-backend/internal/adapter/postgres/profile"
	"github.com/mailtriage/triagem-backend/internal/adapter/postgres/testhelper"
	"github.com/mailtriage/triagem-backend/internal/adapter/provider/ibge"
	authpkg "github.com/mailtriage/triagem-backend/internal/auth"
	"github.com/mailtriage/triagem-backend/internal/config"
	authsvc "github.com/mailtriage/triagem-backend/internal/service/auth"
	emailsvc "github.com/mailtriage/triagem-backend/internal/service/email"
	inboundsvc "github.com/mailtriage/triagem-backend/internal/service/inbound"
	locationsvc "github.com/mailtriage/triagem-backend/internal/service/location"
	reportsvc "github.com/mailtriage/triagem-backend/internal/service/report"
	"github.com/mailtriage/triagem-backend/internal/transport/rest"
)

const (
	systemAddress = "triagem@example.com"
	webhookSecret = "e2e-webhook-secret"
)

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter routes service logs into the test log so failures carry
// context without polluting stdout.
type testLogWriter struct {
	t *testing.T
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(string(bytes.TrimSpace(p)))
	return len(p), nil
}

// fakeIBGE serves a minimal localidades API so no e2e test touches the
// network.
func fakeIBGE(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /estados", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":22,"sigla":"PI","nome":"Piauí"},{"id":35,"sigla":"SP","nome":"São Paulo"}]`)
	})
	mux.HandleFunc("GET /estados/{sigla}/municipios", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":2211001,"nome":"Teresina"},{"id":2207702,"nome":"Parnaíba"}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	emailRepo := email.New(pool)
	profileRepo := profile.New(pool)

	jwtSecret := "test-secret-at-least-32-chars-long!!"
	jwtMgr := authpkg.NewJWTManager(jwtSecret, "test-issuer", 15*time.Minute)

	ibgeSrv := fakeIBGE(t)
	provider := ibge.NewProviderWithURL(ibgeSrv.URL, 5*time.Second, logger)

	authService := authsvc.NewService(logger, profileRepo, jwtMgr, config.AuthConfig{
		JWTSecret:      jwtSecret,
		JWTIssuer:      "test-issuer",
		AccessTokenTTL: 15 * time.Minute,
	})
	emailService := emailsvc.NewService(logger, emailRepo)
	inboundService := inboundsvc.NewService(logger, emailRepo, systemAddress)
	locationService := locationsvc.NewService(logger, provider)
	reportService := reportsvc.NewService(logger, emailRepo, 3, time.UTC)

	router := rest.NewRouter(rest.RouterDeps{
		Logger:    logger,
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS", AllowedHeaders: "Authorization,Content-Type", MaxAge: 86400},
		Validator: authService,
		Auth:      rest.NewAuthHandler(authService, logger),
		Emails:    rest.NewEmailHandler(emailService, logger),
		Dashboard: rest.NewDashboardHandler(reportService, logger),
		Locations: rest.NewLocationHandler(locationService, logger),
		Webhook:   rest.NewWebhookHandler(inboundService, webhookSecret, logger),
		Health:    rest.NewHealthHandler(pool, "test-version"),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// doJSON sends a request with an optional JSON body and bearer token, and
// decodes the JSON response when there is one.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
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

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func (ts *testServer) doJSONList(t *testing.T, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

var profileSeq int64

// registerAndLogin creates a fresh profile and returns its access token.
func registerAndLogin(t *testing.T, ts *testServer) string {
	t.Helper()

	profileSeq++
	addr := fmt.Sprintf("operator-%d-%d@example.com", time.Now().UnixNano(), profileSeq)

	status, body := ts.doJSON(t, http.MethodPost, "/auth/register", map[string]any{
		"nome":  "Operador E2E",
		"email": addr,
		"senha": "senha-123",
	}, "")
	require.Equal(t, http.StatusCreated, status, "register: %v", body)

	token, ok := body["access_token"].(string)
	require.True(t, ok, "expected access_token in register response")
	require.NotEmpty(t, token)
	return token
}
