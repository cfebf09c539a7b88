package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"tabela/internal/app/server/api/http/middleware/ratelimit"
	"tabela/internal/app/server/config"
	"tabela/internal/domain/submission"
	"tabela/internal/infrastructure/storage"
)

type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryBlobs) Put(_ context.Context, key string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = body
	return nil
}

func (m *memoryBlobs) Location(key string) string { return "s3://test/" + key }

type countingNotifier struct {
	mu   sync.Mutex
	sent []submission.Message
}

func (n *countingNotifier) Send(_ context.Context, msg submission.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

type server struct {
	t    *testing.T
	srv  *httptest.Server
	blob *memoryBlobs
	mail *countingNotifier
}

func newServer(t *testing.T, deps Deps) *server {
	t.Helper()
	ctx := context.Background()
	log := slog.Default()

	st, err := storage.Open(ctx, config.Database{
		Driver: config.DriverSQLite,
		URI:    filepath.Join(t.TempDir(), "api.db"),
	}, "", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	blobs := &memoryBlobs{objects: make(map[string][]byte)}
	mail := &countingNotifier{}

	deps.Records = st.Records()
	deps.Relay = submission.NewService(blobs, mail, log)

	srv := httptest.NewServer(New(deps, log))
	t.Cleanup(srv.Close)

	return &server{t: t, srv: srv, blob: blobs, mail: mail}
}

func (s *server) do(method, path, body string) (int, []byte) {
	s.t.Helper()
	req, err := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	require.NoError(s.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, data
}

func TestAPI_Health(t *testing.T) {
	s := newServer(t, Deps{})

	code, body := s.do(http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","message":"Estou vivo!"}`, string(body))
}

func TestAPI_RecordLifecycle(t *testing.T) {
	s := newServer(t, Deps{})

	code, body := s.do(http.MethodPost, "/tabela?nome=Ana&idade=30", "")
	require.Equal(t, http.StatusOK, code, string(body))
	assert.JSONEq(t, `{"id":1,"nome":"Ana","idade":30}`, string(body))

	code, body = s.do(http.MethodGet, "/tabela", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":1,"nome":"Ana","idade":30}]`, string(body))

	code, body = s.do(http.MethodPut, "/tabela/9999?nome=Bia&idade=25", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"erro":"Registro não encontrado"}`, string(body))

	code, body = s.do(http.MethodPut, "/tabela/1?nome=Carla&idade=41", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":1,"nome":"Carla","idade":41}`, string(body))

	_, first := s.do(http.MethodGet, "/tabela", "")
	_, second := s.do(http.MethodGet, "/tabela", "")
	assert.JSONEq(t, `[{"id":1,"nome":"Carla","idade":41}]`, string(first))
	assert.Equal(t, first, second)

	code, body = s.do(http.MethodDelete, "/tabela/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"mensagem":"Registro 1 deletado com sucesso"}`, string(body))

	code, body = s.do(http.MethodDelete, "/tabela/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"erro":"Registro não encontrado"}`, string(body))

	_, body = s.do(http.MethodGet, "/tabela", "")
	assert.JSONEq(t, `[]`, string(body))
}

func TestAPI_StrictNotFound(t *testing.T) {
	s := newServer(t, Deps{StrictNotFound: true})

	code, body := s.do(http.MethodDelete, "/tabela/42", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"erro":"Registro não encontrado"}`, string(body))
}

func TestAPI_Submit(t *testing.T) {
	s := newServer(t, Deps{})

	keys := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		code, body := s.do(http.MethodPost, "/submit", `{"a":1}`)
		require.Equal(t, http.StatusOK, code, string(body))

		var res map[string]string
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "ok", res["status"])
		assert.True(t, strings.HasPrefix(res["s3_key"], "submissions/"))
		keys[res["s3_key"]] = struct{}{}

		assert.Equal(t, []byte(`{"a":1}`), s.blob.objects[res["s3_key"]])
	}

	assert.Len(t, keys, 3)
	assert.Len(t, s.mail.sent, 3)
}

func TestAPI_RateLimited(t *testing.T) {
	s := newServer(t, Deps{Limiter: ratelimit.New(0.001, 1, slog.Default())})

	code, _ := s.do(http.MethodGet, "/tabela", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/tabela", "")
	assert.Equal(t, http.StatusTooManyRequests, code)

	// liveness is never limited
	code, _ = s.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
}
