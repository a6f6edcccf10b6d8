package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"rulesync/internal/service"
	"rulesync/pkg/testutils"
	"rulesync/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T, globalDir string) *Handlers {
	t.Helper()
	svc := service.NewWithConfigPath(testutils.WriteConfigFile(t, globalDir))
	return NewHandlers(svc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandlers(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleLoadGlobalRules(t *testing.T) {
	globalDir := t.TempDir()
	projectDir := t.TempDir()
	testutils.CreateRuleFiles(t, globalDir, map[string]string{"g-a.mdc": "rule a"})

	h := newTestHandlers(t, globalDir)
	rec := postJSON(t, h.HandleLoadGlobalRules, `{"path":"`+projectDir+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.FileExists(t, filepath.Join(projectDir, ".cursor", "rules", "g-a.mdc"))
}

func TestHandleSaveGlobalRules(t *testing.T) {
	globalDir := t.TempDir()
	projectDir := t.TempDir()

	// No .cursor/rules in the project, so saving fails with an
	// operation error inside a 200 response.
	h := newTestHandlers(t, globalDir)
	rec := postJSON(t, h.HandleSaveGlobalRules, `{"path":"`+projectDir+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var res types.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, types.OperationError, res.Errors[0].Type)
	assert.Contains(t, res.Errors[0].Message, "Source directory does not exist")
}

func TestHandleMalformedBody(t *testing.T) {
	h := newTestHandlers(t, t.TempDir())

	rec := postJSON(t, h.HandleLoadGlobalRules, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWrongMethod(t *testing.T) {
	h := newTestHandlers(t, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/loadGlobalRules", nil)
	rec := httptest.NewRecorder()
	h.HandleLoadGlobalRules(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestConfigFailureOverHTTP(t *testing.T) {
	// Service wired to a nonexistent config file
	svc := service.NewWithConfigPath(filepath.Join(t.TempDir(), "nope.yaml"))
	h := NewHandlers(svc)

	rec := postJSON(t, h.HandleLoadGlobalRules, `{"path":"/some/project"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res types.SyncResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, types.ConfigParsingError, res.Errors[0].Type)
}

func TestServerRoutes(t *testing.T) {
	globalDir := t.TempDir()
	svc := service.NewWithConfigPath(testutils.WriteConfigFile(t, globalDir))
	srv := NewServer("127.0.0.1:0", svc)

	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
