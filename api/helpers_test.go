package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"template-widgets/api"
	"template-widgets/template"
	"template-widgets/workspace"
)

func newTestServer(t *testing.T, templates ...string) (*httptest.Server, *workspace.Workspace) {
	t.Helper()
	if templates == nil {
		templates = []string{"a", "b"}
	}
	ws := workspace.New(template.NewStore(templates, 0), 5*time.Millisecond, nil)
	staticFS := fstest.MapFS{
		"index.html": {Data: []byte("<html></html>")},
	}
	srv := httptest.NewServer(api.RegisterRoutes(ws, staticFS, nil))
	t.Cleanup(func() {
		srv.Close()
		ws.Close()
	})
	return srv, ws
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, b)
	}
}

func decodeSnapshot(t *testing.T, resp *http.Response) template.Snapshot {
	t.Helper()
	var snap template.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
