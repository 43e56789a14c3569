package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/moltext/moltext/pkg/pipeline"
	"github.com/moltext/moltext/pkg/store"
)

const benzeneJSON = `{
  "name": "benzene",
  "molecule": {
    "components": [
      {"node": {"kind": "ring", "atom": "c", "size": 6, "number": 1}}
    ]
  }
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	return New(Config{Addr: ":0"}, runner, store.NewMemoryStore(),
		log.NewWithOptions(io.Discard, log.Options{}))
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestEncodeEndpoint(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodPost, "/v1/encode", benzeneJSON)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body)
	}

	var resp encodeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Notation != "c1ccccc1" {
		t.Errorf("notation = %q, want %q", resp.Notation, "c1ccccc1")
	}
	if resp.Name != "benzene" {
		t.Errorf("name = %q, want %q", resp.Name, "benzene")
	}
	if resp.JobID == "" {
		t.Error("job_id missing")
	}
}

func TestEncodeBadDocument(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodPost, "/v1/encode",
		`{"molecule": {"components": []}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body)
	}

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code != "INVALID_DOCUMENT" {
		t.Errorf("code = %q, want INVALID_DOCUMENT", resp.Code)
	}
}

func TestMoleculeCRUD(t *testing.T) {
	s := testServer(t)

	// Create
	w := doRequest(t, s, http.MethodPost, "/v1/molecules", benzeneJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", w.Code, w.Body)
	}
	var created moleculeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID == "" || created.Notation != "c1ccccc1" {
		t.Errorf("created = %+v", created)
	}

	// Get
	w = doRequest(t, s, http.MethodGet, "/v1/molecules/benzene", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// List
	w = doRequest(t, s, http.MethodGet, "/v1/molecules", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []moleculeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 || list[0].Name != "benzene" {
		t.Errorf("list = %+v", list)
	}

	// Delete
	w = doRequest(t, s, http.MethodDelete, "/v1/molecules/benzene", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doRequest(t, s, http.MethodGet, "/v1/molecules/benzene", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", w.Code)
	}
}

func TestCreateReplacesSameName(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/v1/molecules", benzeneJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}
	var first moleculeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &first)

	w = doRequest(t, s, http.MethodPost, "/v1/molecules", benzeneJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("second create status = %d", w.Code)
	}
	var second moleculeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &second)

	if first.ID != second.ID {
		t.Errorf("replacement changed ID: %q -> %q", first.ID, second.ID)
	}

	w = doRequest(t, s, http.MethodGet, "/v1/molecules", "")
	var list []moleculeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Errorf("list has %d entries, want 1", len(list))
	}
}

func TestGetMissingMolecule(t *testing.T) {
	w := doRequest(t, testServer(t), http.MethodGet, "/v1/molecules/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestArtifactEndpointDOT(t *testing.T) {
	s := testServer(t)
	if w := doRequest(t, s, http.MethodPost, "/v1/molecules", benzeneJSON); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	w := doRequest(t, s, http.MethodGet, "/v1/molecules/benzene/artifact?format=dot", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "graph M {") {
		t.Errorf("body is not DOT:\n%s", w.Body)
	}
}

func TestArtifactBadFormat(t *testing.T) {
	s := testServer(t)
	if w := doRequest(t, s, http.MethodPost, "/v1/molecules", benzeneJSON); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	w := doRequest(t, s, http.MethodGet, "/v1/molecules/benzene/artifact?format=gif", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
