package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "jobs.db")
	srv, err := New(Options{
		ServiceSecret: "test-secret",
		SQLitePath:    dbPath,
		DictionaryDir: t.TempDir(),
		Workers:       1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func authedRequest(t *testing.T, srv *Server, method, path string, body []byte) *http.Request {
	t.Helper()
	token, err := srv.auth.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleSubmitAndGet(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(submitRequest{GridText: "AB\nCD", DictionaryName: "small"})
	req := authedRequest(t, srv, http.MethodPost, "/jobs", body)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit got status %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}

	var submitted jobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if submitted.Status != StatusQueued {
		t.Errorf("got status %q, want %q", submitted.Status, StatusQueued)
	}
	if submitted.ID == "" {
		t.Fatal("submit response missing job ID")
	}

	// drain the queued ID so the unbuffered test doesn't leak a worker pickup.
	select {
	case <-srv.jobs:
	default:
	}

	getReq := authedRequest(t, srv, http.MethodGet, "/jobs/"+submitted.ID, nil)
	getRec := httptest.NewRecorder()
	srv.router.ServeHTTP(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("get got status %d, want %d: %s", getRec.Code, http.StatusOK, getRec.Body.String())
	}

	var fetched jobResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if fetched.ID != submitted.ID {
		t.Errorf("got ID %q, want %q", fetched.ID, submitted.ID)
	}
}

func TestHandleGetUnknownJob(t *testing.T) {
	srv := newTestServer(t)

	req := authedRequest(t, srv, http.MethodGet, "/jobs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleSubmitRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t)

	req := authedRequest(t, srv, http.MethodPost, "/jobs", []byte(`{}`))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleSubmitRejectsUnauthenticated(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(submitRequest{GridText: "AB", DictionaryName: "small"})
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleSubscribeReturnsImmediatelyForCompletedJob(t *testing.T) {
	srv := newTestServer(t)

	job := &Job{
		ID:             "done-1",
		DictionaryName: "small",
		GridText:       "AB",
		CreatedAt:      time.Now(),
	}
	if err := srv.store.Create(job); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := srv.store.Complete(job.ID, true, "AB", "", 3, time.Now()); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// handleSubscribe calls ServeWs, which will fail the websocket
	// upgrade against an httptest.ResponseRecorder; what's under test
	// here is that a completed job is looked up and handed to ServeWs
	// rather than hanging, so a non-websocket request surfaces as a
	// clean error response instead of a panic.
	req := authedRequest(t, srv, http.MethodGet, "/jobs/"+job.ID+"/ws", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code == http.StatusNotFound {
		t.Errorf("got 404 for a job that exists")
	}
}

func TestServerHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusOK)
	}
}

