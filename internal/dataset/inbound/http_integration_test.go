package inbound

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/cache"
	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
	"github.com/phamm25/ai-chatbot/internal/dataset/outbound"
	"github.com/phamm25/ai-chatbot/internal/dataset/profile"
	"github.com/phamm25/ai-chatbot/internal/dataset/store"
	"github.com/phamm25/ai-chatbot/internal/dataset/usecase"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkgrouter"
	"github.com/phamm25/ai-chatbot/internal/pkg/pkguid"
)

const peopleCSV = "name,age,joined\nAlice,30,2020-01-01\nBob,,2021-06-15\nCleo,45,not-a-date\n"

type envelope[T any] struct {
	Message string            `json:"message"`
	Data    T                 `json:"data"`
	Error   map[string]string `json:"error,omitempty"`
}

func newTestRouter(t *testing.T, maxBytes int64) http.Handler {
	t.Helper()

	uc := usecase.New(usecase.Dependency{
		Profiler: profile.NewEngine(pkguid.NewUUID(), maxBytes),
		Cache:    cache.NewLayered(time.Hour, cache.NewMemory()),
		Fetcher:  outbound.NewHTTPFetcher(time.Second, maxBytes),
		Store:    store.NewInMemoryStore(),
		MaxBytes: maxBytes,
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, uc, maxBytes)
	return router
}

func TestUploadProfileAndQuery(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	summary := uploadCSV(t, router, "people.csv", peopleCSV, http.StatusCreated)
	if summary.RowCount != 3 || summary.ColumnCount != 3 {
		t.Fatalf("unexpected shape: rows=%d cols=%d", summary.RowCount, summary.ColumnCount)
	}
	if summary.Columns[1].Type != entity.ColumnTypeNumeric || summary.Columns[1].Stats == nil {
		t.Fatalf("expected numeric age column, got %+v", summary.Columns[1])
	}
	if summary.Columns[1].Stats.StandardDeviation != 7.5 {
		t.Fatalf("unexpected stdev: %v", summary.Columns[1].Stats.StandardDeviation)
	}

	again := uploadCSV(t, router, "people.csv", peopleCSV, http.StatusCreated)
	if again.ID != summary.ID {
		t.Fatalf("expected cached summary %s, got %s", summary.ID, again.ID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets/"+summary.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected get status: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets/"+summary.ID+"/context", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected context status: %d", rec.Code)
	}
	var ctxEnv envelope[ContextResponse]
	if err := json.NewDecoder(rec.Body).Decode(&ctxEnv); err != nil {
		t.Fatalf("decode context: %v", err)
	}
	if !strings.HasPrefix(ctxEnv.Data.Context, "Dataset people.csv contains 3 rows and 3 columns.") {
		t.Fatalf("unexpected context: %q", ctxEnv.Data.Context)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/datasets/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUploadRawBody(t *testing.T) {
	router := newTestRouter(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/datasets?name=raw.csv", strings.NewReader(peopleCSV))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var env envelope[entity.DatasetSummary]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Name != "raw.csv" {
		t.Fatalf("unexpected name %q", env.Data.Name)
	}
}

func TestUploadErrors(t *testing.T) {
	router := newTestRouter(t, 64)

	uploadCSV(t, router, "big.csv", strings.Repeat("a,b\n1,2\n", 20), http.StatusRequestEntityTooLarge)
	uploadCSV(t, router, "empty.csv", "a,b\n", http.StatusBadRequest)

	rec := uploadRaw(t, router, "a,b\n1\n")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var env envelope[any]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(env.Error["cause"], "line 2") {
		t.Fatalf("expected cause with line number, got %+v", env)
	}
}

func TestUploadFromURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/sales.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(peopleCSV))
	}))
	defer upstream.Close()

	router := newTestRouter(t, 1<<20)

	rec := postJSON(t, router, "/datasets/url", `{"url":"`+upstream.URL+`/files/sales.csv"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	var env envelope[entity.DatasetSummary]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Name != "sales.csv" {
		t.Fatalf("unexpected name %q", env.Data.Name)
	}

	rec = postJSON(t, router, "/datasets/url", `{"url":"`+upstream.URL+`/missing.csv"}`)
	if rec.Code != http.StatusFailedDependency {
		t.Fatalf("expected 424, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/datasets/url", `{"url":""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/datasets/url", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func uploadCSV(t *testing.T, router http.Handler, name, content string, wantStatus int) entity.DatasetSummary {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/datasets", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var env envelope[entity.DatasetSummary]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return env.Data
}

func uploadRaw(t *testing.T, router http.Handler, content string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/datasets", strings.NewReader(content))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
