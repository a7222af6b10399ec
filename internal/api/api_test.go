package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/quoteservice"
	"github.com/starford/ansuz/internal/storage"
)

const listing = "---\ntags:\n  - quotes\n---\n" +
	":::Seneca:::\n" +
	"- Luck is what happens when preparation meets opportunity.\n" +
	"\n" +
	":::Marcus:::\n" +
	"- You have power over your mind, not outside events.\n"

// testEnv sets up a temp vault, SQLite DB, service, and router.
// authToken == "" means auth disabled.
func testEnv(t *testing.T, authToken string) (*quoteservice.Service, http.Handler) {
	t.Helper()

	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}

	dbFile, err := os.CreateTemp("", "ansuz-api-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Write("stoics.md", []byte(listing)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if err := index.Sync(db, store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	svc := quoteservice.NewService(store, db, quoteservice.Settings{
		QuoteTag:              "quotes",
		MinimalQuoteLength:    5,
		DefaultReloadInterval: 86400,
		BlockFormat:           "{{content}}\n— {{author}}",
		AutoIDLength:          5,
	}, quoteservice.WithRand(rand.New(rand.NewSource(1))))

	router := NewRouter(svc, authToken != "", authToken, nil)
	return svc, router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestScanAndListAuthors(t *testing.T) {
	_, router := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/scan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("scan status = %d, body = %s", w.Code, w.Body.String())
	}
	var sum ScanSummary
	_ = json.Unmarshal(w.Body.Bytes(), &sum)
	if sum.Authors != 2 || sum.Quotes != 2 {
		t.Errorf("summary = %+v", sum)
	}

	w = do(t, router, http.MethodGet, "/authors", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("authors status = %d", w.Code)
	}
	var authors AuthorListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &authors)
	if authors.Total != 2 {
		t.Errorf("total = %d, want 2", authors.Total)
	}
}

func TestRenderBlockEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	do(t, router, http.MethodPost, "/scan", nil)

	w := do(t, router, http.MethodPost, "/blocks/render", RenderRequest{
		Source: "search: Seneca\nid: blk01\nreload: 1d",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("render status = %d, body = %s", w.Code, w.Body.String())
	}
	var res RenderResult
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Author != "Seneca" || res.ID != "blk01" {
		t.Errorf("result = %+v", res)
	}
	if len(res.Lines) != 2 || res.Lines[1] != "— Seneca" {
		t.Errorf("lines = %v", res.Lines)
	}

	// Blocks listing now has the cached record.
	w = do(t, router, http.MethodGet, "/blocks", nil)
	var blocks BlockListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &blocks)
	if blocks.Total != 1 || blocks.Blocks[0].ID != "blk01" {
		t.Errorf("blocks = %+v", blocks)
	}

	// Clearing metadata empties the listing.
	if w := do(t, router, http.MethodDelete, "/blocks", nil); w.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", w.Code)
	}
	w = do(t, router, http.MethodGet, "/blocks", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &blocks)
	if blocks.Total != 0 {
		t.Errorf("blocks after clear = %+v", blocks)
	}
}

func TestRenderBlockUnknownAuthor(t *testing.T) {
	_, router := testEnv(t, "")
	do(t, router, http.MethodPost, "/scan", nil)

	w := do(t, router, http.MethodPost, "/blocks/render", RenderRequest{Source: "search: Epicurus"})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRenderBlockEmptyVault(t *testing.T) {
	_, router := testEnv(t, "")
	// No scan: vault is empty.
	w := do(t, router, http.MethodPost, "/blocks/render", RenderRequest{Source: "search: *"})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRenderOneTimeEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	do(t, router, http.MethodPost, "/scan", nil)

	req := RenderRequest{Source: "search: *", Filename: "journal/today.md", OneTime: true}
	w := do(t, router, http.MethodPost, "/blocks/render", req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var first RenderResult
	_ = json.Unmarshal(w.Body.Bytes(), &first)

	w = do(t, router, http.MethodPost, "/blocks/render", req)
	var second RenderResult
	_ = json.Unmarshal(w.Body.Bytes(), &second)
	if first.Text != second.Text {
		t.Errorf("one-time text changed: %q vs %q", first.Text, second.Text)
	}

	if w := do(t, router, http.MethodDelete, "/onetime", nil); w.Code != http.StatusNoContent {
		t.Errorf("clear one-time status = %d", w.Code)
	}
}

func TestMakerEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	do(t, router, http.MethodPost, "/scan", nil)

	w := do(t, router, http.MethodPost, "/blocks/maker", MakerRequest{Search: "Marcus", Reload: "1w"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var res MakerResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Source == "" {
		t.Error("empty generated source")
	}
}

func TestGetAuthorQuotes(t *testing.T) {
	_, router := testEnv(t, "")
	do(t, router, http.MethodPost, "/scan", nil)

	w := do(t, router, http.MethodGet, "/quotes?author=Seneca", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if w := do(t, router, http.MethodGet, "/quotes?author=Nobody", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown author status = %d, want 404", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/quotes", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing author status = %d, want 400", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	do(t, router, http.MethodPost, "/scan", nil)

	w := do(t, router, http.MethodGet, "/search?q=preparation", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res SearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if len(res.Results) != 1 || res.Results[0].Author != "Seneca" {
		t.Errorf("results = %+v", res.Results)
	}

	if w := do(t, router, http.MethodGet, "/search", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	_, router := testEnv(t, "secret")

	// No token → 401.
	if w := do(t, router, http.MethodGet, "/authors", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", w.Code)
	}

	// Wrong token → 401.
	req := httptest.NewRequest(http.MethodGet, "/authors", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status with wrong token = %d, want 401", w.Code)
	}

	// Correct token → 200.
	req = httptest.NewRequest(http.MethodGet, "/authors", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status with token = %d, want 200", w.Code)
	}
}
