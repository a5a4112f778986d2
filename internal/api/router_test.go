package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/timmy/haikuforge/internal/config"
	"github.com/timmy/haikuforge/internal/domain"
	"github.com/timmy/haikuforge/internal/service"
)

const oceanHaiku = "Waves kiss the cold shore\nMoonlight dances on the tide\nSilence holds the deep"

type stubGenerator struct {
	body  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.body, g.err
}

func (g *stubGenerator) Provider() string { return "stub" }

type stubArchive struct {
	mu          sync.Mutex
	poems       []domain.Poem
	appendErr   error
	listErr     error
	appendCalls int
}

func (a *stubArchive) Append(_ context.Context, p domain.Poem) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appendCalls++
	if a.appendErr != nil {
		return a.appendErr
	}
	a.poems = append(a.poems, p)
	return nil
}

func (a *stubArchive) ListAll(_ context.Context) ([]domain.Poem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listErr != nil {
		return nil, a.listErr
	}
	return append([]domain.Poem(nil), a.poems...), nil
}

func (a *stubArchive) Backend() string { return "stub" }

func newTestRouter(t *testing.T, gen *stubGenerator, archive *stubArchive) *gin.Engine {
	t.Helper()
	cfg := &config.ServerConfig{
		Mode:  "test",
		Theme: config.ThemeAurora,
		CORS:  config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	r, err := SetupRouter(service.NewForgeService(gen, archive), cfg, nil)
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(topic string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"topic": {topic}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &stubGenerator{}, &stubArchive{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["provider"] != "stub" || body["backend"] != "stub" {
		t.Errorf("unexpected body %v", body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestPage_OceanSubmission(t *testing.T) {
	gen := &stubGenerator{body: oceanHaiku}
	archive := &stubArchive{}
	r := newTestRouter(t, gen, archive)

	w := serve(r, postForm("ocean"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	html := w.Body.String()
	for _, want := range []string{"Haiku captured in the digital scroll!", "Silence holds the deep", "🌿 Ocean 🌿"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if archive.appendCalls != 1 || len(archive.poems) != 1 {
		t.Errorf("expected one stored poem, got %d appends", archive.appendCalls)
	}

	// A later plain visit lists the saved poem without generating again.
	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w.Body.String(), "Moonlight dances on the tide") {
		t.Error("archived poem not rendered on GET /")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestPage_BlankTopicHasNoSideEffects(t *testing.T) {
	gen := &stubGenerator{body: oceanHaiku}
	archive := &stubArchive{}
	r := newTestRouter(t, gen, archive)

	w := serve(r, postForm("   "))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gen.calls != 0 || archive.appendCalls != 0 {
		t.Errorf("blank topic reached generator=%d archive=%d", gen.calls, archive.appendCalls)
	}
	if strings.Contains(w.Body.String(), "notice-error") {
		t.Error("blank topic must not show an error")
	}
}

func TestPage_ListFailure(t *testing.T) {
	archive := &stubArchive{listErr: errors.New("service unavailable")}
	r := newTestRouter(t, &stubGenerator{}, archive)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	html := w.Body.String()
	if !strings.Contains(html, "Archive retrieval failed: service unavailable") {
		t.Error("failure indicator missing")
	}
	if !strings.Contains(html, "No haiku echoes yet") {
		t.Error("empty placeholder missing")
	}
}

func TestAPI_Create(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		gen         *stubGenerator
		archive     *stubArchive
		wantStatus  int
		wantAppends int
		wantSaved   bool
		wantHaiku   bool
	}{
		{
			name:        "ocean",
			body:        `{"topic":"ocean"}`,
			gen:         &stubGenerator{body: oceanHaiku},
			archive:     &stubArchive{},
			wantStatus:  http.StatusCreated,
			wantAppends: 1,
			wantSaved:   true,
			wantHaiku:   true,
		},
		{
			name:       "blank topic",
			body:       `{"topic":"  "}`,
			gen:        &stubGenerator{body: oceanHaiku},
			archive:    &stubArchive{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"topic":`,
			gen:        &stubGenerator{body: oceanHaiku},
			archive:    &stubArchive{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "generation failure",
			body:       `{"topic":"ocean"}`,
			gen:        &stubGenerator{err: errors.New("dial tcp: connection refused")},
			archive:    &stubArchive{},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:        "store failure keeps poem",
			body:        `{"topic":"ocean"}`,
			gen:         &stubGenerator{body: oceanHaiku},
			archive:     &stubArchive{appendErr: errors.New("permission denied")},
			wantStatus:  http.StatusBadGateway,
			wantAppends: 1,
			wantHaiku:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, tt.gen, tt.archive)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/haikus", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := serve(r, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.archive.appendCalls != tt.wantAppends {
				t.Errorf("appends = %d, want %d", tt.archive.appendCalls, tt.wantAppends)
			}
			if tt.wantStatus == http.StatusBadRequest {
				if tt.gen.calls != 0 {
					t.Error("generator must not run for a rejected request")
				}
				return
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp["saved"] != tt.wantSaved {
				t.Errorf("saved = %v, want %v", resp["saved"], tt.wantSaved)
			}
			haiku, ok := resp["haiku"].(map[string]interface{})
			if ok != tt.wantHaiku {
				t.Fatalf("haiku present = %v, want %v", ok, tt.wantHaiku)
			}
			if ok && (haiku["topic"] != "ocean" || haiku["haiku"] != oceanHaiku) {
				t.Errorf("unexpected haiku %v", haiku)
			}
		})
	}
}

func TestAPI_List(t *testing.T) {
	archive := &stubArchive{poems: []domain.Poem{
		{Topic: "ocean", Body: oceanHaiku},
		{Topic: "rain", Body: "a\nb\nc"},
	}}
	r := newTestRouter(t, &stubGenerator{}, archive)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/haikus", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Haikus []service.GalleryItem `json:"haikus"`
		Total  int                   `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Haikus) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Haikus[1].Topic != "rain" || resp.Haikus[1].Color != service.ColorFor(1) {
		t.Errorf("unexpected second item %+v", resp.Haikus[1])
	}

	archive.listErr = errors.New("timeout")
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/haikus", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Archive retrieval failed: timeout") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, &stubGenerator{}, &stubArchive{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/haikus", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q for foreign origin", got)
	}
}

func TestSetupRouter_UnknownTheme(t *testing.T) {
	cfg := &config.ServerConfig{Mode: "test", Theme: "neon"}
	if _, err := SetupRouter(service.NewForgeService(&stubGenerator{}, &stubArchive{}), cfg, nil); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}
