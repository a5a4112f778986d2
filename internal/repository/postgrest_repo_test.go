package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/timmy/haikuforge/internal/domain"
)

// fakePostgREST serves a single table the way PostgREST does.
type fakePostgREST struct {
	mu   sync.Mutex
	rows []map[string]interface{}

	listStatus int
	listBody   string
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/rest/v1/haiku_table" {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("apikey") != "anon-key" || r.Header.Get("Authorization") != "Bearer anon-key" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid API key","code":"PGRST301"}`))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		var row map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		row["id"] = len(f.rows) + 1
		f.rows = append(f.rows, row)
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		if r.URL.Query().Get("select") != "*" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.listStatus != 0 {
			w.WriteHeader(f.listStatus)
			w.Write([]byte(f.listBody))
			return
		}
		json.NewEncoder(w).Encode(f.rows)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newPostgRESTRepo(t *testing.T, fake *fakePostgREST, key string) *PostgRESTRepository {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewPostgRESTRepository(&PostgRESTConfig{URL: srv.URL + "/", Key: key, Table: "haiku_table"})
}

func TestPostgRESTRepository_AppendThenList(t *testing.T) {
	ctx := context.Background()
	fake := &fakePostgREST{}
	repo := newPostgRESTRepo(t, fake, "anon-key")

	poem := domain.Poem{Topic: "ocean", Body: "Waves kiss the cold shore\nMoonlight dances on the tide\nSilence holds the deep"}
	if err := repo.Append(ctx, poem); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if len(fake.rows) != 1 || fake.rows[0]["haiku"] != poem.Body || fake.rows[0]["topic"] != "ocean" {
		t.Fatalf("unexpected stored rows %+v", fake.rows)
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 1 || got[0] != poem {
		t.Errorf("ListAll = %+v, want [%+v]", got, poem)
	}
}

func TestPostgRESTRepository_Failures(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		fake      *fakePostgREST
		append    bool
		wantOp    domain.StoreOp
		wantInMsg string
	}{
		{
			name:      "bad key on append",
			key:       "wrong",
			fake:      &fakePostgREST{},
			append:    true,
			wantOp:    domain.StoreOpAppend,
			wantInMsg: "Invalid API key",
		},
		{
			name:      "server error on list",
			key:       "anon-key",
			fake:      &fakePostgREST{listStatus: http.StatusInternalServerError, listBody: `{"message":"relation does not exist","code":"42P01"}`},
			wantOp:    domain.StoreOpList,
			wantInMsg: "relation does not exist",
		},
		{
			name:      "row missing haiku",
			key:       "anon-key",
			fake:      &fakePostgREST{rows: []map[string]interface{}{{"topic": "ocean", "haiku": "a\nb\nc"}, {"topic": "rain"}}},
			wantOp:    domain.StoreOpList,
			wantInMsg: "row 1",
		},
		{
			name:      "non-string topic",
			key:       "anon-key",
			fake:      &fakePostgREST{rows: []map[string]interface{}{{"topic": 42, "haiku": "a\nb\nc"}}},
			wantOp:    domain.StoreOpList,
			wantInMsg: "row 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newPostgRESTRepo(t, tt.fake, tt.key)

			var err error
			if tt.append {
				err = repo.Append(context.Background(), domain.Poem{Topic: "ocean", Body: "a\nb\nc"})
			} else {
				_, err = repo.ListAll(context.Background())
			}

			var storeErr *domain.StoreError
			if !errors.As(err, &storeErr) {
				t.Fatalf("expected StoreError, got %v", err)
			}
			if storeErr.Backend != BackendPostgREST || storeErr.Op != tt.wantOp {
				t.Errorf("unexpected error fields %+v", storeErr)
			}
			if !strings.Contains(err.Error(), tt.wantInMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantInMsg)
			}
		})
	}
}

func TestPostgRESTRepository_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo := NewPostgRESTRepository(&PostgRESTConfig{URL: url, Key: "anon-key", Table: "haiku_table"})
	_, err := repo.ListAll(context.Background())
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != domain.StoreOpList {
		t.Fatalf("expected list StoreError, got %v", err)
	}
}
