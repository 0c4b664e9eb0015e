package firestore_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Tiliavir/trivial-meal-tracker/internal/firestore"
	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
	"github.com/Tiliavir/trivial-meal-tracker/internal/storage"
)

// fakeFirestore keeps documents in memory and honours update masks.
type fakeFirestore struct {
	mu    sync.Mutex
	docs  map[string]map[string]firestore.Value
	masks [][]string
}

func newFakeFirestore(t *testing.T) (*fakeFirestore, *httptest.Server) {
	t.Helper()
	f := &fakeFirestore{docs: map[string]map[string]firestore.Value{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeFirestore) serve(w http.ResponseWriter, r *http.Request) {
	const prefix = "/projects/demo/databases/(default)/documents/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.Error(w, "bad path "+r.URL.Path, http.StatusBadRequest)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)

	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		fields, ok := f.docs[path]
		if !ok {
			http.Error(w, `{"error":{"code":404}}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(firestore.Document{Name: path, Fields: fields})
	case http.MethodPatch:
		body, _ := io.ReadAll(r.Body)
		var doc firestore.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mask := r.URL.Query()["updateMask.fieldPaths"]
		f.masks = append(f.masks, mask)
		stored := f.docs[path]
		if stored == nil {
			stored = map[string]firestore.Value{}
		}
		for _, name := range mask {
			stored[name] = doc.Fields[name]
		}
		f.docs[path] = stored
		_ = json.NewEncoder(w).Encode(firestore.Document{Name: path, Fields: stored})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func newProvider(srv *httptest.Server) *firestore.Provider {
	c := firestore.NewClient(srv.Client(), firestore.Options{ProjectID: "demo", BaseURL: srv.URL})
	return firestore.NewProvider(c, "")
}

func TestProviderLoadMissing(t *testing.T) {
	_, srv := newFakeFirestore(t)
	_, err := newProvider(srv).Load(context.Background(), "alice")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Load = %v, want ErrNotFound", err)
	}
}

func TestProviderSaveMergesFields(t *testing.T) {
	fake, srv := newFakeFirestore(t)
	p := newProvider(srv)
	ctx := context.Background()

	s, err := storage.Open(ctx, p, "alice")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.DailyGoals != model.DefaultGoals() {
		t.Errorf("initial goals = %+v", s.DailyGoals)
	}

	meals := []model.MealEntry{{ID: "m1", Name: "Eggs", Calories: 240, Protein: 18, Carbs: 2.5, Fats: 18, Time: "08:30"}}
	if err := p.Save(ctx, "alice", model.Patch{Meals: &meals}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	last := fake.masks[len(fake.masks)-1]
	if len(last) != 1 || last[0] != "meals" {
		t.Errorf("update mask = %v, want [meals]", last)
	}

	got, err := p.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Meals) != 1 || got.Meals[0] != meals[0] {
		t.Errorf("Meals = %+v, want %+v", got.Meals, meals)
	}
	if got.DailyGoals != model.DefaultGoals() {
		t.Errorf("goals lost by a meals-only save: %+v", got.DailyGoals)
	}
	if got.Journal == nil || len(got.Journal) != 0 {
		t.Errorf("Journal = %#v, want empty", got.Journal)
	}
}

func TestClientReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := firestore.NewClient(srv.Client(), firestore.Options{ProjectID: "demo", BaseURL: srv.URL})
	_, err := c.GetDocument(context.Background(), "users/alice")
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetDocument = %v, want a non-404 API error", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %q does not name the status", err)
	}
}
