package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestOpen_UnavailableDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing", "nested", "db.sqlite")
	_, err := Open(dsn)
	if err == nil {
		t.Fatal("expected error opening database in a missing directory")
	}
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestDocument_PutGet(t *testing.T) {
	s := openTestStore(t)
	docs := s.Documents()
	ctx := context.Background()

	if _, err := docs.GetDocument(ctx, PartitionCache, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := docs.PutDocument(ctx, PartitionCache, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := docs.GetDocument(ctx, PartitionCache, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("got %s", got)
	}

	// Last write wins.
	if err := docs.PutDocument(ctx, PartitionCache, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = docs.GetDocument(ctx, PartitionCache, "k")
	if string(got) != `{"a":2}` {
		t.Errorf("after overwrite got %s", got)
	}

	// Same key in another partition is independent.
	if _, err := docs.GetDocument(ctx, PartitionReports, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound in other partition, got %v", err)
	}
}

func TestDocument_RejectsCollectionPartition(t *testing.T) {
	s := openTestStore(t)
	err := s.Documents().PutDocument(context.Background(), PartitionPerformance, "k", []byte("x"))
	if !errors.Is(err, ErrWrongPartition) {
		t.Fatalf("expected ErrWrongPartition, got %v", err)
	}
}

func TestDocument_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alfanumrik.db")
	ctx := context.Background()

	type payload struct {
		Title  string         `json:"title"`
		Scores []int          `json:"scores"`
		Nested map[string]any `json:"nested"`
	}
	want := payload{Title: "Real Numbers", Scores: []int{92, 85}, Nested: map[string]any{"ok": true}}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := PutJSON(ctx, s.Documents(), PartitionModules, "module-x", want); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := GetJSON[payload](ctx, s.Documents(), PartitionModules, "module-x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected document after reopen")
	}
	if got.Title != want.Title || len(got.Scores) != 2 || got.Scores[1] != 85 || got.Nested["ok"] != true {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetJSON_MissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	got, err := GetJSON[map[string]int](context.Background(), s.Documents(), PartitionCache, "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestCollection_AppendQueryUpdate(t *testing.T) {
	s := openTestStore(t)
	coll := s.Collections()
	ctx := context.Background()

	id1, err := coll.Append(ctx, PartitionQuestions, CollectionRecord{OwnerID: 1, Value: []byte(`"a"`)})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id1 == "" {
		t.Fatal("expected generated id")
	}
	if _, err := coll.Append(ctx, PartitionQuestions, CollectionRecord{ID: "q-2", OwnerID: 2, Value: []byte(`"b"`)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := coll.Append(ctx, PartitionQuestions, CollectionRecord{ID: "q-3", OwnerID: 1, Value: []byte(`"c"`)}); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := coll.Query(ctx, PartitionQuestions, Filter{}, nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	owned, err := coll.Query(ctx, PartitionQuestions, Filter{OwnerID: 1}, nil)
	if err != nil {
		t.Fatalf("query owner: %v", err)
	}
	if len(owned) != 2 || owned[0].ID != id1 || owned[1].ID != "q-3" {
		t.Fatalf("unexpected owner slice: %+v", owned)
	}

	filtered, err := coll.Query(ctx, PartitionQuestions, Filter{}, func(r CollectionRecord) bool {
		return string(r.Value) == `"b"`
	})
	if err != nil {
		t.Fatalf("query pred: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != "q-2" {
		t.Fatalf("unexpected predicate result: %+v", filtered)
	}

	if err := coll.UpdateByID(ctx, PartitionQuestions, "q-2", []byte(`"B"`)); err != nil {
		t.Fatalf("update: %v", err)
	}
	rec, err := coll.Get(ctx, PartitionQuestions, "q-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(rec.Value) != `"B"` || rec.OwnerID != 2 {
		t.Errorf("unexpected record after update: %+v", rec)
	}

	if err := coll.UpdateByID(ctx, PartitionQuestions, "missing", []byte(`1`)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollection_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	coll := s.Collections()
	ctx := context.Background()

	if _, err := coll.Append(ctx, PartitionFeedback, CollectionRecord{ID: "f1", Value: []byte(`1`)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	_, err := coll.Append(ctx, PartitionFeedback, CollectionRecord{ID: "f1", Value: []byte(`2`)})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Ids are scoped to their partition.
	if _, err := coll.Append(ctx, PartitionQuestions, CollectionRecord{ID: "f1", Value: []byte(`3`)}); err != nil {
		t.Fatalf("append to other partition: %v", err)
	}
}

func TestUsers_UniqueEmailCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	u, err := users.CreateUser(ctx, NewUser{Name: "Asha", Email: " Asha@Example.com ", PasswordHash: "h", Grade: "Grade 10"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "asha@example.com" {
		t.Errorf("email not normalised: %q", u.Email)
	}

	_, err = users.CreateUser(ctx, NewUser{Name: "Other", Email: "ASHA@example.com", PasswordHash: "h2", Grade: "Grade 9"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	byEmail, err := users.UserByEmail(ctx, "asha@EXAMPLE.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	byID, err := users.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if byEmail.ID != byID.ID || byID.Name != "Asha" {
		t.Errorf("lookup mismatch: %+v vs %+v", byEmail, byID)
	}

	if _, err := users.UserByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx *Store) error {
		if err := tx.Documents().PutDocument(ctx, PartitionCache, "tx-key", []byte("1")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if _, err := s.Documents().GetDocument(ctx, PartitionCache, "tx-key"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected rolled back write, got %v", err)
	}
}

func TestLLMEvents_QueryAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "lesson", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "path", InputTokens: 1, OutputTokens: 1, LatencyMs: 50, Success: false, ErrorMessage: "down"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "lesson"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 lesson events, got %d", len(got))
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 event, got %d", len(limited))
	}

	e, err := repo.GetLLMEvent(ctx, got[0].ID)
	if err != nil || e == nil {
		t.Fatalf("get: %v %v", e, err)
	}
	missing, err := repo.GetLLMEvent(ctx, 12345)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing event, got %v %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Key != "lesson" {
		t.Fatalf("unexpected usage: %+v", byPurpose)
	}
	if byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 110 || byPurpose[0].AvgLatencyMs != 150 {
		t.Errorf("unexpected lesson usage: %+v", byPurpose[0])
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.Documents().PutDocument(ctx, PartitionCache, "k", []byte("1"))
	_, _ = s.Collections().Append(ctx, PartitionPerformance, CollectionRecord{OwnerID: 1, Value: []byte("{}")})

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := s.Documents().GetDocument(ctx, PartitionCache, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected document gone, got %v", err)
	}
	recs, _ := s.Collections().Query(ctx, PartitionPerformance, Filter{}, nil)
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestKey(t *testing.T) {
	if got := Key("module", "Grade 10", "Physics"); got != "module/Grade 10/Physics" {
		t.Errorf("Key = %q", got)
	}
	if Key("module", "A-B", "C") == Key("module", "A", "B-C") {
		t.Error("hyphenated parts collide")
	}
	if Key("module", "A/B", "C") == Key("module", "A", "B/C") {
		t.Error("parts containing the separator collide")
	}
	if Key("module", "A%2FB") == Key("module", "A/B") {
		t.Error("escaped and literal separators collide")
	}
}
