package store

import "testing"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing key")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("topics", `[{"id":1,"label":"History"}]`); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := s.Get("topics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if got != `[{"id":1,"label":"History"}]` {
		t.Errorf("value = %q", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	s := openTestStore(t)

	_ = s.Put("k", "old")
	if err := s.Put("k", "new"); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, _, _ := s.Get("k")
	if got != "new" {
		t.Errorf("value = %q, want %q", got, "new")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	_ = s.Put("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("expected key to be gone after delete")
	}

	// Deleting an absent key is fine.
	if err := s.Delete("k"); err != nil {
		t.Errorf("delete absent: %v", err)
	}
}

func TestQuestionsKey(t *testing.T) {
	if got := QuestionsKey(1736168400000); got != "questions1736168400000" {
		t.Errorf("QuestionsKey = %q", got)
	}
	if got := TopicsKey(); got != "topics" {
		t.Errorf("TopicsKey = %q", got)
	}
}

type row struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

func TestLoadList_MalformedResetsToEmpty(t *testing.T) {
	s := openTestStore(t)
	_ = s.Put("topics", "{not json")

	list, err := LoadList[row](s, "topics")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list for malformed value, got %d entries", len(list))
	}
}

func TestSaveLoadList(t *testing.T) {
	s := openTestStore(t)

	want := []row{{ID: 1, Label: "History"}, {ID: 2, Label: "Biology"}}
	if err := SaveList(s, "topics", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadList[row](s, "topics")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSaveList_NilBecomesEmptyArray(t *testing.T) {
	s := openTestStore(t)

	if err := SaveList[row](s, "topics", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, _ := s.Get("topics")
	if raw != "[]" {
		t.Errorf("stored value = %q, want %q", raw, "[]")
	}
}
