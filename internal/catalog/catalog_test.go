package catalog

import (
	"testing"

	"github.com/balazsv/quizdeck/internal/ident"
	"github.com/balazsv/quizdeck/internal/store"
)

func testCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	c, err := New(s, ident.NewAllocator())
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c, s
}

func TestCreateAppendsAndPersists(t *testing.T) {
	c, s := testCatalog(t)

	first, err := c.Create("History")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := c.Create("Biology")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID == second.ID {
		t.Error("expected distinct ids for successive creates")
	}

	topics := c.Topics()
	if len(topics) != 2 || topics[0].Label != "History" || topics[1].Label != "Biology" {
		t.Errorf("topics = %+v", topics)
	}

	// Reload from the same store: the list survived.
	c2, err := New(s, ident.NewAllocator())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c2.Len() != 2 {
		t.Errorf("reloaded len = %d, want 2", c2.Len())
	}
}

func TestDeleteRemovesTopicAndQuestions(t *testing.T) {
	c, s := testCatalog(t)

	topic, _ := c.Create("History")
	_ = s.Put(store.QuestionsKey(topic.ID), `[{"id":1,"text":"q","answers":[]}]`)

	if err := c.Delete(topic.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok := c.Get(topic.ID); ok {
		t.Error("topic still present after delete")
	}
	if _, ok, _ := s.Get(store.QuestionsKey(topic.ID)); ok {
		t.Error("question list still stored after topic delete")
	}
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	c, _ := testCatalog(t)
	_, _ = c.Create("History")

	if err := c.Delete(999); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestReplaceAllReservesIDs(t *testing.T) {
	c, _ := testCatalog(t)

	imported := []Topic{{ID: 9_999_999_999_999, Label: "Imported"}}
	if err := c.ReplaceAll(imported); err != nil {
		t.Fatalf("replace: %v", err)
	}

	created, err := c.Create("Fresh")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID <= imported[0].ID {
		t.Errorf("new id %d collides with imported id range", created.ID)
	}
}

func TestReplaceAllIsWholesale(t *testing.T) {
	c, _ := testCatalog(t)
	_, _ = c.Create("History")
	_, _ = c.Create("Biology")

	if err := c.ReplaceAll([]Topic{{ID: 5, Label: "Only"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	topics := c.Topics()
	if len(topics) != 1 || topics[0].Label != "Only" {
		t.Errorf("topics = %+v, want single imported entry", topics)
	}
}

func TestTopicsReturnsCopy(t *testing.T) {
	c, _ := testCatalog(t)
	_, _ = c.Create("History")

	got := c.Topics()
	got[0].Label = "mutated"

	if c.Topics()[0].Label != "History" {
		t.Error("mutating the returned slice changed catalog state")
	}
}
