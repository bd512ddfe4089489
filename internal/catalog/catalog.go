// Package catalog manages the ordered list of topics.
package catalog

import (
	"github.com/balazsv/quizdeck/internal/ident"
	"github.com/balazsv/quizdeck/internal/store"
)

// Topic is a named category grouping a set of questions.
type Topic struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Catalog holds the topic list and persists it through the store after
// every mutation.
type Catalog struct {
	kv     store.KV
	alloc  *ident.Allocator
	topics []Topic
}

// New creates a Catalog and loads the persisted topic list. A missing
// or corrupt stored list starts empty.
func New(kv store.KV, alloc *ident.Allocator) (*Catalog, error) {
	topics, err := store.LoadList[Topic](kv, store.TopicsKey())
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		alloc.Reserve(t.ID)
	}
	return &Catalog{kv: kv, alloc: alloc, topics: topics}, nil
}

// Topics returns a copy of the topic list in display order.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.topics)
}

// Get returns the topic with the given id.
func (c *Catalog) Get(id int64) (Topic, bool) {
	for _, t := range c.topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Create appends a new topic with a fresh id and persists the list.
func (c *Catalog) Create(label string) (Topic, error) {
	t := Topic{ID: c.alloc.Next(), Label: label}
	c.topics = append(c.topics, t)
	if err := c.save(); err != nil {
		return Topic{}, err
	}
	return t, nil
}

// Delete removes the topic with the given id and drops its stored
// question list. Deleting an absent id is a no-op. Clearing any
// selection referring to the topic is the caller's responsibility.
func (c *Catalog) Delete(id int64) error {
	kept := c.topics[:0]
	removed := false
	for _, t := range c.topics {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	c.topics = kept
	if !removed {
		return nil
	}
	if err := c.kv.Delete(store.QuestionsKey(id)); err != nil {
		return err
	}
	return c.save()
}

// ReplaceAll wholesale-replaces the topic list (import semantics: no
// merge) and persists it.
func (c *Catalog) ReplaceAll(topics []Topic) error {
	if topics == nil {
		topics = []Topic{}
	}
	for _, t := range topics {
		c.alloc.Reserve(t.ID)
	}
	c.topics = topics
	return c.save()
}

func (c *Catalog) save() error {
	return store.SaveList(c.kv, store.TopicsKey(), c.topics)
}
