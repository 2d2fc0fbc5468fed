package todo

import (
	"strings"

	"github.com/google/uuid"
)

// Item is a single list entry.
type Item struct {
	ID        string `json:"-"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewItem returns an open item with a fresh identifier.
func NewItem(text string) Item {
	return Item{
		ID:   NewID(),
		Text: text,
	}
}

// NewID returns a new item identifier.
func NewID() string {
	return uuid.NewString()
}

// IsBlank reports whether text has no content once surrounding whitespace is removed.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Record is the persisted projection of an item.
type Record struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Records projects items onto their persisted form, preserving order.
func Records(items []Item) []Record {
	records := make([]Record, 0, len(items))
	for _, it := range items {
		records = append(records, Record{Text: it.Text, Completed: it.Completed})
	}
	return records
}
