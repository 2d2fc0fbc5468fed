package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializes items as a JSON array of {text, completed}.
// An empty list encodes as [].
func EncodeSnapshot(items []Item) ([]byte, error) {
	data, err := json.Marshal(Records(items))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot rebuilds items from snapshot data. It never fails: missing
// or unreadable data produces an empty list.
func DecodeSnapshot(data []byte) []Item {
	items, err := decode(data, false)
	if err != nil {
		return []Item{}
	}
	return items
}

// ParseSnapshot is the strict form of DecodeSnapshot. Empty input is an
// empty list; anything else must be a well-formed snapshot.
func ParseSnapshot(data []byte) ([]Item, error) {
	return decode(data, true)
}

func decode(data []byte, strict bool) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Item{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for i, msg := range raw {
		var rec struct {
			Text      *string `json:"text"`
			Completed bool    `json:"completed"`
		}
		if err := json.Unmarshal(msg, &rec); err != nil {
			if strict {
				return nil, &ValidationError{Path: fmt.Sprintf("[%d]", i), Err: err}
			}
			continue
		}
		if rec.Text == nil {
			if strict {
				return nil, &ValidationError{Path: fmt.Sprintf("[%d].text", i), Err: fmt.Errorf("missing required field")}
			}
			continue
		}
		items = append(items, Item{
			ID:        NewID(),
			Text:      *rec.Text,
			Completed: rec.Completed,
		})
	}
	return items, nil
}
