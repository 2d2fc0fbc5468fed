package list

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/listkeep/internal/logging"
	"github.com/nibzard/listkeep/internal/store"
	"github.com/nibzard/listkeep/internal/todo"
)

// DefaultKey is the snapshot key used when none is configured.
const DefaultKey = "todos"

var (
	// ErrNotFound is returned when an ID does not name an item in the list.
	ErrNotFound = errors.New("item not found")

	// ErrNoDrag is returned by drag operations when no drag is in progress.
	ErrNoDrag = errors.New("no drag in progress")
)

// Manager owns the ordered items and their snapshot.
type Manager struct {
	store  store.Store
	key    string
	logger *log.Logger

	items    []todo.Item
	dragging string // ID of the item being dragged, empty when idle
	synced   []byte // snapshot last read from or written to the store
}

// Option configures a Manager.
type Option func(*Manager)

// WithKey sets the snapshot key.
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithLogger sets the logger used for load and persistence diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New returns an empty Manager backed by s. Call Initialize to load the
// persisted snapshot.
func New(s store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		key:    DefaultKey,
		logger: logging.Discard(),
		items:  []todo.Item{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the snapshot key.
func (m *Manager) Key() string {
	return m.key
}

// Initialize replaces the list with the persisted snapshot. A missing or
// unreadable snapshot yields an empty list; it is never an error.
func (m *Manager) Initialize(ctx context.Context) {
	m.dragging = ""
	m.synced = nil
	data, ok, err := m.store.Get(ctx, m.key)
	switch {
	case err != nil:
		m.logger.Warn("reading snapshot failed, starting empty", "key", m.key, "err", err)
		m.items = []todo.Item{}
		return
	case !ok:
		m.logger.Debug("no snapshot, starting empty", "key", m.key)
		m.items = []todo.Item{}
		return
	}

	m.synced = data
	if _, perr := todo.ParseSnapshot(data); perr != nil {
		m.logger.Warn("snapshot is malformed, recovering what can be read", "key", m.key, "err", perr)
	}
	m.items = todo.DecodeSnapshot(data)
	m.logger.Debug("snapshot loaded", "key", m.key, "items", len(m.items))
}

// Reload re-reads the snapshot after an external change and reports whether
// the list changed. A snapshot this Manager wrote or read last is not an
// external change, so unsaved order from a cancelled drag survives it. When
// the stored snapshot matches the in-memory list the items, their IDs and any
// drag in progress are left alone.
func (m *Manager) Reload(ctx context.Context) bool {
	data, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		m.logger.Warn("reloading snapshot failed", "key", m.key, "err", err)
		return false
	}
	if !ok {
		data = nil
	}
	if bytes.Equal(data, m.synced) {
		return false
	}
	m.synced = data

	loaded := []todo.Item{}
	if ok {
		loaded = todo.DecodeSnapshot(data)
	}

	current, err := todo.EncodeSnapshot(m.items)
	if err != nil {
		return false
	}
	next, err := todo.EncodeSnapshot(loaded)
	if err != nil || bytes.Equal(current, next) {
		return false
	}

	m.items = loaded
	m.dragging = ""
	m.logger.Info("snapshot changed externally, reloaded", "key", m.key, "items", len(loaded))
	return true
}

// Items returns a copy of the list in order.
func (m *Manager) Items() []todo.Item {
	out := make([]todo.Item, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of items.
func (m *Manager) Len() int {
	return len(m.items)
}

// Index returns the position of id, or -1.
func (m *Manager) Index(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the item with the given ID.
func (m *Manager) Get(id string) (todo.Item, bool) {
	i := m.Index(id)
	if i < 0 {
		return todo.Item{}, false
	}
	return m.items[i], true
}

// At returns the ID of the item at position i.
func (m *Manager) At(i int) (string, bool) {
	if i < 0 || i >= len(m.items) {
		return "", false
	}
	return m.items[i].ID, true
}

// Add appends a new open item. Blank text is ignored and reported as false.
func (m *Manager) Add(ctx context.Context, text string) (todo.Item, bool, error) {
	if todo.IsBlank(text) {
		return todo.Item{}, false, nil
	}
	item := todo.NewItem(strings.TrimSpace(text))
	m.items = append(m.items, item)
	m.logger.Debug("item added", "id", item.ID, "position", len(m.items)-1)
	return item, true, m.save(ctx)
}

// Edit commits new text for an item. Text is trimmed and blank text is
// rejected the same way Add rejects it: the item keeps its previous text and
// Edit reports false.
func (m *Manager) Edit(ctx context.Context, id, text string) (bool, error) {
	i := m.Index(id)
	if i < 0 {
		return false, fmt.Errorf("edit %s: %w", id, ErrNotFound)
	}
	if todo.IsBlank(text) {
		m.logger.Debug("blank edit ignored", "id", id)
		return false, nil
	}
	m.items[i].Text = strings.TrimSpace(text)
	return true, m.save(ctx)
}

// Toggle flips the completed state of one item.
func (m *Manager) Toggle(ctx context.Context, id string) error {
	i := m.Index(id)
	if i < 0 {
		return fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}
	m.items[i].Completed = !m.items[i].Completed
	return m.save(ctx)
}

// Delete removes one item.
func (m *Manager) Delete(ctx context.Context, id string) error {
	i := m.Index(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	if m.dragging == id {
		m.dragging = ""
	}
	return m.save(ctx)
}

// Clear removes every item and persists an empty list.
func (m *Manager) Clear(ctx context.Context) error {
	m.items = []todo.Item{}
	m.dragging = ""
	return m.save(ctx)
}

// Move places an item at index, clamped to the list bounds.
func (m *Manager) Move(ctx context.Context, id string, index int) error {
	if m.Index(id) < 0 {
		return fmt.Errorf("move %s: %w", id, ErrNotFound)
	}
	m.moveTo(id, index)
	return m.save(ctx)
}

// Replace swaps in a whole new list and persists it.
func (m *Manager) Replace(ctx context.Context, items []todo.Item) error {
	m.items = make([]todo.Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = todo.NewID()
		}
		m.items = append(m.items, it)
	}
	m.dragging = ""
	return m.save(ctx)
}

// Snapshot returns the encoded form of the current list.
func (m *Manager) Snapshot() ([]byte, error) {
	return todo.EncodeSnapshot(m.items)
}

// Stats counts items by state.
type Stats struct {
	Total     int
	Completed int
	Open      int
}

// Stats returns item counts.
func (m *Manager) Stats() Stats {
	s := Stats{Total: len(m.items)}
	for _, it := range m.items {
		if it.Completed {
			s.Completed++
		}
	}
	s.Open = s.Total - s.Completed
	return s
}

// moveTo removes id and reinserts it at index without persisting.
func (m *Manager) moveTo(id string, index int) {
	from := m.Index(id)
	if from < 0 {
		return
	}
	item := m.items[from]
	m.items = append(m.items[:from], m.items[from+1:]...)
	if index < 0 {
		index = 0
	}
	if index > len(m.items) {
		index = len(m.items)
	}
	m.items = append(m.items, todo.Item{})
	copy(m.items[index+1:], m.items[index:])
	m.items[index] = item
}

// save writes the full snapshot. The in-memory change stands even when the
// write fails.
func (m *Manager) save(ctx context.Context) error {
	data, err := todo.EncodeSnapshot(m.items)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		m.logger.Error("saving snapshot failed", "key", m.key, "err", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	m.synced = data
	m.logger.Debug("snapshot saved", "key", m.key, "items", len(m.items))
	return nil
}
