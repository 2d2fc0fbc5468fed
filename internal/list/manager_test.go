package list

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/nibzard/listkeep/internal/store"
	"github.com/nibzard/listkeep/internal/todo"
)

var ignoreID = cmpopts.IgnoreFields(todo.Item{}, "ID")

// failingStore reads like an empty store and fails every write.
type failingStore struct{ *store.MemoryStore }

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func newManager(t *testing.T, texts ...string) (*Manager, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	m := New(s)
	m.Initialize(context.Background())
	for _, text := range texts {
		if _, ok, err := m.Add(context.Background(), text); err != nil || !ok {
			t.Fatalf("Add(%q): ok=%v err=%v", text, ok, err)
		}
	}
	return m, s
}

func persisted(t *testing.T, s store.Store, key string) []todo.Item {
	t.Helper()
	data, ok, err := s.Get(context.Background(), key)
	if err != nil || !ok {
		t.Fatalf("snapshot missing: ok=%v err=%v", ok, err)
	}
	items, err := todo.ParseSnapshot(data)
	if err != nil {
		t.Fatalf("persisted snapshot invalid: %v", err)
	}
	return items
}

func texts(items []todo.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		data  string
		store bool
		want  []todo.Item
	}{
		{name: "absent", store: false, want: []todo.Item{}},
		{name: "corrupt", data: "{{{", store: true, want: []todo.Item{}},
		{
			name:  "ordered records",
			data:  `[{"text":"a","completed":false},{"text":"b","completed":true}]`,
			store: true,
			want:  []todo.Item{{Text: "a"}, {Text: "b", Completed: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			if tt.store {
				if err := s.Set(ctx, DefaultKey, []byte(tt.data)); err != nil {
					t.Fatal(err)
				}
			}
			m := New(s)
			m.Initialize(ctx)
			if diff := cmp.Diff(tt.want, m.Items(), ignoreID); diff != "" {
				t.Errorf("Initialize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInitializeLogsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Set(ctx, "mine", []byte("nope")); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	m := New(s, WithKey("mine"), WithLogger(logger))
	m.Initialize(ctx)

	if m.Len() != 0 {
		t.Errorf("Len: got %d, want 0", m.Len())
	}
	if !bytes.Contains(buf.Bytes(), []byte("malformed")) {
		t.Errorf("expected a warning about the snapshot, got %q", buf.String())
	}
}

func TestRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "one", "two", "three")
	if err := m.Toggle(ctx, m.Items()[1].ID); err != nil {
		t.Fatal(err)
	}

	reloaded := New(s)
	reloaded.Initialize(ctx)
	if diff := cmp.Diff(m.Items(), reloaded.Items(), ignoreID); diff != "" {
		t.Errorf("reload mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRejectsBlank(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "keep")
	before := s.Writes()

	for _, text := range []string{"", "   ", "\t\n"} {
		item, ok, err := m.Add(ctx, text)
		if err != nil || ok {
			t.Errorf("Add(%q): ok=%v err=%v, want no-op", text, ok, err)
		}
		if item.ID != "" {
			t.Errorf("Add(%q) returned an item", text)
		}
	}
	if m.Len() != 1 {
		t.Errorf("Len: got %d, want 1", m.Len())
	}
	if s.Writes() != before {
		t.Errorf("blank add persisted: writes %d -> %d", before, s.Writes())
	}
}

func TestAddAppends(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "a", "b")

	item, ok, err := m.Add(ctx, "  buy milk  ")
	if err != nil || !ok {
		t.Fatalf("Add: ok=%v err=%v", ok, err)
	}
	if item.Text != "buy milk" || item.Completed {
		t.Errorf("unexpected item %+v", item)
	}
	items := m.Items()
	if len(items) != 3 {
		t.Fatalf("Len: got %d, want 3", len(items))
	}
	if items[2].ID != item.ID {
		t.Error("new item is not last")
	}
	if diff := cmp.Diff([]string{"a", "b", "buy milk"}, texts(persisted(t, s, DefaultKey))); diff != "" {
		t.Errorf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "a", "b")
	id := m.Items()[1].ID

	ok, err := m.Edit(ctx, id, " bee ")
	if err != nil || !ok {
		t.Fatalf("Edit: ok=%v err=%v", ok, err)
	}
	if got, _ := m.Get(id); got.Text != "bee" {
		t.Errorf("Text: got %q, want bee", got.Text)
	}
	if diff := cmp.Diff([]string{"a", "bee"}, texts(persisted(t, s, DefaultKey))); diff != "" {
		t.Errorf("persisted mismatch (-want +got):\n%s", diff)
	}

	before := s.Writes()
	ok, err = m.Edit(ctx, id, "   ")
	if err != nil || ok {
		t.Errorf("blank Edit: ok=%v err=%v, want rejected", ok, err)
	}
	if got, _ := m.Get(id); got.Text != "bee" {
		t.Errorf("blank edit changed text to %q", got.Text)
	}
	if s.Writes() != before {
		t.Error("blank edit persisted")
	}

	if _, err := m.Edit(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Edit unknown id: got %v, want ErrNotFound", err)
	}
}

func TestToggleIsLocal(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "a", "b", "c")
	before := m.Items()

	if err := m.Toggle(ctx, before[1].ID); err != nil {
		t.Fatal(err)
	}
	after := m.Items()
	for i := range before {
		want := before[i].Completed
		if i == 1 {
			want = !want
		}
		if after[i].Completed != want {
			t.Errorf("item %d Completed = %v, want %v", i, after[i].Completed, want)
		}
		if after[i].ID != before[i].ID {
			t.Errorf("item %d moved", i)
		}
	}
	if !persisted(t, s, DefaultKey)[1].Completed {
		t.Error("toggle not persisted")
	}

	if err := m.Toggle(ctx, before[1].ID); err != nil {
		t.Fatal(err)
	}
	if m.Items()[1].Completed {
		t.Error("second toggle should reopen the item")
	}
	if err := m.Toggle(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle unknown id: got %v, want ErrNotFound", err)
	}
}

func TestDeleteIsLocal(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "a", "b", "c", "d")
	before := m.Items()

	if err := m.Delete(ctx, before[2].ID); err != nil {
		t.Fatal(err)
	}
	want := append(append([]todo.Item{}, before[:2]...), before[3:]...)
	if diff := cmp.Diff(want, m.Items()); diff != "" {
		t.Errorf("Delete mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "d"}, texts(persisted(t, s, DefaultKey))); diff != "" {
		t.Errorf("persisted mismatch (-want +got):\n%s", diff)
	}
	if err := m.Delete(ctx, before[2].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestDuplicateTextsAreDistinct(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, "same", "same")
	items := m.Items()
	if err := m.Toggle(ctx, items[1].ID); err != nil {
		t.Fatal(err)
	}
	got := m.Items()
	if got[0].Completed || !got[1].Completed {
		t.Errorf("toggle hit the wrong duplicate: %+v", got)
	}
}

func TestClearEmpties(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "a", "b")

	if err := m.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("Len: got %d, want 0", m.Len())
	}
	data, _, _ := s.Get(ctx, DefaultKey)
	if string(data) != "[]" {
		t.Errorf("persisted: got %s, want []", data)
	}
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		from  int
		to    int
		order []string
	}{
		{"to front", 2, 0, []string{"c", "a", "b"}},
		{"to back", 0, 2, []string{"b", "c", "a"}},
		{"middle", 0, 1, []string{"b", "a", "c"}},
		{"clamped high", 0, 99, []string{"b", "c", "a"}},
		{"clamped low", 2, -5, []string{"c", "a", "b"}},
		{"same place", 1, 1, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, s := newManager(t, "a", "b", "c")
			if err := m.Move(ctx, m.Items()[tt.from].ID, tt.to); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.order, texts(m.Items())); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.order, texts(persisted(t, s, DefaultKey))); diff != "" {
				t.Errorf("persisted mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "old")
	err := m.Replace(ctx, []todo.Item{{Text: "x"}, {Text: "y", Completed: true}})
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range m.Items() {
		if it.ID == "" {
			t.Error("Replace should assign IDs")
		}
	}
	if diff := cmp.Diff([]string{"x", "y"}, texts(persisted(t, s, DefaultKey))); diff != "" {
		t.Errorf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, "a", "b", "c")
	if err := m.Toggle(ctx, m.Items()[0].ID); err != nil {
		t.Fatal(err)
	}
	want := Stats{Total: 3, Completed: 1, Open: 2}
	if got := m.Stats(); got != want {
		t.Errorf("Stats: got %+v, want %+v", got, want)
	}
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{MemoryStore: store.NewMemoryStore()}
	m := New(fs)
	m.Initialize(ctx)

	_, ok, err := m.Add(ctx, "a")
	if !ok {
		t.Fatal("Add should accept the item")
	}
	if err == nil {
		t.Fatal("expected save error")
	}
	if m.Len() != 1 {
		t.Errorf("Len: got %d, want 1", m.Len())
	}
}

func TestWithKey(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := New(s, WithKey("groceries"))
	m.Initialize(ctx)
	if _, _, err := m.Add(ctx, "eggs"); err != nil {
		t.Fatal(err)
	}
	if m.Key() != "groceries" {
		t.Errorf("Key: got %q", m.Key())
	}
	if _, ok, _ := s.Get(ctx, "groceries"); !ok {
		t.Error("snapshot not written under configured key")
	}
	if _, ok, _ := s.Get(ctx, DefaultKey); ok {
		t.Error("snapshot written under default key")
	}
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, "a", "b")
	ids := []string{}
	for _, it := range m.Items() {
		ids = append(ids, it.ID)
	}

	if m.Reload(ctx) {
		t.Fatal("Reload: unchanged snapshot reported as changed")
	}
	for i, it := range m.Items() {
		if it.ID != ids[i] {
			t.Errorf("item %d: ID changed on no-op reload", i)
		}
	}

	external := `[{"text":"a","completed":true},{"text":"c","completed":false}]`
	if err := s.Set(ctx, DefaultKey, []byte(external)); err != nil {
		t.Fatal(err)
	}
	if err := m.BeginDrag(ids[0]); err != nil {
		t.Fatal(err)
	}
	if !m.Reload(ctx) {
		t.Fatal("Reload: external change not detected")
	}
	want := []todo.Item{{Text: "a", Completed: true}, {Text: "c"}}
	if diff := cmp.Diff(want, m.Items(), ignoreID); diff != "" {
		t.Errorf("reloaded items mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.Dragging(); ok {
		t.Error("drag should be dropped when the list is replaced")
	}

	if err := s.Delete(ctx, DefaultKey); err != nil {
		t.Fatal(err)
	}
	if !m.Reload(ctx) || m.Len() != 0 {
		t.Errorf("Reload after delete: got %d items, want 0", m.Len())
	}
}
