package todo

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"porch/internal/storage"
)

type memKV struct {
	data    map[string]string
	getErr  error
	setErr  error
	setHits int
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.setHits++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

// tickingClock returns successive milliseconds starting at base.
func tickingClock(base int64) func() time.Time {
	next := base
	return func() time.Time {
		t := time.UnixMilli(next)
		next++
		return t
	}
}

func seeded(t *testing.T, tasks ...Task) (*Store, *memKV) {
	t.Helper()
	kv := newMemKV()
	raw, err := encode(tasks)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	kv.data["todos"] = raw
	return Open(kv, "todos", WithClock(tickingClock(1000))), kv
}

func TestAddWhitespaceIsNoop(t *testing.T) {
	s, kv := seeded(t, Task{ID: 1, Text: "A"})
	before := kv.data["todos"]

	if s.Add("   \t ") {
		t.Fatalf("Add reported success for whitespace")
	}
	if got := s.Tasks(); len(got) != 1 || got[0].Text != "A" {
		t.Fatalf("list changed: %+v", got)
	}
	if kv.data["todos"] != before {
		t.Fatalf("storage changed: %q", kv.data["todos"])
	}
}

func TestAddTrimsAndAppends(t *testing.T) {
	s, _ := seeded(t)
	if !s.Add("  Buy milk  ") {
		t.Fatalf("Add failed")
	}
	s.Add("Walk dog")
	want := []Task{
		{ID: 1000, Text: "Buy milk"},
		{ID: 1001, Text: "Walk dog"},
	}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAddThenReopenReproducesList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "porch.db")
	kv, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	s := Open(kv, "todos", WithClock(tickingClock(1700000000000)))
	s.Add("Buy milk")
	kv.Close()

	kv, err = storage.Open(path)
	if err != nil {
		t.Fatalf("reopen storage: %v", err)
	}
	defer kv.Close()
	reloaded := Open(kv, "todos")
	want := []Task{{ID: 1700000000000, Text: "Buy milk", Completed: false}}
	if got := reloaded.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s, _ := seeded(t,
		Task{ID: 1, Text: "A"},
		Task{ID: 2, Text: "B", Completed: true},
		Task{ID: 3, Text: "C"},
	)
	before := s.Tasks()

	s.Toggle(2)
	if s.Tasks()[1].Completed {
		t.Fatalf("first toggle did not flip")
	}
	if !reflect.DeepEqual(s.Tasks()[0], before[0]) || !reflect.DeepEqual(s.Tasks()[2], before[2]) {
		t.Fatalf("other tasks changed: %+v", s.Tasks())
	}
	s.Toggle(2)
	if got := s.Tasks(); !reflect.DeepEqual(got, before) {
		t.Fatalf("got %+v, want %+v", got, before)
	}
}

func TestToggleMissingIsNoop(t *testing.T) {
	s, _ := seeded(t, Task{ID: 1, Text: "A"})
	s.Toggle(99)
	if got := s.Tasks(); len(got) != 1 || got[0].Completed {
		t.Fatalf("unexpected list %+v", got)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s, _ := seeded(t, Task{ID: 1, Text: "A"}, Task{ID: 2, Text: "B"})
	before := s.Tasks()
	s.Delete(42)
	if got := s.Tasks(); !reflect.DeepEqual(got, before) {
		t.Fatalf("got %+v, want %+v", got, before)
	}
}

func TestDeleteRemovesOnlyMatch(t *testing.T) {
	s, kv := seeded(t, Task{ID: 1, Text: "A"}, Task{ID: 2, Text: "B"}, Task{ID: 3, Text: "C"})
	s.Delete(2)
	want := []Task{{ID: 1, Text: "A"}, {ID: 3, Text: "C"}}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if kv.data["todos"] != `[{"id":1,"text":"A","completed":false},{"id":3,"text":"C","completed":false}]` {
		t.Fatalf("storage not mirrored: %s", kv.data["todos"])
	}
}

func TestDeleteRemovesEveryTaskSharingTheID(t *testing.T) {
	s, _ := seeded(t,
		Task{ID: 7, Text: "A"},
		Task{ID: 7, Text: "B"},
		Task{ID: 8, Text: "C"},
	)
	s.Delete(7)
	want := []Task{{ID: 8, Text: "C"}}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOpenAcceptsExponentIDs(t *testing.T) {
	kv := newMemKV()
	kv.data["todos"] = `[{"id":1e3,"text":"A","completed":false},{"id":1.7e12,"text":"B","completed":true}]`
	s := Open(kv, "todos")
	want := []Task{{ID: 1000, Text: "A"}, {ID: 1700000000000, Text: "B", Completed: true}}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFilterViews(t *testing.T) {
	s, _ := seeded(t, Task{ID: 1, Text: "A"}, Task{ID: 2, Text: "B", Completed: true})

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterActive, []string{"A"}},
		{FilterCompleted, []string{"B"}},
		{FilterAll, []string{"A", "B"}},
		{Filter("bogus"), []string{"A", "B"}},
	}
	for _, tt := range tests {
		s.SetFilter(tt.filter)
		var got []string
		for _, task := range s.Visible() {
			got = append(got, task.Text)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("filter %s: got %v, want %v", tt.filter, got, tt.want)
		}
	}
	if len(s.Tasks()) != 2 {
		t.Fatalf("filtering changed the list")
	}
	if got := s.RemainingLabel(); got != "1 item left" {
		t.Fatalf("RemainingLabel: got %q", got)
	}
}

func TestRemainingLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 items left"},
		{1, "1 item left"},
		{2, "2 items left"},
		{11, "11 items left"},
	}
	for _, tt := range tests {
		if got := RemainingLabel(tt.n); got != tt.want {
			t.Errorf("RemainingLabel(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestClearCompleted(t *testing.T) {
	s, _ := seeded(t,
		Task{ID: 1, Text: "A"},
		Task{ID: 2, Text: "B", Completed: true},
		Task{ID: 3, Text: "C", Completed: true},
	)
	s.ClearCompleted()
	want := []Task{{ID: 1, Text: "A"}}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestOpenTreatsBadDataAsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{nope"},
		{"null", "null"},
		{"object", `{"id":1}`},
		{"wrong types", `[{"id":"1","text":"A","completed":false}]`},
		{"missing field", `[{"id":1,"text":"A"}]`},
		{"fractional id", `[{"id":1.5,"text":"A","completed":false}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			kv.data["todos"] = tt.raw
			s := Open(kv, "todos")
			if got := s.Tasks(); len(got) != 0 {
				t.Fatalf("expected empty list, got %+v", got)
			}
		})
	}
}

func TestOpenReadErrorIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk gone")
	s := Open(kv, "todos")
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestWriteFailureIsNotSurfaced(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("read-only")
	s := Open(kv, "todos", WithClock(tickingClock(5)))
	if !s.Add("A") {
		t.Fatalf("Add should still succeed in memory")
	}
	if len(s.Tasks()) != 1 {
		t.Fatalf("in-memory list not updated")
	}
	if kv.setHits != 1 {
		t.Fatalf("expected one write attempt, got %d", kv.setHits)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	s, kv := seeded(t, Task{ID: 1, Text: "A"})
	s.Add("B")
	s.Toggle(1)
	s.Delete(7)
	s.ClearCompleted()
	if kv.setHits != 4 {
		t.Fatalf("expected 4 writes, got %d", kv.setHits)
	}
}

func TestEmptyListPersistsAsArray(t *testing.T) {
	s, kv := seeded(t, Task{ID: 1, Text: "A"})
	s.Delete(1)
	if kv.data["todos"] != "[]" {
		t.Fatalf("got %q, want []", kv.data["todos"])
	}
}

func TestParseFilter(t *testing.T) {
	if f, ok := ParseFilter(" Active "); !ok || f != FilterActive {
		t.Fatalf("got %v %v", f, ok)
	}
	if f, ok := ParseFilter("done"); ok || f != FilterAll {
		t.Fatalf("unknown filter: got %v %v", f, ok)
	}
}
