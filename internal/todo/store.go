package todo

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// KV is the durable key/value storage the list is mirrored into.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Store owns the task list and the current filter. It is not safe for
// concurrent use; all calls are expected from the UI event loop.
type Store struct {
	kv     KV
	key    string
	now    func() time.Time
	log    *slog.Logger
	tasks  []Task
	filter Filter
}

type Option func(*Store)

// WithClock replaces the time source used to stamp new task ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFilter sets the filter the session starts with.
func WithFilter(f Filter) Option {
	return func(s *Store) { s.filter = f }
}

// Open loads the list stored under key. Missing, unreadable or malformed data
// yields an empty list; it is logged and otherwise ignored.
func Open(kv KV, key string, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    key,
		now:    time.Now,
		log:    slog.Default(),
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "todo")
	s.tasks = s.load()
	return s
}

func (s *Store) load() []Task {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.log.Warn("read tasks failed, starting empty", "key", s.key, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	tasks, err := decode(raw)
	if err != nil {
		s.log.Warn("stored tasks unusable, starting empty", "key", s.key, "err", err)
		return nil
	}
	s.log.Debug("loaded tasks", "key", s.key, "count", len(tasks))
	return tasks
}

// save writes the whole list. Write failures are logged, never returned.
func (s *Store) save() {
	raw, err := encode(s.tasks)
	if err != nil {
		s.log.Error("encode tasks failed", "err", err)
		return
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		s.log.Warn("persist tasks failed", "key", s.key, "err", err)
	}
}

// Add appends a new active task with the trimmed text. Whitespace-only text
// is ignored and reported as false.
func (s *Store) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	// Two adds within one millisecond share an id; nothing guards against it.
	t := Task{ID: s.now().UnixMilli(), Text: text}
	s.tasks = append(s.tasks, t)
	s.save()
	return true
}

// Toggle flips the completion flag of the task with the given id.
func (s *Store) Toggle(id int64) {
	if i := s.index(id); i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
	}
	s.save()
}

// Delete removes every task with the given id, keeping the order of the rest.
func (s *Store) Delete(id int64) {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.save()
}

func (s *Store) ClearCompleted() {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.save()
}

func (s *Store) SetFilter(f Filter) {
	s.filter = f
}

func (s *Store) Filter() Filter {
	return s.filter
}

// Tasks returns a copy of the full list in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Visible returns the tasks matching the current filter, in list order.
func (s *Store) Visible() []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) RemainingCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// RemainingLabel renders the count as "1 item left" or "N items left".
func (s *Store) RemainingLabel() string {
	return RemainingLabel(s.RemainingCount())
}

func RemainingLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return strconv.Itoa(n) + " items left"
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
