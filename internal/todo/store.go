package todo

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/oklog/ulid/v2"
)

// State is a copy of everything the view needs. Mutating it does not affect
// the Store.
type State struct {
	Todos    []Todo
	Filter   Filter
	Page     int
	PageSize int
}

// Store owns the todo list, the filter and the current page. It is not safe
// for concurrent use; adapters that serve concurrent callers must serialize
// access themselves.
type Store struct {
	todos             []Todo
	filter            Filter
	page              int
	pageSize          int
	selectAllUnchecks bool

	now     func() time.Time
	newID   func(time.Time) string
	entropy io.Reader
}

// Option customises a Store.
type Option func(*Store)

// WithPageSize sets the number of todos per page. Values below 1 are ignored.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n >= 1 {
			s.pageSize = n
		}
	}
}

// WithFilter sets the initial filter.
func WithFilter(f Filter) Option {
	return func(s *Store) { s.filter = f }
}

// WithSelectAllUnchecks controls whether SetAll(false) clears every todo or
// is ignored.
func WithSelectAllUnchecks(v bool) Option {
	return func(s *Store) { s.selectAllUnchecks = v }
}

// WithClock overrides the time source used for CreatedAt and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc overrides id generation. The function must never return an id
// twice.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = func(time.Time) string { return fn() }
		}
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		page:              1,
		pageSize:          DefaultPageSize,
		selectAllUnchecks: true,
		now:               time.Now,
		entropy:           ulid.Monotonic(rand.Reader, 0),
	}
	s.newID = s.ulid
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ulid(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// State returns a snapshot of the store.
func (s *Store) State() State {
	todos := make([]Todo, len(s.todos))
	copy(todos, s.todos)
	return State{
		Todos:    todos,
		Filter:   s.filter,
		Page:     s.page,
		PageSize: s.pageSize,
	}
}

func (s *Store) Todos() []Todo {
	return s.State().Todos
}

func (s *Store) Filter() Filter { return s.filter }

func (s *Store) Page() int { return s.page }

func (s *Store) PageSize() int { return s.pageSize }

// Get returns the todo with the given id.
func (s *Store) Get(id string) (Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return Todo{}, false
	}
	return s.todos[i], true
}

// Visible returns the filtered list the current page is taken from.
func (s *Store) Visible() []Todo {
	return Apply(s.todos, s.filter)
}

// TotalPages returns the page count of the filtered list.
func (s *Store) TotalPages() int {
	return TotalPages(len(s.Visible()), s.pageSize)
}

func (s *Store) Counts() Counts {
	return Count(s.todos)
}

// AllCompleted reports whether the list is non-empty and every todo is done.
func (s *Store) AllCompleted() bool {
	if len(s.todos) == 0 {
		return false
	}
	for _, t := range s.todos {
		if !t.Completed {
			return false
		}
	}
	return true
}

// Add sanitizes raw and appends a new active todo. Blank input is ignored.
// The view moves to the last page, leaving the Completed filter if needed,
// so the new todo is visible.
func (s *Store) Add(raw string) (Todo, bool) {
	text := Sanitize(raw)
	if text == "" {
		return Todo{}, false
	}
	now := s.now()
	t := Todo{
		ID:        s.newID(now),
		Text:      text,
		CreatedAt: now,
	}
	s.todos = append(s.todos, t)
	if s.filter == FilterCompleted {
		s.filter = FilterAll
	}
	s.page = s.TotalPages()
	s.clampPage()
	return t, true
}

// Delete removes the todo with the given id.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	s.clampPage()
	return true
}

// Toggle flips the completion of the todo with the given id.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.clampPage()
	return true
}

// SetDone sets the completion of one todo.
func (s *Store) SetDone(id string, done bool) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = done
	s.clampPage()
	return true
}

// Rename commits an edit. Blank input keeps the old text and returns false.
func (s *Store) Rename(id, raw string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	text := Sanitize(raw)
	if text == "" {
		return false
	}
	s.todos[i].Text = text
	return true
}

// SetAll marks every todo as done or not done. When the store was built
// WithSelectAllUnchecks(false), SetAll(false) does nothing.
func (s *Store) SetAll(done bool) bool {
	if !done && !s.selectAllUnchecks {
		return false
	}
	for i := range s.todos {
		s.todos[i].Completed = done
	}
	s.clampPage()
	return true
}

// ClearCompleted removes every completed todo and returns how many were removed.
func (s *Store) ClearCompleted() int {
	kept := s.todos[:0]
	for _, t := range s.todos {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.todos) - len(kept)
	clear(s.todos[len(kept):])
	s.todos = kept
	s.clampPage()
	return removed
}

// SetFilter changes the filter and returns to the first page.
func (s *Store) SetFilter(f Filter) {
	s.filter = f
	s.page = 1
}

// SetPage selects page n, clamped into the pages of the filtered list. It
// reports whether the current page changed.
func (s *Store) SetPage(n int) bool {
	n = ClampPage(n, s.TotalPages())
	if n == s.page {
		return false
	}
	s.page = n
	return true
}

func (s *Store) clampPage() {
	s.page = ClampPage(s.page, s.TotalPages())
}

func (s *Store) index(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
