package todo

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestStore(opts ...Option) *Store {
	opts = append([]Option{WithIDFunc(seqIDs())}, opts...)
	return NewStore(opts...)
}

func texts(todos []Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Text)
	}
	return out
}

func TestStore_Scenario(t *testing.T) {
	s := newTestStore()

	first, ok := s.Add("Buy milk")
	require.True(t, ok)
	_, ok = s.Add("  Walk   dog  ")
	require.True(t, ok)
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, texts(s.Todos()))

	require.True(t, s.Toggle(first.ID))

	s.SetFilter(FilterActive)
	assert.Equal(t, []string{"Walk dog"}, texts(s.Visible()))

	s.SetFilter(FilterCompleted)
	assert.Equal(t, []string{"Buy milk"}, texts(s.Visible()))
}

func TestStore_AddCountsNonEmptySubmissions(t *testing.T) {
	s := newTestStore()
	inputs := []string{"a", "", "  ", "b", "\t\n", "c  c", "d"}
	want := 0
	for _, in := range inputs {
		if Normalize(in) != "" {
			want++
		}
		s.Add(in)
	}
	assert.Len(t, s.Todos(), want)
	assert.Equal(t, 4, want)
}

func TestStore_AddBlankIsNoop(t *testing.T) {
	s := newTestStore()
	s.SetFilter(FilterCompleted)

	_, ok := s.Add("   ")
	assert.False(t, ok)
	assert.Empty(t, s.Todos())
	assert.Equal(t, FilterCompleted, s.Filter())
}

func TestStore_AddSwitchesFromCompletedAndShowsLastPage(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 11; i++ {
		s.Add(fmt.Sprintf("task %d", i))
	}
	assert.Equal(t, 3, s.Page())

	s.SetFilter(FilterCompleted)
	assert.Equal(t, 1, s.Page())

	added, ok := s.Add("new one")
	require.True(t, ok)
	assert.Equal(t, FilterAll, s.Filter())
	assert.Equal(t, 3, s.Page())

	page := Paginate(s.Visible(), s.Page(), s.PageSize())
	assert.Equal(t, added.ID, page.Items[len(page.Items)-1].ID)
}

func TestStore_AddUnderActiveFilterLandsOnFilteredLastPage(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 10; i++ {
		td, _ := s.Add(fmt.Sprintf("task %d", i))
		if i < 8 {
			s.Toggle(td.ID)
		}
	}
	s.SetFilter(FilterActive)

	added, ok := s.Add("fresh")
	require.True(t, ok)
	assert.Equal(t, FilterActive, s.Filter())
	assert.Equal(t, 1, s.Page())
	page := Paginate(s.Visible(), s.Page(), s.PageSize())
	assert.Equal(t, added.ID, page.Items[len(page.Items)-1].ID)
}

func TestStore_IDsUniqueAndNotReused(t *testing.T) {
	s := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		td, ok := s.Add(fmt.Sprintf("t%d", i))
		require.True(t, ok)
		require.False(t, seen[td.ID], "duplicate id %s", td.ID)
		seen[td.ID] = true
		if i%2 == 0 {
			require.True(t, s.Delete(td.ID))
		}
	}

	// ULIDs sort in creation order.
	todos := s.Todos()
	for i := 1; i < len(todos); i++ {
		assert.Less(t, todos[i-1].ID, todos[i].ID)
	}
}

func TestStore_ToggleTwiceRestores(t *testing.T) {
	s := newTestStore()
	td, _ := s.Add("x")

	require.True(t, s.Toggle(td.ID))
	got, _ := s.Get(td.ID)
	assert.True(t, got.Completed)

	require.True(t, s.Toggle(td.ID))
	got, _ = s.Get(td.ID)
	assert.False(t, got.Completed)

	assert.False(t, s.Toggle("missing"))
}

func TestStore_DeleteLastItemOnLastPageMovesBack(t *testing.T) {
	s := newTestStore()
	var last Todo
	for i := 0; i < 6; i++ {
		last, _ = s.Add(fmt.Sprintf("t%d", i))
	}
	require.Equal(t, 2, s.Page())

	require.True(t, s.Delete(last.ID))
	assert.Equal(t, 1, s.Page())
	assert.Len(t, s.Todos(), 5)

	assert.False(t, s.Delete(last.ID))
}

func TestStore_DeleteOnFirstPageStays(t *testing.T) {
	s := newTestStore()
	only, _ := s.Add("only")
	require.True(t, s.Delete(only.ID))
	assert.Equal(t, 1, s.Page())
	assert.Empty(t, s.Todos())
}

func TestStore_ToggleUnderFilterClampsPage(t *testing.T) {
	s := newTestStore()
	var ids []string
	for i := 0; i < 6; i++ {
		td, _ := s.Add(fmt.Sprintf("t%d", i))
		ids = append(ids, td.ID)
	}
	s.SetFilter(FilterActive)
	require.True(t, s.SetPage(2))

	require.True(t, s.Toggle(ids[5]))
	assert.Equal(t, 1, s.Page())
}

func TestStore_Rename(t *testing.T) {
	s := newTestStore()
	td, _ := s.Add("old")

	assert.True(t, s.Rename(td.ID, "  new   text? "))
	got, _ := s.Get(td.ID)
	assert.Equal(t, "new text&#63;", got.Text)

	assert.False(t, s.Rename(td.ID, "   "))
	got, _ = s.Get(td.ID)
	assert.Equal(t, "new text&#63;", got.Text)

	assert.False(t, s.Rename("missing", "x"))
}

func TestStore_RenameWithStoredTextKeepsIt(t *testing.T) {
	s := newTestStore()
	td, ok := s.Add(strings.Repeat("a?", 100))
	require.True(t, ok)

	// Clients echo the escaped text back; it must not be cut or escaped again.
	assert.True(t, s.Rename(td.ID, td.Text))
	got, _ := s.Get(td.ID)
	assert.Equal(t, td.Text, got.Text)
	assert.Equal(t, strings.Repeat("a&#63;", 100), got.Text)
}

func TestStore_SetAll(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		s.Add(fmt.Sprintf("t%d", i))
	}
	assert.False(t, s.AllCompleted())

	require.True(t, s.SetAll(true))
	assert.True(t, s.AllCompleted())
	assert.Equal(t, Counts{All: 3, Active: 0, Completed: 3}, s.Counts())

	require.True(t, s.SetAll(false))
	assert.Equal(t, Counts{All: 3, Active: 3, Completed: 0}, s.Counts())
}

func TestStore_SetAllCheckOnly(t *testing.T) {
	s := newTestStore(WithSelectAllUnchecks(false))
	s.Add("a")
	s.Add("b")

	require.True(t, s.SetAll(true))
	assert.False(t, s.SetAll(false))
	assert.True(t, s.AllCompleted())
}

func TestStore_AllCompletedEmpty(t *testing.T) {
	assert.False(t, newTestStore().AllCompleted())
}

func TestStore_ClearCompleted(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 12; i++ {
		td, _ := s.Add(fmt.Sprintf("t%d", i))
		if i >= 4 {
			s.Toggle(td.ID)
		}
	}
	require.Equal(t, 3, s.Page())

	removed := s.ClearCompleted()
	assert.Equal(t, 8, removed)
	assert.Len(t, s.Todos(), 4)
	assert.Equal(t, 1, s.Page())
	assert.False(t, s.AllCompleted())

	assert.Equal(t, 0, s.ClearCompleted())
}

func TestStore_SetPage(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 7; i++ {
		s.Add(fmt.Sprintf("t%d", i))
	}
	assert.True(t, s.SetPage(1))
	assert.Equal(t, 1, s.Page())
	assert.False(t, s.SetPage(0), "clamps to the current page")
	assert.Equal(t, 1, s.Page())
	assert.True(t, s.SetPage(3), "clamps to the last page")
	assert.Equal(t, 2, s.Page())
	assert.False(t, s.SetPage(99))
	assert.Equal(t, 2, s.Page())
	assert.True(t, s.SetPage(-4))
	assert.Equal(t, 1, s.Page())
}

func TestStore_SetFilterResetsPage(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 7; i++ {
		s.Add(fmt.Sprintf("t%d", i))
	}
	require.Equal(t, 2, s.Page())
	s.SetFilter(FilterActive)
	assert.Equal(t, 1, s.Page())
}

func TestStore_StateIsACopy(t *testing.T) {
	s := newTestStore()
	td, _ := s.Add("keep")

	st := s.State()
	st.Todos[0].Text = "changed"
	st.Todos[0].Completed = true

	got, _ := s.Get(td.ID)
	assert.Equal(t, "keep", got.Text)
	assert.False(t, got.Completed)
}

func TestStore_Options(t *testing.T) {
	fixed := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	s := newTestStore(WithPageSize(2), WithFilter(FilterActive), WithClock(func() time.Time { return fixed }))
	assert.Equal(t, 2, s.PageSize())
	assert.Equal(t, FilterActive, s.Filter())

	td, _ := s.Add("a")
	assert.Equal(t, fixed, td.CreatedAt)
	assert.Equal(t, "id-001", td.ID)

	s = NewStore(WithPageSize(0))
	assert.Equal(t, DefaultPageSize, s.PageSize())
}
