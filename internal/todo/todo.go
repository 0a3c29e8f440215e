// Package todo holds the in-memory todo list: the records, the visibility
// filter, pagination and the commands that change them.
package todo

import (
	"fmt"
	"strings"
	"time"
)

// Todo is a single list entry. Text is stored sanitized (see Sanitize).
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter selects which todos are visible. It never changes stored data.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Title is the human label used by counters and filter tabs.
func (f Filter) Title() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// ParseFilter accepts "all", "active" or "completed" in any case.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q", name)
}

// Apply returns the todos visible under f, preserving their order.
func Apply(todos []Todo, f Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Counts holds the totals shown next to the filter controls.
type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Count tallies todos by completion.
func Count(todos []Todo) Counts {
	c := Counts{All: len(todos)}
	for _, t := range todos {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.All - c.Completed
	return c
}
