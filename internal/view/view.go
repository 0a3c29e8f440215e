// Package view derives what a display shows from a todo.State. Build is pure;
// adapters (terminal, HTML, MCP) only draw the resulting Model.
package view

import (
	"fmt"

	"todobox/internal/todo"
)

// Row is one visible todo.
type Row struct {
	ID string `json:"id"`
	// Text is safe to interpolate into markup as is.
	Text string `json:"text"`
	// Display is the plain text for non-markup surfaces and edit fields.
	Display   string `json:"display"`
	Completed bool   `json:"completed"`
}

// FilterTab is one of the All / Active / Completed controls.
type FilterTab struct {
	Filter   todo.Filter `json:"-"`
	Name     string      `json:"name"`
	Label    string      `json:"label"`
	Count    int         `json:"count"`
	Selected bool        `json:"selected"`
}

// PageButton is a numbered page control. The current page is disabled.
type PageButton struct {
	Number  int  `json:"number"`
	Current bool `json:"current"`
}

// Model is everything a display needs for one render.
type Model struct {
	Rows         []Row        `json:"rows"`
	Counters     todo.Counts  `json:"counters"`
	Filters      []FilterTab  `json:"filters"`
	Filter       string       `json:"filter"`
	Pages        []PageButton `json:"pages"`
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	AllCompleted bool         `json:"all_completed"`
	Empty        bool         `json:"empty"`
}

// Build filters, paginates and labels the state.
func Build(st todo.State) Model {
	visible := todo.Apply(st.Todos, st.Filter)
	page := todo.Paginate(visible, st.Page, st.PageSize)
	counts := todo.Count(st.Todos)

	rows := make([]Row, 0, len(page.Items))
	for _, t := range page.Items {
		rows = append(rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Display:   todo.Unescape(t.Text),
			Completed: t.Completed,
		})
	}

	return Model{
		Rows:         rows,
		Counters:     counts,
		Filters:      filterTabs(st.Filter, counts),
		Filter:       st.Filter.String(),
		Pages:        pageButtons(page.Number, page.Total),
		Page:         page.Number,
		TotalPages:   page.Total,
		AllCompleted: counts.All > 0 && counts.Active == 0,
		Empty:        counts.All == 0,
	}
}

func filterTabs(current todo.Filter, c todo.Counts) []FilterTab {
	tabs := make([]FilterTab, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		n := c.All
		switch f {
		case todo.FilterActive:
			n = c.Active
		case todo.FilterCompleted:
			n = c.Completed
		}
		tabs = append(tabs, FilterTab{
			Filter:   f,
			Name:     f.String(),
			Label:    fmt.Sprintf("%s (%d)", f.Title(), n),
			Count:    n,
			Selected: f == current,
		})
	}
	return tabs
}

func pageButtons(current, total int) []PageButton {
	buttons := make([]PageButton, 0, total)
	for i := 1; i <= total; i++ {
		buttons = append(buttons, PageButton{Number: i, Current: i == current})
	}
	return buttons
}
