package todo

// DefaultPageSize is the number of todos shown per page.
const DefaultPageSize = 5

// Page is one window over a filtered list.
type Page struct {
	Items  []Todo
	Number int
	Total  int
}

// TotalPages returns ceil(count/size). A size below 1 uses DefaultPageSize.
func TotalPages(count, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	return (count + size - 1) / size
}

// ClampPage moves page into [1, total], or to 1 when there are no pages.
func ClampPage(page, total int) int {
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the requested page of items. Out of range pages clamp
// instead of failing.
func Paginate(items []Todo, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page{
		Items:  items[start:end:end],
		Number: page,
		Total:  total,
	}
}
