package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"todobox/internal/errors"
	"todobox/internal/todo"
)

// toolArgs is implemented by every tool's argument struct. check reports the
// first missing or malformed field.
type toolArgs interface {
	check() error
}

// TextRequest represents the arguments for todo_add.
type TextRequest struct {
	Text string `json:"text"`
}

func (TextRequest) check() error { return nil }

// IDRequest represents the arguments for todo_toggle and todo_delete.
type IDRequest struct {
	ID string `json:"id"`
}

func (r IDRequest) check() error { return requireID(r.ID) }

// EditRequest represents the arguments for todo_edit.
type EditRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (r EditRequest) check() error { return requireID(r.ID) }

// ToggleAllRequest represents the arguments for todo_toggle_all.
type ToggleAllRequest struct {
	Done *bool `json:"done"`
}

func (r ToggleAllRequest) check() error {
	if r.Done == nil {
		return errors.NewInvalidRequest("done is required")
	}
	return nil
}

// FilterRequest represents the arguments for todo_filter.
type FilterRequest struct {
	Filter string `json:"filter"`
}

func (r FilterRequest) check() error {
	if _, err := todo.ParseFilter(r.Filter); err != nil {
		return errors.NewInvalidRequest(err.Error())
	}
	return nil
}

// PageRequest represents the arguments for todo_page.
type PageRequest struct {
	Page *int `json:"page"`
}

func (r PageRequest) check() error {
	if r.Page == nil {
		return errors.NewInvalidRequest("page is required")
	}
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewInvalidRequest("id is required")
	}
	return nil
}

// decodeArgs turns tool arguments into T and runs its field checks. Every
// failure is an INVALID_REQUEST error.
func decodeArgs[T toolArgs](req mcp.CallToolRequest) (T, error) {
	var args T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return args, errors.NewInvalidRequest(fmt.Sprintf("arguments: %v", err))
	}
	if err := json.Unmarshal(b, &args); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok && typeErr.Field != "" {
			return args, errors.NewInvalidRequest(fmt.Sprintf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value))
		}
		return args, errors.NewInvalidRequest(fmt.Sprintf("arguments: %v", err))
	}
	return args, args.check()
}
