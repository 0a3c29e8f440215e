package mcp

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"todobox/internal/errors"
	"todobox/internal/todo"
	"todobox/internal/view"
)

// Handlers holds the store shared by all tool calls.
type Handlers struct {
	mu     sync.Mutex
	store  *todo.Store
	logger *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *todo.Store, logger *log.Logger) *Handlers {
	return &Handlers{store: store, logger: logger}
}

// HandleAdd handles the todo_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[TextRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return h.apply(func() error {
		if t, ok := h.store.Add(input.Text); ok {
			h.logger.Debug("todo added", "id", t.ID)
		}
		return nil
	})
}

// HandleToggle handles the todo_toggle tool call.
func (h *Handlers) HandleToggle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return h.apply(func() error {
		if !h.store.Toggle(input.ID) {
			return errors.NewNotFound(input.ID)
		}
		h.logger.Debug("todo toggled", "id", input.ID)
		return nil
	})
}

// HandleEdit handles the todo_edit tool call.
func (h *Handlers) HandleEdit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[EditRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return h.apply(func() error {
		if _, ok := h.store.Get(input.ID); !ok {
			return errors.NewNotFound(input.ID)
		}
		if h.store.Rename(input.ID, input.Text) {
			h.logger.Debug("todo renamed", "id", input.ID)
		}
		return nil
	})
}

// HandleDelete handles the todo_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[IDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return h.apply(func() error {
		if !h.store.Delete(input.ID) {
			return errors.NewNotFound(input.ID)
		}
		h.logger.Debug("todo deleted", "id", input.ID)
		return nil
	})
}

// HandleToggleAll handles the todo_toggle_all tool call.
func (h *Handlers) HandleToggleAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[ToggleAllRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	done := *input.Done
	return h.apply(func() error {
		if h.store.SetAll(done) {
			h.logger.Debug("all todos set", "completed", done)
		}
		return nil
	})
}

// HandleClearCompleted handles the todo_clear_completed tool call.
func (h *Handlers) HandleClearCompleted(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(func() error {
		n := h.store.ClearCompleted()
		h.logger.Debug("completed todos cleared", "count", n)
		return nil
	})
}

// HandleFilter handles the todo_filter tool call.
func (h *Handlers) HandleFilter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[FilterRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	// Validated by FilterRequest.check.
	f, _ := todo.ParseFilter(input.Filter)
	return h.apply(func() error {
		h.store.SetFilter(f)
		return nil
	})
}

// HandlePage handles the todo_page tool call.
func (h *Handlers) HandlePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decodeArgs[PageRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	return h.apply(func() error {
		h.store.SetPage(*input.Page)
		return nil
	})
}

// HandleView handles the todo_view tool call.
func (h *Handlers) HandleView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.apply(func() error { return nil })
}

// apply runs one command under the lock and returns the resulting view.
func (h *Handlers) apply(cmd func() error) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	err := cmd()
	vm := view.Build(h.store.State())
	h.mu.Unlock()

	if err != nil {
		return errorResult(err), nil
	}
	return successResult(vm)
}

// Result helpers

// errorResult creates an MCP error result carrying the coded error payload.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	tErr := errors.As(err)
	errorObj := map[string]any{
		"code":    tErr.Code,
		"message": tErr.Message,
		"status":  tErr.Status,
	}
	if tErr.Code == errors.ErrInternal {
		errorObj["message"] = "an internal error occurred"
	} else if tErr.Details != nil {
		errorObj["details"] = tErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
