package mcp

import (
	"context"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"todobox/internal/todo"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var toolRegistry = map[string]toolEntry{
	"todo_add": {
		def: mcp.NewTool("todo_add",
			mcp.WithDescription("Add a todo. Whitespace is collapsed, text is truncated to 255 characters; blank text is ignored."),
			mcp.WithString("text", mcp.Required(), mcp.Description("Todo text.")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdd },
	},
	"todo_toggle": {
		def: mcp.NewTool("todo_toggle",
			mcp.WithDescription("Flip the completed flag of one todo."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Todo id.")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleToggle },
	},
	"todo_edit": {
		def: mcp.NewTool("todo_edit",
			mcp.WithDescription("Replace the text of one todo. Blank text keeps the old text."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Todo id.")),
			mcp.WithString("text", mcp.Required(), mcp.Description("New text.")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEdit },
	},
	"todo_delete": {
		def: mcp.NewTool("todo_delete",
			mcp.WithDescription("Delete one todo."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Todo id.")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"todo_toggle_all": {
		def: mcp.NewTool("todo_toggle_all",
			mcp.WithDescription("Mark every todo completed (done=true) or active (done=false)."),
			mcp.WithBoolean("done", mcp.Required(), mcp.Description("Target completed state.")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleToggleAll },
	},
	"todo_clear_completed": {
		def: mcp.NewTool("todo_clear_completed",
			mcp.WithDescription("Delete every completed todo."),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClearCompleted },
	},
	"todo_filter": {
		def: mcp.NewTool("todo_filter",
			mcp.WithDescription("Select which todos are visible. Resets to page 1."),
			mcp.WithString("filter", mcp.Required(),
				mcp.Description("Filter name."),
				mcp.Enum("all", "active", "completed"),
			),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFilter },
	},
	"todo_page": {
		def: mcp.NewTool("todo_page",
			mcp.WithDescription("Show a page of the filtered list. Out-of-range pages clamp to the first or last page."),
			mcp.WithNumber("page", mcp.Required(), mcp.Description("1-based page number.")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePage },
	},
	"todo_view": {
		def: mcp.NewTool("todo_view",
			mcp.WithDescription("Return the current view: visible rows, counters, filters and pages."),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleView },
	},
}

// AllToolNames returns the registered tool names in sorted order.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer creates an MCP server exposing the todo commands for one store.
func NewServer(store *todo.Store, logger *log.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"todobox",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, logger)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run serves MCP over stdio until ctx is cancelled or stdin closes.
func Run(ctx context.Context, store *todo.Store, logger *log.Logger, version string) error {
	s := NewServer(store, logger, version)
	logger.Info("todobox MCP server listening on stdio", "tools", len(toolRegistry))
	return server.NewStdioServer(s).Listen(ctx, os.Stdin, os.Stdout)
}
