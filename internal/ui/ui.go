package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todobox/internal/config"
	"todobox/internal/todo"
	"todobox/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type Model struct {
	store      *todo.Store
	cfg        config.Config
	logger     *log.Logger
	vm         view.Model
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *view.Row
	editID     string
}

func New(store *todo.Store, cfg config.Config, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		logger: logger,
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' to delete.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Delete),
	}
	m.refresh()
	return m
}

func Run(store *todo.Store, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(store, cfg, logger))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		t, ok := m.store.Add(m.input.Value())
		if !ok {
			return m, nil
		}
		m.logger.Debug("todo added", "id", t.ID)
		m.refresh()
		m.cursor = clampCursor(m.rowIndex(t.ID), len(m.vm.Rows))
		m.input.SetValue("")
		m.status = fmt.Sprintf("Added %q", todo.Unescape(t.Text))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		return m.cancelEdit(), nil
	case m.cfg.Keys.Confirm:
		return m.commitEdit(), nil
	case "tab", "shift+tab", "up", "down":
		if m.cfg.Behavior.CommitEditOnBlur {
			return m.commitEdit(), nil
		}
		return m.cancelEdit(), nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.vm.Rows) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.vm.Rows))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.vm.Rows))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "What needs to be done?"
		m.input.Focus()
		m.status = "Add mode: type a todo and press Enter, Esc to finish"
	case m.cfg.Keys.Toggle:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.Toggle(row.ID)
		m.logger.Debug("todo toggled", "id", row.ID, "completed", !row.Completed)
		m.refresh()
		m.status = "Toggled todo"
	case m.cfg.Keys.Delete:
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.cfg.Behavior.ConfirmDelete {
			m.confirmDel = true
			m.pendingDel = &row
			m.status = fmt.Sprintf("Delete %q? y/n", row.Display)
			return m, nil
		}
		return m.deleteRow(row), nil
	case m.cfg.Keys.Edit:
		row, ok := m.selected()
		if !ok {
			m.status = "No todos to edit"
			return m, nil
		}
		m.mode = modeEdit
		m.editID = row.ID
		m.input.SetValue(row.Display)
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Edit: Enter to save, Esc to cancel"
	case m.cfg.Keys.Filter:
		m.store.SetFilter(m.store.Filter().Next())
		m.cursor = 0
		m.refresh()
		m.status = "Showing " + m.vm.Filter
	case m.cfg.Keys.PrevPage, "left":
		m.selectPage(m.vm.Page - 1)
	case m.cfg.Keys.NextPage, "right":
		m.selectPage(m.vm.Page + 1)
	case m.cfg.Keys.ToggleAll:
		if m.vm.Empty {
			return m, nil
		}
		done := !m.vm.AllCompleted
		if m.store.SetAll(done) {
			m.logger.Debug("all todos set", "completed", done)
			m.status = "Marked all " + humanDone(done)
		}
		m.refresh()
	case m.cfg.Keys.ClearCompleted:
		n := m.store.ClearCompleted()
		m.logger.Debug("completed todos cleared", "count", n)
		m.refresh()
		m.status = fmt.Sprintf("Cleared %d completed", n)
	default:
		if n, err := strconv.Atoi(key); err == nil {
			m.selectPage(n)
		}
	}
	return m, nil
}

func (m *Model) selectPage(n int) {
	if !m.store.SetPage(n) {
		return
	}
	m.cursor = 0
	m.refresh()
	m.status = fmt.Sprintf("Page %d of %d", m.vm.Page, m.vm.TotalPages)
}

func (m Model) commitEdit() Model {
	if m.store.Rename(m.editID, m.input.Value()) {
		m.logger.Debug("todo renamed", "id", m.editID)
		m.status = "Saved"
	} else {
		m.status = "Edit discarded"
	}
	return m.leaveEdit()
}

func (m Model) cancelEdit() Model {
	m.status = "Edit cancelled"
	return m.leaveEdit()
}

func (m Model) leaveEdit() Model {
	m.mode = modeList
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	m.refresh()
	return m
}

func (m Model) deleteRow(row view.Row) Model {
	if m.store.Delete(row.ID) {
		m.logger.Debug("todo deleted", "id", row.ID)
		m.status = "Deleted todo"
	} else {
		m.status = "Nothing to delete"
	}
	m.refresh()
	return m
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		row := m.pendingDel
		m.confirmDel = false
		m.pendingDel = nil
		if row == nil {
			m.status = "Nothing to delete"
			return m, nil
		}
		return m.deleteRow(*row), nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todobox"))
	b.WriteString("\n")
	b.WriteString(renderFilters(m.vm.Filters))
	b.WriteString("\n\n")

	if m.vm.Empty {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No todos yet. Press '%s' to add one.", m.cfg.Keys.Add)))
		b.WriteString("\n")
	} else if len(m.vm.Rows) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to show under " + m.vm.Filter))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTodoList())
	}

	if pages := renderPages(m.vm.Pages); pages != "" {
		b.WriteString("\n")
		b.WriteString(pages)
		b.WriteString("\n")
	}
	if !m.vm.Empty {
		b.WriteString(renderMaster(m.vm.AllCompleted))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\nAdd: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("\nEdit: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s delete • %s edit • %s filter • %s/%s page • %s all • %s clear done • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Delete, k.Edit, k.Filter, k.PrevPage, k.NextPage, k.ToggleAll, k.ClearCompleted, k.Quit)
}

func (m Model) renderTodoList() string {
	var b strings.Builder
	for i, r := range m.vm.Rows {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		text := r.Display
		if r.Completed {
			checkbox = doneStyle.Render("[x]")
			text = doneTextStyle.Render(text)
		}
		if m.mode == modeEdit && r.ID == m.editID {
			text = mutedStyle.Render("(editing)")
		}

		b.WriteString(fmt.Sprintf("%s %s %s", cursor, checkbox, text))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) refresh() {
	m.vm = view.Build(m.store.State())
	m.cursor = clampCursor(m.cursor, len(m.vm.Rows))
}

func (m Model) selected() (view.Row, bool) {
	if len(m.vm.Rows) == 0 {
		return view.Row{}, false
	}
	return m.vm.Rows[clampCursor(m.cursor, len(m.vm.Rows))], true
}

func (m Model) rowIndex(id string) int {
	for i, r := range m.vm.Rows {
		if r.ID == id {
			return i
		}
	}
	return 0
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
