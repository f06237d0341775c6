package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"todo-screen/app"
	"todo-screen/model"
	"todo-screen/store"
)

type focusPane int

const (
	focusInput focusPane = iota
	focusList
)

func (f focusPane) String() string {
	if f == focusInput {
		return "input"
	}
	return "list"
}

// Options carries the presentation settings of the screen.
type Options struct {
	Title       string
	Placeholder string
	CharLimit   int
	ExportDir   string
}

type Model struct {
	svc  *app.Store
	opts Options

	focus  focusPane
	cursor int
	input  textinput.Model

	keys keyMap
	help help.Model

	showHelp  bool
	helpCache string
	helpWidth int

	status    string
	statusErr bool

	width  int
	height int

	copyText  func(string) error
	exportSnp func(string, model.Snapshot) error
}

func NewModel(svc *app.Store, opts Options) *Model {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = "To-Do List"
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "› "
	// Zero leaves the input unlimited.
	ti.CharLimit = opts.CharLimit
	ti.SetValue(svc.Draft())

	m := &Model{
		svc:       svc,
		opts:      opts,
		focus:     focusList,
		input:     ti,
		keys:      defaultKeys(),
		help:      help.New(),
		status:    "Ready",
		copyText:  clipboard.WriteAll,
		exportSnp: store.Export,
	}
	if len(svc.Tasks()) == 0 {
		m.focusInput()
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = m.inputWidth()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m, m.updateInput(msg)
		}
		if quit := m.updateList(msg); quit {
			return m, tea.Quit
		}
		return m, nil
	case tea.MouseMsg:
		m.updateMouse(msg)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return nil
	case key.Matches(msg, m.keys.Blur):
		m.focusList()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.svc.SetDraft(m.input.Value())
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) bool {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
			m.setStatus("Help closed", false)
		}
		return key.Matches(msg, m.keys.Quit)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.All):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(model.FilterActive)
	case key.Matches(msg, m.keys.Complete):
		m.setFilter(model.FilterCompleted)
	case key.Matches(msg, m.keys.Cycle):
		m.cycleFilter()
	case key.Matches(msg, m.keys.Focus):
		m.focusInput()
	case key.Matches(msg, m.keys.Copy):
		m.copyVisible()
	case key.Matches(msg, m.keys.Export):
		m.export()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.setStatus("Help open (? or Esc to close)", false)
	}

	m.ensureSelection()
	return false
}

func (m *Model) submit() {
	task, ok := m.svc.SubmitDraft()
	if !ok {
		// Blank input is ignored without complaint.
		return
	}
	m.input.SetValue(m.svc.Draft())
	m.cursor = m.indexOfTask(task.ID)
	m.ensureSelection()
	m.setStatus("Task added", false)
}

func (m *Model) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.ensureSelection()
}

func (m *Model) moveCursor(delta int) {
	tasks := m.svc.VisibleTasks()
	if len(tasks) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(tasks)-1)
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	if !m.svc.ToggleComplete(task.ID) {
		return
	}
	if task.Completed {
		m.setStatus("Task reopened", false)
	} else {
		m.setStatus("Task completed", false)
	}
}

func (m *Model) deleteSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	if m.svc.DeleteTask(task.ID) {
		m.setStatus("Task deleted", false)
	}
}

func (m *Model) setFilter(f model.Filter) {
	if !m.svc.SetFilter(f) {
		return
	}
	m.cursor = 0
	m.setStatus("Filter: "+string(f), false)
}

func (m *Model) cycleFilter() {
	filters := model.Filters()
	next := filters[0]
	for i, f := range filters {
		if f == m.svc.Filter() {
			next = filters[(i+1)%len(filters)]
			break
		}
	}
	m.setFilter(next)
}

func (m *Model) copyVisible() {
	text := store.Checklist(m.svc.VisibleTasks())
	if text == "" {
		m.setStatus("Nothing to copy", false)
		return
	}
	if err := m.copyText(text); err != nil {
		m.setStatus("Copy failed: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s to clipboard", m.svc.CountLabel()), false)
}

func (m *Model) export() {
	path := store.ExportPath(m.opts.ExportDir)
	if err := m.exportSnp(path, m.svc.Snapshot()); err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus("Exported to "+path, false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) ensureSelection() {
	tasks := m.svc.VisibleTasks()
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(tasks)-1)
}

func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.svc.VisibleTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) indexOfTask(id int) int {
	tasks := m.svc.VisibleTasks()
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	if len(tasks) == 0 {
		return 0
	}
	return len(tasks) - 1
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	viewW := m.viewportWidth()

	total, open, done := m.svc.Counts()
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render(m.opts.Title)
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("  %d total • %d open • %d done", total, open, done))
	header := lipgloss.JoinHorizontal(lipgloss.Left, title, summary)

	if m.showHelp {
		body := lipgloss.Place(viewW, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.renderHelpOverlay(m.overlayWidth()))
		return strings.Join([]string{header, body, m.renderFooter()}, "\n")
	}

	parts := []string{
		header,
		m.renderInputRow(viewW),
		m.renderFilterRow(viewW),
		m.renderTasks(viewW, m.bodyHeight()),
		m.renderFooter(),
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderInputRow(width int) string {
	frameColor := lipgloss.Color("240")
	if m.focus == focusInput {
		frameColor = lipgloss.Color("39")
	}
	button := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("71")).
		Padding(0, 1).
		Render("+")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameColor).
		Width(inputBoxWidth(width)).
		Render(m.input.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, box, " ", button)
}

func (m *Model) renderFilterRow(width int) string {
	current := m.svc.Filter()
	labels := make([]string, 0, len(model.Filters()))
	for i, f := range model.Filters() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
		if f == current {
			style = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Underline(true)
		}
		labels = append(labels, style.Render(filterLabel(i, f)))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(labels, filterGap))
}

func (m *Model) renderTasks(width, height int) string {
	tasks := m.svc.VisibleTasks()
	lines := make([]string, 0, len(tasks)+1)
	if len(tasks) == 0 {
		empty := "No tasks yet. Type above and press Enter."
		if len(m.svc.Tasks()) > 0 {
			empty = "No tasks for the current filter (use 1/2/3 or f)."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(empty))
	}

	for i := m.listOffset(height); i < len(tasks); i++ {
		if height > 0 && len(lines) >= height {
			break
		}
		lines = append(lines, m.renderTaskRow(tasks[i], i == m.cursor, width))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTaskRow(t model.Task, selected bool, width int) string {
	cursor := " "
	if selected {
		cursor = "▸"
	}
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	rowStyle := lipgloss.NewStyle()
	textStyle := lipgloss.NewStyle()
	if t.Completed {
		textStyle = textStyle.Faint(true).Strikethrough(true)
	}
	if selected {
		rowStyle = rowStyle.Bold(true)
		textStyle = textStyle.Bold(true)
		if m.focus == focusList {
			sel := lipgloss.Color("229")
			rowStyle = rowStyle.Foreground(sel)
			textStyle = textStyle.Foreground(sel)
		}
	}

	trash := lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Render("✗")
	text := rowText(t, width)
	return lipgloss.JoinHorizontal(lipgloss.Left,
		rowStyle.Render(cursor+" "+check+" "),
		textStyle.Render(text),
		" ",
		trash,
	)
}

// listOffset is the index of the first visible row, keeping the cursor on screen.
func (m *Model) listOffset(height int) int {
	if height > 0 && m.cursor >= height {
		return m.cursor - height + 1
	}
	return 0
}

func rowText(t model.Task, width int) string {
	return truncateRunes(strings.ReplaceAll(t.Text, "\n", " "), width-10)
}

func filterLabel(i int, f model.Filter) string {
	return fmt.Sprintf("%d %s", i+1, strings.ToUpper(string(f)))
}

func (m *Model) renderFooter() string {
	width := m.viewportWidth()
	count := lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Render(m.svc.CountLabel())

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
	status := strings.TrimSpace(m.status)
	if status == "" {
		status = "Ready"
	}
	maxStatus := width - lipgloss.Width(count) - 3
	status = truncateRunes(status, max(maxStatus, 8))

	padding := width - lipgloss.Width(count) - utf8.RuneCountInString(status)
	if padding < 1 {
		padding = 1
	}
	line := count + strings.Repeat(" ", padding) + statusStyle.Render(status)

	var keys help.KeyMap = listKeys{m.keys}
	if m.focus == focusInput {
		keys = inputKeys{m.keys}
	}
	return lipgloss.NewStyle().Width(width).Render(line) + "\n" + m.help.View(keys)
}

const helpMarkdown = `# Shortcuts

| Key | Action |
| --- | --- |
| tab / a | type a new task |
| enter | add the typed task |
| esc | back to the list |
| j / k | move |
| x / space | complete or reopen |
| d | delete |
| 1 / 2 / 3 | all / active / completed |
| f | next filter |
| y | copy visible tasks |
| w | export a JSON snapshot |
| click | + adds, ✗ deletes, [ ] toggles |
| q | quit |
`

func (m *Model) renderHelpOverlay(width int) string {
	if m.helpCache == "" || m.helpWidth != width {
		m.helpCache = renderMarkdown(helpMarkdown, width-4)
		m.helpWidth = width
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("244")).
		Width(width).
		Render(m.helpCache)
}

func renderMarkdown(content string, wrap int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(wrap, 20)),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

func (m *Model) viewportWidth() int {
	if m.width <= 0 {
		return 1
	}
	// Keep the last column free; some terminals wrap on it.
	if m.width > 1 {
		return m.width - 1
	}
	return m.width
}

// inputBoxWidth is the content width of the bordered input box; the add
// button and a separating space follow it.
func inputBoxWidth(viewW int) int {
	return max(viewW-addButtonWidth-3, 10)
}

func (m *Model) inputWidth() int {
	return max(m.viewportWidth()-12, 10)
}

func (m *Model) bodyHeight() int {
	// header, input box (3), filter row, footer (2)
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) overlayWidth() int {
	w := m.viewportWidth() - 8
	if w > 72 {
		w = 72
	}
	if w < 30 {
		w = m.viewportWidth()
	}
	return w
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
