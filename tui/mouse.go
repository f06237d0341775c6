package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo-screen/model"
)

// Screen rows, top to bottom: header, input box, filter labels, task list.
const (
	inputTop  = 1
	inputRows = 3
	filterRow = inputTop + inputRows
	listTop   = filterRow + 1

	// "▸ [x] " in front of every task.
	checkboxCells  = 6
	addButtonWidth = 3
	filterGap      = "    "
)

func (m *Model) updateMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	switch {
	case msg.Y >= inputTop && msg.Y < inputTop+inputRows:
		m.clickInputRow(msg.X)
	case msg.Y == filterRow:
		if f, ok := m.filterAt(msg.X); ok {
			m.setFilter(f)
		}
	case msg.Y >= listTop && msg.Y < listTop+m.bodyHeight():
		m.clickTask(msg.Y-listTop, msg.X)
	}
}

func (m *Model) clickInputRow(x int) {
	m.focusInput()
	if x >= inputBoxWidth(m.viewportWidth())+3 {
		m.submit()
	}
}

// filterAt maps a column of the centered filter row to its label.
func (m *Model) filterAt(x int) (model.Filter, bool) {
	filters := model.Filters()
	widths := make([]int, len(filters))
	total := lipgloss.Width(filterGap) * (len(filters) - 1)
	for i, f := range filters {
		widths[i] = lipgloss.Width(filterLabel(i, f))
		total += widths[i]
	}

	start := max((m.viewportWidth()-total)/2, 0)
	for i, f := range filters {
		if x >= start && x < start+widths[i] {
			return f, true
		}
		start += widths[i] + lipgloss.Width(filterGap)
	}
	return "", false
}

// clickTask handles a press on the given list row: the checkbox toggles, the
// trailing ✗ deletes, and anything else selects the task.
func (m *Model) clickTask(row, x int) {
	tasks := m.svc.VisibleTasks()
	i := m.listOffset(m.bodyHeight()) + row
	if i >= len(tasks) {
		return
	}
	m.cursor = i
	if m.focus == focusInput {
		m.focusList()
	}

	trashX := checkboxCells + lipgloss.Width(rowText(tasks[i], m.viewportWidth())) + 1
	switch {
	case x < checkboxCells:
		m.toggleSelected()
	case x == trashX:
		m.deleteSelected()
		m.ensureSelection()
	}
}
