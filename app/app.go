package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"todo-screen/model"
)

// ActiveMode selects what the "active" filter shows.
type ActiveMode int

const (
	// ActiveLegacy keeps the shipped behaviour: "active" lists completed
	// tasks, same as "completed".
	ActiveLegacy ActiveMode = iota
	// ActiveOpen makes "active" list tasks that are not completed.
	ActiveOpen
)

var ErrUnknownActiveMode = errors.New("unknown active filter mode")

// ParseActiveMode reads the config spelling of an ActiveMode ("legacy" or "open").
// An empty string means legacy.
func ParseActiveMode(s string) (ActiveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return ActiveLegacy, nil
	case "open":
		return ActiveOpen, nil
	default:
		return ActiveLegacy, fmt.Errorf("%w: %q", ErrUnknownActiveMode, s)
	}
}

func (m ActiveMode) String() string {
	if m == ActiveOpen {
		return "open"
	}
	return "legacy"
}

// Option configures a Store.
type Option func(*Store)

// WithActiveMode overrides how the active filter selects tasks.
func WithActiveMode(mode ActiveMode) Option {
	return func(s *Store) {
		s.activeMode = mode
	}
}

// WithLogger sends mutation traces to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithFilter sets the filter the store starts with. Unknown values are ignored.
func WithFilter(filter model.Filter) Option {
	return func(s *Store) {
		if filter.Valid() {
			s.filter = filter
		}
	}
}

// Store holds the in-memory task list for one screen.
//
// Invalid input never fails: blank text and unknown ids are no-ops, and the
// boolean results only report whether anything changed.
type Store struct {
	tasks      []model.Task
	draft      string
	filter     model.Filter
	nextID     int
	activeMode ActiveMode
	log        *log.Logger
}

// NewStore returns an empty store with the "all" filter and ids starting at 1.
func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks:  []model.Task{},
		filter: model.FilterAll,
		nextID: 1,
		log:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns all tasks in insertion order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Draft() string {
	return s.draft
}

func (s *Store) SetDraft(text string) {
	s.draft = text
}

func (s *Store) Filter() model.Filter {
	return s.filter
}

func (s *Store) NextID() int {
	return s.nextID
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() model.Snapshot {
	return model.Snapshot{
		Tasks:  s.Tasks(),
		Draft:  s.draft,
		Filter: s.filter,
		NextID: s.nextID,
	}
}

// AddTask appends a task with the text exactly as typed.
// Whitespace-only text is rejected and leaves the store untouched.
func (s *Store) AddTask(text string) (model.Task, bool) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, false
	}
	task := model.Task{
		ID:        s.nextID,
		Text:      text,
		Completed: false,
	}
	s.tasks = append(s.tasks, task)
	s.nextID++
	s.draft = ""
	s.log.Printf("add task id=%d", task.ID)
	return task, true
}

// SubmitDraft adds the current draft as a task.
func (s *Store) SubmitDraft() (model.Task, bool) {
	return s.AddTask(s.draft)
}

func (s *Store) ToggleComplete(id int) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.log.Printf("toggle task id=%d completed=%t", id, s.tasks[i].Completed)
			return true
		}
	}
	s.log.Printf("toggle ignored: no task id=%d", id)
	return false
}

func (s *Store) DeleteTask(id int) bool {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.log.Printf("delete task id=%d", id)
		return true
	}
	s.log.Printf("delete ignored: no task id=%d", id)
	return false
}

func (s *Store) SetFilter(filter model.Filter) bool {
	if !filter.Valid() {
		s.log.Printf("filter ignored: %q", filter)
		return false
	}
	s.filter = filter
	return true
}

// VisibleTasks derives the tasks shown under the current filter.
func (s *Store) VisibleTasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.matchesFilter(t.Completed) {
			out = append(out, t)
		}
	}
	return out
}

// CountLabel renders the footer text, e.g. "2 tasks" or "1 task (completed)".
func (s *Store) CountLabel() string {
	n := len(s.VisibleTasks())
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	label := fmt.Sprintf("%d %s", n, noun)
	if s.filter != model.FilterAll {
		label += fmt.Sprintf(" (%s)", s.filter)
	}
	return label
}

// Counts returns the total, open and completed task counts.
func (s *Store) Counts() (total, open, done int) {
	for _, t := range s.tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return len(s.tasks), open, done
}

func (s *Store) matchesFilter(completed bool) bool {
	switch s.filter {
	case model.FilterActive:
		if s.activeMode == ActiveOpen {
			return !completed
		}
		return completed
	case model.FilterCompleted:
		return completed
	default:
		return true
	}
}
