package models

import "time"

// ProjectStatus classifies where a project sits in its lifecycle.
type ProjectStatus string

const (
	StatusPlanning   ProjectStatus = "planning"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on-hold"
	StatusArchived   ProjectStatus = "archived"
)

// ValidProjectStatuses enumerates the statuses a project may carry.
var ValidProjectStatuses = map[ProjectStatus]struct{}{
	StatusPlanning:   {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusOnHold:     {},
	StatusArchived:   {},
}

// TaskStatus classifies a sub-task inside a project card.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses enumerates the statuses supported for sub-tasks.
var ValidTaskStatuses = map[TaskStatus]struct{}{
	TaskTodo:       {},
	TaskInProgress: {},
	TaskDone:       {},
}

// Board column identifiers. Archived projects belong to no column.
const (
	ColumnIdeas      = "ideas"
	ColumnInProgress = "in-progress"
	ColumnCompleted  = "completed"
)

// ColumnIDs lists the board columns in display order.
var ColumnIDs = []string{ColumnIdeas, ColumnInProgress, ColumnCompleted}

// ColumnForStatus maps a project status to its board column. The second
// return value is false when the status maps to no column (archived).
func ColumnForStatus(status ProjectStatus) (string, bool) {
	switch status {
	case StatusPlanning, StatusOnHold:
		return ColumnIdeas, true
	case StatusInProgress:
		return ColumnInProgress, true
	case StatusCompleted:
		return ColumnCompleted, true
	default:
		return "", false
	}
}

// Task represents a sub-task owned by exactly one project.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Project describes a single card on the kanban board.
type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	URL          string        `json:"url,omitempty"`
	Status       ProjectStatus `json:"status"`
	Technologies []string      `json:"technologies"`
	Tags         []string      `json:"tags"`
	Tasks        []Task        `json:"tasks"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ProjectPatch is a partial update. Nil fields are left untouched by the
// gateway's server-side merge.
type ProjectPatch struct {
	Title        *string        `json:"title,omitempty"`
	Description  *string        `json:"description,omitempty"`
	URL          *string        `json:"url,omitempty"`
	Status       *ProjectStatus `json:"status,omitempty"`
	Technologies *[]string      `json:"technologies,omitempty"`
	Tags         *[]string      `json:"tags,omitempty"`
	Tasks        *[]Task        `json:"tasks,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.URL == nil &&
		p.Status == nil && p.Technologies == nil && p.Tags == nil && p.Tasks == nil
}

// Columns maps a column id to its ordered list of projects. The order is
// authoritative board state set by drag position, not derived from any
// project field.
type Columns map[string][]Project

// Clone returns a copy with fresh column slices so the caller can reorder
// freely; the project values themselves are shared.
func (c Columns) Clone() Columns {
	out := make(Columns, len(c))
	for id, projects := range c {
		cp := make([]Project, len(projects))
		copy(cp, projects)
		out[id] = cp
	}
	return out
}

// Total counts the projects across all columns.
func (c Columns) Total() int {
	n := 0
	for _, projects := range c {
		n += len(projects)
	}
	return n
}
