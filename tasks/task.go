package tasks

import "strconv"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Assignee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"dueDate"`
	Assignee    *Assignee `json:"assignee,omitempty"`
	CreatedAt   string    `json:"createdAt"`
}

func (t Task) clone() Task {
	if t.Assignee != nil {
		a := *t.Assignee
		t.Assignee = &a
	}
	return t
}

// NewTask is the input to Board.Create. Empty fields take the board defaults.
type NewTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"`
	Assignee    *Assignee `json:"assignee,omitempty"`
}

// Filter selects tasks. An empty Status matches every status; Search matches the title
// or description ignoring case.
type Filter struct {
	Status Status `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

// Key identifies the filter at a board revision in cache keys. Listings cached before a
// change live under keys no reader asks for again.
func (f Filter) Key(revision uint64) string {
	status := string(f.Status)
	if status == "" {
		status = "all"
	}
	return "tasks_" + strconv.FormatUint(revision, 10) + "_" + status + "_" + f.Search
}

type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Review     int `json:"review"`
	Completed  int `json:"completed"`
	Assigned   int `json:"assigned"`
	Upcoming   int `json:"upcoming"`
}
