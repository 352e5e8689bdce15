package tasks

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/validation"
)

const dateLayout = "2006-01-02"

type Options struct {
	// Tasks is the initial board content. Nil loads SampleTasks.
	Tasks  []Task
	Now    func() time.Time
	Logger *zap.Logger
}

// Board is an in-memory task list safe for concurrent use.
type Board struct {
	mtx    sync.RWMutex
	tasks  []Task
	rev    uint64
	now    func() time.Time
	logger *zap.Logger
}

func NewBoard(opts Options) *Board {
	if opts.Tasks == nil {
		opts.Tasks = SampleTasks()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	tasks := make([]Task, 0, len(opts.Tasks))
	for _, t := range opts.Tasks {
		tasks = append(tasks, t.clone())
	}
	return &Board{
		tasks:  tasks,
		now:    opts.Now,
		logger: opts.Logger.Named("Tasks"),
	}
}

func (b *Board) List(f Filter) []Task {
	search := strings.ToLower(f.Search)

	b.mtx.RLock()
	defer b.mtx.RUnlock()

	out := make([]Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

// Revision counts the changes made to the board.
func (b *Board) Revision() uint64 {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return b.rev
}

func (b *Board) Get(id string) (Task, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	i := b.indexOf(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	return b.tasks[i].clone(), nil
}

// Create validates in and appends the resulting task to the board.
func (b *Board) Create(in NewTask) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	res := validation.ValidateFormData(in, validation.TaskSchema)
	if !res.Success {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidTask, res.Errors)
	}

	now := b.now()
	today := now.Format(dateLayout)
	t := Task{
		ID:          "task-" + uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Assignee:    in.Assignee,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.DueDate == "" {
		t.DueDate = today
	}
	if _, er := time.Parse(dateLayout, t.DueDate); er != nil {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidTask, validation.FieldErrors{"dueDate": {"due date is not a valid date"}})
	}
	// dates in dateLayout order lexically
	if t.DueDate < today {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidTask, validation.FieldErrors{"dueDate": {"due date cannot be before today"}})
	}
	t = t.clone()

	b.mtx.Lock()
	b.tasks = append(b.tasks, t)
	b.rev++
	b.mtx.Unlock()

	b.logger.Debug("task created", zap.String("id", t.ID))
	return t.clone(), nil
}

func (b *Board) UpdateStatus(id string, status Status) (Task, error) {
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	b.tasks[i].Status = status
	b.rev++
	b.logger.Debug("task status updated", zap.String("id", id), zap.String("status", string(status)))
	return b.tasks[i].clone(), nil
}

// Stats counts the tasks per status, the assigned ones and those due after today.
func (b *Board) Stats() Stats {
	today := b.now().Format(dateLayout)

	b.mtx.RLock()
	defer b.mtx.RUnlock()

	s := Stats{Total: len(b.tasks)}
	for _, t := range b.tasks {
		switch t.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		case StatusReview:
			s.Review++
		case StatusCompleted:
			s.Completed++
		}
		if t.Assignee != nil {
			s.Assigned++
		}
		if t.DueDate > today {
			s.Upcoming++
		}
	}
	return s
}

func (b *Board) indexOf(id string) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
