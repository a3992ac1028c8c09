package task

import (
	"strings"

	"github.com/burhanahmeed/tempo/internal/models"
)

const defaultEstimate = 1

// Registry is the ordered task collection. Tasks keep their insertion
// order; titles are not required to be unique.
type Registry struct {
	tasks    []*Task
	sink     func([]models.Task)
	onRemove func(taskID string)
}

// New returns an empty registry. The sink is invoked with a snapshot of
// all tasks after every mutation; pass nil to disable write-through.
func New(sink func([]models.Task)) *Registry {
	return &Registry{sink: sink}
}

// OnRemove registers a hook invoked with the ID of every deleted task.
// The session engine uses it to drop a dangling active-task reference.
func (r *Registry) OnRemove(hook func(taskID string)) {
	r.onRemove = hook
}

// Restore replaces the registry contents with persisted tasks. It does not
// trigger the write-through sink.
func (r *Registry) Restore(tasks []models.Task) {
	r.tasks = make([]*Task, 0, len(tasks))

	for _, m := range tasks {
		r.tasks = append(r.tasks, fromModel(m))
	}
}

// Create appends a new task. A title that is empty after trimming is
// rejected silently and no task is created. A non-positive estimate
// defaults to 1.
func (r *Registry) Create(title string, estimate int) (*Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false
	}

	if estimate <= 0 {
		estimate = defaultEstimate
	}

	t := &Task{
		ID:             newID(),
		Title:          title,
		EstimatedCount: estimate,
	}

	r.tasks = append(r.tasks, t)
	r.persist()

	return t, true
}

// Update modifies a task's title and estimate. An empty title or
// non-positive estimate leaves the corresponding field unchanged.
func (r *Registry) Update(id, title string, estimate int) bool {
	t, ok := r.lookup(id)
	if !ok {
		return false
	}

	title = strings.TrimSpace(title)
	if title != "" {
		t.Title = title
	}

	if estimate > 0 {
		t.EstimatedCount = estimate
	}

	r.persist()

	return true
}

// ToggleDone flips a task's done flag.
func (r *Registry) ToggleDone(id string) bool {
	t, ok := r.lookup(id)
	if !ok {
		return false
	}

	t.Done = !t.Done
	r.persist()

	return true
}

// Delete removes a task and fires the removal hook so that a session
// pointing at it drops its reference.
func (r *Registry) Delete(id string) bool {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			r.persist()

			if r.onRemove != nil {
				r.onRemove(id)
			}

			return true
		}
	}

	return false
}

// ClearAll removes every task after the confirmation collaborator approves.
// Removal hooks fire for each task so the engine releases its active task.
func (r *Registry) ClearAll(confirm func() bool) bool {
	if len(r.tasks) == 0 {
		return false
	}

	if confirm != nil && !confirm() {
		return false
	}

	removed := r.tasks
	r.tasks = nil
	r.persist()

	if r.onRemove != nil {
		for _, t := range removed {
			r.onRemove(t.ID)
		}
	}

	return true
}

// IncrementCompleted bumps a task's completed count. Only the session
// engine calls this, on natural expiry of a focus session. The count is
// never decremented and has no upper clamp.
func (r *Registry) IncrementCompleted(id string) bool {
	t, ok := r.lookup(id)
	if !ok {
		return false
	}

	t.CompletedCount++
	r.persist()

	return true
}

// Get returns a copy of the task with the given ID.
func (r *Registry) Get(id string) (Task, bool) {
	t, ok := r.lookup(id)
	if !ok {
		return Task{}, false
	}

	return *t, true
}

// All returns copies of every task in insertion order.
func (r *Registry) All() []Task {
	out := make([]Task, 0, len(r.tasks))

	for _, t := range r.tasks {
		out = append(out, *t)
	}

	return out
}

// Len reports the number of tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Snapshot returns the persisted form of every task.
func (r *Registry) Snapshot() []models.Task {
	out := make([]models.Task, 0, len(r.tasks))

	for _, t := range r.tasks {
		out = append(out, t.ToModel())
	}

	return out
}

func (r *Registry) lookup(id string) (*Task, bool) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}

	return nil, false
}

func (r *Registry) persist() {
	if r.sink != nil {
		r.sink(r.Snapshot())
	}
}
