// Package task manages the ordered collection of user-defined tasks and
// their focus-session counts.
package task

import (
	"github.com/google/uuid"

	"github.com/burhanahmeed/tempo/internal/models"
)

// Task is a unit of work tracked against an estimated and completed count
// of focus sessions. CompletedCount may exceed EstimatedCount: overflowing
// the estimate is shown as the goal being reached, not clamped.
type Task struct {
	ID             string
	Title          string
	EstimatedCount int
	CompletedCount int
	Done           bool
}

// ToModel converts the task to its persisted form.
func (t *Task) ToModel() models.Task {
	return models.Task{
		ID:             t.ID,
		Title:          t.Title,
		EstimatedCount: t.EstimatedCount,
		CompletedCount: t.CompletedCount,
		Done:           t.Done,
	}
}

func fromModel(m models.Task) *Task {
	return &Task{
		ID:             m.ID,
		Title:          m.Title,
		EstimatedCount: m.EstimatedCount,
		CompletedCount: m.CompletedCount,
		Done:           m.Done,
	}
}

func newID() string {
	return uuid.New().String()
}
