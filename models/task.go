package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task documents reference their parent project by id. The project is
// verified to exist when the task is created, not on later updates.
// Status moves todo -> in-progress -> done by convention only; the
// store accepts any declared status on update.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
	AssigneeID  primitive.ObjectID `bson:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type DeletedTask struct {
	Task
	Deleted bool `json:"deleted"`
}
