package domain

import "time"

// Task title column bound.
const TaskTitleMaxLen = 200

// DateLayout is the wire format of Task.DueDate.
const DateLayout = "2006-01-02"

// Task belongs to exactly one project. ProjectID never changes after creation.
type Task struct {
	ID          int64      `db:"id"`
	ProjectID   int64      `db:"project_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	DueDate     *time.Time `db:"due_date"`
	Completed   bool       `db:"completed"`
	CreatedAt   time.Time  `db:"created_at"`
}

// TaskInput carries the mutable fields of a task.
type TaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
}
