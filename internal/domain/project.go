package domain

import "time"

// Project title column bound.
const ProjectTitleMaxLen = 150

// Project is owned by exactly one user. OwnerID never changes after creation.
type Project struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
