package domain

// Progress is computed at read time and never stored.
type Progress struct {
	ProjectID          int64   `json:"projectId"`
	TotalTasks         int64   `json:"totalTasks"`
	CompletedTasks     int64   `json:"completedTasks"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// NewProgress builds a Progress, reporting 0 when the project has no tasks.
func NewProgress(projectID, total, completed int64) Progress {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) * 100.0 / float64(total)
	}
	return Progress{
		ProjectID:          projectID,
		TotalTasks:         total,
		CompletedTasks:     completed,
		ProgressPercentage: pct,
	}
}
