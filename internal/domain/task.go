package domain

import (
	"fmt"
	"time"
)

// Task is a single to-do item owned by exactly one user. OwnerID is set at
// creation and never reassigned.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStats aggregates task counts, either for one owner or globally.
type TaskStats struct {
	Total     int64
	Completed int64
	Pending   int64
}

// CompletionRate renders completed/total as a percentage with two decimals,
// "0.00%" when there are no tasks.
func (s TaskStats) CompletionRate() string {
	if s.Total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(s.Completed)/float64(s.Total)*100)
}
