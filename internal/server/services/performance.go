package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
)

// Performance summarizes a user's task list.
type Performance struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	CompletionRate  float64 `json:"completionRate"`
	Overdue         int     `json:"overdue"`
	CompletedOnTime int     `json:"completedOnTime"`
	CompletedLate   int     `json:"completedLate"`
}

// ComputePerformance derives the statistics for tasks as of now.
//
// A completed task with a deadline counts as on time when its last update
// happened no later than the deadline. CompletionRate is a percentage rounded
// to one decimal and 0 for an empty list.
func ComputePerformance(tasks []*models.Task, now time.Time) Performance {
	var p Performance
	p.Total = len(tasks)

	for _, t := range tasks {
		if t.Completed {
			p.Completed++
			if t.Deadline != nil {
				if t.UpdatedAt.After(*t.Deadline) {
					p.CompletedLate++
				} else {
					p.CompletedOnTime++
				}
			}
			continue
		}
		if t.Deadline != nil && t.Deadline.Before(now) {
			p.Overdue++
		}
	}

	if p.Total > 0 {
		p.CompletionRate = math.Round(float64(p.Completed)/float64(p.Total)*1000) / 10
	}
	return p
}

// PerformanceService serves ComputePerformance over the stored tasks.
type PerformanceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPerformanceService(db *sql.DB, m repomanager.RepositoryManager) *PerformanceService {
	return &PerformanceService{db: db, repomanager: m, now: time.Now}
}

// Get computes userID's statistics from scratch on every call.
func (s *PerformanceService) Get(ctx context.Context, userID string) (Performance, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return Performance{}, fmt.Errorf("error loading tasks: %w", err)
	}
	return ComputePerformance(tasks, s.now()), nil
}
