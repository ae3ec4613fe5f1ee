package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

// JobStore is the part of JobManager the scheduler needs
type JobStore interface {
	GetJobsByDate(ctx context.Context, date time.Time) ([]models.Job, error)
	SetCompleted(ctx context.Context, jobID string, completed *time.Time) error
	GetNumJobs(ctx context.Context, date time.Time) (int, error)
	GetCompletedJobs(ctx context.Context, date time.Time) (int, error)
	WeeklyNumJobs(ctx context.Context, start, end time.Time) (int, error)
	WeeklyCompletedJobs(ctx context.Context, start, end time.Time) (int, error)
}

// DetailStore is the part of OrderDetailManager the scheduler needs
type DetailStore interface {
	SetItemCompleted(ctx context.Context, id int, completed *time.Time) error
}

// DaySchedule is everything shipping on one day
type DaySchedule struct {
	Date time.Time
	Jobs []models.Job
}

type DaySummary struct {
	Date      time.Time
	Jobs      int
	Completed int
}

// WeekSummary holds job counts for one Sunday-Saturday week
type WeekSummary struct {
	Start          time.Time
	End            time.Time
	Days           [7]DaySummary
	TotalJobs      int
	TotalCompleted int
}

// Scheduler applies checkbox toggles to the job graph and persists the result
type Scheduler struct {
	jobs    JobStore
	details DetailStore
}

func NewScheduler(jobs JobStore, details DetailStore) *Scheduler {
	return &Scheduler{jobs: jobs, details: details}
}

// LoadJobsForDate returns the jobs shipping on date with their line items
func (s *Scheduler) LoadJobsForDate(ctx context.Context, date time.Time) ([]models.Job, error) {
	jobs, err := s.jobs.GetJobsByDate(ctx, TruncateDate(date))
	if err != nil {
		return nil, fmt.Errorf("loading jobs for %s: %w", DateLabel(date), err)
	}
	logger.Debug.Printf("Loaded %d jobs for %s", len(jobs), DateLabel(date))
	return jobs, nil
}

// LoadWeek returns the schedule of each day in date's week
func (s *Scheduler) LoadWeek(ctx context.Context, date time.Time) ([]DaySchedule, error) {
	week := FullWeek(date)
	days := make([]DaySchedule, 0, len(week))
	for _, d := range week {
		jobs, err := s.LoadJobsForDate(ctx, d)
		if err != nil {
			return nil, err
		}
		days = append(days, DaySchedule{Date: d, Jobs: jobs})
	}
	return days, nil
}

// ToggleJob marks a job and all of its line items done (or not done) and
// stores every stamp. The in-memory job is fully updated before anything is
// written; write failures are collected and returned together.
func (s *Scheduler) ToggleJob(ctx context.Context, job *models.Job, checked bool, now time.Time) error {
	ids := OnJobToggled(job, checked, now)

	var errs []error
	if err := s.jobs.SetCompleted(ctx, job.JobID, job.JobCompleted); err != nil {
		errs = append(errs, err)
	}
	for _, id := range ids {
		if err := s.details.SetItemCompleted(ctx, id, job.Detail(id).ItemCompleted); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error.Printf("Saving job %s toggle: %d of %d writes failed", job.JobID, len(errs), len(ids)+1)
		return err
	}
	return nil
}

// ToggleItem marks one line item and recomputes its job. The job's stamp is
// written only when it changed.
func (s *Scheduler) ToggleItem(ctx context.Context, job *models.Job, item *models.OrderDetail, checked bool, now time.Time) (ParentState, error) {
	state := OnChildToggled(job, item, checked, now)
	changed := ApplyParentState(job, state, now)

	var errs []error
	if err := s.details.SetItemCompleted(ctx, item.ID, item.ItemCompleted); err != nil {
		errs = append(errs, err)
	}
	if changed {
		if err := s.jobs.SetCompleted(ctx, job.JobID, job.JobCompleted); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error.Printf("Saving order detail %d toggle: %v", item.ID, err)
		return state, err
	}
	return state, nil
}

// WeekSummary counts jobs and completed jobs for each day of date's week
func (s *Scheduler) WeekSummary(ctx context.Context, date time.Time) (WeekSummary, error) {
	var summary WeekSummary
	summary.Start, summary.End = WeekBounds(date)

	for i, d := range FullWeek(date) {
		n, err := s.jobs.GetNumJobs(ctx, d)
		if err != nil {
			return summary, err
		}
		done, err := s.jobs.GetCompletedJobs(ctx, d)
		if err != nil {
			return summary, err
		}
		summary.Days[i] = DaySummary{Date: d, Jobs: n, Completed: done}
	}

	var err error
	if summary.TotalJobs, err = s.jobs.WeeklyNumJobs(ctx, summary.Start, summary.End); err != nil {
		return summary, err
	}
	if summary.TotalCompleted, err = s.jobs.WeeklyCompletedJobs(ctx, summary.Start, summary.End); err != nil {
		return summary, err
	}
	return summary, nil
}
