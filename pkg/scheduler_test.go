package pkg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingDetails fails SetItemCompleted for the listed ids
type failingDetails struct {
	fail  map[int]bool
	saved map[int]*time.Time
}

func (f *failingDetails) SetItemCompleted(_ context.Context, id int, completed *time.Time) error {
	if f.fail[id] {
		return errors.New("disk full")
	}
	f.saved[id] = completed
	return nil
}

func TestSchedulerToggleJobPersists(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)
	scheduler := NewScheduler(jobs, NewOrderDetailManager(db))
	day := date(2016, time.March, 1)

	insertJobs(t, jobs, createJobFixture(t, day, 3))

	loaded, err := scheduler.LoadJobsForDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	job := &loaded[0]

	now := time.Date(2016, time.March, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, scheduler.ToggleJob(ctx, job, true, now))

	reloaded, err := jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.JobCompleted)
	assert.WithinDuration(t, now, *reloaded.JobCompleted, time.Second)
	for _, item := range reloaded.OrderDetailList {
		require.NotNil(t, item.ItemCompleted)
		assert.WithinDuration(t, now, *item.ItemCompleted, time.Second)
	}

	require.NoError(t, scheduler.ToggleJob(ctx, job, false, now))
	reloaded, err = jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.JobCompleted)
	for _, item := range reloaded.OrderDetailList {
		assert.Nil(t, item.ItemCompleted)
	}
}

func TestSchedulerToggleItemPersists(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)
	scheduler := NewScheduler(jobs, NewOrderDetailManager(db))
	day := date(2016, time.March, 1)

	insertJobs(t, jobs, createJobFixture(t, day, 2))
	loaded, err := scheduler.LoadJobsForDate(ctx, day)
	require.NoError(t, err)
	job := &loaded[0]

	t1 := time.Date(2016, time.March, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2016, time.March, 1, 11, 0, 0, 0, time.UTC)

	state, err := scheduler.ToggleItem(ctx, job, &job.OrderDetailList[0], true, t1)
	require.NoError(t, err)
	assert.False(t, state.Checked)

	reloaded, err := jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.JobCompleted)
	require.NotNil(t, reloaded.OrderDetailList[0].ItemCompleted)
	assert.Nil(t, reloaded.OrderDetailList[1].ItemCompleted)

	state, err = scheduler.ToggleItem(ctx, job, &job.OrderDetailList[1], true, t2)
	require.NoError(t, err)
	assert.True(t, state.Checked)

	reloaded, err = jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.JobCompleted)
	assert.WithinDuration(t, t2, *reloaded.JobCompleted, time.Second)
	assert.WithinDuration(t, t1, *reloaded.OrderDetailList[0].ItemCompleted, time.Second)
}

func TestSchedulerToggleJobPartialFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)
	day := date(2016, time.March, 1)

	insertJobs(t, jobs, createJobFixture(t, day, 3))
	loaded, err := jobs.GetJobsByDate(ctx, day)
	require.NoError(t, err)
	job := &loaded[0]

	details := &failingDetails{
		fail:  map[int]bool{job.OrderDetailList[1].ID: true},
		saved: map[int]*time.Time{},
	}
	scheduler := NewScheduler(jobs, details)

	now := time.Date(2016, time.March, 1, 10, 30, 0, 0, time.UTC)
	err = scheduler.ToggleJob(ctx, job, true, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// memory is fully updated and the other writes still went through
	for _, item := range job.OrderDetailList {
		assert.True(t, item.IsCompleted())
	}
	assert.True(t, job.IsCompleted())
	assert.Len(t, details.saved, 2)

	reloaded, err := jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.JobCompleted)
}

func TestSchedulerWeekSummary(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)
	scheduler := NewScheduler(jobs, NewOrderDetailManager(db))
	stamp := time.Date(2016, time.March, 1, 9, 0, 0, 0, time.UTC)

	tuesday := createJobFixture(t, date(2016, time.March, 1), 1)
	tuesdayDone := createJobFixture(t, date(2016, time.March, 1), 1)
	tuesdayDone.JobCompleted = &stamp
	saturday := createJobFixture(t, date(2016, time.March, 5), 2)
	nextWeek := createJobFixture(t, date(2016, time.March, 6), 1)
	insertJobs(t, jobs, tuesday, tuesdayDone, saturday, nextWeek)

	summary, err := scheduler.WeekSummary(ctx, date(2016, time.March, 3))
	require.NoError(t, err)

	assert.Equal(t, date(2016, time.February, 28), summary.Start)
	assert.Equal(t, date(2016, time.March, 5), summary.End)
	assert.Equal(t, 3, summary.TotalJobs)
	assert.Equal(t, 1, summary.TotalCompleted)
	assert.Equal(t, DaySummary{Date: date(2016, time.March, 1), Jobs: 2, Completed: 1}, summary.Days[2])
	assert.Equal(t, 1, summary.Days[6].Jobs)
	assert.Equal(t, 0, summary.Days[0].Jobs)

	week, err := scheduler.LoadWeek(ctx, date(2016, time.March, 3))
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Len(t, week[2].Jobs, 2)
	assert.Len(t, week[6].Jobs[0].OrderDetailList, 2)
}
