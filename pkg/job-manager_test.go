package pkg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sky-scheduling/models"
)

func TestJobManagerInsertAndGetRow(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobManager(newTestDatabase(t))

	proof := time.Date(2016, time.February, 20, 14, 0, 0, 0, time.UTC)
	job := createJobFixture(t, date(2016, time.March, 1), 3)
	job.ProofSpecDate = &proof
	job.PrintingCompany = models.AmericanYachtSupply
	job.Overruns = true
	insertJobs(t, jobs, job)

	got, err := jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)

	assert.Equal(t, job.JobID, got.JobID)
	assert.Equal(t, job.CustomerName, got.CustomerName)
	assert.Equal(t, job.CustomerPO, got.CustomerPO)
	assert.Equal(t, models.AmericanYachtSupply, got.PrintingCompany)
	assert.True(t, got.Overruns)
	assert.Nil(t, got.JobCompleted)
	require.NotNil(t, got.ShipDate)
	assert.Equal(t, date(2016, time.March, 1), *got.ShipDate)
	require.NotNil(t, got.ProofSpecDate)
	assert.True(t, proof.Equal(*got.ProofSpecDate))

	require.Len(t, got.OrderDetailList, 3)
	for i, detail := range got.OrderDetailList {
		assert.NotZero(t, detail.ID)
		assert.Equal(t, job.JobID, detail.OrderID)
		assert.Equal(t, job.OrderDetailList[i].ProductID, detail.ProductID)
		assert.Equal(t, job.OrderDetailList[i].PrintType, detail.PrintType)
		assert.Equal(t, job.OrderDetailList[i].Quantity, detail.Quantity)
		assert.Nil(t, detail.ItemCompleted)
	}
}

func TestJobManagerInsertAssignsDetailIDs(t *testing.T) {
	jobs := NewJobManager(newTestDatabase(t))

	job := createJobFixture(t, date(2016, time.March, 1), 2)
	require.NoError(t, jobs.Insert(context.Background(), &job))

	assert.NotZero(t, job.OrderDetailList[0].ID)
	assert.Greater(t, job.OrderDetailList[1].ID, job.OrderDetailList[0].ID)
}

func TestJobManagerInsertDuplicateRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)
	details := NewOrderDetailManager(db)

	job := createJobFixture(t, date(2016, time.March, 1), 2)
	insertJobs(t, jobs, job)

	dup := createJobFixture(t, date(2016, time.March, 2), 4)
	dup.JobID = job.JobID
	assert.Error(t, jobs.Insert(ctx, &dup))

	rows, err := details.GetRows(ctx, job.JobID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestJobManagerGetRowNotFound(t *testing.T) {
	jobs := NewJobManager(newTestDatabase(t))

	_, err := jobs.GetRow(context.Background(), "999999")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(err))
}

func TestJobManagerGetJobsByDateOrdersByProofSpec(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobManager(newTestDatabase(t))
	day := date(2016, time.March, 1)

	late := time.Date(2016, time.February, 25, 0, 0, 0, 0, time.UTC)
	early := time.Date(2016, time.February, 10, 0, 0, 0, 0, time.UTC)

	a := createJobFixture(t, day, 1)
	a.ProofSpecDate = &late
	b := createJobFixture(t, day, 2)
	b.ProofSpecDate = &early
	other := createJobFixture(t, date(2016, time.March, 2), 1)
	insertJobs(t, jobs, a, b, other)

	got, err := jobs.GetJobsByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.JobID, got[0].JobID)
	assert.Equal(t, a.JobID, got[1].JobID)
	assert.Len(t, got[0].OrderDetailList, 2)

	none, err := jobs.GetJobsByDate(ctx, date(2016, time.March, 3))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJobManagerSentinelShipDates(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobManager(newTestDatabase(t))

	held := createJobFixture(t, HoldDate, 1)
	proofs := createJobFixture(t, ProofDate, 1)
	insertJobs(t, jobs, held, proofs)

	got, err := jobs.GetJobsByDate(ctx, HoldDate)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, held.JobID, got[0].JobID)
	assert.True(t, IsHoldDate(*got[0].ShipDate))

	got, err = jobs.GetJobsByDate(ctx, ProofDate)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, proofs.JobID, got[0].JobID)
}

func TestJobManagerCounts(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobManager(newTestDatabase(t))
	day := date(2016, time.March, 1)
	stamp := time.Date(2016, time.March, 1, 9, 0, 0, 0, time.UTC)

	a := createJobFixture(t, day, 1)
	b := createJobFixture(t, day, 1)
	b.JobCompleted = &stamp
	c := createJobFixture(t, date(2016, time.March, 4), 1)
	c.JobCompleted = &stamp
	d := createJobFixture(t, date(2016, time.March, 6), 1)
	insertJobs(t, jobs, a, b, c, d)

	n, err := jobs.GetNumJobs(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	done, err := jobs.GetCompletedJobs(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, done)

	exists, err := jobs.JobsExist(ctx, day)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = jobs.JobsExist(ctx, date(2016, time.March, 2))
	require.NoError(t, err)
	assert.False(t, exists)

	start, end := WeekBounds(day)
	n, err = jobs.WeeklyNumJobs(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	done, err = jobs.WeeklyCompletedJobs(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, done)

	all, incomplete, err := jobs.GetAllJobsByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	require.Len(t, incomplete, 1)
	assert.Equal(t, a.JobID, incomplete[0].JobID)
}

func TestJobManagerUpdateAndSetCompleted(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobManager(newTestDatabase(t))

	job := insertJobs(t, jobs, createJobFixture(t, date(2016, time.March, 1), 1))[0]

	moved := date(2016, time.March, 8)
	job.ShipDate = &moved
	job.CustomerName = "Harbor Marine"
	job.PrintingCompany = models.AmericanCabinSupply
	require.NoError(t, jobs.Update(ctx, &job))

	got, err := jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, moved, *got.ShipDate)
	assert.Equal(t, "Harbor Marine", got.CustomerName)
	assert.Equal(t, models.AmericanCabinSupply, got.PrintingCompany)

	stamp := time.Date(2016, time.March, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, jobs.SetCompleted(ctx, job.JobID, &stamp))
	got, err = jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	require.NotNil(t, got.JobCompleted)
	assert.WithinDuration(t, stamp, *got.JobCompleted, time.Second)

	require.NoError(t, jobs.SetCompleted(ctx, job.JobID, nil))
	got, err = jobs.GetRow(ctx, job.JobID)
	require.NoError(t, err)
	assert.Nil(t, got.JobCompleted)

	assert.True(t, IsNotFound(jobs.SetCompleted(ctx, "000000", &stamp)))
	missing := models.Job{JobID: "000000"}
	assert.True(t, IsNotFound(jobs.Update(ctx, &missing)))
}

func TestJobManagerDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)
	details := NewOrderDetailManager(db)

	job := insertJobs(t, jobs, createJobFixture(t, date(2016, time.March, 1), 3))[0]

	require.NoError(t, jobs.Delete(ctx, job.JobID))

	rows, err := details.GetRows(ctx, job.JobID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	assert.True(t, IsNotFound(jobs.Delete(ctx, job.JobID)))
}

func TestJobManagerRejectsUnknownCompanyCode(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	jobs := NewJobManager(db)

	job := insertJobs(t, jobs, createJobFixture(t, date(2016, time.March, 1), 0))[0]
	_, err := db.DB.Exec("UPDATE jobs SET printing_company = 7 WHERE job_id = ?", job.JobID)
	require.NoError(t, err)

	_, err = jobs.GetRow(ctx, job.JobID)
	var unknown *models.UnknownCodeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "7", unknown.Value)
}
