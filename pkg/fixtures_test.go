package pkg

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/require"

	"sky-scheduling/models"
)

// JobFixture job test fixtures
type JobFixture struct {
	CustomerName string `faker:"name"`
	CustomerPO   string `faker:"username"`
}

// OrderDetailFixture order detail test fixtures
type OrderDetailFixture struct {
	ProductID     string `faker:"word"`
	ProductDetail string `faker:"sentence"`
}

var jobCounter = 425000

// newTestDatabase opens a fresh database file under the test's temp dir
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "scheduling.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// createJobFixture builds a job shipping on shipDate with n line items
func createJobFixture(t *testing.T, shipDate time.Time, n int) models.Job {
	t.Helper()
	fixture := JobFixture{}
	require.NoError(t, faker.FakeData(&fixture))

	jobCounter++
	job := models.Job{
		ShipDate:        &shipDate,
		JobID:           fmt.Sprint(jobCounter),
		CustomerName:    fixture.CustomerName,
		CustomerPO:      fixture.CustomerPO,
		PrintingCompany: models.AmericanAccents,
	}
	for i := 0; i < n; i++ {
		job.OrderDetailList = append(job.OrderDetailList, createOrderDetailFixture(t, job.JobID, i))
	}
	return job
}

func createOrderDetailFixture(t *testing.T, jobID string, i int) models.OrderDetail {
	t.Helper()
	fixture := OrderDetailFixture{}
	require.NoError(t, faker.FakeData(&fixture))

	return models.OrderDetail{
		OrderID:       jobID,
		ProductID:     fixture.ProductID,
		ProductDetail: fixture.ProductDetail,
		PrintType:     models.PrintTypes[i%len(models.PrintTypes)],
		NumColors:     int64(i%4 + 1),
		Quantity:      int64(500 * (i + 1)),
	}
}

// insertJobs stores each job and returns them with ids assigned
func insertJobs(t *testing.T, jobs *JobManager, fixtures ...models.Job) []models.Job {
	t.Helper()
	for i := range fixtures {
		require.NoError(t, jobs.Insert(context.Background(), &fixtures[i]))
	}
	return fixtures
}
