package pkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

const (
	JobsShipDateColumn        = "ship_date"
	JobsJobIdColumn           = "job_id"
	JobsCustomerNameColumn    = "customer_name"
	JobsCustomerPoColumn      = "customer_po"
	JobsProofSpecDateColumn   = "proof_spec_date"
	JobsJobCompletedColumn    = "job_completed"
	JobsPrintingCompanyColumn = "printing_company"
	JobsOverrunsColumn        = "overruns"
)

var jobColumns = []string{
	JobsShipDateColumn,
	JobsJobIdColumn,
	JobsCustomerNameColumn,
	JobsCustomerPoColumn,
	JobsProofSpecDateColumn,
	JobsJobCompletedColumn,
	JobsPrintingCompanyColumn,
	JobsOverrunsColumn,
}

// JobManager reads and writes jobs together with their line items
type JobManager struct {
	db *Database
}

func NewJobManager(db *Database) *JobManager {
	return &JobManager{db: db}
}

func shipDateValue(d *time.Time) interface{} {
	if d == nil {
		return nil
	}
	return SQLDate(*d)
}

// GetRow loads one job and its line items. ErrNotFound if no such job.
func (m *JobManager) GetRow(ctx context.Context, jobID string) (*models.Job, error) {
	jobs, err := m.selectJobs(ctx, sq.Eq{JobsJobIdColumn: jobID})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	return &jobs[0], nil
}

// Insert stores a job and all of its line items in one transaction. The ids
// assigned to the line items are written back into job.OrderDetailList.
func (m *JobManager) Insert(ctx context.Context, job *models.Job) error {
	query, params, err := sq.Insert(JobsTableName).
		Columns(jobColumns...).
		Values(
			shipDateValue(job.ShipDate),
			job.JobID,
			job.CustomerName,
			job.CustomerPO,
			nullableTime(job.ProofSpecDate),
			nullableTime(job.JobCompleted),
			job.PrintingCompany.Code(),
			job.Overruns,
		).ToSql()
	if err != nil {
		return err
	}

	err = m.db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return fmt.Errorf("inserting job %s: %w", job.JobID, err)
		}
		for i := range job.OrderDetailList {
			job.OrderDetailList[i].OrderID = job.JobID
			if err := insertOrderDetail(ctx, tx, &job.OrderDetailList[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error.Printf("Failed to insert job %s: %v", job.JobID, err)
		return err
	}

	logger.Info.Printf("Inserted job %s with %d order details", job.JobID, len(job.OrderDetailList))
	return nil
}

// Update rewrites the job's own columns. Line items are left alone.
func (m *JobManager) Update(ctx context.Context, job *models.Job) error {
	query, params, err := sq.Update(JobsTableName).
		Set(JobsShipDateColumn, shipDateValue(job.ShipDate)).
		Set(JobsCustomerNameColumn, job.CustomerName).
		Set(JobsCustomerPoColumn, job.CustomerPO).
		Set(JobsProofSpecDateColumn, nullableTime(job.ProofSpecDate)).
		Set(JobsJobCompletedColumn, nullableTime(job.JobCompleted)).
		Set(JobsPrintingCompanyColumn, job.PrintingCompany.Code()).
		Set(JobsOverrunsColumn, job.Overruns).
		Where(sq.Eq{JobsJobIdColumn: job.JobID}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, m.db.DB, query, params, "job "+job.JobID)
}

// SetCompleted stores only the job's completion stamp
func (m *JobManager) SetCompleted(ctx context.Context, jobID string, completed *time.Time) error {
	query, params, err := sq.Update(JobsTableName).
		Set(JobsJobCompletedColumn, nullableTime(completed)).
		Where(sq.Eq{JobsJobIdColumn: jobID}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, m.db.DB, query, params, "job "+jobID)
}

// Delete removes a job; its line items go with it
func (m *JobManager) Delete(ctx context.Context, jobID string) error {
	query, params, err := sq.Delete(JobsTableName).
		Where(sq.Eq{JobsJobIdColumn: jobID}).
		ToSql()
	if err != nil {
		return err
	}
	if err := execOne(ctx, m.db.DB, query, params, "job "+jobID); err != nil {
		return err
	}
	logger.Info.Printf("Deleted job %s", jobID)
	return nil
}

// GetJobsByDate returns every job shipping on date, ordered by proof spec
// date, each with its line items in id order
func (m *JobManager) GetJobsByDate(ctx context.Context, date time.Time) ([]models.Job, error) {
	return m.selectJobs(ctx, sq.Eq{JobsShipDateColumn: SQLDate(date)})
}

// GetAllJobsByDate returns the jobs shipping on date plus the subset of them
// still incomplete
func (m *JobManager) GetAllJobsByDate(ctx context.Context, date time.Time) ([]models.Job, []models.Job, error) {
	all, err := m.GetJobsByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}

	incomplete := []models.Job{}
	for _, job := range all {
		if !job.IsCompleted() {
			incomplete = append(incomplete, job)
		}
	}
	return all, incomplete, nil
}

// JobsExist reports whether anything ships on date
func (m *JobManager) JobsExist(ctx context.Context, date time.Time) (bool, error) {
	n, err := m.GetNumJobs(ctx, date)
	return n > 0, err
}

// GetNumJobs counts the jobs shipping on date
func (m *JobManager) GetNumJobs(ctx context.Context, date time.Time) (int, error) {
	return m.count(ctx, sq.Eq{JobsShipDateColumn: SQLDate(date)})
}

// GetCompletedJobs counts the completed jobs shipping on date
func (m *JobManager) GetCompletedJobs(ctx context.Context, date time.Time) (int, error) {
	return m.count(ctx, sq.And{
		sq.Eq{JobsShipDateColumn: SQLDate(date)},
		sq.NotEq{JobsJobCompletedColumn: nil},
	})
}

// WeeklyNumJobs counts the jobs shipping between start and end inclusive
func (m *JobManager) WeeklyNumJobs(ctx context.Context, start, end time.Time) (int, error) {
	return m.count(ctx, between(start, end))
}

// WeeklyCompletedJobs counts the completed jobs shipping between start and
// end inclusive
func (m *JobManager) WeeklyCompletedJobs(ctx context.Context, start, end time.Time) (int, error) {
	return m.count(ctx, sq.And{
		between(start, end),
		sq.NotEq{JobsJobCompletedColumn: nil},
	})
}

func between(start, end time.Time) sq.Sqlizer {
	return sq.Expr(JobsShipDateColumn+" BETWEEN ? AND ?", SQLDate(start), SQLDate(end))
}

func (m *JobManager) count(ctx context.Context, where sq.Sqlizer) (int, error) {
	query, params, err := sq.Select("COUNT(*)").
		From(JobsTableName).
		Where(where).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := m.db.DB.QueryRowContext(ctx, query, params...).Scan(&n); err != nil {
		logger.Error.Printf("Failed to count jobs: %v", err)
		return 0, err
	}
	return n, nil
}

func (m *JobManager) selectJobs(ctx context.Context, where sq.Sqlizer) ([]models.Job, error) {
	query, params, err := sq.Select(jobColumns...).
		From(JobsTableName).
		Where(where).
		OrderBy(JobsProofSpecDateColumn, JobsJobIdColumn).
		ToSql()
	if err != nil {
		return nil, err
	}

	jobs, err := m.scanJobs(ctx, query, params)
	if err != nil {
		return nil, err
	}

	// the job rows are closed by now; the pool has a single connection
	for i := range jobs {
		details, err := getOrderDetails(ctx, m.db.DB, jobs[i].JobID)
		if err != nil {
			return nil, err
		}
		jobs[i].OrderDetailList = details
	}
	return jobs, nil
}

func (m *JobManager) scanJobs(ctx context.Context, query string, params []interface{}) ([]models.Job, error) {
	rows, err := m.db.DB.QueryContext(ctx, query, params...)
	if err != nil {
		logger.Error.Printf("Failed to load jobs: %v", err)
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var (
			job                  models.Job
			shipDate             sql.NullString
			proofSpec, completed sql.NullTime
			companyCode          int
		)
		err := rows.Scan(
			&shipDate,
			&job.JobID,
			&job.CustomerName,
			&job.CustomerPO,
			&proofSpec,
			&completed,
			&companyCode,
			&job.Overruns,
		)
		if err != nil {
			return nil, err
		}

		if shipDate.Valid {
			d, err := ParseSQLDate(shipDate.String)
			if err != nil {
				return nil, fmt.Errorf("job %s: %w", job.JobID, err)
			}
			job.ShipDate = &d
		}
		job.PrintingCompany, err = models.PrintingCompanyFromCode(companyCode)
		if err != nil {
			logger.Error.Printf("Job %s has a bad printing company: %v", job.JobID, err)
			return nil, fmt.Errorf("job %s: %w", job.JobID, err)
		}
		job.ProofSpecDate = timePtr(proofSpec)
		job.JobCompleted = timePtr(completed)
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// IsNotFound reports whether err came from a lookup that matched nothing
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
