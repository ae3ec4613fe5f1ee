package pkg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

const (
	OrderDetailsIdColumn            = "id"
	OrderDetailsOrderIdColumn       = "order_id"
	OrderDetailsProductIdColumn     = "product_id"
	OrderDetailsProductDetailColumn = "product_detail"
	OrderDetailsPrintTypeColumn     = "print_type"
	OrderDetailsNumColorsColumn     = "num_colors"
	OrderDetailsQuantityColumn      = "quantity"
	OrderDetailsItemCompletedColumn = "item_completed"
	OrderDetailsProofNumColumn      = "proof_num"
	OrderDetailsProofDateColumn     = "proof_date"
	OrderDetailsThumbnailColumn     = "thumbnail"
)

var orderDetailColumns = []string{
	OrderDetailsIdColumn,
	OrderDetailsOrderIdColumn,
	OrderDetailsProductIdColumn,
	OrderDetailsProductDetailColumn,
	OrderDetailsPrintTypeColumn,
	OrderDetailsNumColorsColumn,
	OrderDetailsQuantityColumn,
	OrderDetailsItemCompletedColumn,
	OrderDetailsProofNumColumn,
	OrderDetailsProofDateColumn,
	OrderDetailsThumbnailColumn,
}

// OrderDetailManager reads and writes line items
type OrderDetailManager struct {
	db *Database
}

func NewOrderDetailManager(db *Database) *OrderDetailManager {
	return &OrderDetailManager{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Insert stores a new line item and sets detail.ID to the assigned id
func (m *OrderDetailManager) Insert(ctx context.Context, detail *models.OrderDetail) error {
	return insertOrderDetail(ctx, m.db.DB, detail)
}

func insertOrderDetail(ctx context.Context, conn execer, detail *models.OrderDetail) error {
	query, params, err := sq.Insert(OrderDetailsTableName).
		Columns(orderDetailColumns[1:]...).
		Values(
			detail.OrderID,
			detail.ProductID,
			detail.ProductDetail,
			detail.PrintType.Code(),
			detail.NumColors,
			detail.Quantity,
			nullableTime(detail.ItemCompleted),
			detail.ProofNum,
			nullableTime(detail.ProofDate),
			detail.Thumbnail,
		).ToSql()
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, query, params...)
	if err != nil {
		logger.Error.Printf("Failed to insert order detail %s for job %s: %v", detail.ProductID, detail.OrderID, err)
		return fmt.Errorf("inserting order detail for job %s: %w", detail.OrderID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	detail.ID = int(id)
	return nil
}

// Update rewrites every column of an existing line item
func (m *OrderDetailManager) Update(ctx context.Context, detail *models.OrderDetail) error {
	query, params, err := sq.Update(OrderDetailsTableName).
		Set(OrderDetailsOrderIdColumn, detail.OrderID).
		Set(OrderDetailsProductIdColumn, detail.ProductID).
		Set(OrderDetailsProductDetailColumn, detail.ProductDetail).
		Set(OrderDetailsPrintTypeColumn, detail.PrintType.Code()).
		Set(OrderDetailsNumColorsColumn, detail.NumColors).
		Set(OrderDetailsQuantityColumn, detail.Quantity).
		Set(OrderDetailsItemCompletedColumn, nullableTime(detail.ItemCompleted)).
		Set(OrderDetailsProofNumColumn, detail.ProofNum).
		Set(OrderDetailsProofDateColumn, nullableTime(detail.ProofDate)).
		Set(OrderDetailsThumbnailColumn, detail.Thumbnail).
		Where(sq.Eq{OrderDetailsIdColumn: detail.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, m.db.DB, query, params, fmt.Sprintf("order detail %d", detail.ID))
}

// SetItemCompleted stores only the completion stamp of one line item
func (m *OrderDetailManager) SetItemCompleted(ctx context.Context, id int, completed *time.Time) error {
	query, params, err := sq.Update(OrderDetailsTableName).
		Set(OrderDetailsItemCompletedColumn, nullableTime(completed)).
		Where(sq.Eq{OrderDetailsIdColumn: id}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, m.db.DB, query, params, fmt.Sprintf("order detail %d", id))
}

// Delete removes one line item
func (m *OrderDetailManager) Delete(ctx context.Context, id int) error {
	query, params, err := sq.Delete(OrderDetailsTableName).
		Where(sq.Eq{OrderDetailsIdColumn: id}).
		ToSql()
	if err != nil {
		return err
	}
	return execOne(ctx, m.db.DB, query, params, fmt.Sprintf("order detail %d", id))
}

// DeleteByOrder removes every line item of a job and returns how many went
func (m *OrderDetailManager) DeleteByOrder(ctx context.Context, orderID string) (int64, error) {
	query, params, err := sq.Delete(OrderDetailsTableName).
		Where(sq.Eq{OrderDetailsOrderIdColumn: orderID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := m.db.DB.ExecContext(ctx, query, params...)
	if err != nil {
		logger.Error.Printf("Failed to delete order details of job %s: %v", orderID, err)
		return 0, err
	}
	return res.RowsAffected()
}

// GetRows returns the line items of one job in id order
func (m *OrderDetailManager) GetRows(ctx context.Context, orderID string) ([]models.OrderDetail, error) {
	return getOrderDetails(ctx, m.db.DB, orderID)
}

func getOrderDetails(ctx context.Context, conn execer, orderID string) ([]models.OrderDetail, error) {
	query, params, err := sq.Select(orderDetailColumns...).
		From(OrderDetailsTableName).
		Where(sq.Eq{OrderDetailsOrderIdColumn: orderID}).
		OrderBy(OrderDetailsIdColumn).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, query, params...)
	if err != nil {
		logger.Error.Printf("Failed to load order details of job %s: %v", orderID, err)
		return nil, err
	}
	defer rows.Close()

	details := []models.OrderDetail{}
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

func scanOrderDetail(rows *sql.Rows) (models.OrderDetail, error) {
	var (
		detail              models.OrderDetail
		printCode           int
		completed, proofsAt sql.NullTime
	)
	err := rows.Scan(
		&detail.ID,
		&detail.OrderID,
		&detail.ProductID,
		&detail.ProductDetail,
		&printCode,
		&detail.NumColors,
		&detail.Quantity,
		&completed,
		&detail.ProofNum,
		&proofsAt,
		&detail.Thumbnail,
	)
	if err != nil {
		return detail, err
	}

	detail.PrintType, err = models.PrintTypeFromCode(printCode)
	if err != nil {
		logger.Error.Printf("Order detail %d has a bad print type: %v", detail.ID, err)
		return detail, fmt.Errorf("order detail %d: %w", detail.ID, err)
	}
	detail.ItemCompleted = timePtr(completed)
	detail.ProofDate = timePtr(proofsAt)
	return detail, nil
}

// execOne runs a statement that must touch exactly one row
func execOne(ctx context.Context, conn execer, query string, params []interface{}, what string) error {
	res, err := conn.ExecContext(ctx, query, params...)
	if err != nil {
		logger.Error.Printf("Failed to write %s: %v", what, err)
		return fmt.Errorf("writing %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
