package models

import "time"

// OrderDetail is one line item (product) within a Job
type OrderDetail struct {
	ID            int
	OrderID       string // JobID of the owning Job
	ProductID     string
	ProductDetail string
	PrintType     PrintType
	NumColors     int64
	Quantity      int64
	ItemCompleted *time.Time // nil means incomplete
	ProofNum      int
	ProofDate     *time.Time
	Thumbnail     string
}

// IsCompleted reports whether the line item has been marked done
func (od *OrderDetail) IsCompleted() bool {
	return od.ItemCompleted != nil
}

// Total is colors times quantity. It is displayed but never stored.
func (od *OrderDetail) Total() int64 {
	return od.NumColors * od.Quantity
}

func (od OrderDetail) String() string {
	return od.ProductID
}
