package models

import "time"

// Job is a customer print order scheduled for a ship date
type Job struct {
	ShipDate        *time.Time // nil when no ship date has been set
	JobID           string
	CustomerName    string
	CustomerPO      string
	ProofSpecDate   *time.Time
	JobCompleted    *time.Time // nil means not complete
	PrintingCompany PrintingCompany
	Overruns        bool
	OrderDetailList []OrderDetail
}

// IsCompleted reports whether the job itself has been marked done
func (j *Job) IsCompleted() bool {
	return j.JobCompleted != nil
}

// FormatShipDate returns the ship date in MM/DD/YY format, or "" if unset
func (j *Job) FormatShipDate() string {
	if j.ShipDate == nil {
		return ""
	}
	return j.ShipDate.Format("01/02/06")
}

// Detail returns a pointer to the order detail with the given id, or nil
func (j *Job) Detail(id int) *OrderDetail {
	for i := range j.OrderDetailList {
		if j.OrderDetailList[i].ID == id {
			return &j.OrderDetailList[i]
		}
	}
	return nil
}

func (j Job) String() string {
	return j.CustomerName
}
