package pkg

import (
	"time"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

// ParentState is the aggregate checkbox state of a Job computed from its
// line items. Checked is what the Job's own checkbox shows; Mixed is only
// used to draw the partial marker and is never stored.
type ParentState struct {
	Checked     bool
	AllChecked  bool
	NoneChecked bool
	Mixed       bool
}

func completionStamp(checked bool, now time.Time) *time.Time {
	if !checked {
		return nil
	}
	stamp := now
	return &stamp
}

// OnJobToggled applies a click on a Job's checkbox. The job and every one of
// its line items take the same state and timestamp, overwriting whatever
// the items held before. It returns the ids of all items, in list order,
// so the caller can persist and redraw them.
func OnJobToggled(job *models.Job, checked bool, now time.Time) []int {
	logger.Info.Printf("Job %s toggled to %v", job.JobID, checked)

	job.JobCompleted = completionStamp(checked, now)

	ids := make([]int, 0, len(job.OrderDetailList))
	for i := range job.OrderDetailList {
		job.OrderDetailList[i].ItemCompleted = completionStamp(checked, now)
		ids = append(ids, job.OrderDetailList[i].ID)
	}
	return ids
}

// OnChildToggled applies a click on one line item's checkbox and recomputes
// the Job's state from all of its siblings. child must point into
// job.OrderDetailList. The Job is checked only when every item is; the mixed
// and all-incomplete cases both leave it unchecked.
func OnChildToggled(job *models.Job, child *models.OrderDetail, checked bool, now time.Time) ParentState {
	logger.Info.Printf("Order detail %d (%s) of job %s toggled to %v", child.ID, child.ProductID, job.JobID, checked)

	child.ItemCompleted = completionStamp(checked, now)

	state := ParentState{AllChecked: true, NoneChecked: true}
	for i := range job.OrderDetailList {
		done := job.OrderDetailList[i].IsCompleted()
		if done != checked {
			state.Mixed = true
		}
		if !done {
			state.AllChecked = false
		} else {
			state.NoneChecked = false
		}
	}
	state.Checked = state.AllChecked

	logger.Debug.Printf("Job %s state after toggle: %+v", job.JobID, state)
	return state
}

// ApplyParentState copies the aggregate state onto the Job's own completion
// stamp without touching its items. It reports whether the stamp changed.
func ApplyParentState(job *models.Job, state ParentState, now time.Time) bool {
	if job.IsCompleted() == state.Checked {
		return false
	}
	job.JobCompleted = completionStamp(state.Checked, now)
	return true
}

// JobState computes the aggregate state from the items as they stand, for
// the initial drawing of a Job row
func JobState(job *models.Job) ParentState {
	if len(job.OrderDetailList) == 0 {
		done := job.IsCompleted()
		return ParentState{Checked: done, AllChecked: done, NoneChecked: !done}
	}

	state := ParentState{AllChecked: true, NoneChecked: true}
	for i := range job.OrderDetailList {
		if job.OrderDetailList[i].IsCompleted() {
			state.NoneChecked = false
		} else {
			state.AllChecked = false
		}
	}
	state.Mixed = !state.AllChecked && !state.NoneChecked
	state.Checked = state.AllChecked
	return state
}
