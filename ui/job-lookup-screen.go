package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sky-scheduling/logger"
	"sky-scheduling/models"
	"sky-scheduling/pkg"
)

// describeJob renders a job and its line items for the lookup view
func describeJob(job *models.Job) string {
	var b strings.Builder

	shipDate := "-"
	if job.ShipDate != nil {
		shipDate = pkg.DateLabel(*job.ShipDate)
	}
	proofSpec := "-"
	if job.ProofSpecDate != nil {
		proofSpec = pkg.FormatDate(*job.ProofSpecDate)
	}
	completed := "no"
	if job.JobCompleted != nil {
		completed = job.JobCompleted.Local().Format("01/02/06 15:04")
	}

	fmt.Fprintf(&b, "Job #:       %s\n", job.JobID)
	fmt.Fprintf(&b, "Customer:    %s\n", job.CustomerName)
	fmt.Fprintf(&b, "PO:          %s\n", job.CustomerPO)
	fmt.Fprintf(&b, "Company:     %s\n", job.PrintingCompany)
	fmt.Fprintf(&b, "Ship date:   %s\n", shipDate)
	fmt.Fprintf(&b, "Proof spec:  %s\n", proofSpec)
	fmt.Fprintf(&b, "Overruns:    %v\n", job.Overruns)
	fmt.Fprintf(&b, "Completed:   %s\n\n", completed)

	if len(job.OrderDetailList) == 0 {
		b.WriteString("No line items\n")
		return b.String()
	}
	for i := range job.OrderDetailList {
		b.WriteString(detailLine(&job.OrderDetailList[i]))
		b.WriteString("\n")
	}
	return b.String()
}

// NewJobLookupScreen finds a single job by number
func NewJobLookupScreen(app *tview.Application, session *Session) (tview.Primitive, tview.Primitive) {
	result := tview.NewTextView().
		SetText("Enter a job number and press ENTER").
		SetTextColor(tcell.ColorWhite)

	input := tview.NewInputField().
		SetLabel("Job #: ").
		SetFieldWidth(12).
		SetFieldBackgroundColor(tcell.ColorBlack)

	input.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			session.backToMenu()
			return
		}
		if key != tcell.KeyEnter {
			return
		}
		jobID := strings.TrimSpace(input.GetText())
		if jobID == "" {
			return
		}

		logger.Info.Printf("Looking up job %s", jobID)
		job, err := session.Jobs.GetRow(context.Background(), jobID)
		switch {
		case pkg.IsNotFound(err):
			result.SetTextColor(tcell.ColorYellow).SetText(fmt.Sprintf("Job %s not found", jobID))
		case err != nil:
			logger.Error.Printf("Failed to look up job %s: %v", jobID, err)
			result.SetTextColor(tcell.ColorRed).SetText(err.Error())
		default:
			result.SetTextColor(tcell.ColorWhite).SetText(describeJob(job))
		}
	})

	instructions := tview.NewTextView().
		SetText("ENTER: Look up  |  Esc: Menu").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite)

	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(result, 0, 1, false).
		AddItem(instructions, 1, 0, false)

	container.SetBorder(true).
		SetTitle(" Job Lookup ").
		SetTitleAlign(tview.AlignCenter)
	container.SetBorderPadding(1, 0, 1, 1)

	return container, input
}
