package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sky-scheduling/logger"
	"sky-scheduling/pkg"
)

// exportPath is where the weekly sheet starting on start is written
func exportPath(start time.Time) string {
	return filepath.Join("exports", fmt.Sprintf("production-%s.xlsx", pkg.SQLDate(start)))
}

// NewWeekSummaryScreen shows job counts for each day of a week
func NewWeekSummaryScreen(app *tview.Application, session *Session) (tview.Primitive, tview.Primitive) {
	day := pkg.Today(session.now())

	table := tview.NewTable().
		SetBorders(true).
		SetSelectable(true, false).
		SetFixed(1, 0)

	title := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite)

	headers := []string{"Day", "Ship Date", "Jobs", "Complete", "Remaining"}

	refresh := func() {
		table.Clear()
		for col, header := range headers {
			table.SetCell(0, col, tview.NewTableCell(header).
				SetTextColor(tcell.ColorWhite).
				SetAlign(tview.AlignCenter).
				SetSelectable(false).
				SetAttributes(tcell.AttrBold).
				SetExpansion(1))
		}

		summary, err := session.Scheduler.WeekSummary(context.Background(), day)
		if err != nil {
			logger.Error.Printf("Failed to load week summary: %v", err)
			title.SetText("Error loading week")
			table.SetCell(1, 0, tview.NewTableCell(err.Error()).SetTextColor(tcell.ColorRed))
			return
		}

		title.SetText(fmt.Sprintf("Week of %s - %s", pkg.FormatDate(summary.Start), pkg.FormatDate(summary.End)))
		for i, d := range summary.Days {
			values := []string{
				d.Date.Format("Monday"),
				pkg.FormatDate(d.Date),
				fmt.Sprint(d.Jobs),
				fmt.Sprint(d.Completed),
				fmt.Sprint(d.Jobs - d.Completed),
			}
			color := tcell.ColorWhite
			if d.Jobs > 0 && d.Jobs == d.Completed {
				color = tcell.ColorGreen
			}
			for col, v := range values {
				table.SetCell(i+1, col, tview.NewTableCell(v).
					SetAlign(tview.AlignCenter).
					SetTextColor(color))
			}
		}

		totals := []string{"Total", "", fmt.Sprint(summary.TotalJobs), fmt.Sprint(summary.TotalCompleted), fmt.Sprint(summary.TotalJobs - summary.TotalCompleted)}
		for col, v := range totals {
			table.SetCell(len(summary.Days)+1, col, tview.NewTableCell(v).
				SetAlign(tview.AlignCenter).
				SetAttributes(tcell.AttrBold).
				SetSelectable(false))
		}
	}

	export := func() {
		ctx := context.Background()
		days, err := session.Scheduler.LoadWeek(ctx, day)
		if err != nil {
			ShowErrorModal(app, session.pages, fmt.Sprintf("Failed to load week:\n%v", err), table)
			return
		}
		start, _ := pkg.WeekBounds(day)
		path := exportPath(start)
		if err := pkg.ExportWeek(path, days); err != nil {
			ShowErrorModal(app, session.pages, fmt.Sprintf("Failed to export:\n%v", err), table)
			return
		}
		ShowErrorModal(app, session.pages, fmt.Sprintf("Week exported to\n%s", path), table)
	}

	table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case '[':
			day = pkg.SubtractDays(day, 7)
		case ']':
			day = pkg.AddDays(day, 7)
		case 't':
			day = pkg.Today(session.now())
		case 'r':
		case 'e':
			export()
			return nil
		default:
			return event
		}
		refresh()
		return nil
	})

	instructions := tview.NewTextView().
		SetText("[ ]: Week  |  t: This week  |  r: Refresh  |  e: Export to Excel  |  +: Menu").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite)

	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(table, 0, 1, true).
		AddItem(instructions, 1, 0, false)

	container.SetBorder(true).
		SetTitle(" Weekly Summary ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorWhite)

	refresh()
	return container, table
}
