package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"sky-scheduling/logger"
	"sky-scheduling/models"
	"sky-scheduling/pkg"
)

const (
	markChecked = "[x]"
	markEmpty   = "[ ]"
	markMixed   = "[-]"
)

// nodeRef identifies a tree row: a job, or one of its line items
type nodeRef struct {
	job    int
	detail int // -1 for the job row itself
}

// checkMark picks the checkbox drawn for an aggregate state
func checkMark(state pkg.ParentState) string {
	switch {
	case state.Checked:
		return markChecked
	case state.Mixed:
		return markMixed
	}
	return markEmpty
}

func itemMark(detail *models.OrderDetail) string {
	if detail.IsCompleted() {
		return markChecked
	}
	return markEmpty
}

// cell pads or truncates s to exactly width terminal columns
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func jobLine(job *models.Job) string {
	line := fmt.Sprintf("%s %s %s %s",
		checkMark(pkg.JobState(job)),
		cell(job.CustomerName, 28),
		cell(job.JobID, 8),
		job.PrintingCompany)
	if job.Overruns {
		line += " (overruns)"
	}
	return line
}

func detailLine(detail *models.OrderDetail) string {
	return fmt.Sprintf("%s %s %s %s %6d %9d %10d",
		itemMark(detail),
		cell(detail.ProductID, 12),
		cell(detail.ProductDetail, 24),
		cell(detail.PrintType.String(), 15),
		detail.NumColors,
		detail.Quantity,
		detail.Total())
}

// jobMatch is one job that passed the search filter, with the indexes of its
// visible line items
type jobMatch struct {
	job     int
	details []int
}

// filterJobs applies the search text to customer names and products. A job
// whose name matches shows all of its items; otherwise it is kept only if
// some item matches, and only those items are shown.
func filterJobs(jobs []models.Job, filter string) []jobMatch {
	needle := strings.ToLower(strings.TrimSpace(filter))
	var matches []jobMatch
	for i := range jobs {
		job := &jobs[i]
		nameMatch := needle == "" || strings.Contains(strings.ToLower(job.CustomerName), needle)

		m := jobMatch{job: i}
		for j := range job.OrderDetailList {
			if nameMatch || strings.Contains(strings.ToLower(job.OrderDetailList[j].ProductID), needle) {
				m.details = append(m.details, j)
			}
		}
		if nameMatch || len(m.details) > 0 {
			matches = append(matches, m)
		}
	}
	return matches
}

// navigate returns the day a navigation key moves to from day. ok is false
// for keys that are not date navigation. Moving off a sentinel date starts
// from today.
func navigate(event *tcell.EventKey, day, today time.Time) (time.Time, bool) {
	base := day
	if pkg.IsSentinelDate(day) {
		base = today
	}

	switch event.Key() {
	case tcell.KeyLeft:
		return pkg.SubtractDays(base, 1), true
	case tcell.KeyRight:
		return pkg.AddDays(base, 1), true
	case tcell.KeyRune:
	default:
		return day, false
	}

	switch event.Rune() {
	case '[':
		return pkg.SubtractDays(base, 7), true
	case ']':
		return pkg.AddDays(base, 7), true
	case ',':
		return pkg.SubtractMonths(base, 1), true
	case '.':
		return pkg.AddMonths(base, 1), true
	case '<':
		return pkg.SubtractYears(base, 1), true
	case '>':
		return pkg.AddYears(base, 1), true
	case 'h':
		return pkg.HoldDate, true
	case 'p':
		return pkg.ProofDate, true
	case 't':
		return today, true
	}
	return day, false
}

// NewProductionScreen shows the jobs shipping on one day as a tree of jobs
// and line items with completion checkboxes
func NewProductionScreen(app *tview.Application, session *Session) (tview.Primitive, tview.Primitive) {
	var (
		day        = pkg.Today(session.now())
		jobs       []models.Job
		filter     string
		generation int
		loading    bool
		collapsed  = map[string]bool{}
	)

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	columns := tview.NewTextView().
		SetText(fmt.Sprintf("    %s %s %s %6s %9s %10s",
			cell("Name/Product", 12), cell("Job #/Detail", 24), cell("Print Type", 15), "Colors", "Quantity", "Total")).
		SetTextColor(tcell.ColorYellow)

	root := tview.NewTreeNode("In Production")
	tree := tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root).
		SetTopLevel(1)

	search := tview.NewInputField().
		SetLabel("Search: ").
		SetFieldBackgroundColor(tcell.ColorBlack)

	instructions := tview.NewTextView().
		SetText("Space: Done  |  ←/→: Day  [ ]: Week  , .: Month  < >: Year  |  h: On Hold  p: Proofs  t: Today  |  /: Search  |  +: Menu").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite)

	updateHeader := func() {
		label := pkg.DateLabel(day)
		if !pkg.IsSentinelDate(day) {
			label = day.Format("Monday") + " " + label
		}
		done := 0
		for i := range jobs {
			if pkg.JobState(&jobs[i]).Checked {
				done++
			}
		}
		status := fmt.Sprintf("%d jobs, %d complete", len(jobs), done)
		if loading {
			status = "loading..."
		}
		header.SetText(fmt.Sprintf("[::b]%s[::-]  %s", tview.Escape(label), status))
	}

	rebuild := func(selected *nodeRef) {
		root.ClearChildren()
		var current *tview.TreeNode

		for _, m := range filterJobs(jobs, filter) {
			job := &jobs[m.job]
			ref := nodeRef{job: m.job, detail: -1}
			node := tview.NewTreeNode(tview.Escape(jobLine(job))).
				SetReference(ref).
				SetExpanded(!collapsed[job.JobID])
			if pkg.JobState(job).Checked {
				node.SetColor(tcell.ColorGreen)
			}
			if selected != nil && *selected == ref {
				current = node
			}

			for _, j := range m.details {
				detail := &job.OrderDetailList[j]
				childRef := nodeRef{job: m.job, detail: j}
				child := tview.NewTreeNode(tview.Escape(detailLine(detail))).
					SetReference(childRef)
				if detail.IsCompleted() {
					child.SetColor(tcell.ColorGreen)
				}
				node.AddChild(child)
				if selected != nil && *selected == childRef {
					current = child
				}
			}
			root.AddChild(node)
		}

		if current == nil {
			if children := root.GetChildren(); len(children) > 0 {
				current = children[0]
			} else {
				current = root
			}
		}
		tree.SetCurrentNode(current)
		updateHeader()
	}

	// load fetches d in the background. Only the newest load is applied.
	load := func(d time.Time) {
		day = d
		generation++
		current := generation
		loading = true
		jobs = nil
		rebuild(nil)

		go func() {
			loaded, err := session.Scheduler.LoadJobsForDate(context.Background(), d)
			app.QueueUpdateDraw(func() {
				if current != generation {
					logger.Debug.Printf("Discarding stale load for %s", pkg.DateLabel(d))
					return
				}
				loading = false
				if err != nil {
					logger.Error.Printf("Failed to load jobs: %v", err)
					rebuild(nil)
					ShowErrorModal(app, session.pages, fmt.Sprintf("Failed to load jobs for %s:\n%v", pkg.DateLabel(d), err), tree)
					return
				}
				jobs = loaded
				rebuild(nil)
			})
		}()
	}

	showError := func(message string) {
		ShowErrorModal(app, session.pages, message, tree)
	}

	toggle := func() {
		ref, ok := tree.GetCurrentNode().GetReference().(nodeRef)
		if !ok || loading {
			return
		}
		if !session.User.Can(models.MarkAsDone) {
			logger.Info.Printf("User %s tried to mark work done without permission", session.User.UserName)
			showError("You do not have permission to mark work done.")
			return
		}

		job := &jobs[ref.job]
		ctx := context.Background()

		if ref.detail >= 0 {
			item := &job.OrderDetailList[ref.detail]
			if _, err := session.Scheduler.ToggleItem(ctx, job, item, !item.IsCompleted(), session.now()); err != nil {
				showError(fmt.Sprintf("Failed to save %s:\n%v", item.ProductID, err))
			}
			rebuild(&ref)
			return
		}

		checked := !pkg.JobState(job).Checked
		apply := func() {
			if err := session.Scheduler.ToggleJob(ctx, job, checked, session.now()); err != nil {
				showError(fmt.Sprintf("Failed to save job %s:\n%v", job.JobID, err))
			}
			rebuild(&ref)
		}

		if session.Config.ConfirmCascade && len(job.OrderDetailList) > 1 {
			state := "done"
			if !checked {
				state = "not done"
			}
			showConfirmModal(app, session.pages,
				fmt.Sprintf("Mark job %s and all %d of its items %s?", job.JobID, len(job.OrderDetailList), state),
				tree, apply)
			return
		}
		apply()
	}

	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		ref, ok := node.GetReference().(nodeRef)
		if !ok || ref.detail >= 0 {
			return
		}
		node.SetExpanded(!node.IsExpanded())
		collapsed[jobs[ref.job].JobID] = !node.IsExpanded()
	})

	tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case ' ':
				toggle()
				return nil
			case '/':
				app.SetFocus(search)
				return nil
			}
		}
		if next, ok := navigate(event, day, pkg.Today(session.now())); ok {
			logger.Info.Printf("Showing jobs for %s", pkg.DateLabel(next))
			load(next)
			return nil
		}
		return event
	})

	search.SetChangedFunc(func(text string) {
		filter = text
		rebuild(nil)
	})
	search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			search.SetText("")
		}
		app.SetFocus(tree)
	})

	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(columns, 1, 0, false).
		AddItem(tree, 0, 1, true).
		AddItem(search, 1, 0, false).
		AddItem(instructions, 1, 0, false)

	container.SetBorder(true).
		SetTitle(" In Production ").
		SetTitleAlign(tview.AlignCenter).
		SetBorderColor(tcell.ColorWhite)

	load(day)
	return container, tree
}
