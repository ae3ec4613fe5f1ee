package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sky-scheduling/logger"
	"sky-scheduling/models"
	"sky-scheduling/pkg"
)

// Session is what every screen needs once a user has signed in
type Session struct {
	User      *models.User
	Jobs      *pkg.JobManager
	Scheduler *pkg.Scheduler
	Config    pkg.AppConfig
	Now       func() time.Time

	// overlay pages used for modals
	pages *tview.Pages
	menu  func()
}

func (s *Session) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// backToMenu moves focus to the navigation bar
func (s *Session) backToMenu() {
	if s.menu != nil {
		s.menu()
	}
}

const modalPage = "modal"

// ShowErrorModal shows message over pages and gives focus back to returnTo
// when it is dismissed
func ShowErrorModal(app *tview.Application, pages *tview.Pages, message string, returnTo tview.Primitive) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			pages.RemovePage(modalPage)
			app.SetFocus(returnTo)
		})
	modal.SetBackgroundColor(tcell.ColorBlack)
	pages.AddPage(modalPage, modal, true, true)
	app.SetFocus(modal)
}

// showConfirmModal asks a yes/no question and runs onYes only on "Yes"
func showConfirmModal(app *tview.Application, pages *tview.Pages, message string, returnTo tview.Primitive, onYes func()) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			pages.RemovePage(modalPage)
			app.SetFocus(returnTo)
			if buttonLabel == "Yes" {
				onYes()
			}
		})
	modal.SetBackgroundColor(tcell.ColorBlack)
	pages.AddPage(modalPage, modal, true, true)
	app.SetFocus(modal)
}

type view struct {
	page     string
	title    string
	shortcut rune
	build    func(app *tview.Application, session *Session) (tview.Primitive, tview.Primitive)
}

var views = []view{
	{"home", "Home", '1', NewHomeScreen},
	{"production", "In Production", '2', NewProductionScreen},
	{"lookup", "Job Lookup", '3', NewJobLookupScreen},
	{"summary", "Weekly Summary", '4', NewWeekSummaryScreen},
}

// NewMainView builds the signed-in layout: a navigation bar on the left and
// the selected view on the right. onSignOut runs when "Sign Out" is chosen.
func NewMainView(app *tview.Application, session *Session, onSignOut func()) (tview.Primitive, tview.Primitive) {
	root := tview.NewPages()
	session.pages = root

	content := tview.NewPages()
	nav := tview.NewList().ShowSecondaryText(false)
	session.menu = func() { app.SetFocus(nav) }
	focusOf := map[string]tview.Primitive{}

	show := func(page string) {
		logger.Info.Printf("Navigating to %s view", page)
		content.SwitchToPage(page)
		app.SetFocus(focusOf[page])
	}

	for _, v := range views {
		screen, focus := v.build(app, session)
		content.AddPage(v.page, screen, true, false)
		focusOf[v.page] = focus

		page := v.page
		nav.AddItem(v.title, "", v.shortcut, func() { show(page) })
	}
	nav.AddItem("Sign Out", "", 'q', func() {
		logger.Info.Printf("User signed out: %s", session.User.UserName)
		onSignOut()
	})

	start := session.Config.DefaultView
	if _, ok := focusOf[start]; !ok {
		start = views[0].page
	}
	content.SwitchToPage(start)
	for i, v := range views {
		if v.page == start {
			nav.SetCurrentItem(i)
		}
	}

	user := tview.NewTextView().
		SetText(fmt.Sprintf("Signed in as\n%s", session.User.UserName)).
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite)

	navBar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nav, 0, 1, true).
		AddItem(user, 2, 0, false)
	navBar.SetBorder(true).
		SetTitle(" Sky Scheduling ").
		SetTitleAlign(tview.AlignCenter)

	layout := tview.NewFlex().
		AddItem(navBar, 22, 0, true).
		AddItem(content, 0, 1, false)

	// '+' or Escape goes back to the nav bar unless the user is typing
	content.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if _, typing := app.GetFocus().(*tview.InputField); typing {
			return event
		}
		if event.Rune() == '+' || event.Key() == tcell.KeyEscape {
			session.backToMenu()
			return nil
		}
		return event
	})

	root.AddPage("main", layout, true, true)
	return root, focusOf[start]
}
