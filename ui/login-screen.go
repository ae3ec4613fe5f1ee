package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sky-scheduling/logger"
)

// NewLoginScreen builds the sign-in box. onLogin gets the trimmed user name
// and the password as typed. The returned pages can host an error modal.
func NewLoginScreen(app *tview.Application, onLogin func(userName, password string)) (*tview.Pages, *tview.Form) {
	var userName, password string

	form := tview.NewForm().
		AddInputField("Username", "", 30, nil, func(text string) {
			userName = strings.TrimSpace(text)
		}).
		AddPasswordField("Password", "", 30, '*', func(text string) {
			password = text
		}).
		SetFieldBackgroundColor(tcell.ColorBlack).
		SetFieldTextColor(tcell.ColorWhite).
		SetButtonTextColor(tcell.ColorWhite).
		SetLabelColor(tcell.ColorWhite)

	form.SetBorder(true).
		SetTitle(" Sky Scheduling Login ").
		SetTitleAlign(tview.AlignCenter)

	form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyEnter {
			return event
		}

		focusIndex := -1
		for i := 0; i < form.GetFormItemCount(); i++ {
			if app.GetFocus() == form.GetFormItem(i) {
				focusIndex = i
				break
			}
		}

		switch focusIndex {
		case 0:
			if userName == "" {
				return nil
			}
			app.SetFocus(form.GetFormItem(1))
			return nil
		case 1:
			logger.Info.Printf("Attempting login for %s", userName)
			onLogin(userName, password)
			return nil
		}
		return event
	})

	instructions := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("Press ENTER to continue  |  Ctrl+C to quit").
		SetTextColor(tcell.ColorWhite)

	container := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(instructions, 1, 0, false)

	// Center vertically
	vertical := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(container, 9, 1, true).
		AddItem(nil, 0, 1, false)

	// Center horizontally
	horizontal := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(vertical, 50, 1, true).
		AddItem(nil, 0, 1, false)

	pages := tview.NewPages().AddPage("login", horizontal, true, true)
	return pages, form
}
