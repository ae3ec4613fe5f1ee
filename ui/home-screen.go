package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"sky-scheduling/logger"
	"sky-scheduling/models"
	"sky-scheduling/pkg"
)

var accessNames = []struct {
	flag models.AccessFlag
	name string
}{
	{models.MarkAsDone, "mark done"},
	{models.EditMaximums, "edit maximums"},
	{models.HoldOrders, "hold orders"},
	{models.CancelOrders, "cancel orders"},
	{models.ChangePassword, "change passwords"},
	{models.AddUser, "add users"},
	{models.DeleteUser, "delete users"},
	{models.UserPrivileges, "set privileges"},
}

func describeAccess(user *models.User) string {
	var granted []string
	for _, a := range accessNames {
		if user.Can(a.flag) {
			granted = append(granted, a.name)
		}
	}
	if len(granted) == 0 {
		return "read only"
	}
	return strings.Join(granted, ", ")
}

func NewHomeScreen(app *tview.Application, session *Session) (tview.Primitive, tview.Primitive) {
	today := pkg.Today(session.now())

	text := fmt.Sprintf("Welcome, %s\n\nToday is %s %s\nAccess: %s",
		session.User.UserName, today.Format("Monday"), pkg.FormatDate(today), describeAccess(session.User))

	if n, err := session.Jobs.GetNumJobs(context.Background(), today); err != nil {
		logger.Error.Printf("Failed to count today's jobs: %v", err)
	} else {
		done, _ := session.Jobs.GetCompletedJobs(context.Background(), today)
		text += fmt.Sprintf("\n\n%d jobs ship today, %d complete", n, done)
	}

	welcome := tview.NewTextView().
		SetText(text).
		SetTextAlign(tview.AlignCenter)

	welcome.SetBorder(true).
		SetTitle(" Home ").
		SetTitleAlign(tview.AlignCenter)
	welcome.SetBorderPadding(1, 1, 1, 1)

	return welcome, welcome
}
