package cmd

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"sky-scheduling/logger"
	"sky-scheduling/pkg"
	"sky-scheduling/ui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sky-scheduling",
	Short: "Production scheduling for print jobs",
	Long: `Sky Scheduling tracks print jobs by ship date and lets the press floor
mark jobs and their line items done.

Running it without a subcommand opens the terminal UI.
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to the JSON config file")

	rootCmd.AddCommand(UserCmd)
	rootCmd.AddCommand(ImportCmd)
	rootCmd.AddCommand(ExportCmd)
	rootCmd.AddCommand(VersionCmd)
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// bootstrap loads config, starts logging and opens the database
func bootstrap(ctx context.Context) (*pkg.Database, error) {
	if err := pkg.LoadConfig(configPath); err != nil {
		return nil, err
	}
	logger.InitLogger(pkg.Config.LogFile, pkg.Config.LogLevel)
	return pkg.OpenDatabase(ctx, pkg.Config.DatabasePath)
}

func runTUI(ctx context.Context) error {
	db, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info.Println("Application starting...")

	jobs := pkg.NewJobManager(db)
	scheduler := pkg.NewScheduler(jobs, pkg.NewOrderDetailManager(db))
	logins := pkg.NewLoginService(pkg.NewUserManager(db))

	app := tview.NewApplication()

	// Ctrl+J is what some keypads send for Enter
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlJ {
			return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
		}
		return event
	})

	var showLogin func()
	showLogin = func() {
		var loginPages *tview.Pages
		var form *tview.Form
		loginPages, form = ui.NewLoginScreen(app, func(userName, password string) {
			user, err := logins.Login(ctx, userName, password)
			if errors.Is(err, pkg.ErrLoginFailed) {
				ui.ShowErrorModal(app, loginPages, "Invalid username or password", form)
				return
			}
			if err != nil {
				logger.Error.Printf("Login failed: %v", err)
				ui.ShowErrorModal(app, loginPages, "Login failed:\n"+err.Error(), form)
				return
			}

			session := &ui.Session{
				User:      user,
				Jobs:      jobs,
				Scheduler: scheduler,
				Config:    pkg.Config,
			}
			mainView, focus := ui.NewMainView(app, session, showLogin)
			app.SetRoot(mainView, true)
			app.SetFocus(focus)
		})
		app.SetRoot(loginPages, true)
		app.SetFocus(form)
	}
	showLogin()

	if err := app.Run(); err != nil {
		logger.Error.Printf("Application error: %v", err)
		return err
	}
	logger.Info.Println("Application stopped")
	return nil
}
