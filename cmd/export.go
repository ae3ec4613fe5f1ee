package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sky-scheduling/pkg"
)

var (
	exportWeek string
	exportOut  string
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a week of jobs to an Excel sheet",
	Long: `
Writes every job shipping in the Sunday to Saturday week that contains --week.

Usage:

	export --week 03/01/16 --out production.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := pkg.Today(time.Now())
		if exportWeek != "" {
			parsed, err := pkg.ParseDate(exportWeek)
			if err != nil {
				return err
			}
			day = parsed
		}

		db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		scheduler := pkg.NewScheduler(pkg.NewJobManager(db), pkg.NewOrderDetailManager(db))
		days, err := scheduler.LoadWeek(cmd.Context(), day)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			start, _ := pkg.WeekBounds(day)
			out = fmt.Sprintf("production-%s.xlsx", pkg.SQLDate(start))
		}
		if err := pkg.ExportWeek(out, days); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportWeek, "week", "w", "", "any date in the week to export (MM/DD/YY), defaults to today")
	ExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
}
