package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sky-scheduling/logger"
	"sky-scheduling/pkg"
)

var skipExisting bool

var ImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import jobs and their line items from an order sheet",
	Long: `
Reads the first sheet of an Excel workbook. The header row needs at least
"Ship Date" and "Job #" columns; rows sharing a Job # become one job with
one line item per row.

Usage:

	import orders.xlsx --skip-existing
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		jobs, err := pkg.ImportJobs(args[0])
		if err != nil {
			return err
		}

		manager := pkg.NewJobManager(db)
		imported, skipped := 0, 0
		for i := range jobs {
			job := &jobs[i]
			if skipExisting {
				if _, err := manager.GetRow(cmd.Context(), job.JobID); err == nil {
					skipped++
					continue
				} else if !pkg.IsNotFound(err) {
					return err
				}
			}
			if err := manager.Insert(cmd.Context(), job); err != nil {
				return fmt.Errorf("job %s: %w", job.JobID, err)
			}
			imported++
		}

		logger.Info.Printf("Imported %d jobs from %s (%d skipped)", imported, args[0], skipped)
		fmt.Printf("Imported %d jobs, skipped %d\n", imported, skipped)
		return nil
	},
}

func init() {
	ImportCmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "skip jobs whose Job # is already in the database")
}
