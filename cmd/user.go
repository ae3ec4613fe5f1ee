package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"sky-scheduling/models"
	"sky-scheduling/pkg"
)

var accessLevel int

var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Add a login account",
	Long: `
Adds an account to the logins table. The password is prompted for and stored
as a bcrypt hash.

Usage:

	user add press1 --access 1

Access is a sum of: 1 mark done, 2 edit maximums, 4 hold, 8 cancel,
16 change password, 32 add user, 64 delete user, 128 privileges.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if accessLevel < 0 || models.AccessFlag(accessLevel) > models.AllAccess {
			return fmt.Errorf("access must be between 0 and %d", models.AllAccess)
		}

		db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		userName := ""
		if len(args) == 1 {
			userName = args[0]
		} else {
			userPrompt := promptui.Prompt{
				Label: "Username",
				Validate: func(s string) error {
					if s == "" {
						return errors.New("username is required")
					}
					return nil
				},
			}
			if userName, err = userPrompt.Run(); err != nil {
				return err
			}
		}

		passwordPrompt := promptui.Prompt{
			Label:       "Password",
			Mask:        '*',
			HideEntered: true,
		}
		password, err := passwordPrompt.Run()
		if err != nil {
			return err
		}
		confirmPrompt := promptui.Prompt{
			Label:       "Confirm Password",
			Mask:        '*',
			HideEntered: true,
			Validate: func(s string) error {
				if s != password {
					return errors.New("passwords do not match")
				}
				return nil
			},
		}
		if _, err := confirmPrompt.Run(); err != nil {
			return err
		}

		logins := pkg.NewLoginService(pkg.NewUserManager(db))
		if _, err := logins.AddUser(cmd.Context(), userName, password, models.AccessFlag(accessLevel)); err != nil {
			return err
		}
		fmt.Printf("Added user %s\n", userName)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List login accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		users, err := pkg.NewUserManager(db).List(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%-20s %d\n", u.UserName, u.AccessFlags)
		}
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a login account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		return pkg.NewUserManager(db).Delete(cmd.Context(), args[0])
	},
}

func init() {
	userAddCmd.Flags().IntVarP(&accessLevel, "access", "a", int(models.MarkAsDone), "access flags bitmask")

	UserCmd.AddCommand(userAddCmd)
	UserCmd.AddCommand(userListCmd)
	UserCmd.AddCommand(userDeleteCmd)
}
