package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all accounts, lessons, scores and logged requests",
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this deletes everything in " + a.cfg.DBPath + "; rerun with --yes to confirm")
		}
		if err := a.store.Reset(cmd.Context()); err != nil {
			return err
		}
		if err := a.auth.Logout(); err != nil {
			a.log.Warn("clear session", "error", err)
		}
		fmt.Println("All data deleted.")
		return nil
	}),
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
