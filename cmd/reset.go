package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the quota window and answer-check history",
	Long: "Reset deletes the stored quota window and all recorded answer-check requests. " +
		"The next run starts a fresh window with a full set of checks. Saved problems are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to reset without --yes")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if err := st.KVRepo().Delete(ctx, quota.KeyRemaining, quota.KeyWindowStart); err != nil {
			return fmt.Errorf("clear quota: %w", err)
		}
		if err := st.EventRepo().ClearHistory(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Quota window and history cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
