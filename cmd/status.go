package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show remaining answer checks and the reset countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		status, err := quota.NewManager(st.KVRepo()).Status(cmd.Context())
		if err != nil {
			slog.Warn("read quota status", "error", err)
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: quota storage unavailable, showing a fresh window")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Answer checks: %d/%d remaining\n", status.Remaining, status.Max)
		fmt.Fprintf(out, "Window resets: in %d day%s (%s)\n",
			status.DaysUntilReset, plural(status.DaysUntilReset),
			status.ResetAt.Local().Format("2006-01-02 15:04"))
		switch quota.ToneFor(status.Remaining) {
		case quota.ToneEmpty:
			fmt.Fprintln(out, "No checks left. Work the steps; the answer will keep.")
		case quota.ToneLow:
			fmt.Fprintln(out, "Running low. Save checks for problems you have fully worked through.")
		}
		return nil
	},
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
