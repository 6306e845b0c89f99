package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/stepcoach/internal/screens/history"
	"github.com/abhisek/stepcoach/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answer-check requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryRevealEvents(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			SessionID: session,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No answer checks recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-30s  %-6s  %4s  %-22s  %s\n",
			"Seq", "Time", "Problem", "Level", "Step", "Outcome", "Left")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			title := e.ProblemTitle
			if len(title) > 30 {
				title = title[:27] + "..."
			}
			left := "-"
			if e.Remaining >= 0 {
				left = fmt.Sprintf("%d", e.Remaining)
			}
			fmt.Fprintf(out, "%-5d  %-16s  %-30s  %-6s  %4d  %-22s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				title,
				e.Difficulty,
				e.StepIndex+1,
				history.OutcomeLabel(e.Outcome),
				left,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of events to show")
	historyCmd.Flags().String("session", "", "Only show events from this session ID")
}
