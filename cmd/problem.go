package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/abhisek/stepcoach/internal/problem"
	"github.com/spf13/cobra"
)

var problemCmd = &cobra.Command{
	Use:   "problem",
	Short: "Manage the local problem catalog",
}

var problemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a problem from flags or a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		var (
			p   problem.Problem
			err error
		)
		switch {
		case file != "" && title != "":
			return fmt.Errorf("use --file or --title, not both")
		case file != "":
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read problem file: %w", err)
			}
			if p, err = problem.Decode(raw); err != nil {
				return fmt.Errorf("decode %s: %w", file, err)
			}
		default:
			d, err := problem.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			if p, err = problem.New(title, description, d); err != nil {
				return err
			}
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProblemRepo().SaveProblem(cmd.Context(), p); err != nil {
			return fmt.Errorf("save problem: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s)\n", p.Title, p.Difficulty)
		return nil
	},
}

var problemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, _ := cmd.Flags().GetBool("samples")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.ProblemRepo().ListProblems(cmd.Context())
		if err != nil {
			return fmt.Errorf("list problems: %w", err)
		}
		if samples {
			list = append(list, problem.Samples()...)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No saved problems. Add one with: stepcoach problem add --title ... --description ...")
			return nil
		}

		fmt.Fprintf(out, "%-40s  %-6s  %s\n", "Title", "Level", "Expected complexity")
		fmt.Fprintln(out, strings.Repeat("─", 75))
		for _, p := range list {
			title := p.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			fmt.Fprintf(out, "%-40s  %-6s  %s\n", title, p.Difficulty, p.Difficulty.ComplexityHint())
		}
		fmt.Fprintf(out, "\n%d problems\n", len(list))
		return nil
	},
}

var problemImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import problems from a spreadsheet (title, description, difficulty columns)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")
		noHeader, _ := cmd.Flags().GetBool("no-header")

		icfg := problem.DefaultImportConfig(args[0])
		icfg.SheetName = sheet
		icfg.SkipHeader = !noHeader

		res, err := problem.Import(icfg)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.ProblemRepo()
		saved := 0
		for _, p := range res.Problems {
			if err := repo.SaveProblem(cmd.Context(), p); err != nil {
				slog.Warn("save imported problem", "title", p.Title, "error", err)
				res.Errors = append(res.Errors, fmt.Sprintf("%q: %v", p.Title, err))
				continue
			}
			saved++
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d problems, skipped %d rows\n", saved, res.Skipped)
		for _, e := range res.Errors {
			fmt.Fprintln(out, "  "+e)
		}
		return nil
	},
}

var problemRemoveCmd = &cobra.Command{
	Use:   "remove <title>",
	Short: "Delete a saved problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		removed, err := st.ProblemRepo().DeleteProblem(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete problem: %w", err)
		}
		if !removed {
			return fmt.Errorf("no saved problem titled %q", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", args[0])
		return nil
	},
}

func init() {
	problemAddCmd.Flags().String("title", "", "Problem title")
	problemAddCmd.Flags().String("description", "", "Problem statement")
	problemAddCmd.Flags().String("difficulty", "Easy", "Easy, Medium or Hard")
	problemAddCmd.Flags().String("file", "", "JSON file with title, description and difficulty")

	problemListCmd.Flags().Bool("samples", false, "Include built-in sample problems")

	problemImportCmd.Flags().String("sheet", "", "Worksheet name (xlsx only; defaults to the first sheet)")
	problemImportCmd.Flags().Bool("no-header", false, "First row is data, not a header")

	problemCmd.AddCommand(problemAddCmd)
	problemCmd.AddCommand(problemListCmd)
	problemCmd.AddCommand(problemImportCmd)
	problemCmd.AddCommand(problemRemoveCmd)
}
