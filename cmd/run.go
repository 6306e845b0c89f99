package cmd

import (
	"log/slog"

	"github.com/abhisek/stepcoach/internal/app"
	"github.com/abhisek/stepcoach/internal/guide"
	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/abhisek/stepcoach/internal/screen"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	manager := quota.NewManager(st.KVRepo())
	state, err := manager.Initialize(ctx)
	if err != nil {
		// The manager fails open; the app still runs on a fresh window.
		slog.Warn("initialize quota", "error", err)
	}
	slog.Info("stepcoach started", "db", cfg.DBPath, "quota", state.String())

	eventRepo := st.EventRepo()
	deps := screen.Deps{
		Quota:    manager,
		Session:  guide.NewSession(manager, guide.WithRecorder(eventRepo)),
		Events:   eventRepo,
		Problems: st.ProblemRepo(),
	}

	splash, _ := cmd.Flags().GetBool("splash")
	err = app.Run(app.Options{Deps: deps, Splash: splash})

	if err := manager.Save(ctx); err != nil {
		slog.Warn("save quota on exit", "error", err)
	}
	return err
}
