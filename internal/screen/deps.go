package screen

import (
	"context"
	"log/slog"

	"github.com/abhisek/stepcoach/internal/guide"
	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/abhisek/stepcoach/internal/store"
	"github.com/abhisek/stepcoach/internal/ui/layout"
)

// QuotaReader is the read side of the quota manager used for display.
type QuotaReader interface {
	Status(ctx context.Context) (quota.Status, error)
}

// Deps are the shared services handed to every screen. Nil repos disable
// the features that need them.
type Deps struct {
	Quota    QuotaReader
	Session  *guide.Session
	Events   store.EventRepo
	Problems store.ProblemRepo
}

// QuotaStatus reads the current quota for display. The manager always
// returns a usable status, so errors are only logged.
func (d Deps) QuotaStatus() quota.Status {
	if d.Quota == nil {
		return quota.Status{Remaining: quota.MaxChecks, Max: quota.MaxChecks, DaysUntilReset: 7}
	}
	st, err := d.Quota.Status(context.Background())
	if err != nil {
		slog.Debug("read quota status", "error", err)
	}
	return st
}

// QuotaBadge is QuotaStatus shaped for the header. A reader that returns no
// budget at all shows as unavailable.
func (d Deps) QuotaBadge() layout.QuotaBadge {
	st := d.QuotaStatus()
	return layout.QuotaBadge{
		Remaining:      st.Remaining,
		Max:            st.Max,
		DaysUntilReset: st.DaysUntilReset,
		Unavailable:    st.Max == 0,
	}
}
