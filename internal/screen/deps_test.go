package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/stepcoach/internal/quota"
	"github.com/abhisek/stepcoach/internal/ui/layout"
)

type stubReader struct {
	st  quota.Status
	err error
}

func (r stubReader) Status(context.Context) (quota.Status, error) { return r.st, r.err }

func TestQuotaBadge(t *testing.T) {
	cases := []struct {
		name   string
		reader QuotaReader
		want   layout.QuotaBadge
	}{
		{
			name: "no reader shows a full week",
			want: layout.QuotaBadge{Remaining: 4, Max: 4, DaysUntilReset: 7},
		},
		{
			name:   "status passes through",
			reader: stubReader{st: quota.Status{Remaining: 1, Max: 4, DaysUntilReset: 2}},
			want:   layout.QuotaBadge{Remaining: 1, Max: 4, DaysUntilReset: 2},
		},
		{
			name:   "fail-open status with error is still shown",
			reader: stubReader{st: quota.Status{Remaining: 4, Max: 4, DaysUntilReset: 7}, err: errors.New("disk")},
			want:   layout.QuotaBadge{Remaining: 4, Max: 4, DaysUntilReset: 7},
		},
		{
			name:   "empty status is unavailable",
			reader: stubReader{err: errors.New("disk")},
			want:   layout.QuotaBadge{Unavailable: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Deps{Quota: tc.reader}.QuotaBadge())
		})
	}
}
