package creditimport

import (
	"context"
	"time"

	"github.com/dalemusser/credithub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// draft is a credit waiting to be created, with the input line it came from.
type draft struct {
	LineNo int
	Line   string
	Credit models.Credit
}

// CreateOutcome is the settled result of one credit create.
type CreateOutcome struct {
	LineNo   int                `json:"line_no"`
	Line     string             `json:"line"`
	CreditID primitive.ObjectID `json:"credit_id"`
	Err      error              `json:"-"`
}

// OK reports whether the create succeeded.
func (o CreateOutcome) OK() bool { return o.Err == nil }

type createFunc func(ctx context.Context, c models.Credit) (models.Credit, error)

// settleAll runs create for every draft, at most limit at a time, and waits
// for all of them. A failure never stops or cancels the others. Each create
// gets its own context detached from parent's cancellation and bounded by
// timeout, so a client disconnect cannot abort a dispatched batch.
// Outcomes are returned in draft order.
func settleAll(parent context.Context, limit int, timeout time.Duration, drafts []draft, create createFunc) []CreateOutcome {
	out := make([]CreateOutcome, len(drafts))
	if len(drafts) == 0 {
		return out
	}

	base := context.WithoutCancel(parent)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, d := range drafts {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(base, timeout)
			defer cancel()

			created, err := create(ctx, d.Credit)
			out[i] = CreateOutcome{LineNo: d.LineNo, Line: d.Line, CreditID: created.ID, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
