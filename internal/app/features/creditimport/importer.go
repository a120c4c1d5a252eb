package creditimport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	userstore "github.com/dalemusser/credithub/internal/app/store/users"
	"github.com/dalemusser/credithub/internal/app/system/auth"
	"github.com/dalemusser/credithub/internal/app/system/authz"
	"github.com/dalemusser/credithub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/credithub/internal/app/system/limits"
	"github.com/dalemusser/credithub/internal/app/system/timeouts"
	"github.com/dalemusser/credithub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Committees whose members may import credits.
var authorizingCommittees = []string{authz.CommitteeAdmin, authz.CommitteeOperations}

// Directory loads the current user directory (users merged with their emails).
type Directory interface {
	LoadDirectory(ctx context.Context) ([]userstore.DirectoryEntry, error)
}

// CreditCreator persists one credit.
type CreditCreator interface {
	Create(ctx context.Context, c models.Credit) (models.Credit, error)
}

// Importer validates a pasted credit blob, resolves each line to a user, and
// creates one credit per resolvable line.
type Importer struct {
	Dir     Directory
	Credits CreditCreator
	Log     *zap.Logger

	// MaxBytes caps the csv_string size (limits.MaxImportBytes when zero).
	MaxBytes int
	// MaxConcurrency caps concurrent creates (limits.MaxConcurrentCreates when zero).
	MaxConcurrency int
	// CreateTimeout bounds each create (timeouts.Batch() when zero).
	CreateTimeout time.Duration
	// NewBatchID stamps each import; uuid.NewString when nil.
	NewBatchID func() string
}

// Result is the outcome of a successful import call. A successful call may
// still have failed lines and failed creates.
type Result struct {
	BatchID  string          `json:"batch_id"`
	Form     Form            `json:"form"`
	Lines    int             `json:"lines"`
	Failed   []string        `json:"failed"`
	Outcomes []CreateOutcome `json:"outcomes"`
}

// Created counts the creates that succeeded.
func (r *Result) Created() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// CreateFailed counts the creates that failed.
func (r *Result) CreateFailed() int {
	return len(r.Outcomes) - r.Created()
}

// Authorize returns an *UnauthorizedError unless caller is signed in and on
// the admin or operations committee.
func Authorize(caller *auth.SessionUser) error {
	if caller == nil {
		return &UnauthorizedError{Reason: "User not logged in."}
	}
	if !authz.IsOnAnyCommittee(caller, authorizingCommittees...) {
		return &UnauthorizedError{Reason: "User is not a member of the admin or operations committee."}
	}
	return nil
}

// Import runs one bulk credit import for caller.
//
// It fails with *UnauthorizedError or *MalformedSubmissionError before touching
// the store, and with a wrapped error if the user directory cannot be loaded
// (no credits are created in that case). Otherwise it returns a Result whose
// Form.CSVString holds the lines that failed validation or user resolution,
// newline-joined in input order.
func (im *Importer) Import(ctx context.Context, caller *auth.SessionUser, values url.Values) (*Result, error) {
	if err := Authorize(caller); err != nil {
		return nil, err
	}

	form, err := DecodeForm(values, im.MaxBytes)
	if err != nil {
		return nil, err
	}

	batchID := im.newBatchID()
	log := im.logger().With(zap.String("batch_id", batchID), zap.String("actor_id", caller.ID))

	lines := splitLines(form.CSVString)

	dir, err := im.Dir.LoadDirectory(ctx)
	if err != nil {
		log.Error("load user directory failed", zap.Error(err))
		return nil, fmt.Errorf("load user directory: %w", err)
	}
	byEmail := indexByEmail(dir)

	var failed []string
	var drafts []draft
	for i, line := range lines {
		if !IsLineValid(line) {
			failed = append(failed, line)
			continue
		}

		l, _ := parseLine(line)
		user, ok := byEmail[l.Email]
		if !ok {
			failed = append(failed, line)
			continue
		}
		if user.IsTutee {
			failed = append(failed, line)
			continue
		}

		// Markup is stripped before storing, so the length rule applies to what is stored too.
		explanation := htmlsanitize.PlainText(l.Explanation)
		if !validExplanation(explanation) {
			failed = append(failed, line)
			continue
		}

		credits, _ := parseCredits(l.CreditNum)
		drafts = append(drafts, draft{
			LineNo: i + 1,
			Line:   line,
			Credit: models.Credit{
				Credits:           credits,
				ManualExplanation: explanation,
				Type:              l.CreditType,
				UserID:            user.ID,
				ImportBatch:       batchID,
			},
		})
	}

	outcomes := settleAll(ctx, im.maxConcurrency(), im.createTimeout(), drafts, im.Credits.Create)
	for _, o := range outcomes {
		if !o.OK() {
			// Creation failures are logged only; the line is not echoed back.
			log.Warn("credit create failed",
				zap.Int("line_no", o.LineNo),
				zap.String("line", o.Line),
				zap.Error(o.Err))
		}
	}

	res := &Result{
		BatchID:  batchID,
		Form:     Form{CSVString: strings.Join(failed, "\n")},
		Lines:    len(lines),
		Failed:   failed,
		Outcomes: outcomes,
	}

	log.Info("credit import finished",
		zap.Int("lines", res.Lines),
		zap.Int("failed", len(failed)),
		zap.Int("enqueued", len(drafts)),
		zap.Int("created", res.Created()),
		zap.Int("create_failed", res.CreateFailed()))

	return res, nil
}

// indexByEmail keys the directory by exact email. Entries without an email
// are skipped. When two users share an email the first (newest) one wins.
func indexByEmail(dir []userstore.DirectoryEntry) map[string]userstore.DirectoryEntry {
	m := make(map[string]userstore.DirectoryEntry, len(dir))
	for _, e := range dir {
		if e.Email == "" {
			continue
		}
		if _, seen := m[e.Email]; !seen {
			m[e.Email] = e
		}
	}
	return m
}

func (im *Importer) newBatchID() string {
	if im.NewBatchID != nil {
		return im.NewBatchID()
	}
	return uuid.NewString()
}

func (im *Importer) logger() *zap.Logger {
	if im.Log != nil {
		return im.Log
	}
	return zap.NewNop()
}

func (im *Importer) maxConcurrency() int {
	if im.MaxConcurrency > 0 {
		return im.MaxConcurrency
	}
	return limits.MaxConcurrentCreates
}

func (im *Importer) createTimeout() time.Duration {
	if im.CreateTimeout > 0 {
		return im.CreateTimeout
	}
	return timeouts.Batch()
}
