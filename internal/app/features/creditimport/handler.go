// internal/app/features/creditimport/handler.go
package creditimport

import (
	uierrors "github.com/dalemusser/credithub/internal/app/features/errors"
	"github.com/dalemusser/credithub/internal/app/store/audit"
	creditstore "github.com/dalemusser/credithub/internal/app/store/credits"
	userstore "github.com/dalemusser/credithub/internal/app/store/users"
	"github.com/dalemusser/credithub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the bulk credit import.
type Handler struct {
	Importer *Importer
	History  ImportHistory
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Audit    *auditlog.Logger
}

// Options tunes the importer; zero values use package defaults.
type Options struct {
	MaxBytes       int
	MaxConcurrency int
}

// NewHandler wires the importer to the Mongo-backed user and credit stores and
// the history page to the audit store.
func NewHandler(db *mongo.Database, opts Options, errLog *uierrors.ErrorLogger, auditLog *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Importer: &Importer{
			Dir:            userstore.New(db),
			Credits:        creditstore.New(db),
			Log:            logger,
			MaxBytes:       opts.MaxBytes,
			MaxConcurrency: opts.MaxConcurrency,
		},
		History: audit.New(db),
		Log:     logger,
		ErrLog:  errLog,
		Audit:   auditLog,
	}
}
