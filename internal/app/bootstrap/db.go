// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/credithub/internal/app/store/audit"
	"github.com/dalemusser/credithub/internal/app/system/indexes"
	"github.com/dalemusser/credithub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates collections with their JSON-Schema validators, then the
// indexes the import, session and audit lookups rely on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.CreditHubMongoDatabase

	if err := validators.EnsureAll(ctx, db, logger); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("ensure audit indexes failed", zap.Error(err))
		return err
	}
	return nil
}
