// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/credithub/internal/app/system/authz"
	"github.com/dalemusser/credithub/internal/app/system/timeouts"
	"github.com/dalemusser/credithub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Batch: appCfg.TimeoutBatch})

	if appCfg.BootstrapAdminEmail != "" {
		if err := ensureBootstrapAdmin(ctx, deps, appCfg.BootstrapAdminEmail, logger); err != nil {
			logger.Error("bootstrap admin failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin makes sure the user whose auth identity carries email
// is on the admin committee, creating the user and identity when missing.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = strings.TrimSpace(email)
	db := deps.CreditHubMongoDatabase
	users := db.Collection("users")
	idents := db.Collection("auth_identities")
	now := time.Now().UTC()

	var ident models.AuthIdentity
	err := idents.FindOne(ctx, bson.M{"email": email}).Decode(&ident)
	switch {
	case err == nil:
		res, err := users.UpdateOne(ctx,
			bson.M{"_id": ident.UserID},
			bson.M{
				"$addToSet": bson.M{"committees": authz.CommitteeAdmin},
				"$set":      bson.M{"updated_at": now},
			})
		if err != nil {
			return fmt.Errorf("promote bootstrap admin: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("auth identity %s points at missing user %s", email, ident.UserID.Hex())
		}
		if res.ModifiedCount > 0 {
			logger.Info("bootstrap admin ensured", zap.String("email", email), zap.String("user_id", ident.UserID.Hex()))
		}
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		// create below

	default:
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   email,
		FullNameCI: text.Fold(email),
		Committees: []string{authz.CommitteeAdmin},
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	_, err = idents.InsertOne(ctx, models.AuthIdentity{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Email:     email,
		Provider:  "bootstrap",
		CreatedAt: now,
	})
	if err != nil {
		// Another instance won the race; drop our orphan and keep theirs.
		if wafflemongo.IsDup(err) {
			_, _ = users.DeleteOne(ctx, bson.M{"_id": user.ID})
			return nil
		}
		return fmt.Errorf("create bootstrap admin identity: %w", err)
	}

	logger.Info("bootstrap admin created", zap.String("email", email), zap.String("user_id", user.ID.Hex()))
	return nil
}
