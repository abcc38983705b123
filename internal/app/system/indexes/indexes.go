// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureCredentials(ctx, db); err != nil {
		problems = append(problems, "credenciales: "+err.Error())
	}
	if err := ensureSessions(ctx, db); err != nil {
		problems = append(problems, "sesiones: "+err.Error())
	}
	if err := ensureProjects(ctx, db); err != nil {
		problems = append(problems, "proyectos: "+err.Error())
	}
	if err := ensureRequests(ctx, db); err != nil {
		problems = append(problems, "solicitudes: "+err.Error())
	}
	if err := ensureParticipants(ctx, db); err != nil {
		problems = append(problems, "participantes: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		unique := false
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}

		start := time.Now()
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.Bool("unique", unique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureCredentials(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("credenciales")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all accounts
		{
			Keys:    bson.D{{Key: "correo", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cred_correo"),
		},
		// Reset-token and verify-token lookups
		{
			Keys:    bson.D{{Key: "tokenReset", Value: 1}},
			Options: options.Index().SetName("idx_cred_token_reset"),
		},
		{
			Keys:    bson.D{{Key: "tokenVerificacion", Value: 1}},
			Options: options.Index().SetName("idx_cred_token_verify"),
		},
	})
}

func ensureSessions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("sesiones")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-user revocation (logout-everywhere, account deletion)
		{
			Keys:    bson.D{{Key: "usuarioID", Value: 1}},
			Options: options.Index().SetName("idx_ses_usuario"),
		},
		// TTL backup: Mongo purges expired sessions on its own schedule;
		// the cleanup job covers the gap.
		{
			Keys:    bson.D{{Key: "expira", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_ses_expira"),
		},
	})
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("proyectos")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-creator counts enforce the project cap on the create path
		{
			Keys:    bson.D{{Key: "creadorID", Value: 1}},
			Options: options.Index().SetName("idx_proj_creador"),
		},
		// List screens filter on status
		{
			Keys:    bson.D{{Key: "estado", Value: 1}},
			Options: options.Index().SetName("idx_proj_estado"),
		},
	})
}

func ensureRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("solicitudes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One request per (user, project)
		{
			Keys:    bson.D{{Key: "usuarioID", Value: 1}, {Key: "proyectoID", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_sol_usuario_proyecto"),
		},
		// Creator review screen lists by project
		{
			Keys:    bson.D{{Key: "proyectoID", Value: 1}},
			Options: options.Index().SetName("idx_sol_proyecto"),
		},
	})
}

func ensureParticipants(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("participantes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One link per (user, project); repeated accepts are idempotent
		{
			Keys:    bson.D{{Key: "usuarioID", Value: 1}, {Key: "proyectoID", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_part_usuario_proyecto"),
		},
		// Project member lists and cascade deletes
		{
			Keys:    bson.D{{Key: "proyectoID", Value: 1}},
			Options: options.Index().SetName("idx_part_proyecto"),
		},
	})
}
