package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hiresynapse/internal/config"
	"hiresynapse/internal/middleware"

	"gorm.io/gorm"
)

// DB_SCHEMA_MODE values.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// deployedEnvs hold real user data; AutoMigrate never runs against them.
var deployedEnvs = map[string]bool{"production": true, "prod": true, "staging": true, "stage": true}

// SchemaPlan is the set of schema steps chosen for one database.
type SchemaPlan struct {
	Mode   string
	Driver string
	Env    string
	// SQL applies the embedded migrations; Auto runs AutoMigrate over the models.
	SQL  bool
	Auto bool
}

// SchemaStatus reports the plan together with migration bookkeeping.
type SchemaStatus struct {
	Plan    SchemaPlan
	Applied []int
	Pending []Migration
}

// PlanSchema picks the schema steps for cfg. The embedded migrations use Postgres syntax, so
// SQLite databases are always built from the models.
func PlanSchema(cfg *config.Config) (SchemaPlan, error) {
	plan := SchemaPlan{
		Mode:   strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode)),
		Driver: cfg.DBDriver,
		Env:    cfg.Env,
	}
	if plan.Mode == "" {
		plan.Mode = SchemaModeHybrid
	}
	if cfg.DBDriver == "sqlite" {
		plan.Auto = true
		return plan, nil
	}

	deployed := deployedEnvs[strings.ToLower(strings.TrimSpace(cfg.Env))]
	switch plan.Mode {
	case SchemaModeSQL:
		plan.SQL = true
	case SchemaModeAuto:
		if deployed {
			return plan, fmt.Errorf("schema mode %q is not allowed in %q, use migrations", plan.Mode, cfg.Env)
		}
		plan.Auto = true
	case SchemaModeHybrid:
		plan.SQL = true
		plan.Auto = !deployed
	default:
		return plan, fmt.Errorf("unknown schema mode %q", plan.Mode)
	}
	return plan, nil
}

// ApplySchema runs the planned schema steps: migrations first, then AutoMigrate.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return err
	}

	if plan.SQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	if !plan.Auto {
		return nil
	}

	middleware.Logger.Info("building schema from models",
		slog.String("mode", plan.Mode),
		slog.String("driver", plan.Driver),
		slog.String("env", plan.Env),
	)
	if err := AutoMigrate(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("build schema from models: %w", err)
	}
	return nil
}

// GetSchemaStatus returns the plan and, when migrations are part of it, which versions are
// applied and which are still pending.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return nil, err
	}
	status := &SchemaStatus{Plan: plan}
	if !plan.SQL {
		return status, nil
	}

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	status.Applied = applied

	done := make(map[int]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}
	for _, m := range GetMigrations() {
		if _, ok := done[m.Version]; !ok {
			status.Pending = append(status.Pending, m)
		}
	}
	return status, nil
}
