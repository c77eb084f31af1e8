// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package seed provisions the reference data the API cannot run without:
// the closed role set and, optionally, a bootstrap administrator account.
//
// Every step is idempotent, so running it on each startup is safe.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelfmark/internal/platform/config"
	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
)

// Run applies all seed steps against the given pool.
func Run(context context.Context, db *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) error {
	if err := seedRoles(context, db); err != nil {
		return err
	}
	return seedAdmin(context, db, cfg, logger)
}

// seedRoles inserts the closed role enum. Existing rows are left untouched.
func seedRoles(context context.Context, db *pgxpool.Pool) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2), ($3, $4)
		ON CONFLICT (%s) DO NOTHING
	`,
		schema.UserRole.Table, schema.UserRole.Name, schema.UserRole.Description,
		schema.UserRole.Name,
	)

	_, err := db.Exec(context, query,
		string(sec.RoleUser), "Standard account with read and review access",
		string(sec.RoleAdmin), "Full catalog and account administration",
	)
	return dberr.Wrap(err, "seed_roles")
}

// seedAdmin creates the bootstrap administrator from configuration.
//
// Skipped when no admin password is configured or when the account already
// exists, so a live deployment never has its admin credentials rewritten.
func seedAdmin(context context.Context, db *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Info("seed_admin_skipped_no_password")
		return nil
	}

	existsQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.UserAccount.ID, schema.UserAccount.Table, schema.UserAccount.Username,
	)

	var existingID int64
	err := db.QueryRow(context, existsQuery, cfg.AdminUsername).Scan(&existingID)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return dberr.Wrap(err, "seed_admin_probe")
	}

	passwordHash, err := sec.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed_admin_hash_failed: %w", err)
	}

	tx, err := db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "seed_admin_begin")
	}
	defer tx.Rollback(context)

	insertAccount := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.IsActive, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	var adminID int64
	err = tx.QueryRow(context, insertAccount, cfg.AdminUsername, cfg.AdminEmail, passwordHash).Scan(&adminID)
	if err != nil {
		return dberr.Wrap(err, "seed_admin_insert")
	}

	assignRoles := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, r.%s FROM %s r WHERE r.%s = ANY($2::text[])
	`,
		schema.AccountRole.Table, schema.AccountRole.AccountID, schema.AccountRole.RoleID,
		schema.UserRole.ID, schema.UserRole.Table, schema.UserRole.Name,
	)

	roleNames := []string{string(sec.RoleAdmin), string(sec.RoleUser)}
	if _, err := tx.Exec(context, assignRoles, adminID, roleNames); err != nil {
		return dberr.Wrap(err, "seed_admin_roles")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "seed_admin_commit")
	}

	logger.Info("seed_admin_created",
		slog.Int64("user_id", adminID),
		slog.String("username", cfg.AdminUsername),
	)
	return nil
}
