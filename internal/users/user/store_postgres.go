// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
)

// # Repository Implementation

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// accountSelectColumns renders the projection shared by every account read.
// Role names come from a correlated subquery so a single round trip hydrates
// the full entity.
func accountSelectColumns() string {
	roleNames := fmt.Sprintf(
		`(SELECT COALESCE(array_agg(r.%s ORDER BY r.%s), '{}')
			FROM %s ar
			JOIN %s r ON r.%s = ar.%s
			WHERE ar.%s = a.%s) AS rolenames`,
		schema.UserRole.Name, schema.UserRole.Name,
		schema.AccountRole.Table,
		schema.UserRole.Table, schema.UserRole.ID, schema.AccountRole.RoleID,
		schema.AccountRole.AccountID, schema.UserAccount.ID,
	)

	columns := make([]string, 0, len(schema.UserAccount.Columns())+1)
	for _, column := range schema.UserAccount.Columns() {
		columns = append(columns, "a."+column)
	}
	columns = append(columns, roleNames)
	return strings.Join(columns, ", ")
}

func scanAccount(row pgx.Row, u *User, extra ...any) error {
	var roleNames []string
	targets := []any{
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &roleNames,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return err
	}

	u.Roles = make([]sec.UserRole, 0, len(roleNames))
	for _, name := range roleNames {
		role := sec.UserRole(name)
		if role.IsValid() {
			u.Roles = append(u.Roles, role)
		}
	}
	return nil
}

func (repository *PostgresRepository) ListUsers(context context.Context, limit, offset int) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS totalcount
		FROM %s a
		ORDER BY a.%s ASC
		LIMIT $1 OFFSET $2
	`,
		accountSelectColumns(), schema.UserAccount.Table, schema.UserAccount.ID,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var (
		users []*User
		total int
	)
	for rows.Next() {
		u := &User{}
		if err := scanAccount(rows, u, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, u)
	}

	return users, total, nil
}

func (repository *PostgresRepository) ListRoles(context context.Context) ([]*Role, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s ASC",
		schema.UserRole.ID, schema.UserRole.Name, schema.UserRole.Description,
		schema.UserRole.Table, schema.UserRole.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		r := &Role{}
		var name string
		if err := rows.Scan(&r.ID, &name, &r.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		r.Name = sec.UserRole(name)
		roles = append(roles, r)
	}

	return roles, nil
}

func (repository *PostgresRepository) GetUser(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.%s = $1
	`,
		accountSelectColumns(), schema.UserAccount.Table, schema.UserAccount.ID,
	)

	u := &User{}
	if err := scanAccount(repository.db.QueryRow(context, query, id), u); err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}

	return u, nil
}

func (repository *PostgresRepository) FindByLogin(context context.Context, login string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s a
		WHERE a.%s = $1 OR a.%s = $1
	`,
		accountSelectColumns(), schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email,
	)

	u := &User{}
	if err := scanAccount(repository.db.QueryRow(context, query, login), u); err != nil {
		return nil, dberr.Wrap(err, "find_user_by_login")
	}

	return u, nil
}

func (repository *PostgresRepository) FindIDByUsername(context context.Context, username string) (*int64, error) {
	return repository.findID(context, schema.UserAccount.Username, username, "find_user_by_username")
}

func (repository *PostgresRepository) FindIDByEmail(context context.Context, email string) (*int64, error) {
	return repository.findID(context, schema.UserAccount.Email, email, "find_user_by_email")
}

func (repository *PostgresRepository) findID(context context.Context, column, value, action string) (*int64, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.UserAccount.ID, schema.UserAccount.Table, column,
	)

	var id int64
	err := repository.db.QueryRow(context, query, value).Scan(&id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return &id, nil
}

func (repository *PostgresRepository) CreateUser(context context.Context, u *User) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_user")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.IsActive, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err = tx.QueryRow(context, query, u.Username, u.Email, u.PasswordHash, u.IsActive).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	if err := replaceRoles(context, tx, u.ID, u.Roles); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "commit_create_user")
}

func (repository *PostgresRepository) UpdateUser(context context.Context, u *User) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_user")
	}
	defer tx.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.IsActive,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.UpdatedAt,
	)

	err = tx.QueryRow(context, query, u.ID, u.Username, u.Email, u.IsActive).Scan(&u.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}

	if err := replaceRoles(context, tx, u.ID, u.Roles); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "commit_update_user")
}

// replaceRoles rewrites the account-role junction rows inside the caller's
// transaction. Role names are resolved against users.role, so an unknown name
// simply assigns nothing.
func replaceRoles(context context.Context, tx pgx.Tx, accountID int64, roles []sec.UserRole) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.AccountRole.Table, schema.AccountRole.AccountID,
	)
	if _, err := tx.Exec(context, deleteQuery, accountID); err != nil {
		return dberr.Wrap(err, "clear_user_roles")
	}

	if len(roles) == 0 {
		return nil
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, r.%s FROM %s r WHERE r.%s = ANY($2::text[])
	`,
		schema.AccountRole.Table, schema.AccountRole.AccountID, schema.AccountRole.RoleID,
		schema.UserRole.ID, schema.UserRole.Table, schema.UserRole.Name,
	)
	if _, err := tx.Exec(context, insertQuery, accountID, names); err != nil {
		return dberr.Wrap(err, "assign_user_roles")
	}

	return nil
}

func (repository *PostgresRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		schema.UserAccount.Table, schema.UserAccount.Password,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) UpdateLastLogin(context context.Context, userID int64) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1",
		schema.UserAccount.Table, schema.UserAccount.LastLoginAt, schema.UserAccount.ID,
	)

	_, err := repository.db.Exec(context, query, userID)
	return dberr.Wrap(err, "update_user_last_login")
}

func (repository *PostgresRepository) DeleteUser(context context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.UserAccount.Table, schema.UserAccount.ID,
	)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
