// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/database/schema"
	"github.com/kritikadev/kritika/internal/platform/dberr"
	"github.com/kritikadev/kritika/pkg/pagination"
)

// Unique constraint names from the migrations, used for field-specific
// conflict responses.
const (
	usernameUniqueConstraint = "account_username_key"
	emailUniqueConstraint    = "account_email_key"
)

// userColumns is the shared projection for account rows.
var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
	schema.UserAccount.Role, schema.UserAccount.IsStaff, schema.UserAccount.ConfirmationCode,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]*User, int, error) {
	filter := ""
	args := []any{params.Limit, params.Offset()}
	if search != "" {
		filter = fmt.Sprintf("WHERE %s ILIKE '%%' || $3 || '%%'", schema.UserAccount.Username)
		args = append(args, search)
	}

	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		userColumns, schema.UserAccount.Table, filter, schema.UserAccount.Username)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0)
	total := 0

	for rows.Next() {
		u := &User{}
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio,
			&u.Role, &u.IsStaff, &u.ConfirmationCode, &u.CreatedAt, &u.UpdatedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, u)
	}

	return users, total, nil
}

func (repository *PostgresRepository) GetByUsername(context context.Context, username string) (*User, error) {
	return repository.getBy(context, schema.UserAccount.Username, username)
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*User, error) {
	return repository.getBy(context, schema.UserAccount.ID, id)
}

func (repository *PostgresRepository) GetByEmail(context context.Context, email string) (*User, error) {
	return repository.getBy(context, schema.UserAccount.Email, email)
}

func (repository *PostgresRepository) getBy(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, column)

	u := &User{}
	err := repository.db.QueryRow(context, query, value).
		Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Bio,
			&u.Role, &u.IsStaff, &u.ConfirmationCode, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}

	return u, nil
}

func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
		schema.UserAccount.Role, schema.UserAccount.IsStaff, schema.UserAccount.ConfirmationCode,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio,
		user.Role, user.IsStaff, user.ConfirmationCode).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapAccountConflict(err, "create_user")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.UpdatedAt)

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.ID).
		Scan(&user.UpdatedAt)
	if err != nil {
		return mapAccountConflict(err, "update_user")
	}

	return nil
}

func (repository *PostgresRepository) DeleteByUsername(context context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Username)

	tag, err := repository.db.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

func (repository *PostgresRepository) UpdateConfirmationCode(context context.Context, userID, code string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		schema.UserAccount.Table,
		schema.UserAccount.ConfirmationCode, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.db.Exec(context, query, code, userID)
	if err != nil {
		return dberr.Wrap(err, "update_confirmation_code")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

// mapAccountConflict turns per-column unique violations into field-specific
// conflict errors so clients can tell which identifier is taken.
func mapAccountConflict(err error, action string) error {
	if dberr.IsUniqueViolation(err, usernameUniqueConstraint) {
		return apperr.ValidationError("Invalid payload", apperr.FieldError{
			Field:   constants.FieldUsername,
			Message: "Username is already taken",
		})
	}
	if dberr.IsUniqueViolation(err, emailUniqueConstraint) {
		return apperr.ValidationError("Invalid payload", apperr.FieldError{
			Field:   constants.FieldEmail,
			Message: "Email is already registered",
		})
	}
	return dberr.Wrap(err, action)
}
