package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	UserId       int64
	Username     string
	PasswordHash []byte
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type CreateUserParams struct {
	Username     string
	PasswordHash []byte
}

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO app_user (username, password_hash) VALUES ($1, $2) RETURNING *`,
		params.Username,
		params.PasswordHash,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
}

func (q *Queries) FetchUser(ctx context.Context, username string) (*User, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM app_user WHERE username = $1", username,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[User])
}
