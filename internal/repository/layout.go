package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pathviz/pathviz-server/internal/grid"
)

// GridLayout is a persisted grid record: walls, weights and roles only,
// never transient search annotations.
type GridLayout struct {
	GridLayoutId int64
	PublicId     string
	UserId       *int64
	Name         string
	Rows         int
	Cols         int
	Layout       []byte
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// Record decodes the stored layout back into a grid record.
func (l *GridLayout) Record() (grid.Record, error) {
	var rec grid.Record
	err := json.Unmarshal(l.Layout, &rec)
	return rec, err
}

type CreateGridLayoutParams struct {
	PublicId string
	Name     string
	UserId   *int64
}

func (q *Queries) CreateGridLayout(
	ctx context.Context, rec grid.Record, params CreateGridLayoutParams,
) (*GridLayout, error) {
	layout, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"public_id": params.PublicId,
		"name":      params.Name,
		"rows":      rec.Rows,
		"cols":      rec.Cols,
		"layout":    layout,
	}
	if params.UserId != nil {
		args["user_id"] = *params.UserId
	} else {
		args["user_id"] = nil
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO grid_layout (public_id, user_id, name, rows, cols, layout)
		VALUES (@public_id, @user_id, @name, @rows, @cols, @layout)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GridLayout])
}

func (q *Queries) FetchGridLayout(ctx context.Context, publicId string) (*GridLayout, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM grid_layout WHERE public_id = $1", publicId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GridLayout])
}

// UpdateGridLayout replaces the stored record wholesale; partial layout
// updates do not exist, matching the all-or-nothing load semantics.
func (q *Queries) UpdateGridLayout(
	ctx context.Context, publicId string, rec grid.Record,
) (*GridLayout, error) {
	layout, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	rows, _ := q.db.Query(
		ctx,
		`UPDATE grid_layout
		SET rows = @rows, cols = @cols, layout = @layout, updated_at = now()
		WHERE public_id = @public_id
		RETURNING *;`,
		pgx.NamedArgs{
			"public_id": publicId,
			"rows":      rec.Rows,
			"cols":      rec.Cols,
			"layout":    layout,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GridLayout])
}

func (q *Queries) ListGridLayouts(ctx context.Context, userId int64) ([]*GridLayout, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM grid_layout WHERE user_id = $1 ORDER BY updated_at DESC",
		userId,
	)
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[GridLayout])
}

func (q *Queries) DeleteGridLayout(ctx context.Context, publicId string) error {
	_, err := q.db.Exec(
		ctx, "DELETE FROM grid_layout WHERE public_id = $1", publicId,
	)
	return err
}
