// Package repository holds the SQL for every stored record.
//
// Statements are built with squirrel using $n placeholders and executed on
// the shared pgx pool. Rows are collected with pgx.RowToStructByName, so
// selected column names must match the model's `db` tags. A missing row is
// reported as sqlerr.NotFound(table), which the global error handler turns
// into a 404 naming the entity.
package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/carcatalog/internal/sqlerr"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// collectOne runs a built statement and scans exactly one row into T.
func collectOne[T any](ctx context.Context, pool *pgxpool.Pool, table string, b sq.Sqlizer) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", table)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NotFound(table)
		}
		return nil, errors.Wrapf(err, "scanning %s", table)
	}
	return item, nil
}

// collectMany runs a built statement and scans every row into T.
func collectMany[T any](ctx context.Context, pool *pgxpool.Pool, table string, b sq.Sqlizer) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", table)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", table)
	}
	return items, nil
}

func count(ctx context.Context, pool *pgxpool.Pool, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building count query")
	}

	var total int
	if err := pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "counting rows")
	}
	return total, nil
}

// exec runs a statement that must touch exactly one row.
func exec(ctx context.Context, pool *pgxpool.Pool, table string, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "executing on %s", table)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.NotFound(table)
	}
	return nil
}

// orderBy renders an ORDER BY clause from a whitelisted column map.
// Unknown sort keys fall back to fallback; order is asc unless "desc".
func orderBy(columns map[string]string, sort, order, fallback string) string {
	column, ok := columns[sort]
	if !ok {
		column = columns[fallback]
	}
	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// likePattern escapes LIKE metacharacters and wraps s in wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
