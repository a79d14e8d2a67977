package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// CalculationRepo reads and writes the calculations table.
type CalculationRepo struct {
	drv *entsql.Driver
}

// Insert stores one calculation and returns its ID.
func (r *CalculationRepo) Insert(ctx context.Context, question, answer, createdAt string) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(CalculationsTableName).
		Columns(ColumnQuestion, ColumnAnswer, ColumnCreatedAt).
		Values(question, answer, createdAt).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save calculation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent calculations, newest first.
func (r *CalculationRepo) List(ctx context.Context, limit int) ([]CalculationRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(ColumnID, ColumnQuestion, ColumnAnswer, ColumnCreatedAt).
		From(entsql.Table(CalculationsTableName)).
		OrderBy(entsql.Desc(ColumnID))
	if limit > 0 {
		sel = sel.Limit(limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	var out []CalculationRecord
	for rows.Next() {
		var c CalculationRecord
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the number of stored calculations.
func (r *CalculationRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(CalculationsTableName)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count calculations: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}
