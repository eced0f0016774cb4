package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/metrics"
)

// Scanner is the row-scanning surface shared by sql.Row and sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes how an entity maps onto its table: the id column, the
// remaining columns in insert order, and the scan/values round trip.
type Table[T any] struct {
	Name     string
	IDColumn string
	Columns  []string

	// Scan reads id followed by Columns.
	Scan func(row Scanner) (T, error)
	// Values returns the entity's values in Columns order.
	Values func(entity T) []any
}

// Base is the generic repository every specialised repository embeds.
type Base[T any] struct {
	table Table[T]
}

func NewBase[T any](table Table[T]) *Base[T] {
	return &Base[T]{table: table}
}

// BuildQuery renders the select for this table with optional where and
// order-by clauses.
func (r *Base[T]) BuildQuery(where string, orderBy string) string {
	var query strings.Builder
	fmt.Fprintf(&query, "SELECT %s, %s FROM %s",
		r.table.IDColumn, strings.Join(r.table.Columns, ", "), r.table.Name)

	if where != "" {
		fmt.Fprintf(&query, " WHERE %s", where)
	}
	if orderBy != "" {
		fmt.Fprintf(&query, " ORDER BY %s", orderBy)
	}

	return query.String()
}

func (r *Base[T]) observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RepositoryOperations.WithLabelValues(r.table.Name, operation, outcome).Inc()

	if err != nil {
		log.Error().Err(err).Str("table", r.table.Name).Str("operation", operation).Msg("Repository operation failed")
	} else {
		log.Debug().Str("table", r.table.Name).Str("operation", operation).Msg("Repository operation")
	}
}

// FetchOne runs the built query expecting exactly one row.
func (r *Base[T]) FetchOne(ctx context.Context, session *Session, where string, params ...any) (T, error) {
	query := r.BuildQuery(where, "")

	entity, err := r.table.Scan(session.Tx().QueryRowContext(ctx, query, params...))
	if err != nil {
		r.observe("fetchOne", err)
		var zero T
		return zero, wrap(err, query, params...)
	}

	r.observe("fetchOne", nil)
	return entity, nil
}

// FetchAll runs the built query returning every matching row.
func (r *Base[T]) FetchAll(ctx context.Context, session *Session, where string, orderBy string, params ...any) ([]T, error) {
	query := r.BuildQuery(where, orderBy)

	rows, err := session.Tx().QueryContext(ctx, query, params...)
	if err != nil {
		r.observe("fetchAll", err)
		return nil, wrap(err, query, params...)
	}
	defer rows.Close()

	var entities []T
	for rows.Next() {
		entity, err := r.table.Scan(rows)
		if err != nil {
			r.observe("fetchAll", err)
			return nil, wrap(err, query, params...)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		r.observe("fetchAll", err)
		return nil, wrap(err, query, params...)
	}

	r.observe("fetchAll", nil)
	return entities, nil
}

// GetAll returns the whole table.
func (r *Base[T]) GetAll(ctx context.Context, session *Session) ([]T, error) {
	return r.FetchAll(ctx, session, "", r.table.IDColumn)
}

func (r *Base[T]) placeholders(count int, offset int) string {
	marks := make([]string, count)
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", offset+i+1)
	}

	return strings.Join(marks, ", ")
}

// Insert writes one row and returns its generated id.
func (r *Base[T]) Insert(ctx context.Context, session *Session, entity T) (int64, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table.Name, strings.Join(r.table.Columns, ", "),
		r.placeholders(len(r.table.Columns), 0), r.table.IDColumn)

	var id int64
	if err := session.Tx().QueryRowContext(ctx, query, r.table.Values(entity)...).Scan(&id); err != nil {
		r.observe("insert", err)
		return 0, wrap(err, query)
	}

	r.observe("insert", nil)
	metrics.RowsWritten.WithLabelValues(r.table.Name).Inc()
	return id, nil
}

// BulkInsert writes all rows in one statement, returning generated ids in
// input order.
func (r *Base[T]) BulkInsert(ctx context.Context, session *Session, entities []T) ([]int64, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	width := len(r.table.Columns)
	groups := make([]string, len(entities))
	params := make([]any, 0, len(entities)*width)
	for i, entity := range entities {
		groups[i] = fmt.Sprintf("(%s)", r.placeholders(width, i*width))
		params = append(params, r.table.Values(entity)...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING %s",
		r.table.Name, strings.Join(r.table.Columns, ", "),
		strings.Join(groups, ", "), r.table.IDColumn)

	rows, err := session.Tx().QueryContext(ctx, query, params...)
	if err != nil {
		r.observe("bulkInsert", err)
		return nil, wrap(err, query)
	}
	defer rows.Close()

	ids := make([]int64, 0, len(entities))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			r.observe("bulkInsert", err)
			return nil, wrap(err, query)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		r.observe("bulkInsert", err)
		return nil, wrap(err, query)
	}

	r.observe("bulkInsert", nil)
	metrics.RowsWritten.WithLabelValues(r.table.Name).Add(float64(len(ids)))
	return ids, nil
}

// Update rewrites every column of the identified row.
func (r *Base[T]) Update(ctx context.Context, session *Session, id int64, entity T) error {
	assignments := make([]string, len(r.table.Columns))
	for i, column := range r.table.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		r.table.Name, strings.Join(assignments, ", "),
		r.table.IDColumn, len(r.table.Columns)+1)

	params := append(r.table.Values(entity), id)
	result, err := session.Tx().ExecContext(ctx, query, params...)
	if err != nil {
		r.observe("update", err)
		return wrap(err, query)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		notFound := &Error{Kind: KindNotFound, Cause: fmt.Errorf("no row with %s = %d", r.table.IDColumn, id)}
		r.observe("update", notFound)
		return notFound
	}

	r.observe("update", nil)
	metrics.RowsWritten.WithLabelValues(r.table.Name).Inc()
	return nil
}

// GetByID fetches a single row by primary key.
func (r *Base[T]) GetByID(ctx context.Context, session *Session, id int64) (T, error) {
	return r.FetchOne(ctx, session, fmt.Sprintf("%s = $1", r.table.IDColumn), id)
}

// GetByIDs fetches the rows for the given ids; missing ids are simply absent
// from the result.
func (r *Base[T]) GetByIDs(ctx context.Context, session *Session, ids []int64) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return r.FetchAll(ctx, session,
		fmt.Sprintf("%s = ANY($1)", r.table.IDColumn), r.table.IDColumn, ids)
}

// DeleteByID removes a single row by primary key.
func (r *Base[T]) DeleteByID(ctx context.Context, session *Session, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.table.Name, r.table.IDColumn)

	if _, err := session.Tx().ExecContext(ctx, query, id); err != nil {
		r.observe("deleteByID", err)
		return wrap(err, query)
	}

	r.observe("deleteByID", nil)
	return nil
}
