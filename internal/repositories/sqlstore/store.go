package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"group_service/internal/apperrors"
)

// Row is a single result row keyed by column name. Byte slices coming back
// from the driver are normalized to string.
type Row map[string]any

// Page is the result of a paginated select. TotalCount is the full table
// count, independent of the requested window.
type Page struct {
	Rows       []Row
	TotalCount int
}

// Querier is the persistence surface the rest of the service depends on.
type Querier interface {
	Select(ctx context.Context, schema, table string, filters map[string]any) ([]Row, error)
	SelectPaginated(ctx context.Context, schema, table string, limit, offset int) (*Page, error)
	Insert(ctx context.Context, schema, table string, values map[string]any) (int64, error)
	Update(ctx context.Context, schema, table string, values, filters map[string]any) (int64, error)
	Delete(ctx context.Context, schema, table string, filters map[string]any) (int64, error)
}

// Store issues single parameterized statements against schema-qualified
// tables over an injected pool handle. Filter and column values are always
// bound parameters; only identifiers are interpolated, and those must pass
// the identifier check first.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

var _ Querier = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, timeout: 5 * time.Second}
}

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func qualify(schema, table string) (string, error) {
	if !identPattern.MatchString(schema) || !identPattern.MatchString(table) {
		return "", apperrors.New(apperrors.Validation, "invalid_identifier")
	}
	return schema + "." + table, nil
}

// sortedKeys fixes the column order so generated SQL is deterministic for a
// given filter/value set.
func sortedKeys(m map[string]any) ([]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		if !identPattern.MatchString(k) {
			return nil, apperrors.New(apperrors.Validation, "invalid_identifier")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func buildWhere(filters map[string]any) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	keys, err := sortedKeys(filters)
	if err != nil {
		return "", nil, err
	}
	conditions := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		conditions = append(conditions, k+" = ?")
		args = append(args, filters[k])
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

func (s *Store) Select(ctx context.Context, schema, table string, filters map[string]any) ([]Row, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(filters)
	if err != nil {
		return nil, err
	}
	query := "SELECT * FROM " + target + where

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.PersistenceOp("select", target, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		return nil, apperrors.PersistenceOp("select", target, err)
	}
	return result, nil
}

func (s *Store) SelectPaginated(ctx context.Context, schema, table string, limit, offset int) (*Page, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+target+" LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, apperrors.PersistenceOp("select_paginated", target, err)
	}
	defer rows.Close()

	windowed, err := scanRows(rows)
	if err != nil {
		return nil, apperrors.PersistenceOp("select_paginated", target, err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+target).Scan(&total); err != nil {
		return nil, apperrors.PersistenceOp("select_paginated", target, err)
	}

	return &Page{Rows: windowed, TotalCount: total}, nil
}

func (s *Store) Insert(ctx context.Context, schema, table string, values map[string]any) (int64, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return 0, err
	}
	keys, err := sortedKeys(values)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, apperrors.New(apperrors.Validation, "empty_insert")
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = "?"
		args[i] = values[k]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		target, strings.Join(keys, ", "), strings.Join(placeholders, ", "))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.PersistenceOp("insert", target, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.PersistenceOp("insert", target, err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, schema, table string, values, filters map[string]any) (int64, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return 0, err
	}
	keys, err := sortedKeys(values)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, apperrors.New(apperrors.Validation, "empty_update")
	}

	assignments := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(filters))
	for i, k := range keys {
		assignments[i] = k + " = ?"
		args = append(args, values[k])
	}
	where, whereArgs, err := buildWhere(filters)
	if err != nil {
		return 0, err
	}
	args = append(args, whereArgs...)
	query := "UPDATE " + target + " SET " + strings.Join(assignments, ", ") + where

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.PersistenceOp("update", target, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.PersistenceOp("update", target, err)
	}
	return affected, nil
}

func (s *Store) Delete(ctx context.Context, schema, table string, filters map[string]any) (int64, error) {
	target, err := qualify(schema, table)
	if err != nil {
		return 0, err
	}
	where, args, err := buildWhere(filters)
	if err != nil {
		return 0, err
	}
	query := "DELETE FROM " + target + where

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.PersistenceOp("delete", target, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.PersistenceOp("delete", target, err)
	}
	return affected, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
