package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrUnknownTable marks schema lookups for tables the database does not have.
var ErrUnknownTable = errors.New("unknown table")

const sampleRowCount = 3

// Adapter exposes the schema surface and raw execution over an open gorm
// handle. It owns no state beyond the handle and is safe for concurrent use.
type Adapter struct {
	db *gorm.DB
}

func NewAdapter(db *gorm.DB) *Adapter {
	return &Adapter{db: db}
}

func (a *Adapter) Dialect() string {
	return "postgresql"
}

// ListTables returns the base tables of the public schema, sorted.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := a.db.WithContext(ctx).Raw(
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		 ORDER BY table_name`,
	).Scan(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

type columnInfo struct {
	ColumnName string
	DataType   string
	IsNullable string
}

// TableInfo renders a schema description for the given tables (all tables
// when none are named): a CREATE TABLE-style column listing followed by up
// to three sample rows, the shape SQL-generation prompts work best with.
func (a *Adapter) TableInfo(ctx context.Context, tables ...string) (string, error) {
	known, err := a.ListTables(ctx)
	if err != nil {
		return "", err
	}
	knownSet := make(map[string]bool, len(known))
	for _, t := range known {
		knownSet[t] = true
	}

	if len(tables) == 0 {
		tables = known
	}

	var info strings.Builder
	for i, table := range tables {
		if !knownSet[table] {
			return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
		}
		if i > 0 {
			info.WriteString("\n\n")
		}
		if err := a.writeTableInfo(ctx, &info, table); err != nil {
			return "", err
		}
	}
	return info.String(), nil
}

func (a *Adapter) writeTableInfo(ctx context.Context, info *strings.Builder, table string) error {
	var columns []columnInfo
	err := a.db.WithContext(ctx).Raw(
		`SELECT column_name, data_type, is_nullable FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ?
		 ORDER BY ordinal_position`, table,
	).Scan(&columns).Error
	if err != nil {
		return fmt.Errorf("describe table %s: %w", table, err)
	}

	fmt.Fprintf(info, "CREATE TABLE %s (\n", table)
	for i, col := range columns {
		nullability := "NOT NULL"
		if col.IsNullable == "YES" {
			nullability = "NULL"
		}
		fmt.Fprintf(info, "\t%s %s %s", col.ColumnName, strings.ToUpper(col.DataType), nullability)
		if i < len(columns)-1 {
			info.WriteString(",")
		}
		info.WriteString("\n")
	}
	info.WriteString(")")

	header, rows, err := a.sampleRows(ctx, table)
	if err != nil {
		// Sample rows are a best-effort enrichment; the column listing alone
		// is still a usable schema description.
		return nil
	}

	fmt.Fprintf(info, "\n\n/*\n%d rows from %s table:\n", len(rows), table)
	info.WriteString(strings.Join(header, "\t"))
	info.WriteString("\n")
	for _, row := range rows {
		info.WriteString(strings.Join(row, "\t"))
		info.WriteString("\n")
	}
	info.WriteString("*/")
	return nil
}

func (a *Adapter) sampleRows(ctx context.Context, table string) ([]string, [][]string, error) {
	// table is validated against information_schema before we get here
	rows, err := a.db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT * FROM %q LIMIT %d`, table, sampleRowCount),
	).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		values := make([]any, len(header))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return nil, nil, err
		}
		rendered := make([]string, len(header))
		for i, v := range values {
			rendered[i] = renderValue(*(v.(*any)))
		}
		out = append(out, rendered)
	}
	return header, out, rows.Err()
}

// Execute runs an arbitrary SQL statement and serializes the outcome to
// text: row-returning statements become a JSON array of row objects, other
// statements report the affected-row count. Nothing restricts the statement
// to reads; see DESIGN.md.
func (a *Adapter) Execute(ctx context.Context, sql string) (string, error) {
	if returnsRows(sql) {
		return a.executeQuery(ctx, sql)
	}

	result := a.db.WithContext(ctx).Exec(sql)
	if result.Error != nil {
		return "", fmt.Errorf("execute statement: %w", result.Error)
	}
	return fmt.Sprintf("%d row(s) affected", result.RowsAffected), nil
}

func (a *Adapter) executeQuery(ctx context.Context, sql string) (string, error) {
	rows, err := a.db.WithContext(ctx).Raw(sql).Rows()
	if err != nil {
		return "", fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("read columns: %w", err)
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		for i := range values {
			values[i] = new(any)
		}
		if err := rows.Scan(values...); err != nil {
			return "", fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(*(values[i].(*any)))
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate rows: %w", err)
	}

	serialized, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("serialize result: %w", err)
	}
	return string(serialized), nil
}

func returnsRows(sql string) bool {
	head := strings.ToUpper(strings.TrimSpace(sql))
	for _, prefix := range []string{"SELECT", "WITH", "SHOW", "EXPLAIN", "VALUES", "TABLE"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func renderValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
