package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"strings"
)

// QueryParams narrows down a query on a recorded table.
type QueryParams struct {
	// Where is the condition without the WHERE keyword, for example
	// "Topology = ? AND Kind = ?". Its placeholders are bound to Args.
	Where string
	Args  []any

	// OrderBy is the ordering without the ORDER BY keywords. Use "rowid" to
	// read entries in the order they were recorded.
	OrderBy string

	// Limit caps the number of entries returned. Zero means no limit.
	Limit  int
	Offset int
}

// DataReader reads back tables written by a DataRecorder.
type DataReader interface {
	// MapTable tells the reader which struct the rows of a table fill. A
	// table must be mapped before it can be queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables, sorted.
	ListTables() []string

	// Query returns one pointer to a new entry per matching row, together
	// with the number of rows matching the condition regardless of Limit.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	Close() error
}

type sqliteReader struct {
	db     *sql.DB
	tables map[string]reflect.Type
}

// NewReader opens a database written by a DataRecorder. The file name
// includes the ".sqlite3" extension. A missing file is an error instead of
// a new empty database.
func NewReader(dbFilename string) (DataReader, error) {
	if _, err := os.Stat(dbFilename); err != nil {
		return nil, fmt.Errorf("cannot open recording: %w", err)
	}

	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		return nil, err
	}

	return &sqliteReader{
		db:     db,
		tables: make(map[string]reflect.Type),
	}, nil
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.tables[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	return slices.Sorted(maps.Keys(r.tables))
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	entryType, mapped := r.tables[tableName]
	if !mapped {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	filter := ""
	if params.Where != "" {
		filter = " WHERE " + params.Where
	}

	var total int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+filter, params.Args...).
		Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM "+tableName+filter+pageClause(params), params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows, entryType)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}

func pageClause(params QueryParams) string {
	var b strings.Builder

	if params.OrderBy != "" {
		b.WriteString(" ORDER BY " + params.OrderBy)
	}

	if params.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", params.Limit, params.Offset)
	}

	return b.String()
}

// scanEntries fills one new entry per row. Columns that the entry type has
// no field for are read and dropped.
func scanEntries(rows *sql.Rows, entryType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldOf := make(map[string]int, entryType.NumField())
	for i := range entryType.NumField() {
		fieldOf[entryType.Field(i).Name] = i
	}

	var entries []any

	for rows.Next() {
		entry := reflect.New(entryType)
		targets := make([]any, len(columns))

		for i, column := range columns {
			if f, found := fieldOf[column]; found {
				targets[i] = entry.Elem().Field(f).Addr().Interface()
			} else {
				targets[i] = new(any)
			}
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		entries = append(entries, entry.Interface())
	}

	return entries, rows.Err()
}
