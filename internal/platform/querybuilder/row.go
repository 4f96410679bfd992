package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
)

var errNoColumns = errors.New("row has no db columns")

// InsertRow builds a single-row INSERT for table from the `db` tagged fields
// of row and returns the listed columns of the stored record.
func InsertRow(table string, row any, returning ...string) (string, []any, error) {
	cols, vals, err := rowColumns(row)
	if err != nil {
		return "", nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Returning(returning...).
		ToSQL()
}

// rowColumns walks the fields of a struct value. Untagged fields and fields
// tagged `db:"-"` are not columns.
func rowColumns(row any) ([]string, []any, error) {
	v := reflect.Indirect(reflect.ValueOf(row))
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("row must be a struct, got %T", row)
	}

	t := v.Type()
	var (
		cols []string
		vals []any
	)
	for _, f := range reflect.VisibleFields(t) {
		name, ok := f.Tag.Lookup("db")
		if !ok || name == "-" || !f.IsExported() {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.FieldByIndex(f.Index).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errNoColumns
	}
	return cols, vals, nil
}
