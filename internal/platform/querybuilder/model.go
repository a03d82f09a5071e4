package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT for every exported field of model that
// carries a `db` tag, in declaration order.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := taggedColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func taggedColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("insert model is nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("insert model must be a struct, got %s", value.Kind())
	}

	var cols []string
	var vals []any
	typ := value.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col := dbColumnName(field.Tag.Get("db"))
		if col == "" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("insert model %s has no db-tagged fields", typ.Name())
	}
	return cols, vals, nil
}

// dbColumnName extracts the column from a db tag, ignoring options
// after the first comma. "-" and empty tags opt the field out.
func dbColumnName(tag string) string {
	col, _, _ := strings.Cut(strings.TrimSpace(tag), ",")
	if col == "-" {
		return ""
	}
	return strings.TrimSpace(col)
}
