package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT for the db-tagged fields of model. When
// conflictKeys is non-empty the statement upserts on those columns.
func InsertModel(table string, model any, conflictKeys ...string) (string, []any, error) {
	cols, vals, err := ColumnsAndValues(model)
	if err != nil {
		return "", nil, err
	}
	builder := InsertInto(table).Columns(cols...).Values(vals...)
	if len(conflictKeys) > 0 {
		builder.OnConflictUpdate(conflictKeys...)
	}
	return builder.ToSQL()
}

// Columns lists the db-tagged columns of a struct type, in field order.
func Columns(model any) []string {
	cols, _, err := ColumnsAndValues(model)
	if err != nil {
		return nil
	}
	return cols
}

func ColumnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
