package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// InsertModel builds a single-row insert from the db-tagged exported fields
// of model. suffix is appended verbatim.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("insert %s: model cannot be nil", table)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert %s: model must be a struct, got %s", table, value.Kind())
	}

	layout := layoutOf(value.Type())
	if len(layout.columns) == 0 {
		return "", nil, fmt.Errorf("insert %s: %s has no db columns", table, value.Type())
	}

	values := make([]any, len(layout.fields))
	for i, idx := range layout.fields {
		values[i] = value.Field(idx).Interface()
	}

	return InsertInto(table).Row(layout.columns, values).Suffix(suffix).ToSQL()
}

type modelLayout struct {
	columns []string
	fields  []int
}

var layouts sync.Map // reflect.Type -> modelLayout

func layoutOf(typ reflect.Type) modelLayout {
	if cached, ok := layouts.Load(typ); ok {
		return cached.(modelLayout)
	}

	var layout modelLayout
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		layout.columns = append(layout.columns, col)
		layout.fields = append(layout.fields, i)
	}

	layouts.Store(typ, layout)
	return layout
}
